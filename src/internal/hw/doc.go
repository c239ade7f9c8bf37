// Package hw classifies the network interfaces of Turris boards.
//
// Each supported board family has an ordered list of rules. A rule matches a
// token in the canonical sysfs device path of an interface and decides its
// type, bus, slot and expansion module. The first matching rule wins, so the
// order of the list is significant.
//
// # Classification
//
// Classification runs in two passes:
//
//  1. Physical pass: every symlink in sys/class/net is resolved and tested
//     against the board rules. Switch CPU ports are ignored, unknown paths
//     are logged and dropped. Virtual devices listed in proc/net/vlan are
//     deferred, other virtual devices are ignored.
//  2. VLAN pass: deferred VLAN interfaces inherit the classification of
//     their parent. VLANs without a classified parent are dropped.
//
// Link state and speed are read for every interface. Wifi interfaces are
// enriched with slot_path, vendor and pci_id; wwan interfaces with slot_path
// and the QMI control device, and are dropped if no control device exists.
//
// # Usage
//
//	classifier, err := hw.ForBoard(board.Mox)
//	if err != nil {
//	    return err
//	}
//	ifaces, err := classifier.Classify(sysfs.New("/"), hw.Options{Vendors: cache})
//	if err != nil {
//	    return err
//	}
//	result := hw.NewResult(ifaces).Filter(hw.NewTypeFilter("eth"))
//
// # Output
//
// Result encodes to a JSON object keyed by interface name in natural order
// (eth2 before eth10, lan1 before lan1.100 before lan2). Attribute keys are
// sorted and unset optional attributes are omitted.
package hw
