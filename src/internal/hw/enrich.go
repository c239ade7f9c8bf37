package hw

import (
	"path/filepath"
	"slices"

	"github.com/turris-cz/turrishw/src/internal/log"
	"github.com/turris-cz/turrishw/src/internal/pciids"
	"github.com/turris-cz/turrishw/src/internal/sysfs"
	"github.com/turris-cz/turrishw/src/internal/utils"
)

// enrich adds the optional attributes of wifi and wwan interfaces. It returns
// false when the interface must be dropped.
func (r *run) enrich(iface *Interface, c *candidate) bool {
	switch iface.Type {
	case TypeWifi:
		iface.SlotPath = slotPath(c.path)
		r.addPCIIdentity(iface, c.name)
	case TypeWWAN:
		iface.SlotPath = slotPath(c.path)
		dev, ok := findControlDevice(r.acc, c.path)
		if !ok {
			log.WithField("iface", c.name).Warnf("No QMI control device found for %s, skipping", c.name)
			return false
		}
		iface.QMIDevice = dev
	}
	return true
}

// slotPath turns the canonical path of a network interface into the device
// path fragment OpenWrt uses to pin wifi-device sections, e.g.
// "soc/soc:pcie/pci0000:00/0000:00:01.0/0000:01:00.0".
func slotPath(path string) string {
	dir := path
	if filepath.Base(filepath.Dir(path)) == "net" {
		dir = utils.ParentDir(path, 2)
	}
	return utils.TrimPathPrefixes(dir, "/sys/devices/", "platform/")
}

// addPCIIdentity fills vendor and pci_id from the PCI device behind name.
func (r *run) addPCIIdentity(iface *Interface, name string) {
	vendorID, err := r.acc.ReadFirstLine(sysfs.NetIface(name, "device", "vendor"))
	if err != nil {
		return
	}
	if r.vendors != nil {
		if vendor, ok := r.vendors.VendorName(vendorID); ok {
			iface.Vendor = vendor
		}
	}
	deviceID, err := r.acc.ReadFirstLine(sysfs.NetIface(name, "device", "device"))
	if err != nil {
		return
	}
	iface.PCIID = pciids.NormalizeID(vendorID) + ":" + pciids.NormalizeID(deviceID)
}

// findControlDevice looks for the cdc-wdm node of the modem owning the
// interface at path. Nodes on the same USB interface win over nodes that only
// share the USB device.
func findControlDevice(acc sysfs.Accessor, path string) (string, bool) {
	nodes, err := acc.ListDir(sysfs.USBMiscClassDir)
	if err != nil {
		return "", false
	}
	slices.SortFunc(nodes, utils.NaturalCompare)

	usbInterface := utils.ParentDir(path, 2)
	usbDevice := filepath.Dir(usbInterface)

	fallback := ""
	for _, node := range nodes {
		resolved, err := acc.Resolve(filepath.Join(sysfs.USBMiscClassDir, node))
		if err != nil {
			continue
		}
		nodeInterface := utils.ParentDir(resolved, 2)
		if nodeInterface == usbInterface {
			return "/dev/" + node, true
		}
		if fallback == "" && filepath.Dir(nodeInterface) == usbDevice {
			fallback = "/dev/" + node
		}
	}
	return fallback, fallback != ""
}
