package hw

import (
	"cmp"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/turris-cz/turrishw/src/internal/log"
	"github.com/turris-cz/turrishw/src/internal/sysfs"
)

var (
	// at most three switches can be chained on a Mox
	moxSwitchRe   = regexp.MustCompile(`switch([0-2])@[0-9]+$`)
	moxUSB3PortRe = regexp.MustCompile(`/3-([0-4])/`)
)

// moxTopology is the set of Moxtet modules present on the bus, in bus
// order.
type moxTopology struct {
	modules []string
	// ranks of the switch modules, indexed by the kernel switch index
	switches []int
}

// readMoxModules lists sys/bus/moxtet/devices. Entries are named
// moxtet-<kind>.<seq> and ordered by seq.
func readMoxModules(acc sysfs.Accessor) []string {
	modules, err := acc.ListDir(sysfs.MoxtetDevicesDir)
	if err != nil {
		log.Warnf("Cannot list Moxtet modules: %v", err)
		return nil
	}
	slices.SortStableFunc(modules, compareMoxtetSeq)
	return modules
}

func moxtetSeq(name string) string {
	return name[strings.LastIndex(name, ".")+1:]
}

func compareMoxtetSeq(a, b string) int {
	sa, sb := moxtetSeq(a), moxtetSeq(b)
	na, errA := strconv.Atoi(sa)
	nb, errB := strconv.Atoi(sb)
	if errA == nil && errB == nil {
		return cmp.Compare(na, nb)
	}
	return strings.Compare(sa, sb)
}

func newMoxTopology(modules []string) *moxTopology {
	t := &moxTopology{modules: modules}
	for i, m := range modules {
		if strings.Contains(m, "topaz") || strings.Contains(m, "peridot") {
			t.switches = append(t.switches, i+1)
		}
	}
	return t
}

// rank returns the 1-based bus position of the first module whose name
// contains token, or 0 when there is none.
func (t *moxTopology) rank(token string) int {
	for i, m := range t.modules {
		if strings.Contains(m, token) {
			return i + 1
		}
	}
	return 0
}

func moxRules(r *run) []rule {
	t := newMoxTopology(readMoxModules(r.acc))
	log.Debugf("Moxtet modules: %v", t.modules)

	return []rule{
		// MDIO bus on Moxtet, switch ports
		onPath("d0032004.mdio-mii", t.switchPort),
		// ethernet port on the CPU board
		onPath("d0030000.ethernet", fixed(TypeEth, BusEth, "ETH0")),
		onPath("d0040000.ethernet", t.uplink),
		// SDIO on the CPU board
		onPath("d00d0000.sdhci", fixed(TypeWifi, BusSDIO, "0")),
		// PCIe on the Moxtet connector, PCI or USB3.0 module
		onPath("d0070000.pcie", t.pcie),
		// USB on the CPU board
		onPath("d0058000.usb", fixed("", BusUSB, "0")),
		// USB2.0 on the Moxtet connector, only a USB device on the PCI module
		onPath("d005e000.usb", t.pciModule),
	}
}

// switchIndex reads the kernel index of the switch a port belongs to from
// the switch<N>@<addr> device-tree node. Unknown formats map to switch 0.
func switchIndex(acc sysfs.Accessor, name string) int {
	target, err := acc.Readlink(sysfs.NetIface(name, "device", "of_node"))
	if err != nil {
		log.Debugf("Cannot read switch node of %s: %v", name, err)
		return 0
	}
	m := moxSwitchRe.FindStringSubmatch(target)
	if m == nil {
		return 0
	}
	idx, _ := strconv.Atoi(m[1])
	return idx
}

func (t *moxTopology) switchPort(r *run, c *candidate) (*Interface, DropReason) {
	label, err := readLabel(r.acc, c.name)
	if err != nil {
		log.WithField("iface", c.name).Warnf("Cannot read port label: %v", err)
		return nil, ReasonUnknownSlot
	}
	if label == "SFP" {
		return &Interface{Type: TypeEth, Bus: BusSFP, Slot: label, ModuleID: t.rank("sfp")}, reasonNone
	}

	idx := switchIndex(r.acc, c.name)
	module := 0
	if idx < len(t.switches) {
		module = t.switches[idx]
	} else {
		log.WithField("iface", c.name).Warnf("Switch %d has no matching Moxtet module (%d present)", idx, len(t.switches))
	}
	return &Interface{Type: TypeEth, Bus: BusEth, Slot: label, ModuleID: module}, reasonNone
}

// uplink handles the ethernet on the Moxtet connector. With switch modules
// attached it is their CPU port and stays hidden; with only an SFP module it
// is the SFP port itself.
func (t *moxTopology) uplink(_ *run, c *candidate) (*Interface, DropReason) {
	sfp := t.rank("sfp")
	if len(t.switches) == 0 && sfp > 0 {
		return &Interface{Type: TypeEth, Bus: BusSFP, Slot: "SFP", ModuleID: sfp}, reasonNone
	}
	return nil, ReasonIgnored
}

func (t *moxTopology) pcie(r *run, c *candidate) (*Interface, DropReason) {
	if !strings.Contains(c.path, "usb3") {
		return t.pciModule(r, c)
	}
	m := moxUSB3PortRe.FindStringSubmatch(c.path)
	if m == nil {
		log.WithField("iface", c.name).Warnf("unknown port on USB3.0 module")
		return nil, ReasonUnknownSlot
	}
	return &Interface{Type: c.kind, Bus: BusUSB, Slot: m[1], ModuleID: t.rank("usb3.0")}, reasonNone
}

func (t *moxTopology) pciModule(_ *run, c *candidate) (*Interface, DropReason) {
	return &Interface{Type: c.kind, Bus: BusPCI, Slot: "0", ModuleID: t.rank("pci")}, reasonNone
}
