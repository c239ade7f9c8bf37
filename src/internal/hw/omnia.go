package hw

import "regexp"

var omniaPCISlotRe = regexp.MustCompile(`/0000:00:0([0-3])\.0/`)

func omniaRules(*run) []rule {
	return []rule{
		onPath("f1072004.mdio", switchPort),
		onPath("f1034000.ethernet", fixed(TypeEth, BusEth, "WAN")),
		onPath("pci0000:00", pciSlot(omniaPCISlotRe)),
		onPath("f10f0000.usb3", fixed("", BusUSB, "front")),
		onPath("f10f8000.usb3", fixed("", BusUSB, "rear")),
		// USB2.0 on the PCI connector 3
		onPath("f1058000.usb", fixed("", BusPCI, "3")),
		// switch CPU ports
		onAnyPath(ignore, "f1070000.ethernet", "f1030000.ethernet"),
	}
}
