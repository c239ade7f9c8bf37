package hw

import (
	"regexp"
	"strings"

	"github.com/turris-cz/turrishw/src/internal/log"
)

var (
	turris1xPCIe1Re = regexp.MustCompile(`/0001:02:00\.0/`)
	turris1xPCIe2Re = regexp.MustCompile(`/0002:04:00\.0/`)
)

// usbPort maps a USB topology token to a slot.
type usbPort struct {
	token string
	bus   string
	slot  string
}

func turris1xRules(*run) []rule {
	return []rule{
		onPath("mdio@ffe24520", switchPort),
		onPath("ffe26000.ethernet", fixed(TypeEth, BusEth, "WAN")),
		onPath("pci0001:02", pciSlot(turris1xPCIe1Re)),
		onPath("pci0002:04", pciSlot(turris1xPCIe2Re)),
		// rear USB2.0 ports
		onPath("fsl-ehci.0", usbPorts(
			usbPort{"1-1.1", BusUSB, "USB 1"},
			usbPort{"1-1.2", BusUSB, "USB 2"},
		)),
		// Turris 1.1 USB: the internal mPCIe slot and the front USB3.0 port
		onPath("pci0002:00", usbPorts(
			usbPort{"2-2", BusPCI, "2"},
			usbPort{"3-1", BusUSB, "USB Front"},
		)),
		// switch CPU ports
		onAnyPath(ignore, "ffe24000.ethernet", "ffe25000.ethernet"),
	}
}

// usbPorts classifies USB devices by the first port token found in the path.
func usbPorts(ports ...usbPort) func(*run, *candidate) (*Interface, DropReason) {
	return func(_ *run, c *candidate) (*Interface, DropReason) {
		for _, p := range ports {
			if strings.Contains(c.path, p.token) {
				return &Interface{Type: c.kind, Bus: p.bus, Slot: p.slot}, reasonNone
			}
		}
		log.WithField("iface", c.name).Warnf("unknown USB port")
		return nil, ReasonUnknownSlot
	}
}
