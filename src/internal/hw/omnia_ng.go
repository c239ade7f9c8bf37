package hw

import (
	"regexp"

	"github.com/turris-cz/turrishw/src/internal/log"
)

var (
	omniaNGDPSlotRe  = regexp.MustCompile(`/[a-f0-9]+\.dp(\d+)/`)
	omniaNGPCISlotRe = regexp.MustCompile(`/0002:00:0([0-3])\.0/`)
)

// omniaNGSlots maps the DSA port index to the front panel label.
var omniaNGSlots = map[string]string{
	"1": "ETH0",
	"2": "ETH1",
	"3": "ETH2",
	"4": "ETH3",
	"5": "SFP0",
	"6": "SFP1",
}

func omniaNGRules(*run) []rule {
	return []rule{
		onPath(".dp", omniaNGPort),
		onPath("pci0002:00", pciSlot(omniaNGPCISlotRe)),
		// on-SoC wifi
		onPath(".wifi", fixed("", BusWifi, "0")),
	}
}

func omniaNGPort(_ *run, c *candidate) (*Interface, DropReason) {
	m := omniaNGDPSlotRe.FindStringSubmatch(c.path)
	if m == nil {
		log.WithField("iface", c.name).Warnf("unknown DP slot module")
		return nil, ReasonUnknownSlot
	}
	slot, ok := omniaNGSlots[m[1]]
	if !ok {
		slot = m[1]
	}
	return &Interface{Type: TypeEth, Bus: BusEth, Slot: slot}, reasonNone
}
