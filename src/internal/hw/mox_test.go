package hw

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/turris-cz/turrishw/src/internal/board"
)

const (
	moxRegs   = "sys/devices/platform/soc/soc:internal-regs@d0000000"
	moxEth0   = moxRegs + "/d0030000.ethernet"
	moxEth1   = moxRegs + "/d0040000.ethernet"
	moxMDIO   = moxRegs + "/d0032004.mdio/mdio_bus/d0032004.mdio-mii"
	moxPCIe   = moxRegs + "/d0070000.pcie/pci0000:00/0000:00:00.0/0000:01:00.0"
	moxSDIO   = moxRegs + "/d00d0000.sdhci/mmc_host/mmc1/mmc1:0001/mmc1:0001:1"
	moxUSB    = moxRegs + "/d0058000.usb/xhci-hcd.0.auto/usb1/1-1/1-1:1.0"
	moxDTMDIO = "../../../../../../../../firmware/devicetree/base/soc/internal-regs@d0000000/mdio@32004"
)

// moxSwitch creates switch number idx on the MDIO bus and returns its device
// directory.
func moxSwitch(f *fixture, idx int) string {
	device := fmt.Sprintf("%s/d0032004.mdio-mii:%02x", moxMDIO, 0x10+idx)
	f.switchNode(device, fmt.Sprintf("%s/switch%d@%d", moxDTMDIO, idx, 0x10+idx))
	return device
}

func TestMox_SwitchAndSFP(t *testing.T) {
	f := newFixture(t, "CZ.NIC Turris Mox Board")
	f.moxtet("moxtet-peridot.0", "moxtet-sfp.1")

	f.iface("eth0", moxEth0)
	// switch CPU port, hidden while a switch module is attached
	f.iface("eth1", moxEth1)
	sw := moxSwitch(f, 0)
	for i := 1; i <= 8; i++ {
		f.iface(fmt.Sprintf("lan%d", i), sw).label(fmt.Sprintf("lan%d", i))
	}
	f.iface("sfp", sw).label("sfp")
	f.virtual("lo")
	f.virtual("br-lan")

	got := classify(t, f, board.Mox, Options{})

	want := []Interface{{Name: "eth0", Type: TypeEth, Bus: BusEth, Slot: "ETH0", ModuleID: 0}}
	for i := 1; i <= 8; i++ {
		want = append(want, Interface{
			Name: fmt.Sprintf("lan%d", i), Type: TypeEth, Bus: BusEth,
			Slot: fmt.Sprintf("LAN%d", i), ModuleID: 1,
		})
	}
	want = append(want, Interface{Name: "sfp", Type: TypeEth, Bus: BusSFP, Slot: "SFP", ModuleID: 2})
	for i := range want {
		want[i].MACAddr = "d8:58:d7:00:00:" + macSuffix(want[i].Name)
		want[i].State = StateUp
		want[i].LinkSpeed = 1000
	}

	if len(got) != 10 {
		t.Fatalf("Expected 10 interfaces, got %d: %v", len(got), NewResult(got).Names())
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Classify() mismatch (-want +got):\n%s", diff)
	}
}

func TestMox_MultipleSwitches(t *testing.T) {
	f := newFixture(t, "CZ.NIC Turris Mox Board")
	// switch modules are ranked by bus position, not by kernel switch index
	f.moxtet("moxtet-topaz.0", "moxtet-sfp.1", "moxtet-peridot.2")

	f.iface("lan1", moxSwitch(f, 0)).label("lan1")
	f.iface("lan9", moxSwitch(f, 1)).label("lan9")
	f.iface("lan17", moxSwitch(f, 2)).label("lan17")

	rec := newRecorder()
	got := byName(classify(t, f, board.Mox, Options{Observer: rec}))

	if got["lan1"].ModuleID != 1 {
		t.Errorf("lan1 module = %d, want 1", got["lan1"].ModuleID)
	}
	if got["lan9"].ModuleID != 3 {
		t.Errorf("lan9 module = %d, want 3", got["lan9"].ModuleID)
	}
	// a third switch without a third switch module degrades to module 0
	if iface, ok := got["lan17"]; !ok || iface.ModuleID != 0 {
		t.Errorf("lan17 = %+v, want module 0", iface)
	}
	if len(rec.classified) != 3 {
		t.Errorf("Expected 3 classified events, got %v", rec.classified)
	}
}

func TestMox_SwitchIndexFallback(t *testing.T) {
	f := newFixture(t, "CZ.NIC Turris Mox Board")
	f.moxtet("moxtet-sfp.0", "moxtet-topaz.1")

	device := moxMDIO + "/d0032004.mdio-mii:10"
	f.switchNode(device, moxDTMDIO+"/ethernet-switch@10")
	f.iface("lan1", device).label("lan1")

	got := byName(classify(t, f, board.Mox, Options{}))
	if got["lan1"].ModuleID != 2 {
		t.Errorf("Expected unparsable switch node to map to the first switch module, got %d", got["lan1"].ModuleID)
	}
}

func TestMox_ModuleOrderIsNumeric(t *testing.T) {
	f := newFixture(t, "CZ.NIC Turris Mox Board")
	modules := []string{"moxtet-topaz.2", "moxtet-sfp.10", "moxtet-pci.1"}
	f.moxtet(modules...)

	top := newMoxTopology(readMoxModules(f.accessor()))

	want := []string{"moxtet-pci.1", "moxtet-topaz.2", "moxtet-sfp.10"}
	if diff := cmp.Diff(want, top.modules); diff != "" {
		t.Errorf("modules mismatch (-want +got):\n%s", diff)
	}
	tests := map[string]int{"pci": 1, "topaz": 2, "sfp": 3, "peridot": 0, "usb3.0": 0}
	for token, rank := range tests {
		if got := top.rank(token); got != rank {
			t.Errorf("rank(%q) = %d, want %d", token, got, rank)
		}
	}
	if diff := cmp.Diff([]int{2}, top.switches); diff != "" {
		t.Errorf("switches mismatch (-want +got):\n%s", diff)
	}
}

func TestMox_SFPOnlyUplink(t *testing.T) {
	f := newFixture(t, "CZ.NIC Turris Mox Board")
	f.moxtet("moxtet-sfp.0")
	f.iface("eth0", moxEth0)
	f.iface("eth1", moxEth1)

	got := byName(classify(t, f, board.Mox, Options{}))

	want := Interface{
		Name: "eth1", Type: TypeEth, Bus: BusSFP, Slot: "SFP", ModuleID: 1,
		MACAddr: "d8:58:d7:00:00:" + macSuffix("eth1"), State: StateUp, LinkSpeed: 1000,
	}
	if diff := cmp.Diff(want, got["eth1"]); diff != "" {
		t.Errorf("eth1 mismatch (-want +got):\n%s", diff)
	}
}

func TestMox_NoModules(t *testing.T) {
	f := newFixture(t, "CZ.NIC Turris Mox Board")
	f.iface("eth0", moxEth0)
	f.iface("eth1", moxEth1)

	rec := newRecorder()
	got := classify(t, f, board.Mox, Options{Observer: rec})

	if diff := cmp.Diff([]string{"eth0"}, NewResult(got).Names()); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
	if rec.dropped["eth1"] != ReasonIgnored {
		t.Errorf("Expected eth1 to be ignored, got %q", rec.dropped["eth1"])
	}
}

func TestMox_PCIModuleWifi(t *testing.T) {
	f := newFixture(t, "CZ.NIC Turris Mox Board")
	f.moxtet("moxtet-pci.0")
	f.iface("wlan0", moxPCIe).wifi().pciID("0x168c", "0x003c")

	got := classify(t, f, board.Mox, Options{Vendors: mapVendors{"168c": "Qualcomm Atheros"}})

	want := []Interface{{
		Name:      "wlan0",
		Type:      TypeWifi,
		Bus:       BusPCI,
		Slot:      "0",
		ModuleID:  1,
		MACAddr:   "d8:58:d7:00:00:" + macSuffix("wlan0"),
		State:     StateUp,
		LinkSpeed: 1000,
		SlotPath:  "soc/soc:internal-regs@d0000000/d0070000.pcie/pci0000:00/0000:00:00.0/0000:01:00.0",
		Vendor:    "Qualcomm Atheros",
		PCIID:     "168c:003c",
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Classify() mismatch (-want +got):\n%s", diff)
	}
}

func TestMox_SDIOWifi(t *testing.T) {
	f := newFixture(t, "CZ.NIC Turris Mox Board")
	f.iface("wlan1", moxSDIO).wifi().operstate("down")

	got := byName(classify(t, f, board.Mox, Options{Vendors: mapVendors{}}))

	iface := got["wlan1"]
	if iface.Type != TypeWifi || iface.Bus != BusSDIO || iface.Slot != "0" || iface.ModuleID != 0 {
		t.Errorf("Unexpected classification %+v", iface)
	}
	if iface.State != StateDown || iface.LinkSpeed != 0 {
		t.Errorf("Expected down link with speed 0, got %s/%d", iface.State, iface.LinkSpeed)
	}
	if iface.SlotPath != "soc/soc:internal-regs@d0000000/d00d0000.sdhci/mmc_host/mmc1/mmc1:0001/mmc1:0001:1" {
		t.Errorf("Unexpected slot path %q", iface.SlotPath)
	}
	if iface.Vendor != "" || iface.PCIID != "" {
		t.Errorf("Expected no PCI identity for SDIO card, got %q/%q", iface.Vendor, iface.PCIID)
	}
}

func TestMox_USB3Module(t *testing.T) {
	usbIface := moxPCIe + "/usb3/3-1/3-1:1.4"

	t.Run("modem with control device", func(t *testing.T) {
		f := newFixture(t, "CZ.NIC Turris Mox Board")
		f.moxtet("moxtet-sfp.0", "moxtet-usb3.0.1")
		f.iface("wwan0", usbIface).qmi()
		f.usbmisc("cdc-wdm0", usbIface)

		got := byName(classify(t, f, board.Mox, Options{}))

		iface, ok := got["wwan0"]
		if !ok {
			t.Fatal("Expected wwan0 to be classified")
		}
		if iface.Type != TypeWWAN || iface.Bus != BusUSB || iface.Slot != "1" || iface.ModuleID != 2 {
			t.Errorf("Unexpected classification %+v", iface)
		}
		if iface.QMIDevice != "/dev/cdc-wdm0" {
			t.Errorf("QMIDevice = %q, want /dev/cdc-wdm0", iface.QMIDevice)
		}
		if iface.SlotPath != "soc/soc:internal-regs@d0000000/d0070000.pcie/pci0000:00/0000:00:00.0/0000:01:00.0/usb3/3-1/3-1:1.4" {
			t.Errorf("Unexpected slot path %q", iface.SlotPath)
		}
	})

	t.Run("modem without control device", func(t *testing.T) {
		f := newFixture(t, "CZ.NIC Turris Mox Board")
		f.iface("wwan0", usbIface).qmi()

		rec := newRecorder()
		got := classify(t, f, board.Mox, Options{Observer: rec})

		if len(got) != 0 {
			t.Errorf("Expected wwan0 to be dropped, got %v", NewResult(got).Names())
		}
		if rec.dropped["wwan0"] != ReasonNoControlDevice {
			t.Errorf("Expected no_control_device, got %q", rec.dropped["wwan0"])
		}
	})

	t.Run("unknown port", func(t *testing.T) {
		f := newFixture(t, "CZ.NIC Turris Mox Board")
		f.iface("eth5", moxPCIe+"/usb3/3-7/3-7:1.0")

		rec := newRecorder()
		got := classify(t, f, board.Mox, Options{Observer: rec})

		if len(got) != 0 || rec.dropped["eth5"] != ReasonUnknownSlot {
			t.Errorf("Expected eth5 to be dropped as unknown slot, got %v / %q", got, rec.dropped["eth5"])
		}
	})
}

func TestMox_CPUBoardUSB(t *testing.T) {
	f := newFixture(t, "CZ.NIC Turris Mox Board")
	f.iface("usb0", moxUSB)

	got := byName(classify(t, f, board.Mox, Options{}))

	iface := got["usb0"]
	if iface.Type != TypeEth || iface.Bus != BusUSB || iface.Slot != "0" || iface.ModuleID != 0 {
		t.Errorf("Unexpected classification %+v", iface)
	}
	if iface.SlotPath != "" {
		t.Errorf("Expected no slot path for ethernet, got %q", iface.SlotPath)
	}
}
