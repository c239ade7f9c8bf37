package hw

// Interface types.
const (
	TypeEth  = "eth"
	TypeWifi = "wifi"
	TypeWWAN = "wwan"
)

// Physical attachment classes.
const (
	BusEth  = "eth"
	BusSFP  = "sfp"
	BusPCI  = "pci"
	BusUSB  = "usb"
	BusSDIO = "sdio"
	BusWifi = "wifi"
)

// State is the operational state of an interface.
type State string

const (
	StateUp   State = "up"
	StateDown State = "down"
)

// Interface is one classified network-capable endpoint of the board.
//
// Fields are declared in the alphabetical order of their JSON keys so the
// encoded attributes come out sorted. Name is the mapping key and is never
// part of the attribute object.
type Interface struct {
	Name string `json:"-"`

	Bus       string `json:"bus"`
	LinkSpeed int64  `json:"link_speed"`
	MACAddr   string `json:"macaddr"`
	ModuleID  int    `json:"module_id"`
	PCIID     string `json:"pci_id,omitempty"`
	QMIDevice string `json:"qmi_device,omitempty"`
	Slot      string `json:"slot"`
	SlotPath  string `json:"slot_path,omitempty"`
	State     State  `json:"state"`
	Type      string `json:"type"`
	Vendor    string `json:"vendor,omitempty"`
	VLANID    *int   `json:"vlan_id,omitempty"`
}

// IsVLAN reports whether the interface is a VLAN sub-interface.
func (i *Interface) IsVLAN() bool {
	return i.VLANID != nil
}
