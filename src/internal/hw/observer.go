package hw

// DropReason says why an interface was left out of the result.
type DropReason string

const (
	ReasonUnreadable      DropReason = "unreadable"
	ReasonMissingAddress  DropReason = "missing_address"
	ReasonUnknownType     DropReason = "unknown_type"
	ReasonUnknownSlot     DropReason = "unknown_slot"
	ReasonNoControlDevice DropReason = "no_control_device"
	ReasonOrphanVLAN      DropReason = "orphan_vlan"
	ReasonInvalidVLANID   DropReason = "invalid_vlan_id"
	ReasonIgnored         DropReason = "ignored"
	reasonDeferred        DropReason = "deferred"
	reasonNone            DropReason = ""
)

// Observer receives classification events. Implementations must be safe for
// concurrent use when the same observer is shared between runs.
type Observer interface {
	InterfaceClassified(iface *Interface)
	InterfaceDropped(name string, reason DropReason)
}

type nopObserver struct{}

func (nopObserver) InterfaceClassified(*Interface)      {}
func (nopObserver) InterfaceDropped(string, DropReason) {}

// VendorLookup resolves PCI vendor IDs to names.
type VendorLookup interface {
	VendorName(id string) (string, bool)
}
