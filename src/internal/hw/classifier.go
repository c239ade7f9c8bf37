package hw

import (
	"regexp"
	"slices"
	"strings"

	"github.com/turris-cz/turrishw/src/internal/board"
	"github.com/turris-cz/turrishw/src/internal/errors"
	"github.com/turris-cz/turrishw/src/internal/log"
	"github.com/turris-cz/turrishw/src/internal/sysfs"
	"github.com/turris-cz/turrishw/src/internal/utils"
)

// candidate is a kernel interface waiting for classification.
type candidate struct {
	name string
	// canonical device path as seen from the root
	path    string
	kind    string
	macaddr string
}

// rule is one entry of a board's first-match-wins cascade. apply returns the
// classified interface, or nil together with the reason it was not emitted.
type rule struct {
	token string
	match func(c *candidate) bool
	apply func(r *run, c *candidate) (*Interface, DropReason)
}

// contains builds the usual rule predicate: the device path holds token.
func contains(token string) func(c *candidate) bool {
	return func(c *candidate) bool {
		return strings.Contains(c.path, token)
	}
}

// ignore is the apply step for switch uplinks and other internal plumbing.
func ignore(*run, *candidate) (*Interface, DropReason) {
	return nil, ReasonIgnored
}

// Options configures a classification run.
type Options struct {
	// Vendors resolves wifi vendor names. Nil disables vendor lookup.
	Vendors VendorLookup
	// Observer receives per-interface events. Nil discards them.
	Observer Observer
}

// Classifier classifies the interfaces of one board family.
type Classifier struct {
	tag   board.Tag
	rules func(r *run) []rule
}

// ForBoard returns the classifier for tag. Boards without a classifier yield
// an UNSUPPORTED_BOARD error.
func ForBoard(tag board.Tag) (*Classifier, error) {
	switch tag {
	case board.Mox:
		return &Classifier{tag: tag, rules: moxRules}, nil
	case board.Omnia:
		return &Classifier{tag: tag, rules: omniaRules}, nil
	case board.OmniaNG:
		return &Classifier{tag: tag, rules: omniaNGRules}, nil
	case board.Turris1x:
		return &Classifier{tag: tag, rules: turris1xRules}, nil
	default:
		return nil, errors.NewUnsupportedBoardError("unsupported model: " + tag.String())
	}
}

// Board returns the board family the classifier handles.
func (c *Classifier) Board() board.Tag {
	return c.tag
}

// run holds the state of a single classification pass.
type run struct {
	acc      sysfs.Accessor
	vendors  VendorLookup
	observer Observer

	vlanNames map[string]struct{}
	deferred  []candidate
	modules   []string
}

// Classify enumerates sys/class/net below the accessor root and classifies
// every interface, VLAN sub-interfaces included. The returned slice is in
// natural name order.
//
// Only a missing or unlistable network class directory is an error; problems
// with single interfaces are logged and the interface is left out.
func (c *Classifier) Classify(acc sysfs.Accessor, opts Options) ([]Interface, error) {
	names, err := acc.ListSymlinks(sysfs.NetClassDir)
	if err != nil {
		return nil, errors.NewEnvironmentError("failed to list network interfaces", err)
	}
	slices.SortFunc(names, utils.NaturalCompare)

	r := &run{
		acc:       acc,
		vendors:   opts.Vendors,
		observer:  opts.Observer,
		vlanNames: readVLANNames(acc),
	}
	if r.observer == nil {
		r.observer = nopObserver{}
	}

	rules := append(c.rules(r), rule{token: "virtual", match: contains("virtual"), apply: deferVLAN})

	physical := make([]Interface, 0, len(names))
	for _, name := range names {
		iface, reason := r.classify(name, rules)
		switch {
		case iface != nil:
			physical = append(physical, *iface)
			r.observer.InterfaceClassified(iface)
		case reason != reasonDeferred && reason != reasonNone:
			r.observer.InterfaceDropped(name, reason)
		}
	}

	vlans := r.resolveVLANs(physical)

	all := append(physical, vlans...)
	SortInterfaces(all)
	return all, nil
}

func (r *run) classify(name string, rules []rule) (*Interface, DropReason) {
	logger := log.WithField("iface", name)
	netPath := sysfs.NetIface(name)

	path, err := r.acc.Resolve(netPath)
	if err != nil {
		logger.Warnf("Cannot resolve device path: %v", err)
		return nil, ReasonUnreadable
	}

	addressPath := sysfs.NetIface(name, "address")
	if !r.acc.Exists(addressPath) {
		logger.Warnf("File '%s' is missing. Skipping interface '%s'", addressPath, name)
		return nil, ReasonMissingAddress
	}
	macaddr, err := r.acc.ReadFirstLine(addressPath)
	if err != nil {
		logger.Warnf("Cannot read MAC address: %v", err)
		return nil, ReasonMissingAddress
	}

	c := &candidate{
		name:    name,
		path:    path,
		kind:    detectType(r.acc, name),
		macaddr: strings.TrimSpace(macaddr),
	}

	for _, rl := range rules {
		if !rl.match(c) {
			continue
		}
		logger.Debugf("Matched %s in %s", rl.token, path)
		iface, reason := rl.apply(r, c)
		if iface == nil {
			return nil, reason
		}
		return r.finish(iface, c)
	}

	logger.Warnf("unknown interface type: %s", name)
	return nil, ReasonUnknownType
}

// finish fills the attributes every classified interface carries.
func (r *run) finish(iface *Interface, c *candidate) (*Interface, DropReason) {
	iface.Name = c.name
	iface.MACAddr = c.macaddr
	iface.State, iface.LinkSpeed = readLinkState(r.acc, c.name)

	if !r.enrich(iface, c) {
		return nil, ReasonNoControlDevice
	}
	return iface, reasonNone
}

// detectType derives the interface type from marker directories.
func detectType(acc sysfs.Accessor, name string) string {
	if acc.IsDir(sysfs.NetIface(name, "phy80211")) {
		return TypeWifi
	}
	if acc.IsDir(sysfs.NetIface(name, "qmi")) {
		return TypeWWAN
	}
	return TypeEth
}

// readLabel returns the upper-cased device-tree label of a switch port.
func readLabel(acc sysfs.Accessor, name string) (string, error) {
	label, err := acc.ReadFirstLine(sysfs.NetIface(name, "of_node", "label"))
	if err != nil {
		return "", err
	}
	return strings.ToUpper(strings.TrimRight(label, "\x00")), nil
}

// switchPort classifies a port of a board with a fixed switch layout.
func switchPort(r *run, c *candidate) (*Interface, DropReason) {
	label, err := readLabel(r.acc, c.name)
	if err != nil {
		log.WithField("iface", c.name).Warnf("Cannot read port label: %v", err)
		return nil, ReasonUnknownSlot
	}
	return &Interface{Type: TypeEth, Bus: BusEth, Slot: label}, reasonNone
}

// fixed returns an apply step producing the same type, bus and slot for any
// matching interface. An empty typ keeps the detected type.
func fixed(typ, bus, slot string) func(*run, *candidate) (*Interface, DropReason) {
	return func(_ *run, c *candidate) (*Interface, DropReason) {
		t := typ
		if t == "" {
			t = c.kind
		}
		return &Interface{Type: t, Bus: bus, Slot: slot}, reasonNone
	}
}

// onPath builds a rule matching device paths that contain token.
func onPath(token string, apply func(*run, *candidate) (*Interface, DropReason)) rule {
	return rule{token: token, match: contains(token), apply: apply}
}

// onAnyPath builds a rule matching device paths that contain any of tokens.
func onAnyPath(apply func(*run, *candidate) (*Interface, DropReason), tokens ...string) rule {
	return rule{
		token: strings.Join(tokens, "|"),
		match: func(c *candidate) bool {
			for _, token := range tokens {
				if strings.Contains(c.path, token) {
					return true
				}
			}
			return false
		},
		apply: apply,
	}
}

// pciSlot classifies a wifi card whose slot number is the first submatch of
// re. Paths not matching re are reported as unknown PCI slots.
func pciSlot(re *regexp.Regexp) func(*run, *candidate) (*Interface, DropReason) {
	return func(_ *run, c *candidate) (*Interface, DropReason) {
		m := re.FindStringSubmatch(c.path)
		if m == nil {
			log.WithField("iface", c.name).Warnf("unknown PCI slot module")
			return nil, ReasonUnknownSlot
		}
		slot := "0"
		if len(m) > 1 {
			slot = m[1]
		}
		return &Interface{Type: TypeWifi, Bus: BusPCI, Slot: slot}, reasonNone
	}
}
