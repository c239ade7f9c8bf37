package hw

import (
	"strconv"
	"strings"

	"github.com/turris-cz/turrishw/src/internal/log"
	"github.com/turris-cz/turrishw/src/internal/sysfs"
)

// readVLANNames lists the VLAN interfaces the kernel knows about. A missing
// proc/net/vlan simply means there are none.
func readVLANNames(acc sysfs.Accessor) map[string]struct{} {
	names := make(map[string]struct{})
	entries, err := acc.ListDir(sysfs.VLANDir)
	if err != nil {
		log.Debugf("No VLAN interfaces: %v", err)
		return names
	}
	for _, entry := range entries {
		if entry != sysfs.VLANConfigFile {
			names[entry] = struct{}{}
		}
	}
	return names
}

// deferVLAN is the apply step for virtual devices. VLANs wait for the second
// pass since their parent may not be classified yet; loopback, bridges and
// the like are ignored.
func deferVLAN(r *run, c *candidate) (*Interface, DropReason) {
	if _, ok := r.vlanNames[c.name]; ok {
		r.deferred = append(r.deferred, *c)
		return nil, reasonDeferred
	}
	log.Debugf("Ignoring virtual interface %s", c.name)
	return nil, ReasonIgnored
}

// resolveVLANs attaches the deferred VLAN interfaces to their classified
// parents.
func (r *run) resolveVLANs(physical []Interface) []Interface {
	parents := make(map[string]*Interface, len(physical))
	for i := range physical {
		parents[physical[i].Name] = &physical[i]
	}

	vlans := make([]Interface, 0, len(r.deferred))
	for _, c := range r.deferred {
		iface, reason := resolveVLAN(r.acc, parents, c)
		if iface == nil {
			r.observer.InterfaceDropped(c.name, reason)
			continue
		}
		r.observer.InterfaceClassified(iface)
		vlans = append(vlans, *iface)
	}
	return vlans
}

func resolveVLAN(acc sysfs.Accessor, parents map[string]*Interface, c candidate) (*Interface, DropReason) {
	idx := strings.LastIndex(c.name, ".")
	if idx <= 0 {
		log.Infof("VLAN interface %s has no parent, skipping", c.name)
		return nil, ReasonOrphanVLAN
	}
	parentName, idText := c.name[:idx], c.name[idx+1:]

	parent, ok := parents[parentName]
	if !ok {
		log.Infof("Parent %s of VLAN interface %s was not classified, skipping", parentName, c.name)
		return nil, ReasonOrphanVLAN
	}
	id, err := strconv.Atoi(idText)
	if err != nil {
		log.Debugf("Invalid VLAN id in %s: %v", c.name, err)
		return nil, ReasonInvalidVLANID
	}

	vlan := &Interface{
		Name:      c.name,
		Type:      parent.Type,
		Bus:       parent.Bus,
		Slot:      parent.Slot,
		ModuleID:  parent.ModuleID,
		SlotPath:  parent.SlotPath,
		Vendor:    parent.Vendor,
		PCIID:     parent.PCIID,
		QMIDevice: parent.QMIDevice,
		MACAddr:   c.macaddr,
		VLANID:    &id,
	}
	vlan.State, vlan.LinkSpeed = readLinkState(acc, c.name)
	return vlan, reasonNone
}
