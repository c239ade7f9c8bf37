package sysfs

import "path/filepath"

// Well-known locations, relative to the accessor root.
const (
	ModelFile        = "sys/firmware/devicetree/base/model"
	NetClassDir      = "sys/class/net"
	MoxtetDevicesDir = "sys/bus/moxtet/devices"
	VLANDir          = "proc/net/vlan"
	VLANConfigFile   = "config"
	USBMiscClassDir  = "sys/class/usbmisc"
	DefaultPCIIDs    = "usr/share/hwdata/pci.ids"
)

// NetIface returns the path of a file or directory below sys/class/net/<name>.
func NetIface(name string, elem ...string) string {
	return filepath.Join(append([]string{NetClassDir, name}, elem...)...)
}
