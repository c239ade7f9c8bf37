package hw

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/turris-cz/turrishw/src/internal/board"
	"github.com/turris-cz/turrishw/src/internal/sysfs"
)

// fixture builds a minimal sysfs tree below a temporary root. All symlinks
// are relative so the tree can be moved.
type fixture struct {
	t    *testing.T
	root string
}

// ifaceFixture is one network interface of a fixture.
type ifaceFixture struct {
	f *fixture
	// net/<name> directory relative to the root
	dir string
	// device directory relative to the root
	device string
	name   string
}

func newFixture(t *testing.T, model string) *fixture {
	t.Helper()
	f := &fixture{t: t, root: t.TempDir()}
	f.write(sysfs.ModelFile, model+"\x00")
	f.mkdir(sysfs.NetClassDir)
	return f
}

func (f *fixture) accessor() *sysfs.FS {
	return sysfs.New(f.root)
}

func (f *fixture) mkdir(rel string) {
	f.t.Helper()
	if err := os.MkdirAll(filepath.Join(f.root, rel), 0755); err != nil {
		f.t.Fatalf("Failed to create %s: %v", rel, err)
	}
}

func (f *fixture) write(rel, content string) {
	f.t.Helper()
	f.mkdir(filepath.Dir(rel))
	if err := os.WriteFile(filepath.Join(f.root, rel), []byte(content), 0644); err != nil {
		f.t.Fatalf("Failed to write %s: %v", rel, err)
	}
}

func (f *fixture) remove(rel string) {
	f.t.Helper()
	if err := os.RemoveAll(filepath.Join(f.root, rel)); err != nil {
		f.t.Fatalf("Failed to remove %s: %v", rel, err)
	}
}

// symlink creates link pointing at target, both relative to the root.
func (f *fixture) symlink(target, link string) {
	f.t.Helper()
	f.mkdir(filepath.Dir(link))
	rel, err := filepath.Rel(filepath.Dir(link), target)
	if err != nil {
		f.t.Fatalf("Failed to compute link target: %v", err)
	}
	if err := os.Symlink(rel, filepath.Join(f.root, link)); err != nil {
		f.t.Fatalf("Failed to create symlink %s: %v", link, err)
	}
}

// iface creates an interface that is up at 1000 Mbps, attached to the
// device directory device (relative to the root, without the "net" part).
func (f *fixture) iface(name, device string) *ifaceFixture {
	f.t.Helper()
	i := &ifaceFixture{
		f:      f,
		dir:    filepath.Join(device, "net", name),
		device: device,
		name:   name,
	}
	i.address("d8:58:d7:00:00:" + macSuffix(name))
	i.operstate("up")
	i.speed("1000")
	if !strings.Contains(device, "virtual") {
		f.symlink(device, filepath.Join(i.dir, "device"))
	}
	f.symlink(i.dir, sysfs.NetIface(name))
	return i
}

// virtual creates a virtual interface such as a bridge or VLAN.
func (f *fixture) virtual(name string) *ifaceFixture {
	return f.iface(name, "sys/devices/virtual")
}

func (f *fixture) vlans(names ...string) {
	f.write(filepath.Join(sysfs.VLANDir, sysfs.VLANConfigFile), "VLAN Dev name | VLAN ID\n")
	for _, name := range names {
		f.write(filepath.Join(sysfs.VLANDir, name), name+"\n")
	}
}

func (f *fixture) moxtet(modules ...string) {
	f.mkdir(sysfs.MoxtetDevicesDir)
	for _, m := range modules {
		f.mkdir(filepath.Join(sysfs.MoxtetDevicesDir, m))
	}
}

// usbmisc creates a control device node below the USB interface directory
// usbInterface.
func (f *fixture) usbmisc(node, usbInterface string) {
	dir := filepath.Join(usbInterface, "usbmisc", node)
	f.write(filepath.Join(dir, "dev"), "180:0\n")
	f.symlink(dir, filepath.Join(sysfs.USBMiscClassDir, node))
}

func (i *ifaceFixture) file(name, content string) *ifaceFixture {
	i.f.write(filepath.Join(i.dir, name), content)
	return i
}

func (i *ifaceFixture) address(mac string) *ifaceFixture {
	return i.file("address", mac+"\n")
}

func (i *ifaceFixture) operstate(state string) *ifaceFixture {
	return i.file("operstate", state+"\n")
}

func (i *ifaceFixture) speed(speed string) *ifaceFixture {
	return i.file("speed", speed+"\n")
}

func (i *ifaceFixture) noSpeed() *ifaceFixture {
	i.f.remove(filepath.Join(i.dir, "speed"))
	return i
}

func (i *ifaceFixture) noAddress() *ifaceFixture {
	i.f.remove(filepath.Join(i.dir, "address"))
	return i
}

// label sets the device-tree label of a switch port.
func (i *ifaceFixture) label(label string) *ifaceFixture {
	return i.file("of_node/label", label+"\x00")
}

// switchNode points the of_node of a switch device at its device-tree node,
// e.g. ".../mdio@32004/switch1@10".
func (f *fixture) switchNode(device, target string) {
	f.t.Helper()
	f.mkdir(device)
	if err := os.Symlink(target, filepath.Join(f.root, device, "of_node")); err != nil {
		f.t.Fatalf("Failed to create of_node link: %v", err)
	}
}

func (i *ifaceFixture) wifi() *ifaceFixture {
	i.f.mkdir(filepath.Join(i.dir, "phy80211"))
	return i
}

func (i *ifaceFixture) qmi() *ifaceFixture {
	i.f.mkdir(filepath.Join(i.dir, "qmi"))
	return i
}

func (i *ifaceFixture) pciID(vendor, device string) *ifaceFixture {
	i.f.write(filepath.Join(i.device, "vendor"), vendor+"\n")
	i.f.write(filepath.Join(i.device, "device"), device+"\n")
	return i
}

func macSuffix(name string) string {
	sum := 0
	for _, r := range name {
		sum = (sum*31 + int(r)) % 256
	}
	const hex = "0123456789abcdef"
	return string([]byte{hex[sum>>4], hex[sum&0xf]})
}

// mapVendors is a VendorLookup backed by a map.
type mapVendors map[string]string

func (m mapVendors) VendorName(id string) (string, bool) {
	name, ok := m[strings.TrimPrefix(strings.TrimSpace(id), "0x")]
	return name, ok
}

// recorder is an Observer remembering every event.
type recorder struct {
	classified []string
	dropped    map[string]DropReason
}

func newRecorder() *recorder {
	return &recorder{dropped: make(map[string]DropReason)}
}

func (r *recorder) InterfaceClassified(iface *Interface) {
	r.classified = append(r.classified, iface.Name)
}

func (r *recorder) InterfaceDropped(name string, reason DropReason) {
	r.dropped[name] = reason
}

func classify(t *testing.T, f *fixture, tag board.Tag, opts Options) []Interface {
	t.Helper()
	c, err := ForBoard(tag)
	if err != nil {
		t.Fatalf("ForBoard failed: %v", err)
	}
	ifaces, err := c.Classify(f.accessor(), opts)
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	return ifaces
}

func byName(ifaces []Interface) map[string]Interface {
	m := make(map[string]Interface, len(ifaces))
	for _, iface := range ifaces {
		m[iface.Name] = iface
	}
	return m
}

func intPtr(v int) *int {
	return &v
}
