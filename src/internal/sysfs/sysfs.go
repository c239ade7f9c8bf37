package sysfs

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	procsysfs "github.com/prometheus/procfs/sysfs"

	"github.com/turris-cz/turrishw/src/internal/errors"
	"github.com/turris-cz/turrishw/src/internal/utils"
)

// Accessor is read-only access to a rooted view of /sys, /proc and /usr.
//
// All paths taken by Accessor are relative to the root. Paths returned by
// Resolve are absolute as seen from inside the root, so "/" always denotes the
// root regardless of where the tree is mounted.
type Accessor interface {
	// Root returns the directory all relative paths are joined with.
	Root() string
	// Path returns the host path of rel.
	Path(rel ...string) string
	// Resolve follows every symlink in rel and returns the canonical path.
	Resolve(rel string) (string, error)
	// Readlink returns the raw target of the symlink rel.
	Readlink(rel string) (string, error)
	// ListSymlinks returns the names of entries in dir that are symlinks.
	ListSymlinks(dir string) ([]string, error)
	// ListDir returns the names of all entries in dir.
	ListDir(dir string) ([]string, error)
	// ReadFirstLine returns the first line of rel without the line terminator.
	ReadFirstLine(rel string) (string, error)
	// IsDir reports whether rel (after following symlinks) is a directory.
	IsDir(rel string) bool
	// Exists reports whether rel exists.
	Exists(rel string) bool
	// NetClassIface returns the parsed attributes of sys/class/net/<name>.
	NetClassIface(name string) (*procsysfs.NetClassIface, error)
}

// FS is the filesystem backed Accessor.
type FS struct {
	root string
	// canonical form of root, used to strip the root from resolved paths
	realRoot string
}

var _ Accessor = (*FS)(nil)

// New creates an accessor rooted at root. An empty root means "/".
func New(root string) *FS {
	if root == "" {
		root = "/"
	}
	root = filepath.Clean(root)
	realRoot := root
	if r, err := filepath.EvalSymlinks(root); err == nil {
		realRoot = r
	}
	return &FS{root: root, realRoot: realRoot}
}

func (f *FS) Root() string {
	return f.root
}

func (f *FS) Path(rel ...string) string {
	return filepath.Join(append([]string{f.root}, rel...)...)
}

func (f *FS) Resolve(rel string) (string, error) {
	resolved, err := filepath.EvalSymlinks(f.Path(rel))
	if err != nil {
		return "", wrapPathError(rel, err)
	}
	return f.stripRoot(resolved), nil
}

// stripRoot turns a host path below the root into a path as seen from the root.
func (f *FS) stripRoot(p string) string {
	if f.realRoot == "/" {
		return p
	}
	if p == f.realRoot {
		return "/"
	}
	if strings.HasPrefix(p, f.realRoot+string(filepath.Separator)) {
		return p[len(f.realRoot):]
	}
	return p
}

func (f *FS) Readlink(rel string) (string, error) {
	target, err := os.Readlink(f.Path(rel))
	if err != nil {
		return "", wrapPathError(rel, err)
	}
	return target, nil
}

func (f *FS) ListSymlinks(dir string) ([]string, error) {
	entries, err := os.ReadDir(f.Path(dir))
	if err != nil {
		return nil, wrapPathError(dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type()&os.ModeSymlink != 0 {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

func (f *FS) ListDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(f.Path(dir))
	if err != nil {
		return nil, wrapPathError(dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}

func (f *FS) ReadFirstLine(rel string) (string, error) {
	file, err := os.Open(f.Path(rel))
	if err != nil {
		return "", wrapPathError(rel, err)
	}
	defer utils.CloseOrWarn(file, rel)

	line, err := bufio.NewReader(file).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", errors.NewUnreadableError(rel, err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (f *FS) IsDir(rel string) bool {
	info, err := os.Stat(f.Path(rel))
	return err == nil && info.IsDir()
}

func (f *FS) Exists(rel string) bool {
	_, err := os.Lstat(f.Path(rel))
	return err == nil
}

func (f *FS) NetClassIface(name string) (*procsysfs.NetClassIface, error) {
	fs, err := procsysfs.NewFS(f.Path("sys"))
	if err != nil {
		return nil, errors.NewNotFoundError("sys", err)
	}
	iface, err := fs.NetClassByIface(name)
	if err != nil {
		return nil, wrapPathError(filepath.Join(NetClassDir, name), err)
	}
	return iface, nil
}

func wrapPathError(rel string, err error) error {
	if os.IsNotExist(err) {
		return errors.NewNotFoundError(rel, err)
	}
	return errors.NewUnreadableError(rel, err)
}
