package pciids

import (
	"strings"
	"sync"

	"github.com/jaypipes/pcidb"

	"github.com/turris-cz/turrishw/src/internal/errors"
	"github.com/turris-cz/turrishw/src/internal/log"
)

// DefaultMaxEntries bounds the number of memoized vendor names.
const DefaultMaxEntries = 4096

// Cache resolves PCI vendor IDs to vendor names.
//
// The pci.ids database is parsed lazily on the first lookup and kept for the
// lifetime of the cache. Results, including misses, are memoized up to
// maxEntries. All methods are safe for concurrent use.
type Cache struct {
	path       string
	maxEntries int

	loadOnce sync.Once
	db       *pcidb.PCIDB
	loadErr  error

	mu    sync.RWMutex
	names map[string]string
}

// NewCache creates a cache backed by the pci.ids file at path.
func NewCache(path string) *Cache {
	return &Cache{
		path:       path,
		maxEntries: DefaultMaxEntries,
		names:      make(map[string]string),
	}
}

// Path returns the database file the cache reads from.
func (c *Cache) Path() string {
	return c.path
}

// NormalizeID turns sysfs style IDs ("0x168C") into the pci.ids form ("168c").
func NormalizeID(id string) string {
	id = strings.ToLower(strings.TrimSpace(id))
	id = strings.TrimPrefix(id, "0x")
	for len(id) < 4 {
		id = "0" + id
	}
	return id
}

func (c *Cache) load() {
	c.loadOnce.Do(func() {
		db, err := pcidb.New(pcidb.WithDirectPath(c.path))
		if err != nil {
			c.loadErr = errors.NewUnreadableError("failed to load PCI ID database "+c.path, err)
			log.Warnf("Vendor names unavailable: %v", c.loadErr)
			return
		}
		c.db = db
		log.Debugf("Loaded PCI ID database %s with %d vendors", c.path, len(db.Vendors))
	})
}

// Err returns the error encountered while loading the database, if any.
func (c *Cache) Err() error {
	c.load()
	return c.loadErr
}

// VendorName returns the name of the vendor with the given ID.
//
// Returns the name and true if found, "" and false otherwise.
func (c *Cache) VendorName(id string) (string, bool) {
	key := NormalizeID(id)

	c.mu.RLock()
	name, ok := c.names[key]
	c.mu.RUnlock()
	if ok {
		return name, name != ""
	}

	c.load()
	if c.db != nil {
		if vendor, found := c.db.Vendors[key]; found && vendor != nil {
			name = vendor.Name
		}
	}

	c.mu.Lock()
	if len(c.names) < c.maxEntries {
		c.names[key] = name
	}
	c.mu.Unlock()

	return name, name != ""
}

// Len returns the number of memoized lookups.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.names)
}
