// Package pciids provides a memoizing PCI vendor name lookup.
//
// The lookup is backed by a pci.ids database file parsed with
// github.com/jaypipes/pcidb. IDs may be given the way sysfs exposes them
// ("0x168c") or the way pci.ids stores them ("168c").
//
// # Example Usage
//
//	cache := pciids.NewCache("/usr/share/hwdata/pci.ids")
//	if name, ok := cache.VendorName("0x168c"); ok {
//	    fmt.Println(name) // Qualcomm Atheros
//	}
package pciids
