// Package utils provides small helpers shared across turrishw packages.
//
// # Components
//
//   - Natural order: NaturalCompare orders interface names so
//     that digit runs compare by value (eth2 before eth10, lan1 before
//     lan1.100 before lan2)
//   - Path utilities: resolve paths against the sysfs root and trim the
//     /sys/devices prefixes off device paths
//   - File utilities: close readers and log failures
//
// # Example Usage
//
//	names := []string{"lan10", "lan2", "eth0"}
//	slices.SortFunc(names, utils.NaturalCompare)
//	// [eth0 lan2 lan10]
//
//	pciIDs := utils.GetAbsolutePath("usr/share/hwdata/pci.ids", "/tmp/root")
//	// /tmp/root/usr/share/hwdata/pci.ids
package utils
