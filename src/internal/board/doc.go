// Package board identifies which Turris board the tree below the sysfs root
// belongs to, based on the device-tree model string.
package board
