package utils

import (
	"io"

	"github.com/turris-cz/turrishw/src/internal/log"
)

// CloseOrWarn closes c and logs a warning naming what if that fails.
func CloseOrWarn(c io.Closer, what string) {
	if err := c.Close(); err != nil {
		log.Warnf("Failed to close %s: %v", what, err)
	}
}
