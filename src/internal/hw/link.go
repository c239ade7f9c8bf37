package hw

import (
	"strconv"
	"strings"

	"github.com/turris-cz/turrishw/src/internal/log"
	"github.com/turris-cz/turrishw/src/internal/sysfs"
)

// readLinkState returns the operational state and negotiated speed (Mbps) of
// an interface. Speed is 0 unless the link is up and a non-negative speed is
// reported.
func readLinkState(acc sysfs.Accessor, name string) (State, int64) {
	operstate, speed := "", int64(0)

	if nci, err := acc.NetClassIface(name); err == nil {
		operstate = nci.OperState
		if nci.Speed != nil {
			speed = *nci.Speed
		}
	} else {
		log.Debugf("Falling back to plain reads for %s: %v", name, err)
		operstate, speed = readLinkFiles(acc, name)
	}

	if strings.TrimSpace(operstate) != string(StateUp) {
		return StateDown, 0
	}
	// some drivers report -1 until the speed is negotiated
	return StateUp, max(speed, 0)
}

func readLinkFiles(acc sysfs.Accessor, name string) (string, int64) {
	operstate, err := acc.ReadFirstLine(sysfs.NetIface(name, "operstate"))
	if err != nil {
		return "", 0
	}
	line, err := acc.ReadFirstLine(sysfs.NetIface(name, "speed"))
	if err != nil {
		return operstate, 0
	}
	speed, err := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
	if err != nil {
		return operstate, 0
	}
	return operstate, speed
}
