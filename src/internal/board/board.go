package board

import (
	"strings"

	"github.com/turris-cz/turrishw/src/internal/errors"
	"github.com/turris-cz/turrishw/src/internal/sysfs"
)

// Tag identifies a supported board family.
type Tag string

const (
	Mox      Tag = "MOX"
	Omnia    Tag = "OMNIA"
	OmniaNG  Tag = "OMNIA_NG"
	Turris1x Tag = "TURRIS1X"
	Unknown  Tag = "UNKNOWN"
)

// models maps the device-tree model string to a board tag.
var models = map[string]Tag{
	"CZ.NIC Turris Mox Board": Mox,
	"Turris Omnia":            Omnia,
	// not yet confirmed against a shipped device tree
	"Turris Omnia NG":        OmniaNG,
	"CZ.NIC Turris Omnia NG": OmniaNG,
	// model name on TOS 5.3.x and older
	"Turris":     Turris1x,
	"Turris 1.x": Turris1x,
	"Turris 1.0": Turris1x,
	"Turris 1.1": Turris1x,
}

func (t Tag) String() string {
	return string(t)
}

// Supported reports whether a classifier exists for the tag.
func (t Tag) Supported() bool {
	switch t {
	case Mox, Omnia, OmniaNG, Turris1x:
		return true
	}
	return false
}

// FromModel maps a raw model string to a tag. Trailing NUL bytes are
// ignored; everything else must match exactly.
func FromModel(model string) Tag {
	model = strings.TrimRight(model, "\x00")
	if tag, ok := models[model]; ok {
		return tag
	}
	return Unknown
}

// Identify reads the device-tree model of the board below the accessor root.
// It returns the tag together with the cleaned model string. An unreadable
// model file is an environment error.
func Identify(acc sysfs.Accessor) (Tag, string, error) {
	line, err := acc.ReadFirstLine(sysfs.ModelFile)
	if err != nil {
		return Unknown, "", errors.NewEnvironmentError("failed to read board model", err)
	}
	model := strings.TrimRight(line, "\x00")
	return FromModel(model), model, nil
}
