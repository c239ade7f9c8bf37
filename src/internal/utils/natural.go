package utils

import "strings"

// naturalChunk is one run of a natural sort key. Keys always alternate
// text, number, text, ... starting with a (possibly empty) text run.
type naturalChunk struct {
	text    string
	numeric bool
}

func naturalKey(s string) []naturalChunk {
	chunks := make([]naturalChunk, 0, 4)
	start := 0
	numeric := false
	for i := 0; i < len(s); i++ {
		isDigit := s[i] >= '0' && s[i] <= '9'
		if isDigit == numeric {
			continue
		}
		chunks = append(chunks, naturalChunk{text: s[start:i], numeric: numeric})
		start = i
		numeric = isDigit
	}
	chunks = append(chunks, naturalChunk{text: s[start:], numeric: numeric})
	if numeric {
		// trailing number is followed by an empty text run
		chunks = append(chunks, naturalChunk{})
	}
	return chunks
}

// compareNumeric compares two digit strings of any length by value.
func compareNumeric(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

func compareNatural(a, b string) int {
	ka, kb := naturalKey(a), naturalKey(b)
	for i := 0; i < len(ka) && i < len(kb); i++ {
		var c int
		if ka[i].numeric {
			c = compareNumeric(ka[i].text, kb[i].text)
		} else {
			c = strings.Compare(strings.ToLower(ka[i].text), strings.ToLower(kb[i].text))
		}
		if c != 0 {
			return c
		}
	}
	switch {
	case len(ka) < len(kb):
		return -1
	case len(ka) > len(kb):
		return 1
	}
	return strings.Compare(a, b)
}

// NaturalCompare orders a and b naturally, for slices.SortFunc: digit runs
// compare by numeric value, other runs case-insensitively. For example
// eth2 < eth10 and lan1 < lan1.100 < lan2.
func NaturalCompare(a, b string) int {
	return compareNatural(a, b)
}
