package text

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/bidi"
)

// Direction represents the writing direction of text.
// It is used to vote on the reading direction of reconstructed blocks.
type Direction int

const (
	// LTR (Left-to-Right) for Latin, Cyrillic, CJK, etc.
	LTR Direction = iota
	// RTL (Right-to-Left) for Arabic, Hebrew, etc.
	RTL
	// Neutral for numbers, punctuation, whitespace, etc.
	Neutral
)

// String returns a string representation of the direction ("LTR", "RTL", or "Neutral").
func (d Direction) String() string {
	switch d {
	case LTR:
		return "LTR"
	case RTL:
		return "RTL"
	case Neutral:
		return "Neutral"
	default:
		return "Unknown"
	}
}

// DetectDirection analyzes a string and returns its dominant text direction.
// It counts strong directional characters and returns the direction with
// the higher count, or Neutral if no strong directional characters are
// present. Ties go to LTR.
func DetectDirection(s string) Direction {
	if s == "" {
		return Neutral
	}

	ltrCount := 0
	rtlCount := 0

	for _, r := range s {
		switch GetCharDirection(r) {
		case LTR:
			ltrCount++
		case RTL:
			rtlCount++
		}
	}

	if ltrCount == 0 && rtlCount == 0 {
		return Neutral
	}

	if rtlCount > ltrCount {
		return RTL
	}
	return LTR
}

// GetCharDirection returns the inherent direction of a single rune from its
// Unicode bidi class. Strong right-to-left classes (R, AL) are RTL, strong
// left-to-right (L) is LTR and every weak or neutral class is Neutral.
func GetCharDirection(r rune) Direction {
	props, _ := bidi.LookupRune(r)
	switch props.Class() {
	case bidi.R, bidi.AL:
		return RTL
	case bidi.L:
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return Neutral
		}
		return LTR
	default:
		return Neutral
	}
}

// DirectionFromBidiLevel maps an explicit embedding level to a direction:
// odd levels are right-to-left.
func DirectionFromBidiLevel(level int) Direction {
	if level%2 == 1 {
		return RTL
	}
	return LTR
}

// IsWhiteSpace reports whether s is empty or consists only of whitespace
func IsWhiteSpace(s string) bool {
	return strings.TrimFunc(s, unicode.IsSpace) == ""
}

// Vote is a running majority count of LTR and RTL content
type Vote struct {
	LTR int
	RTL int
}

// Add counts one direction; Neutral is ignored
func (v *Vote) Add(d Direction) {
	switch d {
	case LTR:
		v.LTR++
	case RTL:
		v.RTL++
	}
}

// Merge adds the counts of another vote
func (v *Vote) Merge(other Vote) {
	v.LTR += other.LTR
	v.RTL += other.RTL
}

// IsRTL reports whether right-to-left content holds a strict majority
func (v Vote) IsRTL() bool {
	return v.RTL > v.LTR
}

// Direction returns the majority direction, Neutral when nothing was counted
func (v Vote) Direction() Direction {
	if v.LTR == 0 && v.RTL == 0 {
		return Neutral
	}
	if v.IsRTL() {
		return RTL
	}
	return LTR
}
