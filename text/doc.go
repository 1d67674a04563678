// Package text classifies the writing direction of glyph-run text.
//
// Reconstructed blocks decide whether they read right-to-left by majority
// vote over their runs. This package supplies the per-rune classification
// (from the Unicode bidi class tables in golang.org/x/text) and the [Vote]
// counter used by every container that votes.
//
// # Text Direction
//
//   - LTR - left-to-right (Latin, CJK, etc.)
//   - RTL - right-to-left (Arabic, Hebrew, etc.)
//   - Neutral - digits, punctuation, whitespace
//
// Use [DetectDirection] for a whole run and [DirectionFromBidiLevel] when the
// page markup carries an explicit embedding level.
package text
