package compose

import "unicode/utf16"

// HashString computes a 32-bit rolling hash over the UTF-16 code units of
// value, wrapped to signed 32-bit at each step, returned as an absolute
// value. The wrap-then-abs order matters for reproducing stored variant
// choices, so keep the arithmetic in int32.
func HashString(value string) int64 {
	var h int32
	for _, unit := range utf16.Encode([]rune(value)) {
		h = h<<5 - h + int32(unit)
	}
	if h < 0 {
		return -int64(h)
	}
	return int64(h)
}

// PickVariant deterministically selects one option keyed off the message, so
// the same message always yields the same phrasing.
func PickVariant(message string, options []string) string {
	if len(options) == 0 {
		return ""
	}
	return options[HashString(message)%int64(len(options))]
}
