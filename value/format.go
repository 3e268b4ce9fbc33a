package value

import "strconv"

// formatFloat32 and formatFloat64 produce the shortest decimal string
// that round-trips to the same bits, per spec.md §9's Open Question on
// the decompiler's textual fallback.
func formatFloat32(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}

func formatFloat64(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
