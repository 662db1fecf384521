package conv

const (
	maxInt32 = 1<<31 - 1
	minInt32 = -1 << 31
)

// Atoi is a permissive decimal parse: optional leading spaces/tabs, an
// optional sign, then as many digits as are present. Anything after the
// digits is ignored and no digits yields 0. Results saturate to the int32
// range so every input maps to a value.
func Atoi(s string) int {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}
	var v int64
	for ; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			break
		}
		v = v*10 + int64(c-'0')
		if v > maxInt32+1 {
			v = maxInt32 + 1
		}
	}
	if neg {
		v = -v
	}
	if v > maxInt32 {
		v = maxInt32
	}
	if v < minInt32 {
		v = minInt32
	}
	return int(v)
}
