package linebuf

// DefaultBreakChars is the default set of word break characters: whitespace
// and ASCII punctuation except the underscore.
const DefaultBreakChars = " \t\v\f\a\b\r\n`~!@#$%^&*()-=+[{]}\\|;:'\",<.>/?"

// BreakSet is a set of ASCII word break characters. Codepoints at or above
// 128 are never break characters.
type BreakSet [2]uint64

// NewBreakSet returns a BreakSet containing the ASCII characters of chars.
// Other characters are ignored.
func NewBreakSet(chars string) BreakSet {
	var s BreakSet
	for _, r := range chars {
		if r >= 0 && r < 128 {
			s[r/64] |= 1 << (r % 64)
		}
	}
	return s
}

// Contains reports whether r is a break character.
func (s BreakSet) Contains(r rune) bool {
	if r < 0 || r >= 128 {
		return false
	}
	return s[r/64]&(1<<(r%64)) != 0
}

// String returns the break characters in ascending order.
func (s BreakSet) String() string {
	var rs []rune
	for r := rune(0); r < 128; r++ {
		if s.Contains(r) {
			rs = append(rs, r)
		}
	}
	return string(rs)
}
