package names

import "strings"

// PhoneticKey encodes a full name as per-token metaphone-style keys joined
// with '-'. Two names get the same key when every corresponding token sounds
// alike, so "Jon Smyth" and "John Smith" collide while "John Smithson" does
// not. Keys are computed from the normalized form; an empty name yields "".
func PhoneticKey(s string) string {
	tokens := Tokens(s)
	if len(tokens) == 0 {
		return ""
	}
	keys := make([]string, len(tokens))
	for i, tok := range tokens {
		keys[i] = tokenKey(tok)
	}
	return strings.Join(keys, "-")
}

// digraphs folded before consonant extraction. Ordered longest-first so
// replacements don't feed each other.
var digraphs = [...][2]string{
	{"ph", "f"},
	{"gh", "f"},
	{"sh", "x"},
	{"ch", "x"},
	{"ck", "k"},
	{"sch", "x"},
	{"th", "t"},
	{"dg", "j"},
	{"kn", "n"},
	{"wr", "r"},
	{"mb", "m"},
}

// tokenKey builds a metaphone-style consonant skeleton for one token:
// fold digraphs, keep the first rune (vowels become 'a'), drop remaining
// vowels, collapse repeats, cap at six characters.
func tokenKey(tok string) string {
	for _, d := range digraphs {
		tok = strings.ReplaceAll(tok, d[0], d[1])
	}

	var b strings.Builder
	var prev byte
	for i := 0; i < len(tok) && b.Len() < 6; i++ {
		c := tok[i]
		// h, w, y pattern with the vowels: silent more often than not
		vowel := c == 'a' || c == 'e' || c == 'i' || c == 'o' || c == 'u' ||
			c == 'y' || c == 'w' || c == 'h'
		switch {
		case i == 0 && vowel:
			b.WriteByte('a')
			prev = 'a'
		case i == 0 && (c == 'c' || c == 'q'):
			b.WriteByte('k')
			prev = 'k'
		case i == 0 && c == 'z':
			b.WriteByte('s')
			prev = 's'
		case i == 0:
			b.WriteByte(c)
			prev = c
		case vowel:
			// interior vowels carry no signal
		case c == 'z':
			if prev != 's' {
				b.WriteByte('s')
				prev = 's'
			}
		case c == 'c':
			if prev != 'k' {
				b.WriteByte('k')
				prev = 'k'
			}
		case c == 'q':
			if prev != 'k' {
				b.WriteByte('k')
				prev = 'k'
			}
		default:
			if c != prev {
				b.WriteByte(c)
				prev = c
			}
		}
	}
	return b.String()
}
