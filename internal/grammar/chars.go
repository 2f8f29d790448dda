package grammar

import "sort"

// IsAlphaChar checks the ALPHA rule.
func IsAlphaChar(r rune) bool { return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' }

// IsDigitChar checks the DIGIT rule.
func IsDigitChar(r rune) bool { return '0' <= r && r <= '9' }

// IsHexDigitChar checks the HEXDIG rule, accepting both hex digit cases.
func IsHexDigitChar(r rune) bool {
	return IsDigitChar(r) || 'a' <= r && r <= 'f' || 'A' <= r && r <= 'F'
}

// IsUnreservedChar checks the RFC 3986 unreserved rule.
func IsUnreservedChar(r rune) bool {
	return IsAlphaChar(r) || IsDigitChar(r) || r == '-' || r == '.' || r == '_' || r == '~'
}

// IsSubDelimChar checks the sub-delims rule.
func IsSubDelimChar(r rune) bool {
	switch r {
	case '!', '$', '&', '\'', '(', ')', '*', '+', ',', ';', '=':
		return true
	}
	return false
}

// IsGenDelimChar checks the gen-delims rule.
func IsGenDelimChar(r rune) bool {
	switch r {
	case ':', '/', '?', '#', '[', ']', '@':
		return true
	}
	return false
}

// IsSchemeChar checks a non-head scheme character.
func IsSchemeChar(r rune) bool {
	return IsAlphaChar(r) || IsDigitChar(r) || r == '+' || r == '.' || r == '_' || r == '-'
}

// IsIUnreservedChar checks the RFC 3987 iunreserved rule.
func IsIUnreservedChar(r rune) bool { return IsUnreservedChar(r) || IsUcsChar(r) }

// IsIPChar checks the ipchar rule, excluding pct-encoded which spans
// several characters and is matched by the scanner.
func IsIPChar(r rune) bool {
	return IsIUnreservedChar(r) || IsSubDelimChar(r) || r == ':' || r == '@'
}

type runeRange struct{ lo, hi rune }

func inRanges(tab []runeRange, r rune) bool {
	i := sort.Search(len(tab), func(i int) bool { return r <= tab[i].hi })
	return i < len(tab) && tab[i].lo <= r
}

// ucschar = %xA0-D7FF / %xF900-FDCF / %xFDF0-FFEF
//         / %x10000-1FFFD / ... / %xD0000-DFFFD / %xE1000-EFFFD
var ucsRanges = []runeRange{
	{0x00A0, 0xD7FF},
	{0xF900, 0xFDCF},
	{0xFDF0, 0xFFEF},
	{0x10000, 0x1FFFD},
	{0x20000, 0x2FFFD},
	{0x30000, 0x3FFFD},
	{0x40000, 0x4FFFD},
	{0x50000, 0x5FFFD},
	{0x60000, 0x6FFFD},
	{0x70000, 0x7FFFD},
	{0x80000, 0x8FFFD},
	{0x90000, 0x9FFFD},
	{0xA0000, 0xAFFFD},
	{0xB0000, 0xBFFFD},
	{0xC0000, 0xCFFFD},
	{0xD0000, 0xDFFFD},
	{0xE1000, 0xEFFFD},
}

// IsUcsChar checks the ucschar rule.
func IsUcsChar(r rune) bool { return inRanges(ucsRanges, r) }

// iprivate = %xE000-F8FF / %xF0000-FFFFD / %x100000-10FFFD
var iprivateRanges = []runeRange{
	{0xE000, 0xF8FF},
	{0xF0000, 0xFFFFD},
	{0x100000, 0x10FFFD},
}

// IsIPrivateChar checks the iprivate rule.
func IsIPrivateChar(r rune) bool { return inRanges(iprivateRanges, r) }

// IsDecOctet checks the dec-octet rule: 1 to 3 digits with a value
// not greater than 255.
func IsDecOctet[T ~string | ~[]byte](s T) bool {
	if len(s) == 0 || len(s) > 3 {
		return false
	}
	v := 0
	for i := 0; i < len(s); i++ {
		if !IsDigitChar(rune(s[i])) {
			return false
		}
		v = v*10 + int(s[i]-'0')
	}
	return v <= 255
}

// isH16 checks the h16 rule: 1 to 4 hex digits.
func isH16(s string) bool {
	if len(s) == 0 || len(s) > 4 {
		return false
	}
	for _, r := range s {
		if !IsHexDigitChar(r) {
			return false
		}
	}
	return true
}
