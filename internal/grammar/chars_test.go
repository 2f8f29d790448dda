package grammar_test

import (
	"testing"

	"github.com/ghettovoice/iri/internal/grammar"
)

func TestIsUcsChar(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		r    rune
		want bool
	}{
		{"ascii letter", 'a', false},
		{"latin-1 punctuation below range", 0x009F, false},
		{"range head U+00A0", 0x00A0, true},
		{"cyrillic", 'я', true},
		{"range tail U+D7FF", 0xD7FF, true},
		{"surrogate gap", 0xD800, false},
		{"private use", 0xE000, false},
		{"cjk compat head U+F900", 0xF900, true},
		{"gap U+FDD0", 0xFDD0, false},
		{"U+FDF0", 0xFDF0, true},
		{"U+FFEF", 0xFFEF, true},
		{"replacement char U+FFFD", 0xFFFD, false},
		{"noncharacter U+FFFF", 0xFFFF, false},
		{"plane 1 head", 0x10000, true},
		{"plane 1 tail", 0x1FFFD, true},
		{"plane 1 noncharacter", 0x1FFFE, false},
		{"plane 13 tail", 0xDFFFD, true},
		{"plane 14 head gap", 0xE0000, false},
		{"U+E1000", 0xE1000, true},
		{"U+EFFFD", 0xEFFFD, true},
		{"U+EFFFE", 0xEFFFE, false},
		{"plane 15 private", 0xF0000, false},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := grammar.IsUcsChar(c.r); got != c.want {
				t.Errorf("grammar.IsUcsChar(%U) = %v, want %v", c.r, got, c.want)
			}
		})
	}
}

func TestIsIPrivateChar(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		r    rune
		want bool
	}{
		{"below bmp private area", 0xDFFF, false},
		{"bmp private head", 0xE000, true},
		{"bmp private tail", 0xF8FF, true},
		{"cjk compat", 0xF900, false},
		{"plane 15 head", 0xF0000, true},
		{"plane 16 tail", 0x10FFFD, true},
		{"max code point", 0x10FFFF, false},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := grammar.IsIPrivateChar(c.r); got != c.want {
				t.Errorf("grammar.IsIPrivateChar(%U) = %v, want %v", c.r, got, c.want)
			}
		})
	}
}

func TestIsDecOctet(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want bool
	}{
		{"empty", "", false},
		{"zero", "0", true},
		{"single digit", "7", true},
		{"two digits", "42", true},
		{"max", "255", true},
		{"over max", "256", false},
		{"way over max", "999", false},
		{"four digits", "1000", false},
		{"not digits", "1a", false},
		{"signed", "-1", false},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := grammar.IsDecOctet(c.in); got != c.want {
				t.Errorf("grammar.IsDecOctet(%q) = %v, want %v", c.in, got, c.want)
			}
		})
	}
}

func TestCharClasses(t *testing.T) {
	t.Parallel()

	t.Run("unreserved", func(t *testing.T) {
		t.Parallel()

		for _, r := range "azAZ09-._~" {
			if !grammar.IsUnreservedChar(r) {
				t.Errorf("grammar.IsUnreservedChar(%q) = false, want true", r)
			}
		}
		for _, r := range ":/?#[]@ %é" {
			if grammar.IsUnreservedChar(r) {
				t.Errorf("grammar.IsUnreservedChar(%q) = true, want false", r)
			}
		}
	})

	t.Run("sub-delims", func(t *testing.T) {
		t.Parallel()

		for _, r := range "!$&'()*+,;=" {
			if !grammar.IsSubDelimChar(r) {
				t.Errorf("grammar.IsSubDelimChar(%q) = false, want true", r)
			}
		}
		for _, r := range "-._~:@" {
			if grammar.IsSubDelimChar(r) {
				t.Errorf("grammar.IsSubDelimChar(%q) = true, want false", r)
			}
		}
	})

	t.Run("gen-delims", func(t *testing.T) {
		t.Parallel()

		for _, r := range ":/?#[]@" {
			if !grammar.IsGenDelimChar(r) {
				t.Errorf("grammar.IsGenDelimChar(%q) = false, want true", r)
			}
		}
		for _, r := range "!$&a0" {
			if grammar.IsGenDelimChar(r) {
				t.Errorf("grammar.IsGenDelimChar(%q) = true, want false", r)
			}
		}
	})

	t.Run("iunreserved includes ucschar", func(t *testing.T) {
		t.Parallel()

		if !grammar.IsIUnreservedChar('é') {
			t.Error("grammar.IsIUnreservedChar('é') = false, want true")
		}
		if grammar.IsIUnreservedChar(' ') {
			t.Error("grammar.IsIUnreservedChar(' ') = true, want false")
		}
	})

	t.Run("hex digits both cases", func(t *testing.T) {
		t.Parallel()

		for _, r := range "0123456789abcdefABCDEF" {
			if !grammar.IsHexDigitChar(r) {
				t.Errorf("grammar.IsHexDigitChar(%q) = false, want true", r)
			}
		}
		if grammar.IsHexDigitChar('g') {
			t.Error("grammar.IsHexDigitChar('g') = true, want false")
		}
	})
}
