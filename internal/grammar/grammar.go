// Package grammar implements the IRI / IRI-reference grammar of RFC 3987,
// reusing the URI character classes and recomposition rules of RFC 3986.
//
// Parsing is a hand-written recursive descent over code points with
// explicit save/restore backtracking at the grammar's ordered choice
// points. Matched pct-encoded triplets are canonicalized to upper case
// hex digits as they are consumed.
package grammar

//go:generate go tool errtrace -w .

import (
	"github.com/ghettovoice/iri/internal/constraints"
	"github.com/ghettovoice/iri/internal/errorutil"
)

// Error is a string type that implements the error interface.
type Error string

func (e Error) Error() string { return string(e) }

func (Error) Grammar() bool { return true }

const (
	// ErrInvalidIRI is the sentinel wrapped by every parse failure.
	ErrInvalidIRI Error = "invalid IRI"

	ErrEmptyInput         Error = "empty input"
	ErrInvalidSchemeHead  Error = "scheme must start with an alphabetic character"
	ErrInvalidSchemeChar  Error = "invalid character in scheme"
	ErrMissingSchemeColon Error = "missing ':' after scheme"
	ErrInvalidHostLiteral Error = "invalid host literal"
	ErrInvalidPort        Error = "invalid port"
	ErrInvalidPctEnc      Error = "malformed percent-encoding"
	ErrTrailingInput      Error = "unconsumed trailing input"
)

// newParseErr wraps a diagnostic sub-kind so that the result matches
// both the sub-kind and [ErrInvalidIRI] under errors.Is.
func newParseErr(sub error, args ...any) error {
	return errorutil.NewWrapperError(ErrInvalidIRI, errorutil.NewWrapperError(sub, args...)) //errtrace:skip
}

// IsScheme checks the scheme rule.
func IsScheme[T constraints.Byteseq](s T) bool {
	if len(s) == 0 || !IsAlphaChar(rune(s[0])) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !IsSchemeChar(rune(s[i])) {
			return false
		}
	}
	return true
}

// IsUserinfo checks the iuserinfo rule.
func IsUserinfo[T constraints.Byteseq](s T) bool {
	sc := &scanner{src: string(s)}
	err := sc.skipWhile(func(r rune) bool {
		return IsIUnreservedChar(r) || IsSubDelimChar(r) || r == ':'
	})
	return err == nil && sc.eof()
}

// IsHost checks the ihost rule: IP-literal, IPv4address or ireg-name.
// The empty host is valid.
func IsHost[T constraints.Byteseq](s T) bool {
	sc := &scanner{src: string(s)}
	_, err := sc.scanHost()
	return err == nil && sc.eof()
}

// IsPort checks the port rule. The empty port is valid.
func IsPort[T constraints.Byteseq](s T) bool {
	for i := 0; i < len(s); i++ {
		if !IsDigitChar(rune(s[i])) {
			return false
		}
	}
	return true
}

// IsPath checks that s consists of slash-separated ipchar segments.
func IsPath[T constraints.Byteseq](s T) bool {
	sc := &scanner{src: string(s)}
	err := sc.skipWhile(func(r rune) bool { return IsIPChar(r) || r == '/' })
	return err == nil && sc.eof()
}

// IsQuery checks the iquery rule.
func IsQuery[T constraints.Byteseq](s T) bool {
	sc := &scanner{src: string(s)}
	err := sc.skipWhile(func(r rune) bool {
		return IsIPChar(r) || IsIPrivateChar(r) || r == '/' || r == '?'
	})
	return err == nil && sc.eof()
}

// IsFragment checks the ifragment rule.
func IsFragment[T constraints.Byteseq](s T) bool {
	sc := &scanner{src: string(s)}
	err := sc.skipWhile(func(r rune) bool {
		return IsIPChar(r) || r == '/' || r == '?'
	})
	return err == nil && sc.eof()
}
