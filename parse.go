package iri

import (
	"braces.dev/errtrace"

	"github.com/ghettovoice/iri/internal/constraints"
	"github.com/ghettovoice/iri/internal/grammar"
)

// Parse parses s as an absolute IRI. The entire input must match the
// IRI grammar; the parsed scheme is lowered and pct-encoded triplets
// are canonicalized to upper case hex.
func Parse[T constraints.Byteseq](s T) (*Ref, error) {
	p, err := grammar.ParseIRI(s)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return fromParts(p), nil
}

// ParseRef parses s as a relative reference (no scheme). The empty
// input is the valid empty reference.
func ParseRef[T constraints.Byteseq](s T) (*Ref, error) {
	p, err := grammar.ParseRelativeRef(s)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return fromParts(p), nil
}

// ParseAny parses s as an absolute IRI, falling back to a relative
// reference. The usual entry point for unclassified reference text.
func ParseAny[T constraints.Byteseq](s T) (*Ref, error) {
	if r, err := Parse(s); err == nil {
		return r, nil
	}
	return errtrace.Wrap2(ParseRef(s))
}

// Validate returns s unchanged if it is a valid absolute IRI.
func Validate[T constraints.Byteseq](s T) (T, error) {
	if _, err := grammar.ParseIRI(s); err != nil {
		var zero T
		return zero, errtrace.Wrap(err)
	}
	return s, nil
}

// Canonical parses s as an absolute IRI and returns its canonical
// serialization. The result is a fixed point: canonicalizing it again
// yields the same text.
func Canonical[T constraints.Byteseq](s T) (string, error) {
	r, err := Parse(s)
	if err != nil {
		return "", errtrace.Wrap(err)
	}
	return r.String(), nil
}
