package iri

import (
	"github.com/ghettovoice/iri/internal/errorutil"
	"github.com/ghettovoice/iri/internal/grammar"
)

// Parse failures wrap [ErrInvalidIRI]; the remaining parse sentinels
// classify the failure for diagnostics and also match under errors.Is.
var (
	ErrInvalidIRI error = grammar.ErrInvalidIRI

	ErrEmptyInput         error = grammar.ErrEmptyInput
	ErrInvalidSchemeHead  error = grammar.ErrInvalidSchemeHead
	ErrInvalidSchemeChar  error = grammar.ErrInvalidSchemeChar
	ErrMissingSchemeColon error = grammar.ErrMissingSchemeColon
	ErrInvalidHostLiteral error = grammar.ErrInvalidHostLiteral
	ErrInvalidPort        error = grammar.ErrInvalidPort
	ErrInvalidPctEnc      error = grammar.ErrInvalidPctEnc
	ErrTrailingInput      error = grammar.ErrTrailingInput
)

// Resolution failures wrap one of these sentinels around the
// underlying parse error.
var (
	ErrInvalidBase error = errorutil.Error("invalid base IRI")
	ErrInvalidRef  error = errorutil.Error("invalid reference IRI")
)
