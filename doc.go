// Package iri parses, serializes and resolves Internationalized
// Resource Identifiers (IRIs) as defined by RFC 3987, applying the
// reference-resolution algorithm of RFC 3986 to combine a base with a
// relative reference.
//
// All values are immutable and every operation is a pure function, so
// the package is safe for concurrent use without synchronization.
package iri
