package iri

//go:generate go tool errtrace -w .

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/iri/internal/grammar"
	"github.com/ghettovoice/iri/internal/util"
)

// Ref represents an IRI reference: an absolute IRI when a scheme is
// present, otherwise a relative reference.
//
// A Ref is produced by [Parse], [ParseRef], [ParseAny] or by
// resolution and is immutable afterwards. Optional components keep
// absence distinguishable from emptiness: an empty query ("?") is not
// the same reference as no query at all.
type Ref struct {
	scheme      string
	hasScheme   bool
	userinfo    string
	hasUserinfo bool
	host        string
	hasAuth     bool
	port        string
	hasPort     bool
	path        string
	query       string
	hasQuery    bool
	fragment    string
	hasFragment bool
}

func fromParts(p *grammar.Parts) *Ref {
	return &Ref{
		scheme:      p.Scheme,
		hasScheme:   p.HasScheme,
		userinfo:    p.Userinfo,
		hasUserinfo: p.HasUserinfo,
		host:        p.Host,
		hasAuth:     p.HasAuth,
		port:        p.Port,
		hasPort:     p.HasPort,
		path:        p.Path,
		query:       p.Query,
		hasQuery:    p.HasQuery,
		fragment:    p.Fragment,
		hasFragment: p.HasFragment,
	}
}

// Scheme returns the scheme and whether it is present.
// A parsed scheme is always lower case.
func (r *Ref) Scheme() (string, bool) {
	if r == nil {
		return "", false
	}
	return r.scheme, r.hasScheme
}

// Userinfo returns the userinfo component and whether it is present.
func (r *Ref) Userinfo() (string, bool) {
	if r == nil {
		return "", false
	}
	return r.userinfo, r.hasUserinfo
}

// Host returns the host and whether an authority is present. The host
// of a present authority may itself be empty. IP literals keep their
// brackets.
func (r *Ref) Host() (string, bool) {
	if r == nil {
		return "", false
	}
	return r.host, r.hasAuth
}

// Port returns the port digits and whether a port is present. The
// grammar puts no width limit on the port, so it is kept as text; it
// may be empty while present ("//h:").
func (r *Ref) Port() (string, bool) {
	if r == nil {
		return "", false
	}
	return r.port, r.hasPort
}

// Path returns the path, possibly empty.
func (r *Ref) Path() string {
	if r == nil {
		return ""
	}
	return r.path
}

// Query returns the query and whether it is present.
func (r *Ref) Query() (string, bool) {
	if r == nil {
		return "", false
	}
	return r.query, r.hasQuery
}

// Fragment returns the fragment and whether it is present.
func (r *Ref) Fragment() (string, bool) {
	if r == nil {
		return "", false
	}
	return r.fragment, r.hasFragment
}

// IsAbsolute reports whether the reference carries a scheme.
func (r *Ref) IsAbsolute() bool { return r != nil && r.hasScheme }

// IsZero reports whether the reference is the empty relative
// reference.
func (r *Ref) IsZero() bool { return r != nil && *r == Ref{} }

// Clone returns a copy of the reference.
func (r *Ref) Clone() *Ref {
	if r == nil {
		return nil
	}
	r2 := *r
	return &r2
}

// RenderTo writes the RFC 3986 §5.3 recomposition of the reference to w.
func (r *Ref) RenderTo(w io.Writer) error {
	if r == nil {
		return nil
	}
	if r.hasScheme {
		if _, err := fmt.Fprint(w, r.scheme, ":"); err != nil {
			return errtrace.Wrap(err)
		}
	}
	if r.hasAuth {
		if _, err := fmt.Fprint(w, "//"); err != nil {
			return errtrace.Wrap(err)
		}
		if r.hasUserinfo {
			if _, err := fmt.Fprint(w, r.userinfo, "@"); err != nil {
				return errtrace.Wrap(err)
			}
		}
		if _, err := fmt.Fprint(w, r.host); err != nil {
			return errtrace.Wrap(err)
		}
		if r.hasPort {
			if _, err := fmt.Fprint(w, ":", r.port); err != nil {
				return errtrace.Wrap(err)
			}
		}
	}
	if _, err := fmt.Fprint(w, r.path); err != nil {
		return errtrace.Wrap(err)
	}
	if r.hasQuery {
		if _, err := fmt.Fprint(w, "?", r.query); err != nil {
			return errtrace.Wrap(err)
		}
	}
	if r.hasFragment {
		if _, err := fmt.Fprint(w, "#", r.fragment); err != nil {
			return errtrace.Wrap(err)
		}
	}
	return nil
}

// String returns the serialized reference. Re-parsing the result
// yields a value equal to r.
func (r *Ref) String() string {
	if r == nil {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	r.RenderTo(sb) //nolint:errcheck
	return sb.String()
}

// Format implements fmt.Formatter for custom formatting of the reference.
func (r *Ref) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, r.String())
		return
	case 'q':
		fmt.Fprint(f, strconv.Quote(r.String()))
		return
	default:
		type hideMethods Ref
		type Ref hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*Ref)(r))
		return
	}
}

// Equal reports whether the reference is structurally equal to the
// provided value, accepting Ref and *Ref.
func (r *Ref) Equal(val any) bool {
	var other *Ref
	switch v := val.(type) {
	case Ref:
		other = &v
	case *Ref:
		other = v
	default:
		return false
	}

	if r == other {
		return true
	} else if r == nil || other == nil {
		return false
	}
	return *r == *other
}

// Compare orders references component-wise: scheme, authority
// (userinfo, host, port), path, query, fragment. For every optional
// component an absent value sorts before a present one. The result is
// a total order consistent with Equal.
func (r *Ref) Compare(other *Ref) int {
	switch {
	case r == other:
		return 0
	case r == nil:
		return -1
	case other == nil:
		return 1
	}

	if c := cmpOptional(r.scheme, r.hasScheme, other.scheme, other.hasScheme); c != 0 {
		return c
	}
	if r.hasAuth != other.hasAuth {
		if !r.hasAuth {
			return -1
		}
		return 1
	}
	if r.hasAuth {
		if c := cmpOptional(r.userinfo, r.hasUserinfo, other.userinfo, other.hasUserinfo); c != 0 {
			return c
		}
		if c := strings.Compare(r.host, other.host); c != 0 {
			return c
		}
		if c := cmpOptional(r.port, r.hasPort, other.port, other.hasPort); c != 0 {
			return c
		}
	}
	if c := strings.Compare(r.path, other.path); c != 0 {
		return c
	}
	if c := cmpOptional(r.query, r.hasQuery, other.query, other.hasQuery); c != 0 {
		return c
	}
	return cmpOptional(r.fragment, r.hasFragment, other.fragment, other.hasFragment)
}

func cmpOptional(a string, aok bool, b string, bok bool) int {
	switch {
	case aok && bok:
		return strings.Compare(a, b)
	case aok:
		return 1
	case bok:
		return -1
	}
	return 0
}

// IsValid checks whether every present component still matches its
// grammar rule, including the contextual path restrictions: a path
// cannot start with "//" without an authority, and the head segment
// of a schemeless, authorityless reference cannot contain a colon.
func (r *Ref) IsValid() bool {
	if r == nil {
		return false
	}
	if r.hasScheme && !grammar.IsScheme(r.scheme) {
		return false
	}
	if r.hasUserinfo && (!r.hasAuth || !grammar.IsUserinfo(r.userinfo)) {
		return false
	}
	if r.hasPort && (!r.hasAuth || !grammar.IsPort(r.port)) {
		return false
	}
	if r.hasAuth {
		if !grammar.IsHost(r.host) {
			return false
		}
		if r.path != "" && !strings.HasPrefix(r.path, "/") {
			return false
		}
	} else {
		if strings.HasPrefix(r.path, "//") {
			return false
		}
		if !r.hasScheme {
			if head, _, _ := strings.Cut(r.path, "/"); strings.Contains(head, ":") {
				return false
			}
		}
	}
	if !grammar.IsPath(r.path) {
		return false
	}
	if r.hasQuery && !grammar.IsQuery(r.query) {
		return false
	}
	if r.hasFragment && !grammar.IsFragment(r.fragment) {
		return false
	}
	return true
}

// LogValue implements [slog.LogValuer].
func (r *Ref) LogValue() slog.Value { return slog.StringValue(r.String()) }

// MarshalText implements [encoding.TextMarshaler].
func (r *Ref) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (r *Ref) UnmarshalText(text []byte) error {
	r2, err := ParseAny(text)
	if err != nil {
		*r = Ref{}
		return errtrace.Wrap(err)
	}
	*r = *r2
	return nil
}
