package iri

import (
	"log/slog"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/iri/internal/constraints"
	"github.com/ghettovoice/iri/internal/errorutil"
	"github.com/ghettovoice/iri/internal/log"
)

// Resolver resolves reference text against absolute base text,
// implementing RFC 3986 §5.2. The zero configuration never logs;
// WithLogger enables debug tracing of each resolution.
type Resolver struct {
	log *slog.Logger
}

// ResolverOption configures a [Resolver].
type ResolverOption func(*Resolver)

// WithLogger sets the logger used to trace resolutions.
func WithLogger(l *slog.Logger) ResolverOption {
	return func(rv *Resolver) {
		if l != nil {
			rv.log = l
		}
	}
}

// NewResolver returns a Resolver with the given options applied.
func NewResolver(opts ...ResolverOption) *Resolver {
	rv := &Resolver{log: log.Noop}
	for _, o := range opts {
		o(rv)
	}
	return rv
}

// Resolve computes the target of ref against base and returns its
// serialization. base must be an absolute IRI ([ErrInvalidBase]
// otherwise); ref may be absolute or relative ([ErrInvalidRef] when
// it is neither).
func (rv *Resolver) Resolve(base, ref string) (string, error) {
	b, err := Parse(base)
	if err != nil {
		return "", errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidBase, err))
	}

	r, err := Parse(ref)
	if err != nil {
		if r, err = ParseRef(ref); err != nil {
			return "", errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidRef, err))
		}
	}

	target := b.Resolve(r)
	rv.log.Debug("reference resolved",
		slog.Any("base", log.StringValue(base)),
		slog.Any("ref", log.StringValue(ref)),
		slog.Any("target", log.CalcValue(func() any { return target.String() })),
	)
	return target.String(), nil
}

var defResolver = NewResolver()

// Resolve resolves ref against the absolute base and returns the
// serialized target. See [Resolver.Resolve].
func Resolve[T constraints.Byteseq](base, ref T) (string, error) {
	return errtrace.Wrap2(defResolver.Resolve(string(base), string(ref)))
}

// Resolve computes the target of ref against the base r following
// RFC 3986 §5.2.2. A ref carrying its own scheme only gets its path
// dot-normalized; otherwise scheme, and as needed authority, path and
// query, are inherited from the base. The fragment always comes from
// ref. A nil ref acts as the empty reference.
func (r *Ref) Resolve(ref *Ref) *Ref {
	if r == nil {
		return ref.Clone()
	}
	if ref == nil {
		ref = &Ref{}
	}

	target := new(Ref)
	if ref.hasScheme {
		*target = *ref
		target.path = removeDotSegments(ref.path)
		return target
	}

	target.scheme, target.hasScheme = r.scheme, r.hasScheme
	switch {
	case ref.hasAuth:
		target.setAuthority(ref)
		target.path = removeDotSegments(ref.path)
		target.query, target.hasQuery = ref.query, ref.hasQuery
	case ref.path == "":
		target.setAuthority(r)
		target.path = r.path
		if ref.hasQuery {
			target.query, target.hasQuery = ref.query, true
		} else {
			target.query, target.hasQuery = r.query, r.hasQuery
		}
	case strings.HasPrefix(ref.path, "/"):
		target.setAuthority(r)
		target.path = removeDotSegments(ref.path)
		target.query, target.hasQuery = ref.query, ref.hasQuery
	default:
		target.setAuthority(r)
		target.path = removeDotSegments(mergePaths(r, ref.path))
		target.query, target.hasQuery = ref.query, ref.hasQuery
	}
	target.fragment, target.hasFragment = ref.fragment, ref.hasFragment
	return target
}

func (r *Ref) setAuthority(src *Ref) {
	r.userinfo, r.hasUserinfo = src.userinfo, src.hasUserinfo
	r.host, r.hasAuth = src.host, src.hasAuth
	r.port, r.hasPort = src.port, src.hasPort
}

// mergePaths implements RFC 3986 §5.2.3: against a base with an
// authority and an empty path the reference path becomes rooted,
// otherwise it replaces everything after the last "/" of the base
// path.
func mergePaths(base *Ref, refPath string) string {
	if base.hasAuth && base.path == "" {
		return "/" + refPath
	}
	i := strings.LastIndexByte(base.path, '/')
	if i < 0 {
		return refPath
	}
	return base.path[:i+1] + refPath
}

// removeDotSegments implements RFC 3986 §5.2.4 with the official
// stateful output buffer. A per-segment fold diverges from it on
// leading ".." beyond the root and around adjacent empty segments,
// so the five-case loop is kept literal.
func removeDotSegments(path string) string {
	out := make([]byte, 0, len(path))
	in := path
	for len(in) > 0 {
		switch {
		case strings.HasPrefix(in, "../"):
			in = in[3:]
		case strings.HasPrefix(in, "./"):
			in = in[2:]
		case strings.HasPrefix(in, "/./"):
			in = in[2:]
		case in == "/.":
			in = "/"
		case strings.HasPrefix(in, "/../"):
			in = in[3:]
			out = trimLastSegment(out)
		case in == "/..":
			in = "/"
			out = trimLastSegment(out)
		case in == "." || in == "..":
			in = ""
		default:
			i := 0
			if in[0] == '/' {
				i = 1
			}
			if j := strings.IndexByte(in[i:], '/'); j >= 0 {
				out = append(out, in[:i+j]...)
				in = in[i+j:]
			} else {
				out = append(out, in...)
				in = ""
			}
		}
	}
	return string(out)
}

func trimLastSegment(out []byte) []byte {
	for i := len(out) - 1; i >= 0; i-- {
		if out[i] == '/' {
			return out[:i]
		}
	}
	return out[:0]
}
