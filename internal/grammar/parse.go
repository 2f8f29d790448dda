package grammar

import (
	"strings"
	"unicode/utf8"

	"braces.dev/errtrace"

	"github.com/ghettovoice/iri/internal/constraints"
	"github.com/ghettovoice/iri/internal/util"
)

// Parts holds the components of a parsed IRI reference.
// Every optional component carries a presence flag so that an absent
// component stays distinguishable from an empty one.
type Parts struct {
	Scheme      string
	HasScheme   bool
	Userinfo    string
	HasUserinfo bool
	Host        string
	HasAuth     bool
	Port        string
	HasPort     bool
	Path        string
	Query       string
	HasQuery    bool
	Fragment    string
	HasFragment bool
}

// ParseIRI parses s as an absolute IRI:
//
//	IRI = scheme ":" ihier-part [ "?" iquery ] [ "#" ifragment ]
//
// The whole input must match, otherwise an error wrapping
// [ErrInvalidIRI] is returned.
func ParseIRI[T constraints.Byteseq](s T) (*Parts, error) {
	if len(s) == 0 {
		return nil, errtrace.Wrap(newParseErr(ErrEmptyInput))
	}

	sc := &scanner{src: string(s)}
	p := new(Parts)
	if err := sc.scanScheme(p); err != nil {
		return nil, errtrace.Wrap(err)
	}
	if err := sc.scanHierPart(p, true); err != nil {
		return nil, errtrace.Wrap(err)
	}
	if err := sc.scanQueryFragment(p); err != nil {
		return nil, errtrace.Wrap(err)
	}
	if !sc.eof() {
		return nil, errtrace.Wrap(newParseErr(ErrTrailingInput, "at offset %d", sc.pos))
	}
	return p, nil
}

// ParseRelativeRef parses s as a relative reference:
//
//	irelative-ref = irelative-part [ "?" iquery ] [ "#" ifragment ]
//
// The whole input must match. The empty input is a valid empty
// reference.
func ParseRelativeRef[T constraints.Byteseq](s T) (*Parts, error) {
	sc := &scanner{src: string(s)}
	p := new(Parts)
	if err := sc.scanHierPart(p, false); err != nil {
		return nil, errtrace.Wrap(err)
	}
	if err := sc.scanQueryFragment(p); err != nil {
		return nil, errtrace.Wrap(err)
	}
	if !sc.eof() {
		return nil, errtrace.Wrap(newParseErr(ErrTrailingInput, "at offset %d", sc.pos))
	}
	return p, nil
}

// scanner is a cursor over the input with code-point granularity.
// Backtracking is a matter of saving and restoring pos.
type scanner struct {
	src string
	pos int
}

func (sc *scanner) eof() bool { return sc.pos >= len(sc.src) }

// peekByte returns the byte at the cursor, or 0 at end of input.
func (sc *scanner) peekByte() byte {
	if sc.eof() {
		return 0
	}
	return sc.src[sc.pos]
}

func (sc *scanner) acceptByte(b byte) bool {
	if sc.eof() || sc.src[sc.pos] != b {
		return false
	}
	sc.pos++
	return true
}

func (sc *scanner) hasPrefix(s string) bool {
	return strings.HasPrefix(sc.src[sc.pos:], s)
}

// scanWhile consumes code points matching pred into sb, handling
// pct-encoded triplets wherever they are reachable: a '%' always
// starts a triplet and is canonicalized to upper case hex.
func (sc *scanner) scanWhile(sb *strings.Builder, pred func(rune) bool) error {
	for !sc.eof() {
		if sc.src[sc.pos] == '%' {
			if err := sc.scanPct(sb); err != nil {
				return err //errtrace:skip
			}
			continue
		}
		r, size := utf8.DecodeRuneInString(sc.src[sc.pos:])
		if !pred(r) {
			return nil
		}
		if sb != nil {
			sb.WriteString(sc.src[sc.pos : sc.pos+size])
		}
		sc.pos += size
	}
	return nil
}

// skipWhile is scanWhile without collecting the matched text.
func (sc *scanner) skipWhile(pred func(rune) bool) error {
	return sc.scanWhile(nil, pred) //errtrace:skip
}

// scanPct consumes a pct-encoded triplet, writing its canonical
// upper case form.
func (sc *scanner) scanPct(sb *strings.Builder) error {
	if sc.pos+2 >= len(sc.src) || !ishex(sc.src[sc.pos+1]) || !ishex(sc.src[sc.pos+2]) {
		return newParseErr(ErrInvalidPctEnc, "at offset %d", sc.pos) //errtrace:skip
	}
	if sb != nil {
		sb.WriteByte('%')
		sb.WriteByte(uphex(sc.src[sc.pos+1]))
		sb.WriteByte(uphex(sc.src[sc.pos+2]))
	}
	sc.pos += 3
	return nil
}

// scanScheme matches scheme ":". A missing colon is a hard failure
// rather than a backtrack point: no other absolute-IRI production can
// begin with scheme characters.
func (sc *scanner) scanScheme(p *Parts) error {
	r, _ := utf8.DecodeRuneInString(sc.src[sc.pos:])
	if !IsAlphaChar(r) {
		return newParseErr(ErrInvalidSchemeHead, "got %q", r) //errtrace:skip
	}
	start := sc.pos
	for !sc.eof() && IsSchemeChar(rune(sc.src[sc.pos])) {
		sc.pos++
	}
	if !sc.acceptByte(':') {
		switch sc.peekByte() {
		case 0, '/', '?', '#':
			return newParseErr(ErrMissingSchemeColon) //errtrace:skip
		}
		r, _ := utf8.DecodeRuneInString(sc.src[sc.pos:])
		return newParseErr(ErrInvalidSchemeChar, "got %q", r) //errtrace:skip
	}
	p.Scheme = util.LCase(sc.src[start : sc.pos-1])
	p.HasScheme = true
	return nil
}

// scanHierPart matches ihier-part (schemed) or irelative-part.
// The alternatives are ordered: the authority form wins on a "//"
// prefix, then path-absolute, then path-rootless / path-noscheme,
// then path-empty.
func (sc *scanner) scanHierPart(p *Parts, schemed bool) error {
	if sc.hasPrefix("//") {
		sc.pos += 2
		p.HasAuth = true
		if err := sc.scanAuthority(p); err != nil {
			return err //errtrace:skip
		}
		return sc.scanPathAbempty(p) //errtrace:skip
	}

	var sb strings.Builder
	switch {
	case sc.peekByte() == '/':
		// path-absolute
		sb.WriteByte('/')
		sc.pos++
		if sc.startsSegment(false) {
			if err := sc.scanSegment(&sb, false); err != nil {
				return err //errtrace:skip
			}
			if err := sc.scanSegments(&sb); err != nil {
				return err //errtrace:skip
			}
		}
	case sc.startsSegment(!schemed):
		// path-rootless, or path-noscheme with a colon-free head segment
		if err := sc.scanSegment(&sb, !schemed); err != nil {
			return err //errtrace:skip
		}
		if err := sc.scanSegments(&sb); err != nil {
			return err //errtrace:skip
		}
	default:
		// path-empty
	}
	p.Path = sb.String()
	return nil
}

// scanAuthority matches [ iuserinfo "@" ] ihost [ ":" port ].
func (sc *scanner) scanAuthority(p *Parts) error {
	save := sc.pos
	var ui strings.Builder
	err := sc.scanWhile(&ui, func(r rune) bool {
		return IsIUnreservedChar(r) || IsSubDelimChar(r) || r == ':'
	})
	if err == nil && sc.acceptByte('@') {
		p.Userinfo = ui.String()
		p.HasUserinfo = true
	} else {
		sc.pos = save
	}

	host, err := sc.scanHost()
	if err != nil {
		return err //errtrace:skip
	}
	p.Host = host

	if sc.acceptByte(':') {
		start := sc.pos
		for !sc.eof() && IsDigitChar(rune(sc.src[sc.pos])) {
			sc.pos++
		}
		p.Port = sc.src[start:sc.pos]
		p.HasPort = true
		switch sc.peekByte() {
		case 0, '/', '?', '#':
		default:
			return newParseErr(ErrInvalidPort, "at offset %d", sc.pos) //errtrace:skip
		}
	}
	return nil
}

// scanHost matches ihost with the ordered alternatives IP-literal,
// IPv4address, ireg-name. A dotted quad is preferred over the
// reg-name reading, but reg-name remains the fallback whenever the
// quad would not cover the whole host.
func (sc *scanner) scanHost() (string, error) {
	if sc.peekByte() == '[' {
		return errtrace.Wrap2(sc.scanIPLiteral())
	}

	save := sc.pos
	if v4, ok := sc.scanIPv4(); ok && !sc.startsRegName() {
		return v4, nil
	}
	sc.pos = save

	var sb strings.Builder
	if err := sc.scanWhile(&sb, func(r rune) bool {
		return IsIUnreservedChar(r) || IsSubDelimChar(r)
	}); err != nil {
		return "", err //errtrace:skip
	}
	return sb.String(), nil
}

func (sc *scanner) startsRegName() bool {
	if sc.eof() {
		return false
	}
	if sc.src[sc.pos] == '%' {
		return true
	}
	r, _ := utf8.DecodeRuneInString(sc.src[sc.pos:])
	return IsIUnreservedChar(r) || IsSubDelimChar(r)
}

// scanIPLiteral matches "[" ( IPv6address / IPvFuture ) "]".
func (sc *scanner) scanIPLiteral() (string, error) {
	start := sc.pos
	sc.pos++ // '['
	end := strings.IndexByte(sc.src[sc.pos:], ']')
	if end < 0 {
		return "", newParseErr(ErrInvalidHostLiteral, "missing ']'") //errtrace:skip
	}
	inner := sc.src[sc.pos : sc.pos+end]
	if !isIPv6(inner) && !isIPvFuture(inner) {
		return "", newParseErr(ErrInvalidHostLiteral, "%q", inner) //errtrace:skip
	}
	sc.pos += end + 1
	return sc.src[start:sc.pos], nil
}

// scanIPv4 attempts to match exactly four dot-separated dec-octets.
func (sc *scanner) scanIPv4() (string, bool) {
	start := sc.pos
	for i := 0; i < 4; i++ {
		if i > 0 && !sc.acceptByte('.') {
			sc.pos = start
			return "", false
		}
		ds := sc.pos
		for !sc.eof() && IsDigitChar(rune(sc.src[sc.pos])) && sc.pos-ds < 3 {
			sc.pos++
		}
		if !IsDecOctet(sc.src[ds:sc.pos]) {
			sc.pos = start
			return "", false
		}
	}
	return sc.src[start:sc.pos], true
}

// isIPv6 validates an IPv6 address by counting h16 groups around at
// most one "::" elision. An IPv4 tail counts as two groups and may
// only close the address. Without an elision exactly eight groups
// are required; with one, the explicit groups must fit in seven.
func isIPv6(s string) bool {
	left := s
	var right string
	var elided bool
	if i := strings.Index(s, "::"); i >= 0 {
		if strings.Contains(s[i+2:], "::") {
			return false
		}
		left, right, elided = s[:i], s[i+2:], true
	}
	ln, ok := countH16Groups(left, !elided)
	if !ok {
		return false
	}
	rn, ok := countH16Groups(right, elided)
	if !ok {
		return false
	}
	if elided {
		return ln+rn <= 7
	}
	return ln == 8
}

func countH16Groups(part string, allowV4 bool) (int, bool) {
	if part == "" {
		return 0, true
	}
	groups := strings.Split(part, ":")
	n := 0
	for i, g := range groups {
		if i == len(groups)-1 && allowV4 && strings.Contains(g, ".") {
			if !isIPv4(g) {
				return 0, false
			}
			n += 2
			continue
		}
		if !isH16(g) {
			return 0, false
		}
		n++
	}
	return n, true
}

func isIPv4(s string) bool {
	octets := strings.Split(s, ".")
	if len(octets) != 4 {
		return false
	}
	for _, o := range octets {
		if !IsDecOctet(o) {
			return false
		}
	}
	return true
}

// isIPvFuture validates "v" 1*HEXDIG "." 1*( unreserved / sub-delims / ":" ).
func isIPvFuture(s string) bool {
	if len(s) < 4 || s[0] != 'v' && s[0] != 'V' {
		return false
	}
	i := 1
	for i < len(s) && ishex(s[i]) {
		i++
	}
	if i == 1 || i >= len(s) || s[i] != '.' {
		return false
	}
	tail := s[i+1:]
	if tail == "" {
		return false
	}
	for _, r := range tail {
		if !IsUnreservedChar(r) && !IsSubDelimChar(r) && r != ':' {
			return false
		}
	}
	return true
}

// scanPathAbempty matches *( "/" isegment ).
func (sc *scanner) scanPathAbempty(p *Parts) error {
	var sb strings.Builder
	if err := sc.scanSegments(&sb); err != nil {
		return err //errtrace:skip
	}
	p.Path = sb.String()
	return nil
}

func (sc *scanner) scanSegments(sb *strings.Builder) error {
	for sc.peekByte() == '/' {
		sb.WriteByte('/')
		sc.pos++
		if err := sc.scanSegment(sb, false); err != nil {
			return err //errtrace:skip
		}
	}
	return nil
}

// scanSegment matches *ipchar, excluding ':' when noColon is set
// (the isegment-nz-nc rule for the head of a path-noscheme).
func (sc *scanner) scanSegment(sb *strings.Builder, noColon bool) error {
	return sc.scanWhile(sb, func(r rune) bool { //errtrace:skip
		if noColon && r == ':' {
			return false
		}
		return IsIPChar(r)
	})
}

// startsSegment reports whether the cursor can begin a non-empty
// segment.
func (sc *scanner) startsSegment(noColon bool) bool {
	if sc.eof() {
		return false
	}
	if sc.src[sc.pos] == '%' {
		return true
	}
	r, _ := utf8.DecodeRuneInString(sc.src[sc.pos:])
	if noColon && r == ':' {
		return false
	}
	return IsIPChar(r)
}

// scanQueryFragment matches [ "?" iquery ] [ "#" ifragment ].
func (sc *scanner) scanQueryFragment(p *Parts) error {
	if sc.acceptByte('?') {
		var sb strings.Builder
		if err := sc.scanWhile(&sb, func(r rune) bool {
			return IsIPChar(r) || IsIPrivateChar(r) || r == '/' || r == '?'
		}); err != nil {
			return err //errtrace:skip
		}
		p.Query = sb.String()
		p.HasQuery = true
	}
	if sc.acceptByte('#') {
		var sb strings.Builder
		if err := sc.scanWhile(&sb, func(r rune) bool {
			return IsIPChar(r) || r == '/' || r == '?'
		}); err != nil {
			return err //errtrace:skip
		}
		p.Fragment = sb.String()
		p.HasFragment = true
	}
	return nil
}
