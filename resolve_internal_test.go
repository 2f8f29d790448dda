package iri

import "testing"

func TestRemoveDotSegments(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"/", "/"},
		{"/a/b/c", "/a/b/c"},
		{"/a/b/../c", "/a/c"},
		{"/a/b/./c", "/a/b/c"},
		{"/a/..", "/"},
		{"/a/.", "/a/"},
		{"/..", "/"},
		{"/.", "/"},
		{"/../..", "/"},
		{"/a/b/c/../../../g", "/g"},
		{"/a/b/c/./../../g", "/a/g"},
		{"mid/content=5/../6", "mid/6"},
		{"../g", "g"},
		{"./g", "g"},
		{".", ""},
		{"..", ""},
		{"a/..", "/"},
		{"a/.", "a/"},
		{"/a//../b", "/a/b"},
		{"/a//./b", "/a//b"},
		{"//", "//"},
		{"/a/b/..", "/a/"},
	}

	for _, c := range cases {
		c := c
		t.Run(c.in, func(t *testing.T) {
			t.Parallel()

			if got := removeDotSegments(c.in); got != c.want {
				t.Errorf("removeDotSegments(%q) = %q, want %q", c.in, got, c.want)
			}
		})
	}
}

func TestMergePaths(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		base Ref
		ref  string
		want string
	}{
		{
			"empty base path with authority roots the reference",
			Ref{host: "h", hasAuth: true},
			"g", "/g",
		},
		{
			"reference replaces the last segment",
			Ref{host: "h", hasAuth: true, path: "/a/b"},
			"g", "/a/g",
		},
		{
			"trailing slash keeps every base segment",
			Ref{host: "h", hasAuth: true, path: "/a/b/"},
			"g", "/a/b/g",
		},
		{
			"slashless base path is replaced entirely",
			Ref{scheme: "s", hasScheme: true, path: "a"},
			"g", "g",
		},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := mergePaths(&c.base, c.ref); got != c.want {
				t.Errorf("mergePaths(%v, %q) = %q, want %q", &c.base, c.ref, got, c.want)
			}
		})
	}
}

func TestRef_IsValid_invalid(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		ref  Ref
	}{
		{"bad scheme", Ref{scheme: "1http", hasScheme: true, path: "/p"}},
		{"space in path", Ref{path: "/a b"}},
		{"userinfo without authority", Ref{userinfo: "u", hasUserinfo: true, path: "p"}},
		{"port without authority", Ref{port: "80", hasPort: true, path: "p"}},
		{"bad host literal", Ref{host: "[nope", hasAuth: true}},
		{"unrooted path with authority", Ref{host: "h", hasAuth: true, path: "p"}},
		{"authorityless path starting with double slash", Ref{scheme: "s", hasScheme: true, path: "//p"}},
		{"colon in bare head segment", Ref{path: "a:b"}},
		{"bad pct in query", Ref{path: "/p", query: "%zz", hasQuery: true}},
		{"iprivate in fragment", Ref{path: "/p", fragment: "", hasFragment: true}},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if c.ref.IsValid() {
				t.Errorf("IsValid() = true for %+v, want false", c.ref)
			}
		})
	}
}
