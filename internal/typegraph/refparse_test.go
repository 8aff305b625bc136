package typegraph

import "testing"

func TestParseRef(t *testing.T) {
	tests := []struct {
		src      string
		expected string // round-tripped via String()
	}{
		{"Reader", "Reader"},
		{"io.Reader", "io.Reader"},
		{"List<Int>", "List<Int>"},
		{"Map<String, List<Int>>", "Map<String, List<Int>>"},
		{"io.Reader with io.Closeable", "io.Reader with io.Closeable"},
		{"A with B<C> with D", "A with B<C> with D"},
		{"  a.B < Int , String > ", "a.B<Int, String>"},
		{"Cache<K, V> with Closeable", "Cache<K, V> with Closeable"},
		{"withable", "withable"}, // "with" only as a whole word
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.src, func(t *testing.T) {
			t.Parallel()
			ref, err := ParseRef(tt.src)
			if err != nil {
				t.Fatalf("ParseRef(%q) failed: %v", tt.src, err)
			}
			if got := ref.String(); got != tt.expected {
				t.Errorf("ParseRef(%q).String() = %q; want %q", tt.src, got, tt.expected)
			}
		})
	}
}

func TestParseRefErrors(t *testing.T) {
	bad := []string{
		"",
		"List<Int",
		"List<Int;>",
		"a..B",
		".Reader",
		"Reader.",
		"A with",
		"A B",
	}

	for _, src := range bad {
		src := src
		t.Run(src, func(t *testing.T) {
			t.Parallel()
			if _, err := ParseRef(src); err == nil {
				t.Errorf("ParseRef(%q) succeeded; want error", src)
			}
		})
	}
}

func TestParseRefIntersectionFlattening(t *testing.T) {
	ref, err := ParseRef("A with B with C")
	if err != nil {
		t.Fatalf("ParseRef failed: %v", err)
	}
	if !ref.IsIntersection() {
		t.Fatal("expected an intersection reference")
	}
	if len(ref.Parts) != 3 {
		t.Errorf("len(Parts) = %d; want 3", len(ref.Parts))
	}
}
