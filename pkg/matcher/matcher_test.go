package matcher

import (
	"testing"
)

func compileAll(t *testing.T, sources ...string) []*Pattern {
	t.Helper()
	out := make([]*Pattern, 0, len(sources))
	for _, s := range sources {
		p, err := Compile(s)
		if err != nil {
			t.Fatalf("failed to compile %q: %v", s, err)
		}
		out = append(out, p)
	}
	return out
}

func TestCompile(t *testing.T) {
	tests := []struct {
		source   string
		anchored bool
	}{
		{"foo", false},
		{"^foo", true},
		{"^Фу", true},
		{"^(foo|bar)", false},
		{"^[fb]oo", false},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			p, err := Compile(tt.source)
			if err != nil {
				t.Fatalf("Compile(%q) unexpected error: %v", tt.source, err)
			}
			if p.Anchored() != tt.anchored {
				t.Errorf("Compile(%q).Anchored() = %v; want %v", tt.source, p.Anchored(), tt.anchored)
			}
		})
	}
}

func TestCompileInvalid(t *testing.T) {
	if _, err := Compile("(unclosed"); err == nil {
		t.Fatal("want error for malformed pattern")
	}
}

func TestSearch(t *testing.T) {
	candidates := compileAll(t, "^fr[o0]g", "toad", "frog+y", "o")

	tests := []struct {
		name        string
		word        string
		wantOK      bool
		wantMatch   string
		wantPattern string
	}{
		{"First pattern wins", "froggy", true, "frog", "^fr[o0]g"},
		{"Case-insensitive", "FROG", true, "FROG", "^fr[o0]g"},
		{"Anchored pattern skipped", "tfrog", true, "o", "o"},
		{"Unanchored", "mytoad", true, "toad", "toad"},
		{"No match", "lizard", false, "", ""},
		{"Empty word", "", false, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Search(tt.word, candidates, nil)
			if ok != tt.wantOK {
				t.Fatalf("Search(%q) ok = %v; want %v", tt.word, ok, tt.wantOK)
			}
			if got.Match != tt.wantMatch || got.Pattern != tt.wantPattern {
				t.Errorf("Search(%q) = %+v; want match %q pattern %q", tt.word, got, tt.wantMatch, tt.wantPattern)
			}
		})
	}
}

func TestSearchUnicode(t *testing.T) {
	candidates := compileAll(t, "^жаб[аы]")

	got, ok := Search("ЖАБА", candidates, nil)
	if !ok {
		t.Fatal("want match for upper-case Cyrillic word")
	}
	if got.Match != "ЖАБА" {
		t.Errorf("want match %q, got %q", "ЖАБА", got.Match)
	}
}

func TestApplicable(t *testing.T) {
	candidates := compileAll(t, "^frog", "^Toad", "newt", "^(frog|toad)")

	tests := []struct {
		word string
		want []string
	}{
		{"frog", []string{"^frog", "newt", "^(frog|toad)"}},
		{"Toad", []string{"^Toad", "newt", "^(frog|toad)"}},
		{"toad", []string{"^Toad", "newt", "^(frog|toad)"}},
		{"newt", []string{"newt", "^(frog|toad)"}},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			got := applicable(tt.word, candidates)
			if len(got) != len(tt.want) {
				t.Fatalf("applicable(%q) returned %d patterns; want %d", tt.word, len(got), len(tt.want))
			}
			for i, p := range got {
				if p.Source != tt.want[i] {
					t.Errorf("applicable(%q)[%d] = %q; want %q", tt.word, i, p.Source, tt.want[i])
				}
			}
		})
	}
}

func TestSearchTrace(t *testing.T) {
	// The word "frog" also matches "^f.*" and "f"; the anchored "^t" entry
	// must never be evaluated, the first applicable one wins.
	candidates := compileAll(t, "^t", "^f.*", "f")

	var traces [][2]string
	tr := TracerFunc(func(word, pattern string) {
		traces = append(traces, [2]string{word, pattern})
	})

	if _, ok := Search("frog", candidates, tr); !ok {
		t.Fatal("want match for \"frog\"")
	}
	if len(traces) != 1 {
		t.Fatalf("want exactly 1 trace, got %d", len(traces))
	}
	if traces[0] != [2]string{"frog", "^f.*"} {
		t.Errorf("want trace (frog, ^f.*), got %v", traces[0])
	}

	traces = nil
	if _, ok := Search("newt", candidates, tr); ok {
		t.Fatal("want no match for \"newt\"")
	}
	if len(traces) != 0 {
		t.Errorf("want no traces without a match, got %d", len(traces))
	}
}
