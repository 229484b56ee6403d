package i18n

import "testing"

func TestParse(t *testing.T) {
	t.Parallel()

	if lang, ok := Parse(" VI "); !ok || lang != Vietnamese {
		t.Fatalf("Parse(VI) = %v, %v", lang, ok)
	}
	if lang, ok := Parse("en"); !ok || lang != English {
		t.Fatalf("Parse(en) = %v, %v", lang, ok)
	}
	if _, ok := Parse("fr"); ok {
		t.Fatal("Parse(fr) accepted an unsupported language")
	}
	if _, ok := Parse(""); ok {
		t.Fatal("Parse(empty) accepted")
	}
}

func TestOther(t *testing.T) {
	t.Parallel()

	if Vietnamese.Other() != English {
		t.Fatalf("Vietnamese.Other() = %v", Vietnamese.Other())
	}
	if English.Other() != Vietnamese {
		t.Fatalf("English.Other() = %v", English.Other())
	}
}

func TestMatchAcceptLanguage(t *testing.T) {
	t.Parallel()

	cases := []struct {
		header string
		want   Language
		ok     bool
	}{
		{"vi-VN,vi;q=0.9,en;q=0.8", Vietnamese, true},
		{"en-US,en;q=0.9", English, true},
		{"en-GB", English, true},
		{"", "", false},
		{";;;", "", false},
	}
	for _, tc := range cases {
		got, ok := MatchAcceptLanguage(tc.header)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Fatalf("MatchAcceptLanguage(%q) = %v, %v; want %v, %v", tc.header, got, ok, tc.want, tc.ok)
		}
	}
}
