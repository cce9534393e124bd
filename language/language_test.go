// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package language

import "testing"

func TestTagRoundTrip(t *testing.T) {
	for _, l := range All() {
		got, ok := ForTag(l.Tag())
		if !ok {
			t.Fatalf("ForTag(%q) not found", l.Tag())
		}
		if got != l {
			t.Errorf("ForTag(%q) = %v, want %v", l.Tag(), got, l)
		}
	}
}

func TestTagsAreUnique(t *testing.T) {
	seen := make(map[string]Language)
	for _, l := range All() {
		if prev, dup := seen[l.Tag()]; dup {
			t.Fatalf("tag %q shared by %v and %v", l.Tag(), prev, l)
		}
		seen[l.Tag()] = l
	}
	if len(seen) != 16 {
		t.Fatalf("expected 16 supported tags, got %d", len(seen))
	}
}

func TestReservedTagsResolveToUnknown(t *testing.T) {
	for _, tag := range []string{UnknownTag, PlainTextTag, "", "not-a-real-tag"} {
		l, ok := ForTag(tag)
		if ok {
			t.Errorf("ForTag(%q) reported ok", tag)
		}
		if l != Unknown {
			t.Errorf("ForTag(%q) = %v, want Unknown", tag, l)
		}
	}
	if Unknown.Tag() != UnknownTag {
		t.Errorf("Unknown.Tag() = %q", Unknown.Tag())
	}
}

func TestDisplayNames(t *testing.T) {
	cases := map[Language]string{
		CPP:     "C++",
		CSharp:  "C#",
		Bash:    "Bash",
		Rust:    "Rust",
		Unknown: "Unknown Language",
	}
	for l, want := range cases {
		if got := l.Name(); got != want {
			t.Errorf("%d.Name() = %q, want %q", int(l), got, want)
		}
	}
}

func TestForTagNormalizesCase(t *testing.T) {
	if l, ok := ForTag(" RS "); !ok || l != Rust {
		t.Fatalf("ForTag(\" RS \") = %v, %v", l, ok)
	}
}

func TestNextCyclesThroughUnknown(t *testing.T) {
	l := Unknown
	for i := 0; i < len(All())+1; i++ {
		l = l.Next()
	}
	if l != Unknown {
		t.Fatalf("expected full cycle to return to Unknown, got %v", l)
	}
	if JavaScript.Next() != Unknown {
		t.Fatalf("last language should wrap to Unknown")
	}
}
