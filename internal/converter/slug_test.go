package converter

import "testing"

func TestSlugFromTitle(t *testing.T) {
	tests := []struct {
		title    string
		expected string
	}{
		{"Hello World", "hello-world"},
		{"Hello, World! It's me", "hello-world-its-me"},
		{"  spaced   out  ", "spaced-out"},
		{"Café au lait", "cafe-au-lait"},
		{"!!!", ""},
		{"Привет мир", "privet-mir"},
		{"Łódź", "lodz"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			if got := SlugFromTitle(tt.title); got != tt.expected {
				t.Errorf("SlugFromTitle(%q) = %q, want %q", tt.title, got, tt.expected)
			}
		})
	}
}

func TestSlugAssigner(t *testing.T) {
	a := NewSlugAssigner()

	steps := []struct {
		name       string
		title      string
		sourceSlug string
		ordinal    int
		expected   string
	}{
		{"Source slug free", "Hello World", "my-slug", 1, "my-slug"},
		{"Source slug taken", "Hello World", "my-slug", 2, "hello-world-2"},
		{"No source slug", "Hello World", "", 3, "hello-world-3"},
		{"Empty title", "", "", 4, "post-4"},
		{"Source slug shaped like derived", "Other", "hello-world-5", 5, "hello-world-5"},
		{"Derived collides with source", "Hello World", "", 5, "hello-world-5-2"},
	}

	for _, s := range steps {
		t.Run(s.name, func(t *testing.T) {
			got := a.Assign(s.title, s.sourceSlug, s.ordinal)
			if got != s.expected {
				t.Errorf("Assign() = %q, want %q", got, s.expected)
			}
			if !a.Used(got) {
				t.Errorf("Expected %q to be registered", got)
			}
		})
	}
}
