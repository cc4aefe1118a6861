package converter

import (
	"regexp"
	"strconv"
	"strings"
)

var nonWordRegex = regexp.MustCompile(`[^\w\s]`)

// SlugAssigner hands out post slugs that are unique within one run
type SlugAssigner struct {
	used map[string]bool
}

// NewSlugAssigner returns an assigner with no slugs taken
func NewSlugAssigner() *SlugAssigner {
	return &SlugAssigner{used: make(map[string]bool)}
}

// SlugFromTitle lower-cases the title, drops punctuation and joins the
// remaining words with hyphens.
func SlugFromTitle(title string) string {
	s := nonWordRegex.ReplaceAllString(strings.ToLower(toASCII(title)), "")
	return strings.Join(strings.Fields(s), "-")
}

// Assign picks the slug for the post with the given ordinal and marks it
// used. The source slug wins when it is free; otherwise the title-derived
// slug is suffixed with the ordinal.
func (a *SlugAssigner) Assign(title, sourceSlug string, ordinal int) string {
	if sourceSlug != "" && !a.used[sourceSlug] {
		a.used[sourceSlug] = true
		return sourceSlug
	}

	base := SlugFromTitle(title)
	if base == "" {
		base = "post"
	}
	slug := base + "-" + strconv.Itoa(ordinal)
	for n := 2; a.used[slug]; n++ {
		slug = base + "-" + strconv.Itoa(ordinal) + "-" + strconv.Itoa(n)
	}

	a.used[slug] = true
	return slug
}

// Used reports whether slug has been handed out
func (a *SlugAssigner) Used(slug string) bool {
	return a.used[slug]
}
