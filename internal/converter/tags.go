package converter

import (
	"strings"

	"github.com/takak2166/tumblr2ghost/internal/models"
)

// TagRegistry deduplicates tags across one export run and hands out
// sequential ids in first-seen order. Not safe for concurrent use.
type TagRegistry struct {
	authorID int
	tags     []models.Tag
	bySlug   map[string]int // slug -> index into tags
}

// NewTagRegistry returns an empty registry whose tags are owned by authorID
func NewTagRegistry(authorID int) *TagRegistry {
	return &TagRegistry{
		authorID: authorID,
		bySlug:   make(map[string]int),
	}
}

// NormalizeTag turns a tag string into its slug
func NormalizeTag(tag string) string {
	slug := strings.ToLower(tag)
	slug = strings.TrimRight(slug, ",")
	return strings.ReplaceAll(slug, " ", "-")
}

// Resolve returns the tags for one post in input order, registering the
// ones not seen before. createdAt stamps newly registered tags. Names that
// normalise to the same slug collapse to one tag; empty slugs are skipped.
func (r *TagRegistry) Resolve(names []string, createdAt int64) []models.Tag {
	var resolved []models.Tag
	inPost := make(map[string]bool, len(names))

	for _, name := range names {
		slug := NormalizeTag(name)
		if slug == "" || inPost[slug] {
			continue
		}
		inPost[slug] = true

		idx, ok := r.bySlug[slug]
		if !ok {
			idx = len(r.tags)
			r.tags = append(r.tags, models.Tag{
				ID:        idx + 1,
				Name:      titleCase(name),
				Slug:      slug,
				CreatedAt: createdAt,
				CreatedBy: r.authorID,
				UpdatedAt: createdAt,
				UpdatedBy: r.authorID,
			})
			r.bySlug[slug] = idx
		}
		resolved = append(resolved, r.tags[idx])
	}

	return resolved
}

// Tags returns every registered tag in id order
func (r *TagRegistry) Tags() []models.Tag {
	out := make([]models.Tag, len(r.tags))
	copy(out, r.tags)
	return out
}
