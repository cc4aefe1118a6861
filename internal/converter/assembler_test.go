package converter

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/takak2166/tumblr2ghost/internal/models"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func fixedOptions() Options {
	return Options{Now: func() time.Time { return fixedNow }}
}

func TestAssembleQuoteScenario(t *testing.T) {
	posts := []models.RawPost{
		{Type: "quote", Text: "Hello&#8217;s World", Tags: []string{"Quote", "quote"}, Timestamp: 1000, Slug: ""},
	}

	doc := Assemble(posts, fixedOptions())

	assert.Equal(t, fixedNow.UnixMilli(), doc.Meta.ExportedOn)
	assert.Equal(t, DefaultVersion, doc.Meta.Version)

	require.Len(t, doc.Data.Posts, 1)
	post := doc.Data.Posts[0]
	assert.Equal(t, 1, post.ID)
	assert.Equal(t, "Hello's World", post.Title)
	assert.Equal(t, "<blockquote><p>Hello&#8217;s World</p></blockquote>", post.HTML)
	assert.Equal(t, post.HTML, post.Markdown)
	assert.Equal(t, "hellos-world-1", post.Slug)
	assert.Equal(t, int64(1000000), post.CreatedAt)
	assert.Equal(t, post.CreatedAt, post.UpdatedAt)
	assert.Equal(t, post.CreatedAt, post.PublishedAt)
	assert.Equal(t, "published", post.Status)
	assert.Equal(t, "en_US", post.Language)
	assert.Equal(t, 1, post.AuthorID)
	assert.Nil(t, post.Image)

	require.Len(t, doc.Data.Tags, 1)
	assert.Equal(t, 1, doc.Data.Tags[0].ID)
	assert.Equal(t, "Quote", doc.Data.Tags[0].Name)
	assert.Equal(t, "quote", doc.Data.Tags[0].Slug)

	assert.Equal(t, []models.PostTag{{PostID: 1, TagID: 1}}, doc.Data.PostsTags)
}

func TestAssembleEmpty(t *testing.T) {
	doc := Assemble(nil, fixedOptions())

	assert.Equal(t, fixedNow.UnixMilli(), doc.Meta.ExportedOn)
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"meta":{"exported_on":1714564800000,"version":"000"},"data":{"posts":[],"tags":[],"posts_tags":[]}}`,
		string(data))
}

func TestAssembleUniqueSlugsAndDenseIDs(t *testing.T) {
	posts := []models.RawPost{
		{Type: "text", Title: "Same", Timestamp: 1},
		{Type: "text", Title: "Same", Timestamp: 2},
		{Type: "text", Title: "Same", Slug: "same-1", Timestamp: 3},
		{Type: "photo", Slug: "keep-me", Timestamp: 4},
		{Type: "photo", Slug: "keep-me", Timestamp: 5},
	}

	doc := Assemble(posts, fixedOptions())
	require.Len(t, doc.Data.Posts, len(posts))

	seen := map[string]bool{}
	for i, p := range doc.Data.Posts {
		assert.Equal(t, i+1, p.ID)
		assert.False(t, seen[p.Slug], "duplicate slug %q", p.Slug)
		seen[p.Slug] = true
	}
	assert.Equal(t, "same-1", doc.Data.Posts[0].Slug)
	assert.Equal(t, "same-2", doc.Data.Posts[1].Slug)
	assert.Equal(t, "same-3", doc.Data.Posts[2].Slug)
	assert.Equal(t, "keep-me", doc.Data.Posts[3].Slug)
	assert.Equal(t, "photo-5", doc.Data.Posts[4].Slug)
}

func TestAssembleTagsAcrossPosts(t *testing.T) {
	posts := []models.RawPost{
		{Type: "text", Title: "One", Tags: []string{"go", "Web Dev"}, Timestamp: 10},
		{Type: "text", Title: "Two", Tags: []string{"web dev", "python", "go", "go"}, Timestamp: 20},
	}

	doc := Assemble(posts, fixedOptions())

	require.Len(t, doc.Data.Tags, 3)
	assert.Equal(t, "go", doc.Data.Tags[0].Slug)
	assert.Equal(t, "web-dev", doc.Data.Tags[1].Slug)
	assert.Equal(t, "Web Dev", doc.Data.Tags[1].Name)
	assert.Equal(t, "python", doc.Data.Tags[2].Slug)
	assert.Equal(t, int64(20000), doc.Data.Tags[2].CreatedAt)

	assert.Equal(t, []models.PostTag{
		{PostID: 1, TagID: 1},
		{PostID: 1, TagID: 2},
		{PostID: 2, TagID: 2},
		{PostID: 2, TagID: 3},
		{PostID: 2, TagID: 1},
	}, doc.Data.PostsTags)
}

func TestAssembleDeterministic(t *testing.T) {
	posts := []models.RawPost{
		{Type: "photo", Caption: "Beach", Tags: []string{"summer"}, Timestamp: 100,
			Photos: []models.Photo{{Caption: "c1", OriginalSize: models.PhotoSize{URL: "u1"}}}},
		{Type: "video", Tags: []string{"Summer", "film"}, Timestamp: 200,
			Player: models.Players{{Width: 480, EmbedCode: "A"}, {Width: 1080, EmbedCode: "B"}}},
		{Type: "link", Title: "Read this", URL: "https://example.com", Timestamp: 300},
	}

	first, err := json.Marshal(Assemble(posts, fixedOptions()).Data)
	require.NoError(t, err)
	second, err := json.Marshal(Assemble(posts, fixedOptions()).Data)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestAssemblePostUUID(t *testing.T) {
	posts := []models.RawPost{
		{Type: "text", Title: "A", Slug: "a"},
		{Type: "text", Title: "B", Slug: "b"},
	}

	doc := Assemble(posts, fixedOptions())
	again := Assemble(posts, fixedOptions())

	assert.NotEqual(t, doc.Data.Posts[0].UUID, doc.Data.Posts[1].UUID)
	assert.Equal(t, doc.Data.Posts[0].UUID, again.Data.Posts[0].UUID)
	assert.Len(t, doc.Data.Posts[0].UUID, 36)
}

func TestAssembleOptions(t *testing.T) {
	posts := []models.RawPost{
		{Type: "text", Title: "Bold", Body: "<p><strong>bold</strong></p>", Timestamp: 1, Tags: []string{"x"}},
	}

	doc := Assemble(posts, Options{
		Version:         "003",
		AuthorID:        7,
		ConvertMarkdown: true,
		Now:             func() time.Time { return fixedNow },
	})

	assert.Equal(t, "003", doc.Meta.Version)
	post := doc.Data.Posts[0]
	assert.Equal(t, "<p><strong>bold</strong></p>", post.HTML)
	assert.Equal(t, "**bold**", post.Markdown)
	assert.Equal(t, 7, post.AuthorID)
	assert.Equal(t, 7, post.PublishedBy)
	assert.Equal(t, 7, doc.Data.Tags[0].CreatedBy)
}
