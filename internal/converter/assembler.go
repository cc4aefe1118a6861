// Package converter turns Tumblr posts into a Ghost import document.
package converter

import (
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/google/uuid"

	"github.com/takak2166/tumblr2ghost/internal/logger"
	"github.com/takak2166/tumblr2ghost/internal/models"
)

const (
	DefaultVersion  = "000"
	DefaultAuthorID = 1

	statusPublished = "published"
	languageEnUS    = "en_US"
)

// Options tunes the assembled document
type Options struct {
	// Version is written to meta.version
	Version string
	// AuthorID owns every post and tag
	AuthorID int
	// ConvertMarkdown renders the markdown field from the html instead of
	// copying the html verbatim
	ConvertMarkdown bool
	// Now stamps meta.exported_on; defaults to time.Now
	Now func() time.Time
}

func (o Options) withDefaults() Options {
	if o.Version == "" {
		o.Version = DefaultVersion
	}
	if o.AuthorID <= 0 {
		o.AuthorID = DefaultAuthorID
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Assembler folds an ordered post sequence into one export document.
// Each Assembler owns the tag and slug state of a single run.
type Assembler struct {
	opts      Options
	tags      *TagRegistry
	slugs     *SlugAssigner
	nextID    int
	posts     []models.ExportPost
	postsTags []models.PostTag
}

// NewAssembler creates an Assembler for one export run
func NewAssembler(opts Options) *Assembler {
	opts = opts.withDefaults()
	return &Assembler{
		opts:      opts,
		tags:      NewTagRegistry(opts.AuthorID),
		slugs:     NewSlugAssigner(),
		nextID:    1,
		posts:     []models.ExportPost{},
		postsTags: []models.PostTag{},
	}
}

// Add converts one post and appends it, with its tag links, to the run
func (a *Assembler) Add(post *models.RawPost) models.ExportPost {
	id := a.nextID
	a.nextID++

	title := BuildTitle(post)
	html := BuildBody(post)
	timestamp := post.Timestamp * 1000

	tags := a.tags.Resolve(uniqueStrings(post.Tags), timestamp)
	slug := a.slugs.Assign(title, post.Slug, id)

	exported := models.ExportPost{
		ID:          id,
		UUID:        postUUID(slug),
		Title:       title,
		Slug:        slug,
		Markdown:    a.markdown(html),
		HTML:        html,
		Status:      statusPublished,
		Language:    languageEnUS,
		AuthorID:    a.opts.AuthorID,
		CreatedAt:   timestamp,
		CreatedBy:   a.opts.AuthorID,
		UpdatedAt:   timestamp,
		UpdatedBy:   a.opts.AuthorID,
		PublishedAt: timestamp,
		PublishedBy: a.opts.AuthorID,
	}
	a.posts = append(a.posts, exported)

	for _, tag := range tags {
		a.postsTags = append(a.postsTags, models.PostTag{PostID: id, TagID: tag.ID})
	}

	logger.Debug("Converted post", map[string]interface{}{
		"id":    id,
		"type":  post.Type,
		"slug":  slug,
		"tags":  len(tags),
		"title": title,
	})

	return exported
}

// Document returns the export document for every post added so far
func (a *Assembler) Document() *models.GhostExport {
	posts := make([]models.ExportPost, len(a.posts))
	copy(posts, a.posts)
	postsTags := make([]models.PostTag, len(a.postsTags))
	copy(postsTags, a.postsTags)

	return &models.GhostExport{
		Meta: models.ExportMeta{
			ExportedOn: a.opts.Now().UnixMilli(),
			Version:    a.opts.Version,
		},
		Data: models.ExportData{
			Posts:     posts,
			Tags:      a.tags.Tags(),
			PostsTags: postsTags,
		},
	}
}

// Assemble converts posts in order into a complete export document
func Assemble(posts []models.RawPost, opts Options) *models.GhostExport {
	a := NewAssembler(opts)
	for i := range posts {
		a.Add(&posts[i])
	}
	return a.Document()
}

func (a *Assembler) markdown(html string) string {
	if !a.opts.ConvertMarkdown || html == "" {
		return html
	}
	md, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		logger.Warn("Markdown conversion failed, keeping html", map[string]interface{}{
			"error": err.Error(),
		})
		return html
	}
	return strings.TrimSpace(md)
}

// postUUID derives a stable uuid from the post slug so repeated exports
// of the same blog produce the same ids
func postUUID(slug string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("ghost-post:"+slug)).String()
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
