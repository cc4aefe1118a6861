// Package migrate wires a post source to the converter and writes the
// resulting Ghost import file.
package migrate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/takak2166/tumblr2ghost/internal/converter"
	"github.com/takak2166/tumblr2ghost/internal/logger"
	"github.com/takak2166/tumblr2ghost/internal/models"
)

// PostSource yields every post of a blog in source order
type PostSource interface {
	FetchAll(ctx context.Context, blog string) ([]models.RawPost, error)
}

// Migrator converts a blog into a Ghost import document
type Migrator struct {
	source PostSource
	opts   converter.Options
	wrapDB bool
}

// New creates a Migrator. source may be nil when only Convert is used.
func New(source PostSource, opts converter.Options, wrapDB bool) *Migrator {
	return &Migrator{source: source, opts: opts, wrapDB: wrapDB}
}

// Run fetches every post of blog and converts them
func (m *Migrator) Run(ctx context.Context, blog string) (*models.GhostExport, error) {
	if m.source == nil {
		return nil, fmt.Errorf("no post source configured")
	}

	posts, err := m.source.FetchAll(ctx, blog)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch posts: %w", err)
	}

	return m.Convert(posts), nil
}

// Convert assembles already loaded posts. Each call is an independent run.
func (m *Migrator) Convert(posts []models.RawPost) *models.GhostExport {
	doc := converter.Assemble(posts, m.opts)

	logger.Info("Export assembled", map[string]interface{}{
		"posts":      len(doc.Data.Posts),
		"tags":       len(doc.Data.Tags),
		"posts_tags": len(doc.Data.PostsTags),
	})

	return doc
}

type dbEnvelope struct {
	DB []*models.GhostExport `json:"db"`
}

// WriteJSON encodes doc to w, wrapped in {"db":[...]} when configured
func (m *Migrator) WriteJSON(w io.Writer, doc *models.GhostExport) error {
	var v interface{} = doc
	if m.wrapDB {
		v = dbEnvelope{DB: []*models.GhostExport{doc}}
	}

	if err := json.NewEncoder(w).Encode(v); err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}
	return nil
}
