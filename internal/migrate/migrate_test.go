package migrate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/takak2166/tumblr2ghost/internal/converter"
	"github.com/takak2166/tumblr2ghost/internal/models"
	"github.com/takak2166/tumblr2ghost/internal/tumblr"
)

type stubSource struct {
	posts []models.RawPost
	err   error
	blogs []string
}

func (s *stubSource) FetchAll(_ context.Context, blog string) ([]models.RawPost, error) {
	s.blogs = append(s.blogs, blog)
	return s.posts, s.err
}

func testOptions() converter.Options {
	return converter.Options{Now: func() time.Time { return time.UnixMilli(1700000000000) }}
}

func TestRun(t *testing.T) {
	source := &stubSource{posts: []models.RawPost{
		{Type: "text", Title: "Hi", Body: "<p>hi</p>", Tags: []string{"hello"}, Timestamp: 5},
	}}
	m := New(source, testOptions(), false)

	doc, err := m.Run(context.Background(), "staff")
	require.NoError(t, err)

	assert.Equal(t, []string{"staff"}, source.blogs)
	assert.Len(t, doc.Data.Posts, 1)
	assert.Len(t, doc.Data.Tags, 1)
	assert.Equal(t, int64(1700000000000), doc.Meta.ExportedOn)
}

func TestRunKeepsInvalidSource(t *testing.T) {
	source := &stubSource{err: &tumblr.InvalidSourceError{Blog: "nope"}}
	m := New(source, testOptions(), false)

	_, err := m.Run(context.Background(), "nope")
	assert.True(t, errors.Is(err, tumblr.ErrInvalidSource))
}

func TestRunWithoutSource(t *testing.T) {
	_, err := New(nil, testOptions(), false).Run(context.Background(), "staff")
	assert.Error(t, err)
}

func TestConvertRunsAreIndependent(t *testing.T) {
	m := New(nil, testOptions(), false)
	posts := []models.RawPost{{Type: "text", Title: "Same", Tags: []string{"a"}}}

	first := m.Convert(posts)
	second := m.Convert(posts)

	assert.Equal(t, first.Data, second.Data)
	assert.Equal(t, 1, second.Data.Tags[0].ID)
	assert.Equal(t, "same-1", second.Data.Posts[0].Slug)
}

func TestWriteJSON(t *testing.T) {
	doc := New(nil, testOptions(), false).Convert(nil)

	t.Run("Plain", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, New(nil, testOptions(), false).WriteJSON(&buf, doc))
		assert.JSONEq(t,
			`{"meta":{"exported_on":1700000000000,"version":"000"},"data":{"posts":[],"tags":[],"posts_tags":[]}}`,
			buf.String())
	})

	t.Run("Wrapped", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, New(nil, testOptions(), true).WriteJSON(&buf, doc))

		var out map[string][]models.GhostExport
		require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
		require.Len(t, out["db"], 1)
		assert.Equal(t, "000", out["db"][0].Meta.Version)
	})
}
