package tumblr

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/takak2166/tumblr2ghost/internal/logger"
	"github.com/takak2166/tumblr2ghost/internal/models"
)

// LoadFile reads posts saved from the API. The file holds either a JSON
// array of posts or a /posts response envelope.
func LoadFile(filepath string) ([]models.RawPost, error) {
	logger.Debug("Reading Tumblr posts file", map[string]interface{}{
		"filepath": filepath,
	})

	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var posts []models.RawPost
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("[")) {
		if err := json.Unmarshal(data, &posts); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	} else {
		var envelope models.PostsResponse
		if err := json.Unmarshal(data, &envelope); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
		posts = envelope.Response.Posts
	}

	logger.Info("Successfully parsed Tumblr posts file", map[string]interface{}{
		"posts_count": len(posts),
	})

	return posts, nil
}
