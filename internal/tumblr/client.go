package tumblr

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/takak2166/tumblr2ghost/internal/logger"
	"github.com/takak2166/tumblr2ghost/internal/models"
)

const (
	DefaultBaseURL  = "https://api.tumblr.com/v2"
	DefaultPageSize = 20
	defaultTimeout  = 30 * time.Second

	// maxPreallocPages bounds how much of a reported post count is
	// allocated up front
	maxPreallocPages = 50
)

// Config configures a Client
type Config struct {
	APIKey            string
	BaseURL           string
	PageSize          int
	RequestsPerSecond float64
	Timeout           time.Duration
	// Doer replaces the default http.Client, mainly for tests
	Doer Doer
}

// Client reads posts from the Tumblr v2 API
type Client struct {
	doer     Doer
	baseURL  string
	apiKey   string
	pageSize int
	limiter  *rate.Limiter
}

// New creates a new Tumblr client
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("tumblr API key is not set")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Doer == nil {
		cfg.Doer = &http.Client{Timeout: cfg.Timeout}
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	return &Client{
		doer:     cfg.Doer,
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:   cfg.APIKey,
		pageSize: cfg.PageSize,
		limiter:  limiter,
	}, nil
}

// NormalizeBlog strips the scheme, path and surrounding whitespace from a
// blog URL so "https://staff.tumblr.com/" becomes "staff.tumblr.com".
func NormalizeBlog(blog string) string {
	blog = strings.TrimSpace(blog)
	if i := strings.Index(blog, "://"); i >= 0 {
		blog = blog[i+3:]
	}
	if i := strings.IndexByte(blog, '/'); i >= 0 {
		blog = blog[:i]
	}
	return blog
}

// PostCount returns the number of posts the blog reports
func (c *Client) PostCount(ctx context.Context, blog string) (int, error) {
	blog = NormalizeBlog(blog)
	if blog == "" {
		return 0, &InvalidSourceError{Blog: blog, Err: fmt.Errorf("empty blog identifier")}
	}

	resp, err := c.get(ctx, blog, "info", nil)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, &InvalidSourceError{Blog: blog, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var info models.InfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return 0, &InvalidSourceError{Blog: blog, Err: fmt.Errorf("failed to parse blog info: %w", err)}
	}
	if info.Response.Blog == nil || info.Response.Blog.Posts == nil {
		return 0, &InvalidSourceError{Blog: blog, Err: fmt.Errorf("blog info has no post count")}
	}

	count := *info.Response.Blog.Posts
	if count < 0 {
		return 0, &InvalidSourceError{Blog: blog, Err: fmt.Errorf("negative post count %d", count)}
	}
	logger.Info("Fetched blog info", map[string]interface{}{
		"blog":        blog,
		"posts_count": count,
	})
	return count, nil
}

// Page fetches one page of posts starting at offset
func (c *Client) Page(ctx context.Context, blog string, offset int) ([]models.RawPost, error) {
	blog = NormalizeBlog(blog)
	query := url.Values{}
	query.Set("offset", strconv.Itoa(offset))
	query.Set("limit", strconv.Itoa(c.pageSize))

	resp, err := c.get(ctx, blog, "posts", query)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("unexpected status %d at offset %d: %s", resp.StatusCode, offset, string(body))
	}

	var page models.PostsResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("failed to parse posts at offset %d: %w", offset, err)
	}

	logger.Debug("Fetched page", map[string]interface{}{
		"blog":   blog,
		"offset": offset,
		"posts":  len(page.Response.Posts),
	})
	return page.Response.Posts, nil
}

// FetchAll reads every post of the blog in source order, one page at a time
func (c *Client) FetchAll(ctx context.Context, blog string) ([]models.RawPost, error) {
	count, err := c.PostCount(ctx, blog)
	if err != nil {
		return nil, err
	}

	posts := make([]models.RawPost, 0, min(count, c.pageSize*maxPreallocPages))
	for offset := 0; offset < count; offset += c.pageSize {
		page, err := c.Page(ctx, blog, offset)
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			logger.Warn("Blog returned an empty page before its reported post count", map[string]interface{}{
				"blog":     NormalizeBlog(blog),
				"offset":   offset,
				"expected": count,
				"fetched":  len(posts),
			})
			break
		}
		posts = append(posts, page...)
	}

	return posts, nil
}

func (c *Client) get(ctx context.Context, blog, resource string, query url.Values) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	if query == nil {
		query = url.Values{}
	}
	query.Set("api_key", c.apiKey)
	endpoint := fmt.Sprintf("%s/blog/%s/%s?%s", c.baseURL, url.PathEscape(blog), resource, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.doer.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", resource, err)
	}
	return resp, nil
}
