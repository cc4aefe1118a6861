package tumblr

import "net/http"

//go:generate mockgen -source=tumblr.go -destination=mock_tumblr/mock_tumblr.go -package=mock_tumblr
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}
