package tumblr

import (
	"errors"
	"fmt"
)

// ErrInvalidSource matches every InvalidSourceError via errors.Is
var ErrInvalidSource = errors.New("invalid tumblr blog")

// InvalidSourceError reports that the blog's info could not be retrieved,
// usually because the blog does not exist or the identifier is malformed.
type InvalidSourceError struct {
	Blog string
	Err  error
}

func (e *InvalidSourceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("make sure %q is a valid Tumblr blog URL: %v", e.Blog, e.Err)
	}
	return fmt.Sprintf("make sure %q is a valid Tumblr blog URL", e.Blog)
}

func (e *InvalidSourceError) Unwrap() error {
	return e.Err
}

func (e *InvalidSourceError) Is(target error) bool {
	return target == ErrInvalidSource
}
