package converter

import (
	"strings"

	"github.com/takak2166/tumblr2ghost/internal/models"
)

// placeholderTitle is what a text post without a title resolves to before
// its body is used instead.
const placeholderTitle = "Text"

// BuildTitle derives an ASCII display title of at most 140 characters
// (plus an ellipsis when truncated) from a post.
func BuildTitle(post *models.RawPost) string {
	title := ruleFor(post).title(post)
	if title == placeholderTitle {
		title = stripTags(post.Body)
	}
	return truncateTitle(toASCII(title))
}

func typeTitle(post *models.RawPost) string {
	return capitalize(post.Type)
}

func explicitTitle(post *models.RawPost) string {
	if post.Title != "" {
		return post.Title
	}
	return typeTitle(post)
}

func captionTitle(post *models.RawPost) string {
	if caption := stripTags(post.Caption); caption != "" {
		return caption
	}
	return typeTitle(post)
}

func answerTitle(post *models.RawPost) string {
	return post.Question
}

func quoteTitle(post *models.RawPost) string {
	return strings.ReplaceAll(post.Text, "&#8217;", "'")
}
