package converter

import (
	"fmt"
	"strings"

	"github.com/takak2166/tumblr2ghost/internal/models"
)

// BuildBody renders the post content as HTML
func BuildBody(post *models.RawPost) string {
	return ruleFor(post).body(post)
}

func textBody(post *models.RawPost) string {
	return post.Body
}

func answerBody(post *models.RawPost) string {
	return post.Answer
}

func linkBody(post *models.RawPost) string {
	return fmt.Sprintf(`<strong><a href="%s">%s</a></strong><p>%s</p>`,
		post.URL, post.Title, toASCII(post.Description))
}

func photoBody(post *models.RawPost) string {
	var b strings.Builder
	b.WriteString("<p>" + post.Caption + "</p>")
	for _, photo := range post.Photos {
		fmt.Fprintf(&b, `<p>%s</p><img src="%s">`, photo.Caption, photo.OriginalSize.URL)
	}
	return b.String()
}

func quoteBody(post *models.RawPost) string {
	return "<blockquote><p>" + post.Text + "</p></blockquote>" + post.Source
}

func audioBody(post *models.RawPost) string {
	return "<p>" + post.Embed + "</p>"
}

// videoBody embeds the widest player; the first one wins a tie
func videoBody(post *models.RawPost) string {
	if len(post.Player) == 0 {
		return ""
	}
	widest := post.Player[0]
	for _, p := range post.Player[1:] {
		if p.Width > widest.Width {
			widest = p
		}
	}
	return "<p>" + string(widest.EmbedCode) + "</p>"
}
