package converter

import "github.com/takak2166/tumblr2ghost/internal/models"

// postRule pairs the title and body rendering for one post variant
type postRule struct {
	title func(*models.RawPost) string
	body  func(*models.RawPost) string
}

var unknownRule = postRule{
	title: explicitTitle,
	body:  func(*models.RawPost) string { return "" },
}

var rules = map[models.PostType]postRule{
	models.PostTypeText:   {title: explicitTitle, body: textBody},
	models.PostTypePhoto:  {title: captionTitle, body: photoBody},
	models.PostTypeQuote:  {title: quoteTitle, body: quoteBody},
	models.PostTypeLink:   {title: explicitTitle, body: linkBody},
	models.PostTypeAudio:  {title: captionTitle, body: audioBody},
	models.PostTypeVideo:  {title: captionTitle, body: videoBody},
	models.PostTypeAnswer: {title: answerTitle, body: answerBody},
}

func ruleFor(post *models.RawPost) postRule {
	if r, ok := rules[post.Kind()]; ok {
		return r
	}
	return unknownRule
}
