package models

import (
	"encoding/json"
	"strings"
)

// PostType identifies which Tumblr post variant a RawPost carries
type PostType int

const (
	PostTypeUnknown PostType = iota
	PostTypeText
	PostTypePhoto
	PostTypeQuote
	PostTypeLink
	PostTypeAudio
	PostTypeVideo
	PostTypeAnswer
)

var postTypeNames = map[string]PostType{
	"text":   PostTypeText,
	"photo":  PostTypePhoto,
	"quote":  PostTypeQuote,
	"link":   PostTypeLink,
	"audio":  PostTypeAudio,
	"video":  PostTypeVideo,
	"answer": PostTypeAnswer,
}

// ParsePostType maps a Tumblr type name to its PostType.
// Anything unrecognised is PostTypeUnknown.
func ParsePostType(name string) PostType {
	if t, ok := postTypeNames[strings.ToLower(name)]; ok {
		return t
	}
	return PostTypeUnknown
}

// PostsResponse is the envelope returned by the /posts endpoint
type PostsResponse struct {
	Response struct {
		Posts []RawPost `json:"posts"`
	} `json:"response"`
}

// InfoResponse is the envelope returned by the /info endpoint.
// Posts is a pointer so a missing count can be told apart from zero.
type InfoResponse struct {
	Response struct {
		Blog *struct {
			Name  string `json:"name"`
			Title string `json:"title"`
			Posts *int   `json:"posts"`
		} `json:"blog"`
	} `json:"response"`
}

// RawPost is one post as delivered by the Tumblr v2 API
type RawPost struct {
	Type        string   `json:"type"`
	Timestamp   int64    `json:"timestamp"`
	Tags        []string `json:"tags"`
	Slug        string   `json:"slug"`
	Body        string   `json:"body,omitempty"`
	Caption     string   `json:"caption,omitempty"`
	Title       string   `json:"title,omitempty"`
	Question    string   `json:"question,omitempty"`
	Answer      string   `json:"answer,omitempty"`
	Text        string   `json:"text,omitempty"`
	Source      string   `json:"source,omitempty"`
	URL         string   `json:"url,omitempty"`
	Description string   `json:"description,omitempty"`
	Embed       string   `json:"embed,omitempty"`
	Photos      []Photo  `json:"photos,omitempty"`
	Player      Players  `json:"player,omitempty"`
}

// Kind returns the post's variant
func (p *RawPost) Kind() PostType {
	return ParsePostType(p.Type)
}

// Photo is one entry of a photo post's photo set
type Photo struct {
	Caption      string    `json:"caption"`
	OriginalSize PhotoSize `json:"original_size"`
}

// PhotoSize holds the url of one rendition of a photo
type PhotoSize struct {
	URL    string `json:"url"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// Player is one embed rendition of a video post
type Player struct {
	Width     int       `json:"width"`
	EmbedCode EmbedCode `json:"embed_code"`
}

// Players is the player list of a video post. Audio posts send a plain
// string under the same key, which decodes to an empty list.
type Players []Player

func (p *Players) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if !strings.HasPrefix(trimmed, "[") {
		*p = nil
		return nil
	}
	var players []Player
	if err := json.Unmarshal(data, &players); err != nil {
		return err
	}
	*p = players
	return nil
}

// EmbedCode is a player's embed markup. Tumblr sends false when the
// video is unavailable, which decodes to the empty string.
type EmbedCode string

func (e *EmbedCode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*e = ""
		return nil
	}
	*e = EmbedCode(s)
	return nil
}
