package models

// Ghost import document. Field names follow the Ghost JSON importer.

// GhostExport is the root of the import document
type GhostExport struct {
	Meta ExportMeta `json:"meta"`
	Data ExportData `json:"data"`
}

// ExportMeta describes the export itself
type ExportMeta struct {
	ExportedOn int64  `json:"exported_on"`
	Version    string `json:"version"`
}

// ExportData holds the relational tables of the export
type ExportData struct {
	Posts     []ExportPost `json:"posts"`
	Tags      []Tag        `json:"tags"`
	PostsTags []PostTag    `json:"posts_tags"`
}

// ExportPost is a post in the Ghost schema
type ExportPost struct {
	ID              int     `json:"id"`
	UUID            string  `json:"uuid"`
	Title           string  `json:"title"`
	Slug            string  `json:"slug"`
	Markdown        string  `json:"markdown"`
	HTML            string  `json:"html"`
	Image           *string `json:"image"`
	Featured        int     `json:"featured"`
	Page            int     `json:"page"`
	Status          string  `json:"status"`
	Language        string  `json:"language"`
	MetaTitle       *string `json:"meta_title"`
	MetaDescription *string `json:"meta_description"`
	AuthorID        int     `json:"author_id"`
	CreatedAt       int64   `json:"created_at"`
	CreatedBy       int     `json:"created_by"`
	UpdatedAt       int64   `json:"updated_at"`
	UpdatedBy       int     `json:"updated_by"`
	PublishedAt     int64   `json:"published_at"`
	PublishedBy     int     `json:"published_by"`
}

// Tag is a tag in the Ghost schema
type Tag struct {
	ID              int     `json:"id"`
	Name            string  `json:"name"`
	Slug            string  `json:"slug"`
	Description     *string `json:"description"`
	ParentID        *int    `json:"parent_id"`
	MetaTitle       *string `json:"meta_title"`
	MetaDescription *string `json:"meta_description"`
	CreatedAt       int64   `json:"created_at"`
	CreatedBy       int     `json:"created_by"`
	UpdatedAt       int64   `json:"updated_at"`
	UpdatedBy       int     `json:"updated_by"`
}

// PostTag is one row of the posts_tags join table
type PostTag struct {
	PostID int `json:"post_id"`
	TagID  int `json:"tag_id"`
}
