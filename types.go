package artfolio

import "time"

// ID is a store-assigned record identifier. Zero means "not yet persisted".
type ID int64

// Visibility controls whether non-admin visitors may see a painting.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// PostStatus controls whether non-admin visitors may see a blog post.
type PostStatus string

const (
	StatusDraft     PostStatus = "draft"
	StatusPublished PostStatus = "published"
)

// ContentType identifies a singleton page-content entry.
type ContentType string

const (
	ContentAbout      ContentType = "about"
	ContentContact    ContentType = "contact"
	ContentDisclaimer ContentType = "disclaimer"
)

// Painting is an artwork record with its three derived image variants.
// Every persisted painting carries non-empty thumbnail, display, and
// placeholder bytes.
type Painting struct {
	ID          ID         `json:"id"`
	Title       string     `json:"title"`
	Year        int        `json:"year,omitempty"`
	Medium      string     `json:"medium"`
	Size        string     `json:"size"`
	Description string     `json:"description"`
	Tags        []string   `json:"tags"`
	Category    string     `json:"category"`
	Visibility  Visibility `json:"visibility"`
	Color       string     `json:"color,omitempty"` // demo-only hint for placeholder cards

	Thumbnail   []byte `json:"-"`
	Display     []byte `json:"-"`
	Placeholder []byte `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Background is a rotating backdrop image. Backgrounds are always shown;
// there is no visibility flag.
type Background struct {
	ID        ID        `json:"id"`
	Name      string    `json:"name"`
	Image     []byte    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

// BlogPost is a rich-text post. Drafts are visible to admins only.
type BlogPost struct {
	ID        ID         `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Excerpt   string     `json:"excerpt"`
	Status    PostStatus `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// PageContent is a singleton rich-text entry keyed by type.
type PageContent struct {
	ID        ID          `json:"id"`
	Type      ContentType `json:"type"`
	Content   string      `json:"content"`
	UpdatedAt time.Time   `json:"updatedAt"`
}
