package artfolio

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"
)

const excerptLength = 150

// PaintingFields carries the user-editable painting fields from a form
// submission. Image bytes travel separately.
type PaintingFields struct {
	Title       string
	Year        int
	Medium      string
	Size        string
	Description string
	Tags        []string
	Category    string
	Visibility  Visibility
	Color       string
}

// PostFields carries the user-editable blog post fields.
type PostFields struct {
	Title   string
	Content string
	Excerpt string
	Status  PostStatus
}

// Catalog bridges raw admin input (form fields, uploaded files) to the
// store via the image transcoder, and enforces the visibility and
// ordering rules for public readers.
type Catalog struct {
	store *Store
	cache *ListCache
	now   func() time.Time
}

// NewCatalog creates a Catalog backed by the given store.
func NewCatalog(store *Store, cacheTTL time.Duration) *Catalog {
	c := &Catalog{store: store, now: time.Now}
	c.cache = NewListCache(store, cacheTTL)
	return c
}

// --- Paintings ---

// CreatePainting validates the upload, derives the thumbnail, display, and
// placeholder variants, and persists a new painting. Returns the assigned id.
func (c *Catalog) CreatePainting(f PaintingFields, imageData []byte) (ID, error) {
	if strings.TrimSpace(f.Title) == "" {
		return 0, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if len(imageData) == 0 {
		return 0, fmt.Errorf("%w: image is required", ErrInvalidInput)
	}
	thumb, display, lqip, err := deriveVariants(imageData)
	if err != nil {
		return 0, err
	}

	now := c.now().UTC()
	p := paintingFromFields(f)
	p.Thumbnail = thumb
	p.Display = display
	p.Placeholder = lqip
	p.CreatedAt = now
	p.UpdatedAt = now

	id, err := c.store.AddPainting(p)
	if err != nil {
		return 0, err
	}
	c.cache.Invalidate()
	return id, nil
}

// UpdatePainting replaces the painting's fields. When imageData is
// non-empty all three derived variants are regenerated; otherwise the
// existing ones are preserved.
func (c *Catalog) UpdatePainting(id ID, f PaintingFields, imageData []byte) error {
	if strings.TrimSpace(f.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	existing, err := c.store.GetPainting(id)
	if err != nil {
		return err
	}

	p := paintingFromFields(f)
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = c.now().UTC()
	if len(imageData) > 0 {
		thumb, display, lqip, derr := deriveVariants(imageData)
		if derr != nil {
			return derr
		}
		p.Thumbnail = thumb
		p.Display = display
		p.Placeholder = lqip
	} else {
		p.Thumbnail = existing.Thumbnail
		p.Display = existing.Display
		p.Placeholder = existing.Placeholder
	}

	if err := c.store.UpdatePainting(id, p); err != nil {
		return err
	}
	c.cache.Invalidate()
	return nil
}

// DeletePainting permanently removes a painting. There is no undo.
func (c *Catalog) DeletePainting(id ID) error {
	if err := c.store.DeletePainting(id); err != nil {
		return err
	}
	c.cache.Invalidate()
	return nil
}

// GetPainting returns a single painting by id.
func (c *Catalog) GetPainting(id ID) (Painting, error) {
	return c.store.GetPainting(id)
}

// ListPaintings returns paintings ordered newest first (ties broken by id
// ascending). Non-admin callers see only public paintings. The returned
// slice is the caller's own snapshot.
func (c *Catalog) ListPaintings(isAdmin bool) ([]Painting, error) {
	if !isAdmin {
		return c.cache.Paintings()
	}
	paintings, err := c.store.ListPaintings()
	if err != nil {
		return nil, err
	}
	sortPaintings(paintings)
	return paintings, nil
}

func paintingFromFields(f PaintingFields) Painting {
	visibility := f.Visibility
	if visibility == "" {
		visibility = VisibilityPublic
	}
	return Painting{
		Title:       strings.TrimSpace(f.Title),
		Year:        f.Year,
		Medium:      strings.TrimSpace(f.Medium),
		Size:        strings.TrimSpace(f.Size),
		Description: strings.TrimSpace(f.Description),
		Tags:        filterEmpty(f.Tags),
		Category:    strings.TrimSpace(f.Category),
		Visibility:  visibility,
		Color:       strings.TrimSpace(f.Color),
	}
}

// deriveVariants sniffs the upload and produces the three stored variants.
// Non-image uploads are rejected before any decoding is attempted.
func deriveVariants(imageData []byte) (thumb, display, lqip []byte, err error) {
	if !strings.HasPrefix(http.DetectContentType(imageData), "image/") {
		return nil, nil, nil, fmt.Errorf("%w: file is not an image", ErrInvalidInput)
	}
	if thumb, err = Resize(imageData, ThumbnailMaxWidth, ThumbnailMaxHeight); err != nil {
		return nil, nil, nil, err
	}
	if display, err = Resize(imageData, DisplayMaxWidth, DisplayMaxHeight); err != nil {
		return nil, nil, nil, err
	}
	if lqip, err = Placeholder(imageData); err != nil {
		return nil, nil, nil, err
	}
	return thumb, display, lqip, nil
}

// --- Backgrounds ---

// CreateBackground resizes the upload to the backdrop bounds and persists
// it. An empty name falls back to a generic label.
func (c *Catalog) CreateBackground(name string, imageData []byte) (ID, error) {
	if len(imageData) == 0 {
		return 0, fmt.Errorf("%w: image is required", ErrInvalidInput)
	}
	if !strings.HasPrefix(http.DetectContentType(imageData), "image/") {
		return 0, fmt.Errorf("%w: file is not an image", ErrInvalidInput)
	}
	img, err := Resize(imageData, BackgroundMaxWidth, BackgroundMaxHeight)
	if err != nil {
		return 0, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = "Background Image"
	}
	id, err := c.store.AddBackground(Background{
		Name:      name,
		Image:     img,
		CreatedAt: c.now().UTC(),
	})
	if err != nil {
		return 0, err
	}
	c.cache.Invalidate()
	return id, nil
}

// DeleteBackground removes a background.
func (c *Catalog) DeleteBackground(id ID) error {
	if err := c.store.DeleteBackground(id); err != nil {
		return err
	}
	c.cache.Invalidate()
	return nil
}

// GetBackground returns a single background by id.
func (c *Catalog) GetBackground(id ID) (Background, error) {
	return c.store.GetBackground(id)
}

// ListBackgrounds returns all backgrounds ordered newest first.
func (c *Catalog) ListBackgrounds() ([]Background, error) {
	return c.cache.Backgrounds()
}

// --- Blog posts ---

// CreateBlogPost persists a new post. The excerpt defaults to the first
// 150 characters of the content when not provided.
func (c *Catalog) CreateBlogPost(f PostFields) (ID, error) {
	p, err := postFromFields(f)
	if err != nil {
		return 0, err
	}
	now := c.now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	id, err := c.store.AddBlogPost(p)
	if err != nil {
		return 0, err
	}
	c.cache.Invalidate()
	return id, nil
}

// UpdateBlogPost replaces the post's fields, keeping its creation time.
// Status may move freely between draft and published.
func (c *Catalog) UpdateBlogPost(id ID, f PostFields) error {
	p, err := postFromFields(f)
	if err != nil {
		return err
	}
	existing, err := c.store.GetBlogPost(id)
	if err != nil {
		return err
	}
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = c.now().UTC()

	if err := c.store.UpdateBlogPost(id, p); err != nil {
		return err
	}
	c.cache.Invalidate()
	return nil
}

// DeleteBlogPost removes a post.
func (c *Catalog) DeleteBlogPost(id ID) error {
	if err := c.store.DeleteBlogPost(id); err != nil {
		return err
	}
	c.cache.Invalidate()
	return nil
}

// GetBlogPost returns a single post by id.
func (c *Catalog) GetBlogPost(id ID) (BlogPost, error) {
	return c.store.GetBlogPost(id)
}

// ListBlogPosts returns posts ordered newest first. Non-admin callers
// never see drafts.
func (c *Catalog) ListBlogPosts(isAdmin bool) ([]BlogPost, error) {
	if !isAdmin {
		return c.cache.Posts()
	}
	posts, err := c.store.ListBlogPosts()
	if err != nil {
		return nil, err
	}
	sortPosts(posts)
	return posts, nil
}

func postFromFields(f PostFields) (BlogPost, error) {
	title := strings.TrimSpace(f.Title)
	if title == "" {
		return BlogPost{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if strings.TrimSpace(f.Content) == "" {
		return BlogPost{}, fmt.Errorf("%w: content is required", ErrInvalidInput)
	}
	status := f.Status
	if status == "" {
		status = StatusDraft
	}
	if status != StatusDraft && status != StatusPublished {
		return BlogPost{}, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}
	excerpt := strings.TrimSpace(f.Excerpt)
	if excerpt == "" {
		excerpt = makeExcerpt(f.Content)
	}
	return BlogPost{
		Title:   title,
		Content: f.Content,
		Excerpt: excerpt,
		Status:  status,
	}, nil
}

func makeExcerpt(content string) string {
	runes := []rune(content)
	if len(runes) <= excerptLength {
		return content
	}
	return string(runes[:excerptLength]) + "..."
}

// --- Page content ---

// PageContent returns the stored text for the given page type, or the
// empty string when nothing has been saved yet so the presentation layer
// can render its own placeholder.
func (c *Catalog) PageContent(t ContentType) (string, error) {
	if err := validateContentType(t); err != nil {
		return "", err
	}
	entry, ok, err := c.store.GetContentByType(t)
	if err != nil || !ok {
		return "", err
	}
	return entry.Content, nil
}

// SetPageContent upserts the singleton entry for the given page type.
func (c *Catalog) SetPageContent(t ContentType, content string) error {
	if err := validateContentType(t); err != nil {
		return err
	}
	return c.store.UpsertContentByType(t, content, c.now().UTC())
}

func validateContentType(t ContentType) error {
	switch t {
	case ContentAbout, ContentContact, ContentDisclaimer:
		return nil
	}
	return fmt.Errorf("%w: unknown content type %q", ErrInvalidInput, t)
}

// --- Ordering ---

// Lists are presented newest first. Equal timestamps fall back to the
// store-assigned id so the order is a stable total order.
func sortPaintings(paintings []Painting) {
	sort.SliceStable(paintings, func(i, j int) bool {
		if !paintings[i].CreatedAt.Equal(paintings[j].CreatedAt) {
			return paintings[i].CreatedAt.After(paintings[j].CreatedAt)
		}
		return paintings[i].ID < paintings[j].ID
	})
}

func sortBackgrounds(backgrounds []Background) {
	sort.SliceStable(backgrounds, func(i, j int) bool {
		if !backgrounds[i].CreatedAt.Equal(backgrounds[j].CreatedAt) {
			return backgrounds[i].CreatedAt.After(backgrounds[j].CreatedAt)
		}
		return backgrounds[i].ID < backgrounds[j].ID
	})
}

func sortPosts(posts []BlogPost) {
	sort.SliceStable(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].ID < posts[j].ID
	})
}

func filterEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
