package artfolio

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// SnapshotVersion is the schema version stamped into export files. Bump it
// whenever a collection's shape changes; import stays tolerant of older
// files because unknown fields are ignored and missing ones default.
const SnapshotVersion = 4

// Snapshot is the complete exported copy of all domain records, with
// image binaries transcoded to base64 data URIs so the whole backup is a
// single JSON file.
type Snapshot struct {
	Version        int                `json:"version"`
	Exported       time.Time          `json:"exported"`
	Paintings      []SnapshotPainting `json:"paintings"`
	BlogPosts      []BlogPost         `json:"blogPosts"`
	WebsiteContent []PageContent      `json:"websiteContent"`
}

// SnapshotPainting is a Painting with its image variants flattened into
// text-safe fields.
type SnapshotPainting struct {
	Painting
	ThumbnailBlob string `json:"thumbnailBlob"`
	DisplayBlob   string `json:"displayBlob"`
	LQIP          string `json:"lqip"`
}

// ImportResult reports how many records an import inserted or upserted.
type ImportResult struct {
	Paintings int `json:"paintings"`
	BlogPosts int `json:"blogPosts"`
	Content   int `json:"content"`
}

// ExportAll produces a snapshot of every painting, blog post, and
// page-content entry. Backgrounds are decorative and rebuilt by hand, so
// they are not part of the backup, matching the import contract.
func (c *Catalog) ExportAll() (Snapshot, error) {
	paintings, err := c.store.ListPaintings()
	if err != nil {
		return Snapshot{}, err
	}
	sortPaintings(paintings)
	posts, err := c.store.ListBlogPosts()
	if err != nil {
		return Snapshot{}, err
	}
	sortPosts(posts)
	content, err := c.store.ListContent()
	if err != nil {
		return Snapshot{}, err
	}
	// Keep the top-level lists present (never null) so exported files
	// always satisfy the import contract.
	if posts == nil {
		posts = []BlogPost{}
	}
	if content == nil {
		content = []PageContent{}
	}

	snap := Snapshot{
		Version:        SnapshotVersion,
		Exported:       c.now().UTC(),
		Paintings:      make([]SnapshotPainting, 0, len(paintings)),
		BlogPosts:      posts,
		WebsiteContent: content,
	}
	for _, p := range paintings {
		snap.Paintings = append(snap.Paintings, SnapshotPainting{
			Painting:      p,
			ThumbnailBlob: encodeDataURI(p.Thumbnail),
			DisplayBlob:   encodeDataURI(p.Display),
			LQIP:          encodeDataURI(p.Placeholder),
		})
	}
	return snap, nil
}

// ImportAll inserts every painting and blog post from the snapshot and
// upserts every page-content entry by type. Ids are discarded so the
// store assigns fresh ones. The import is additive and not transactional
// across the batch: a failure partway through keeps the records already
// inserted.
func (c *Catalog) ImportAll(data []byte) (ImportResult, error) {
	// Validate the shape before touching the store: a snapshot without a
	// paintings list is not a backup file we recognize.
	var probe struct {
		Paintings json.RawMessage `json:"paintings"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return ImportResult{}, fmt.Errorf("%w: %v", ErrBadSnapshot, err)
	}
	if !isJSONArray(probe.Paintings) {
		return ImportResult{}, fmt.Errorf("%w: missing paintings list", ErrBadSnapshot)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return ImportResult{}, fmt.Errorf("%w: %v", ErrBadSnapshot, err)
	}

	var result ImportResult
	for i, sp := range snap.Paintings {
		p, err := c.paintingFromSnapshot(sp)
		if err != nil {
			return result, fmt.Errorf("import painting %d: %w", i, err)
		}
		if _, err := c.store.AddPainting(p); err != nil {
			return result, err
		}
		result.Paintings++
	}
	for _, post := range snap.BlogPosts {
		post.ID = 0
		if post.Status != StatusPublished {
			post.Status = StatusDraft
		}
		if _, err := c.store.AddBlogPost(post); err != nil {
			return result, err
		}
		result.BlogPosts++
	}
	for _, entry := range snap.WebsiteContent {
		if err := c.store.UpsertContentByType(entry.Type, entry.Content, c.now().UTC()); err != nil {
			return result, err
		}
		result.Content++
	}
	c.cache.Invalidate()
	return result, nil
}

// paintingFromSnapshot rebuilds a Painting from its exported form. A
// missing placeholder is regenerated from the display variant so the
// non-null invariant on persisted paintings holds for older backups.
func (c *Catalog) paintingFromSnapshot(sp SnapshotPainting) (Painting, error) {
	p := sp.Painting
	p.ID = 0
	if p.Visibility != VisibilityPrivate {
		p.Visibility = VisibilityPublic
	}

	var err error
	if p.Thumbnail, err = decodeDataURI(sp.ThumbnailBlob); err != nil {
		return Painting{}, err
	}
	if p.Display, err = decodeDataURI(sp.DisplayBlob); err != nil {
		return Painting{}, err
	}
	if sp.LQIP != "" {
		if p.Placeholder, err = decodeDataURI(sp.LQIP); err != nil {
			return Painting{}, err
		}
	} else {
		if p.Placeholder, err = Placeholder(p.Display); err != nil {
			return Painting{}, err
		}
	}
	if len(p.Thumbnail) == 0 || len(p.Display) == 0 {
		return Painting{}, fmt.Errorf("%w: painting %q has empty image data", ErrBadSnapshot, p.Title)
	}
	now := c.now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = now
	}
	return p, nil
}

func isJSONArray(raw json.RawMessage) bool {
	trimmed := strings.TrimSpace(string(raw))
	return strings.HasPrefix(trimmed, "[")
}

// encodeDataURI wraps JPEG bytes in the data-URI form browsers emit from
// FileReader.readAsDataURL, keeping exported files loadable by the
// original front end.
func encodeDataURI(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(b)
}

// decodeDataURI accepts both data URIs and bare base64.
func decodeDataURI(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	if strings.HasPrefix(s, "data:") {
		_, encoded, found := strings.Cut(s, ",")
		if !found {
			return nil, fmt.Errorf("%w: malformed data URI", ErrBadSnapshot)
		}
		s = encoded
	}
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSnapshot, err)
	}
	return b, nil
}
