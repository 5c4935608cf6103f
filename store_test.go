package artfolio

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "test_portfolio.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testPainting(title string, created time.Time) Painting {
	return Painting{
		Title:       title,
		Year:        2023,
		Medium:      "Oil on canvas",
		Size:        "60x80cm",
		Description: "A test painting",
		Tags:        []string{"oil", "landscape"},
		Category:    "landscape",
		Visibility:  VisibilityPublic,
		Thumbnail:   []byte{0xff, 0xd8, 0x01},
		Display:     []byte{0xff, 0xd8, 0x02},
		Placeholder: []byte{0xff, 0xd8, 0x03},
		CreatedAt:   created,
		UpdatedAt:   created,
	}
}

func TestAddAndGetPainting(t *testing.T) {
	s := setupTestStore(t)

	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	id, err := s.AddPainting(testPainting("Sunset Dreams", created))
	if err != nil {
		t.Fatalf("AddPainting failed: %v", err)
	}
	if id == 0 {
		t.Fatal("expected non-zero assigned id")
	}

	got, err := s.GetPainting(id)
	if err != nil {
		t.Fatalf("GetPainting failed: %v", err)
	}
	if got.ID != id {
		t.Errorf("ID = %d, want %d", got.ID, id)
	}
	if got.Title != "Sunset Dreams" {
		t.Errorf("Title = %q, want %q", got.Title, "Sunset Dreams")
	}
	if got.Year != 2023 {
		t.Errorf("Year = %d, want 2023", got.Year)
	}
	if got.Visibility != VisibilityPublic {
		t.Errorf("Visibility = %q, want public", got.Visibility)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "oil" || got.Tags[1] != "landscape" {
		t.Errorf("Tags = %v, want [oil landscape]", got.Tags)
	}
	if string(got.Thumbnail) != "\xff\xd8\x01" || string(got.Display) != "\xff\xd8\x02" || string(got.Placeholder) != "\xff\xd8\x03" {
		t.Error("image variants did not round-trip")
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, created)
	}
}

func TestUpdatePainting(t *testing.T) {
	s := setupTestStore(t)

	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	id, err := s.AddPainting(testPainting("Original", created))
	if err != nil {
		t.Fatalf("AddPainting failed: %v", err)
	}

	p := testPainting("Renamed", created)
	p.Visibility = VisibilityPrivate
	p.Tags = []string{"acrylic"}
	if err := s.UpdatePainting(id, p); err != nil {
		t.Fatalf("UpdatePainting failed: %v", err)
	}

	got, err := s.GetPainting(id)
	if err != nil {
		t.Fatalf("GetPainting failed: %v", err)
	}
	if got.Title != "Renamed" {
		t.Errorf("Title = %q, want %q", got.Title, "Renamed")
	}
	if got.Visibility != VisibilityPrivate {
		t.Errorf("Visibility = %q, want private", got.Visibility)
	}
	if len(got.Tags) != 1 || got.Tags[0] != "acrylic" {
		t.Errorf("Tags = %v, want [acrylic]", got.Tags)
	}
}

func TestUpdatePaintingNotFound(t *testing.T) {
	s := setupTestStore(t)
	err := s.UpdatePainting(42, testPainting("Ghost", time.Now()))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeletePainting(t *testing.T) {
	s := setupTestStore(t)

	id, err := s.AddPainting(testPainting("Doomed", time.Now()))
	if err != nil {
		t.Fatalf("AddPainting failed: %v", err)
	}
	if err := s.DeletePainting(id); err != nil {
		t.Fatalf("DeletePainting failed: %v", err)
	}
	if _, err := s.GetPainting(id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := s.DeletePainting(id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on double delete, got %v", err)
	}
}

func TestBackgroundRoundTrip(t *testing.T) {
	s := setupTestStore(t)

	created := time.Date(2024, 5, 2, 8, 30, 0, 0, time.UTC)
	id, err := s.AddBackground(Background{Name: "Studio wall", Image: []byte{1, 2, 3}, CreatedAt: created})
	if err != nil {
		t.Fatalf("AddBackground failed: %v", err)
	}

	got, err := s.GetBackground(id)
	if err != nil {
		t.Fatalf("GetBackground failed: %v", err)
	}
	if got.Name != "Studio wall" || string(got.Image) != "\x01\x02\x03" || !got.CreatedAt.Equal(created) {
		t.Errorf("background did not round-trip: %+v", got)
	}

	if err := s.DeleteBackground(id); err != nil {
		t.Fatalf("DeleteBackground failed: %v", err)
	}
	if err := s.DeleteBackground(id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestBlogPostRoundTrip(t *testing.T) {
	s := setupTestStore(t)

	created := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	post := BlogPost{
		Title:     "Studio notes",
		Content:   "<p>Some rich text</p>",
		Excerpt:   "Some rich text",
		Status:    StatusDraft,
		CreatedAt: created,
		UpdatedAt: created,
	}
	id, err := s.AddBlogPost(post)
	if err != nil {
		t.Fatalf("AddBlogPost failed: %v", err)
	}

	got, err := s.GetBlogPost(id)
	if err != nil {
		t.Fatalf("GetBlogPost failed: %v", err)
	}
	if got.Title != post.Title || got.Content != post.Content || got.Status != StatusDraft {
		t.Errorf("post did not round-trip: %+v", got)
	}

	got.Status = StatusPublished
	if err := s.UpdateBlogPost(id, got); err != nil {
		t.Fatalf("UpdateBlogPost failed: %v", err)
	}
	updated, err := s.GetBlogPost(id)
	if err != nil {
		t.Fatalf("GetBlogPost failed: %v", err)
	}
	if updated.Status != StatusPublished {
		t.Errorf("Status = %q, want published", updated.Status)
	}
}

func TestUpsertContentByTypeIsIdempotent(t *testing.T) {
	s := setupTestStore(t)
	now := time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC)

	if err := s.UpsertContentByType(ContentAbout, "first", now); err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}
	if err := s.UpsertContentByType(ContentAbout, "second", now.Add(time.Hour)); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	entries, err := s.ListContent()
	if err != nil {
		t.Fatalf("ListContent failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected exactly one about entry, got %d", len(entries))
	}
	if entries[0].Type != ContentAbout || entries[0].Content != "second" {
		t.Errorf("entry = %+v, want about/second", entries[0])
	}
}

func TestGetContentByTypeAbsent(t *testing.T) {
	s := setupTestStore(t)
	_, ok, err := s.GetContentByType(ContentContact)
	if err != nil {
		t.Fatalf("GetContentByType failed: %v", err)
	}
	if ok {
		t.Fatal("expected absent entry")
	}
}

func TestTagsRoundTrip(t *testing.T) {
	if got := joinTags([]string{" oil ", "", "landscape"}); got != ",oil,landscape," {
		t.Errorf("joinTags = %q", got)
	}
	if got := splitTags(","); got != nil {
		t.Errorf("splitTags(\",\") = %v, want nil", got)
	}
	got := splitTags(",oil,landscape,")
	if len(got) != 2 || got[0] != "oil" || got[1] != "landscape" {
		t.Errorf("splitTags = %v", got)
	}
}
