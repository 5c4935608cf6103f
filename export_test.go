package artfolio

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestExportImportRoundTrip(t *testing.T) {
	source, _ := setupCatalog(t)
	src := makeJPEG(t, 800, 600)

	if _, err := source.CreatePainting(paintingFields("Kept Public", VisibilityPublic), src); err != nil {
		t.Fatalf("CreatePainting failed: %v", err)
	}
	if _, err := source.CreatePainting(paintingFields("Kept Private", VisibilityPrivate), src); err != nil {
		t.Fatalf("CreatePainting failed: %v", err)
	}
	if _, err := source.CreateBlogPost(PostFields{Title: "Hi", Content: "hello", Status: StatusPublished}); err != nil {
		t.Fatalf("CreateBlogPost failed: %v", err)
	}
	if err := source.SetPageContent(ContentAbout, "about text"); err != nil {
		t.Fatalf("SetPageContent failed: %v", err)
	}

	snap, err := source.ExportAll()
	if err != nil {
		t.Fatalf("ExportAll failed: %v", err)
	}
	if snap.Version != SnapshotVersion {
		t.Errorf("Version = %d, want %d", snap.Version, SnapshotVersion)
	}
	if len(snap.Paintings) != 2 || len(snap.BlogPosts) != 1 || len(snap.WebsiteContent) != 1 {
		t.Fatalf("snapshot counts = %d/%d/%d", len(snap.Paintings), len(snap.BlogPosts), len(snap.WebsiteContent))
	}
	for _, sp := range snap.Paintings {
		if !strings.HasPrefix(sp.ThumbnailBlob, "data:image/jpeg;base64,") {
			t.Errorf("thumbnail blob is not a data URI: %.30q", sp.ThumbnailBlob)
		}
	}

	data, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("marshal snapshot: %v", err)
	}

	target, _ := setupCatalog(t)
	result, err := target.ImportAll(data)
	if err != nil {
		t.Fatalf("ImportAll failed: %v", err)
	}
	if result.Paintings != 2 || result.BlogPosts != 1 || result.Content != 1 {
		t.Errorf("import result = %+v", result)
	}

	imported, err := target.ListPaintings(true)
	if err != nil {
		t.Fatalf("ListPaintings failed: %v", err)
	}
	if len(imported) != 2 {
		t.Fatalf("imported %d paintings, want 2", len(imported))
	}
	originals, err := source.ListPaintings(true)
	if err != nil {
		t.Fatalf("ListPaintings failed: %v", err)
	}
	for i, got := range imported {
		want := originals[i]
		if got.Title != want.Title || got.Visibility != want.Visibility || got.Medium != want.Medium {
			t.Errorf("painting %d fields drifted: got %q/%q, want %q/%q", i, got.Title, got.Visibility, want.Title, want.Visibility)
		}
		if string(got.Display) != string(want.Display) {
			t.Errorf("painting %d display bytes drifted", i)
		}
		if len(got.Placeholder) == 0 {
			t.Errorf("painting %d lost its placeholder", i)
		}
		if !got.CreatedAt.Equal(want.CreatedAt) {
			t.Errorf("painting %d CreatedAt = %v, want %v", i, got.CreatedAt, want.CreatedAt)
		}
	}

	content, err := target.PageContent(ContentAbout)
	if err != nil {
		t.Fatalf("PageContent failed: %v", err)
	}
	if content != "about text" {
		t.Errorf("content = %q", content)
	}
}

func TestImportReassignsIDs(t *testing.T) {
	catalog, _ := setupCatalog(t)
	src := makeJPEG(t, 100, 100)

	if _, err := catalog.CreatePainting(paintingFields("Solo", VisibilityPublic), src); err != nil {
		t.Fatalf("CreatePainting failed: %v", err)
	}
	snap, err := catalog.ExportAll()
	if err != nil {
		t.Fatalf("ExportAll failed: %v", err)
	}
	data, _ := json.Marshal(snap)

	// Importing into the same store is additive: nothing replaced, new ids.
	if _, err := catalog.ImportAll(data); err != nil {
		t.Fatalf("ImportAll failed: %v", err)
	}
	paintings, err := catalog.ListPaintings(true)
	if err != nil {
		t.Fatalf("ListPaintings failed: %v", err)
	}
	if len(paintings) != 2 {
		t.Fatalf("got %d paintings, want 2 after additive import", len(paintings))
	}
	if paintings[0].ID == paintings[1].ID {
		t.Error("imported painting reused an existing id")
	}
}

func TestImportRejectsMissingPaintings(t *testing.T) {
	catalog, _ := setupCatalog(t)

	for _, body := range []string{
		`{"version":4,"blogPosts":[]}`,
		`{"paintings":{"not":"a list"}}`,
		`not json at all`,
	} {
		if _, err := catalog.ImportAll([]byte(body)); !errors.Is(err, ErrBadSnapshot) {
			t.Errorf("ImportAll(%q): expected ErrBadSnapshot, got %v", body, err)
		}
	}

	// The failed imports must not have touched the store.
	paintings, err := catalog.ListPaintings(true)
	if err != nil {
		t.Fatalf("ListPaintings failed: %v", err)
	}
	posts, err := catalog.ListBlogPosts(true)
	if err != nil {
		t.Fatalf("ListBlogPosts failed: %v", err)
	}
	if len(paintings) != 0 || len(posts) != 0 {
		t.Errorf("store mutated by rejected import: %d paintings, %d posts", len(paintings), len(posts))
	}
}

func TestImportIgnoresUnknownKeys(t *testing.T) {
	catalog, _ := setupCatalog(t)

	result, err := catalog.ImportAll([]byte(`{"version":4,"paintings":[],"futureKey":{"a":1}}`))
	if err != nil {
		t.Fatalf("ImportAll failed: %v", err)
	}
	if result.Paintings != 0 {
		t.Errorf("result = %+v, want empty", result)
	}
}

func TestDataURIRoundTrip(t *testing.T) {
	raw := []byte{0xff, 0xd8, 0xff, 0xe0, 0x00}
	encoded := encodeDataURI(raw)
	if !strings.HasPrefix(encoded, "data:image/jpeg;base64,") {
		t.Fatalf("encoded = %q", encoded)
	}
	decoded, err := decodeDataURI(encoded)
	if err != nil {
		t.Fatalf("decodeDataURI failed: %v", err)
	}
	if string(decoded) != string(raw) {
		t.Errorf("round trip mismatch")
	}

	// Bare base64 (no data: prefix) is accepted too.
	bare, err := decodeDataURI("/9j/4AA=")
	if err != nil {
		t.Fatalf("bare base64 rejected: %v", err)
	}
	if len(bare) == 0 {
		t.Error("bare base64 decoded to nothing")
	}

	if _, err := decodeDataURI("data:image/jpeg;base64"); err == nil {
		t.Error("malformed data URI accepted")
	}
}
