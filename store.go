package artfolio

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Store wraps a SQLite database and provides CRUD operations for the four
// portfolio collections: paintings, backgrounds, blog posts, and website
// content. Each mutating call runs as a single statement or a single
// transaction, so a write either fully commits or has no effect.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Enable WAL mode for concurrent read/write access, set a busy timeout
	// so writers wait instead of returning SQLITE_BUSY immediately, and
	// avoid an fsync per transaction; paintings carry image blobs, so the
	// larger cache and mmap sizes matter here.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA cache_size=-8000;
		PRAGMA mmap_size=268435456;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS paintings (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    year INTEGER NOT NULL DEFAULT 0,
    medium TEXT NOT NULL,
    size TEXT NOT NULL,
    description TEXT NOT NULL,
    tags TEXT NOT NULL,
    category TEXT NOT NULL,
    visibility TEXT NOT NULL,
    color TEXT NOT NULL DEFAULT '',
    thumbnail BLOB NOT NULL,
    display BLOB NOT NULL,
    placeholder BLOB NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS backgrounds (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    image BLOB NOT NULL,
    created_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS blog_posts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    content TEXT NOT NULL,
    excerpt TEXT NOT NULL,
    status TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS website_content (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    type TEXT NOT NULL UNIQUE,
    content TEXT NOT NULL,
    updated_at INTEGER NOT NULL
);
`)
	return err
}

// --- Paintings ---

const paintingCols = `id, title, year, medium, size, description, tags, category, visibility, color, thumbnail, display, placeholder, created_at, updated_at`

// AddPainting inserts a painting and returns its assigned id.
func (s *Store) AddPainting(p Painting) (ID, error) {
	res, err := s.db.Exec(`INSERT INTO paintings (title, year, medium, size, description, tags, category, visibility, color, thumbnail, display, placeholder, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Title, p.Year, p.Medium, p.Size, p.Description, joinTags(p.Tags), p.Category, string(p.Visibility), p.Color,
		p.Thumbnail, p.Display, p.Placeholder, toMillis(p.CreatedAt), toMillis(p.UpdatedAt))
	if err != nil {
		return 0, fmt.Errorf("add painting: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("add painting: %w", err)
	}
	return ID(id), nil
}

// UpdatePainting replaces every field of the painting with the given id.
func (s *Store) UpdatePainting(id ID, p Painting) error {
	res, err := s.db.Exec(`UPDATE paintings SET title = ?, year = ?, medium = ?, size = ?, description = ?, tags = ?, category = ?, visibility = ?, color = ?, thumbnail = ?, display = ?, placeholder = ?, created_at = ?, updated_at = ? WHERE id = ?`,
		p.Title, p.Year, p.Medium, p.Size, p.Description, joinTags(p.Tags), p.Category, string(p.Visibility), p.Color,
		p.Thumbnail, p.Display, p.Placeholder, toMillis(p.CreatedAt), toMillis(p.UpdatedAt), int64(id))
	if err != nil {
		return fmt.Errorf("update painting: %w", err)
	}
	return checkFound(res)
}

// DeletePainting removes a painting. Deleting a missing id returns
// ErrNotFound.
func (s *Store) DeletePainting(id ID) error {
	res, err := s.db.Exec(`DELETE FROM paintings WHERE id = ?`, int64(id))
	if err != nil {
		return fmt.Errorf("delete painting: %w", err)
	}
	return checkFound(res)
}

// GetPainting returns a single painting by id.
func (s *Store) GetPainting(id ID) (Painting, error) {
	row := s.db.QueryRow(`SELECT `+paintingCols+` FROM paintings WHERE id = ?`, int64(id))
	p, err := scanPainting(row)
	if err == sql.ErrNoRows {
		return Painting{}, ErrNotFound
	}
	if err != nil {
		return Painting{}, fmt.Errorf("get painting: %w", err)
	}
	return p, nil
}

// ListPaintings returns every painting in storage order. Ordering and
// visibility filtering are the catalog's responsibility.
func (s *Store) ListPaintings() ([]Painting, error) {
	rows, err := s.db.Query(`SELECT ` + paintingCols + ` FROM paintings`)
	if err != nil {
		return nil, fmt.Errorf("list paintings: %w", err)
	}
	defer rows.Close()

	var paintings []Painting
	for rows.Next() {
		p, err := scanPainting(rows)
		if err != nil {
			return nil, fmt.Errorf("list paintings: %w", err)
		}
		paintings = append(paintings, p)
	}
	return paintings, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPainting(r rowScanner) (Painting, error) {
	var p Painting
	var id, created, updated int64
	var tags, visibility string
	if err := r.Scan(&id, &p.Title, &p.Year, &p.Medium, &p.Size, &p.Description, &tags, &p.Category, &visibility, &p.Color,
		&p.Thumbnail, &p.Display, &p.Placeholder, &created, &updated); err != nil {
		return Painting{}, err
	}
	p.ID = ID(id)
	p.Tags = splitTags(tags)
	p.Visibility = Visibility(visibility)
	p.CreatedAt = fromMillis(created)
	p.UpdatedAt = fromMillis(updated)
	return p, nil
}

// --- Backgrounds ---

// AddBackground inserts a background image and returns its assigned id.
func (s *Store) AddBackground(b Background) (ID, error) {
	res, err := s.db.Exec(`INSERT INTO backgrounds (name, image, created_at) VALUES (?, ?, ?)`,
		b.Name, b.Image, toMillis(b.CreatedAt))
	if err != nil {
		return 0, fmt.Errorf("add background: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("add background: %w", err)
	}
	return ID(id), nil
}

// DeleteBackground removes a background by id.
func (s *Store) DeleteBackground(id ID) error {
	res, err := s.db.Exec(`DELETE FROM backgrounds WHERE id = ?`, int64(id))
	if err != nil {
		return fmt.Errorf("delete background: %w", err)
	}
	return checkFound(res)
}

// GetBackground returns a single background by id.
func (s *Store) GetBackground(id ID) (Background, error) {
	var b Background
	var rid, created int64
	err := s.db.QueryRow(`SELECT id, name, image, created_at FROM backgrounds WHERE id = ?`, int64(id)).
		Scan(&rid, &b.Name, &b.Image, &created)
	if err == sql.ErrNoRows {
		return Background{}, ErrNotFound
	}
	if err != nil {
		return Background{}, fmt.Errorf("get background: %w", err)
	}
	b.ID = ID(rid)
	b.CreatedAt = fromMillis(created)
	return b, nil
}

// ListBackgrounds returns every background in storage order.
func (s *Store) ListBackgrounds() ([]Background, error) {
	rows, err := s.db.Query(`SELECT id, name, image, created_at FROM backgrounds`)
	if err != nil {
		return nil, fmt.Errorf("list backgrounds: %w", err)
	}
	defer rows.Close()

	var backgrounds []Background
	for rows.Next() {
		var b Background
		var id, created int64
		if err := rows.Scan(&id, &b.Name, &b.Image, &created); err != nil {
			return nil, fmt.Errorf("list backgrounds: %w", err)
		}
		b.ID = ID(id)
		b.CreatedAt = fromMillis(created)
		backgrounds = append(backgrounds, b)
	}
	return backgrounds, rows.Err()
}

// --- Blog posts ---

// AddBlogPost inserts a post and returns its assigned id.
func (s *Store) AddBlogPost(p BlogPost) (ID, error) {
	res, err := s.db.Exec(`INSERT INTO blog_posts (title, content, excerpt, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		p.Title, p.Content, p.Excerpt, string(p.Status), toMillis(p.CreatedAt), toMillis(p.UpdatedAt))
	if err != nil {
		return 0, fmt.Errorf("add blog post: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("add blog post: %w", err)
	}
	return ID(id), nil
}

// UpdateBlogPost replaces every field of the post with the given id.
func (s *Store) UpdateBlogPost(id ID, p BlogPost) error {
	res, err := s.db.Exec(`UPDATE blog_posts SET title = ?, content = ?, excerpt = ?, status = ?, created_at = ?, updated_at = ? WHERE id = ?`,
		p.Title, p.Content, p.Excerpt, string(p.Status), toMillis(p.CreatedAt), toMillis(p.UpdatedAt), int64(id))
	if err != nil {
		return fmt.Errorf("update blog post: %w", err)
	}
	return checkFound(res)
}

// DeleteBlogPost removes a post by id.
func (s *Store) DeleteBlogPost(id ID) error {
	res, err := s.db.Exec(`DELETE FROM blog_posts WHERE id = ?`, int64(id))
	if err != nil {
		return fmt.Errorf("delete blog post: %w", err)
	}
	return checkFound(res)
}

// GetBlogPost returns a single post by id.
func (s *Store) GetBlogPost(id ID) (BlogPost, error) {
	var p BlogPost
	var rid, created, updated int64
	var status string
	err := s.db.QueryRow(`SELECT id, title, content, excerpt, status, created_at, updated_at FROM blog_posts WHERE id = ?`, int64(id)).
		Scan(&rid, &p.Title, &p.Content, &p.Excerpt, &status, &created, &updated)
	if err == sql.ErrNoRows {
		return BlogPost{}, ErrNotFound
	}
	if err != nil {
		return BlogPost{}, fmt.Errorf("get blog post: %w", err)
	}
	p.ID = ID(rid)
	p.Status = PostStatus(status)
	p.CreatedAt = fromMillis(created)
	p.UpdatedAt = fromMillis(updated)
	return p, nil
}

// ListBlogPosts returns every post in storage order.
func (s *Store) ListBlogPosts() ([]BlogPost, error) {
	rows, err := s.db.Query(`SELECT id, title, content, excerpt, status, created_at, updated_at FROM blog_posts`)
	if err != nil {
		return nil, fmt.Errorf("list blog posts: %w", err)
	}
	defer rows.Close()

	var posts []BlogPost
	for rows.Next() {
		var p BlogPost
		var id, created, updated int64
		var status string
		if err := rows.Scan(&id, &p.Title, &p.Content, &p.Excerpt, &status, &created, &updated); err != nil {
			return nil, fmt.Errorf("list blog posts: %w", err)
		}
		p.ID = ID(id)
		p.Status = PostStatus(status)
		p.CreatedAt = fromMillis(created)
		p.UpdatedAt = fromMillis(updated)
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// --- Website content ---

// GetContentByType returns the singleton entry for the given type. The
// second result is false when no entry exists yet.
func (s *Store) GetContentByType(t ContentType) (PageContent, bool, error) {
	var c PageContent
	var id, updated int64
	var typ string
	err := s.db.QueryRow(`SELECT id, type, content, updated_at FROM website_content WHERE type = ?`, string(t)).
		Scan(&id, &typ, &c.Content, &updated)
	if err == sql.ErrNoRows {
		return PageContent{}, false, nil
	}
	if err != nil {
		return PageContent{}, false, fmt.Errorf("get content: %w", err)
	}
	c.ID = ID(id)
	c.Type = ContentType(typ)
	c.UpdatedAt = fromMillis(updated)
	return c, true, nil
}

// UpsertContentByType writes the singleton entry for the given type,
// updating in place when one exists. The read-then-write runs inside one
// transaction, so concurrent upserts can never create a duplicate type.
func (s *Store) UpsertContentByType(t ContentType, content string, now time.Time) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("upsert content: %w", err)
	}
	defer tx.Rollback()

	var id int64
	err = tx.QueryRow(`SELECT id FROM website_content WHERE type = ?`, string(t)).Scan(&id)
	switch {
	case err == sql.ErrNoRows:
		_, err = tx.Exec(`INSERT INTO website_content (type, content, updated_at) VALUES (?, ?, ?)`,
			string(t), content, toMillis(now))
	case err == nil:
		_, err = tx.Exec(`UPDATE website_content SET content = ?, updated_at = ? WHERE id = ?`,
			content, toMillis(now), id)
	}
	if err != nil {
		return fmt.Errorf("upsert content: %w", err)
	}
	return tx.Commit()
}

// ListContent returns every page-content entry.
func (s *Store) ListContent() ([]PageContent, error) {
	rows, err := s.db.Query(`SELECT id, type, content, updated_at FROM website_content`)
	if err != nil {
		return nil, fmt.Errorf("list content: %w", err)
	}
	defer rows.Close()

	var entries []PageContent
	for rows.Next() {
		var c PageContent
		var id, updated int64
		var typ string
		if err := rows.Scan(&id, &typ, &c.Content, &updated); err != nil {
			return nil, fmt.Errorf("list content: %w", err)
		}
		c.ID = ID(id)
		c.Type = ContentType(typ)
		c.UpdatedAt = fromMillis(updated)
		entries = append(entries, c)
	}
	return entries, rows.Err()
}

// --- Helpers ---

func checkFound(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// joinTags encodes a tag slice as a comma-delimited string wrapped in
// commas (e.g. ",oil,landscape,") so substring matching stays exact.
func joinTags(tags []string) string {
	trimmed := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			trimmed = append(trimmed, t)
		}
	}
	if len(trimmed) == 0 {
		return ","
	}
	return "," + strings.Join(trimmed, ",") + ","
}

// splitTags decodes a comma-delimited tag string back into a slice.
func splitTags(tagString string) []string {
	tagString = strings.Trim(tagString, ",")
	if tagString == "" {
		return nil
	}
	parts := strings.Split(tagString, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// Timestamps are persisted as Unix milliseconds so list ordering is a
// plain integer comparison.
func toMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
