// Package cache keeps a local sqlite copy of fetched posts so listing and
// viewing keep working when the API is unreachable. Public data only: no
// token or identity ever lands here.
package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aranaskd/blogctl/internal/api"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
)

// Cache is the local post cache
type Cache struct {
	db     *sql.DB
	ttl    time.Duration
	logger zerolog.Logger
}

// Config holds cache configuration
type Config struct {
	Path   string
	TTL    time.Duration
	Logger zerolog.Logger
}

// Open opens (or creates) the cache database
func Open(cfg Config) (*Cache, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("cache path is required")
	}
	if cfg.TTL == 0 {
		cfg.TTL = 15 * time.Minute
	}

	db, err := sql.Open("sqlite3", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	// WAL keeps a crashed invocation from corrupting the cache
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	c := &Cache{db: db, ttl: cfg.TTL, logger: cfg.Logger}
	if err := c.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize cache schema: %w", err)
	}

	return c, nil
}

func (c *Cache) initSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS posts (
			id TEXT PRIMARY KEY,
			payload TEXT NOT NULL,
			fetched_at INTEGER NOT NULL
		);
	`
	_, err := c.db.Exec(schema)
	return err
}

// StorePosts upserts the given posts, stamping them with the current time
func (c *Cache) StorePosts(posts []api.Post) error {
	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO posts (id, payload, fetched_at) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET payload = excluded.payload, fetched_at = excluded.fetched_at
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().Unix()
	for _, post := range posts {
		payload, err := json.Marshal(post)
		if err != nil {
			return fmt.Errorf("failed to marshal post %s: %w", post.ID, err)
		}
		if _, err := stmt.Exec(post.ID, string(payload), now); err != nil {
			return fmt.Errorf("failed to upsert post %s: %w", post.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	c.logger.Debug().Int("posts", len(posts)).Msg("Post cache refreshed")
	return nil
}

// StorePost upserts a single post
func (c *Cache) StorePost(post api.Post) error {
	return c.StorePosts([]api.Post{post})
}

// ListPosts returns every cached post that is still within the TTL, oldest
// fetch first. An empty result just means the cache has nothing fresh.
func (c *Cache) ListPosts() ([]api.Post, error) {
	cutoff := time.Now().Add(-c.ttl).Unix()
	rows, err := c.db.Query(`SELECT payload FROM posts WHERE fetched_at >= ? ORDER BY fetched_at, id`, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to query cache: %w", err)
	}
	defer rows.Close()

	var posts []api.Post
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan cached post: %w", err)
		}
		var post api.Post
		if err := json.Unmarshal([]byte(payload), &post); err != nil {
			c.logger.Warn().Err(err).Msg("Corrupt cached post, skipping")
			continue
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

// GetPost returns one cached post, or nil when it is absent or stale
func (c *Cache) GetPost(postID string) (*api.Post, error) {
	cutoff := time.Now().Add(-c.ttl).Unix()
	var payload string
	err := c.db.QueryRow(
		`SELECT payload FROM posts WHERE id = ? AND fetched_at >= ?`, postID, cutoff,
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query cache: %w", err)
	}

	var post api.Post
	if err := json.Unmarshal([]byte(payload), &post); err != nil {
		return nil, fmt.Errorf("corrupt cached post: %w", err)
	}
	return &post, nil
}

// Delete removes a post from the cache (after a successful remote delete)
func (c *Cache) Delete(postID string) error {
	_, err := c.db.Exec(`DELETE FROM posts WHERE id = ?`, postID)
	return err
}

// Purge drops every cached post
func (c *Cache) Purge() error {
	_, err := c.db.Exec(`DELETE FROM posts`)
	return err
}

// Close closes the cache database
func (c *Cache) Close() error {
	return c.db.Close()
}
