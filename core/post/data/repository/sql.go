package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ncobase/posts/core/post/structs"
)

// Dialect selects the SQL flavour a store speaks.
type Dialect string

const (
	SQLite   Dialect = "sqlite3"
	Postgres Dialect = "postgres"
	MySQL    Dialect = "mysql"
)

// ParseDialect maps a driver name to its dialect.
func ParseDialect(driver string) (Dialect, error) {
	switch strings.ToLower(driver) {
	case "sqlite", "sqlite3":
		return SQLite, nil
	case "postgres", "postgresql", "pgx":
		return Postgres, nil
	case "mysql", "mariadb":
		return MySQL, nil
	}
	return "", fmt.Errorf("unsupported sql dialect: %s", driver)
}

var schema = map[Dialect]string{
	SQLite: `CREATE TABLE IF NOT EXISTS posts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	content TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	version INTEGER NOT NULL DEFAULT 1
)`,
	Postgres: `CREATE TABLE IF NOT EXISTS posts (
	id BIGSERIAL PRIMARY KEY,
	title VARCHAR(255) NOT NULL,
	content TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	version BIGINT NOT NULL DEFAULT 1
)`,
	MySQL: `CREATE TABLE IF NOT EXISTS posts (
	id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
	title VARCHAR(255) NOT NULL,
	content TEXT NOT NULL,
	created_at DATETIME(6) NOT NULL,
	version BIGINT NOT NULL DEFAULT 1
)`,
}

// Migrate creates the posts table if it does not exist.
func Migrate(ctx context.Context, db *sql.DB, dialect Dialect) error {
	ddl, ok := schema[dialect]
	if !ok {
		return fmt.Errorf("no schema for dialect %s", dialect)
	}
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("migrate posts table: %w", err)
	}
	return nil
}

type sqlStore struct {
	db      *sql.DB
	dialect Dialect
}

// NewSQLStore creates a store over an open database handle. The posts table
// must exist, see Migrate.
func NewSQLStore(db *sql.DB, dialect Dialect) Store {
	return &sqlStore{db: db, dialect: dialect}
}

const selectColumns = "SELECT id, title, content, created_at, version FROM posts"

// rebind rewrites ? placeholders to $n for postgres.
func (s *sqlStore) rebind(query string) string {
	if s.dialect != Postgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPost(row scanner) (*structs.Post, error) {
	p := &structs.Post{}
	if err := row.Scan(&p.ID, &p.Title, &p.Content, &p.CreatedAt, &p.Version); err != nil {
		return nil, err
	}
	p.CreatedAt = p.CreatedAt.UTC()
	return p, nil
}

func (s *sqlStore) ListAll(ctx context.Context) Outcome[[]*structs.Post] {
	rows, err := s.db.QueryContext(ctx, selectColumns+" ORDER BY id")
	if err != nil {
		return Failed[[]*structs.Post](fmt.Errorf("list posts: %w", err))
	}
	defer rows.Close()

	posts := make([]*structs.Post, 0)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return Failed[[]*structs.Post](fmt.Errorf("scan post: %w", err))
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return Failed[[]*structs.Post](fmt.Errorf("list posts: %w", err))
	}
	return Ok(posts)
}

func (s *sqlStore) FindByID(ctx context.Context, id int64) Outcome[*structs.Post] {
	p, err := scanPost(s.db.QueryRowContext(ctx, s.rebind(selectColumns+" WHERE id = ?"), id))
	if errors.Is(err, sql.ErrNoRows) {
		return Missing[*structs.Post]()
	}
	if err != nil {
		return Failed[*structs.Post](fmt.Errorf("find post %d: %w", id, err))
	}
	return Ok(p)
}

func (s *sqlStore) Add(ctx context.Context, p *structs.Post) Outcome[*structs.Post] {
	if p == nil {
		return Failed[*structs.Post](errNilPost)
	}

	row := p.Clone()
	row.Version = 1
	// drivers keep microseconds at best
	row.CreatedAt = row.CreatedAt.UTC().Truncate(time.Microsecond)

	query := s.rebind("INSERT INTO posts (title, content, created_at, version) VALUES (?, ?, ?, ?)")
	if s.dialect == Postgres {
		if err := s.db.QueryRowContext(ctx, query+" RETURNING id", row.Title, row.Content, row.CreatedAt, row.Version).Scan(&row.ID); err != nil {
			return Failed[*structs.Post](fmt.Errorf("insert post: %w", err))
		}
		return Ok(row)
	}

	res, err := s.db.ExecContext(ctx, query, row.Title, row.Content, row.CreatedAt, row.Version)
	if err != nil {
		return Failed[*structs.Post](fmt.Errorf("insert post: %w", err))
	}
	if row.ID, err = res.LastInsertId(); err != nil {
		return Failed[*structs.Post](fmt.Errorf("insert post: %w", err))
	}
	return Ok(row)
}

func (s *sqlStore) Update(ctx context.Context, p *structs.Post) Outcome[*structs.Post] {
	if p == nil {
		return Failed[*structs.Post](errNilPost)
	}

	res, err := s.db.ExecContext(ctx,
		s.rebind("UPDATE posts SET title = ?, content = ?, version = version + 1 WHERE id = ? AND version = ?"),
		p.Title, p.Content, p.ID, p.Version)
	if err != nil {
		return Failed[*structs.Post](fmt.Errorf("update post %d: %w", p.ID, err))
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return Failed[*structs.Post](fmt.Errorf("update post %d: %w", p.ID, err))
	}
	if affected == 0 {
		return missingOrConflict[*structs.Post](s.exists(ctx, p.ID))
	}
	return s.FindByID(ctx, p.ID)
}

func (s *sqlStore) Remove(ctx context.Context, p *structs.Post) Outcome[struct{}] {
	if p == nil {
		return Failed[struct{}](errNilPost)
	}

	res, err := s.db.ExecContext(ctx, s.rebind("DELETE FROM posts WHERE id = ? AND version = ?"), p.ID, p.Version)
	if err != nil {
		return Failed[struct{}](fmt.Errorf("delete post %d: %w", p.ID, err))
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return Failed[struct{}](fmt.Errorf("delete post %d: %w", p.ID, err))
	}
	if affected == 0 {
		return missingOrConflict[struct{}](s.exists(ctx, p.ID))
	}
	return Ok(struct{}{})
}

// exists tells a vanished row from a stale version after a write matched nothing.
func (s *sqlStore) exists(ctx context.Context, id int64) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, s.rebind("SELECT 1 FROM posts WHERE id = ?"), id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check post %d: %w", id, err)
	}
	return true, nil
}

func missingOrConflict[T any](exists bool, err error) Outcome[T] {
	switch {
	case err != nil:
		return Failed[T](err)
	case exists:
		return Conflicted[T]()
	default:
		return Missing[T]()
	}
}

func (s *sqlStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close is a no-op: the handle belongs to the data layer.
func (s *sqlStore) Close() error {
	return nil
}
