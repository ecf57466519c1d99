package blogservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateTitle = errors.New("duplicate title")
	ErrUserForeignKey = errors.New("user_id does not exist")
)

func newPostModel(db *sql.DB) *PostModel {
	return &PostModel{db: db}
}

// constraintError reports whether err is the given SQLite constraint violation.
func constraintError(err error, code sqlite3.ErrNoExtended) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == code
}

func (m *PostModel) insert(ctx context.Context, p *Post) error {
	query := `
		INSERT INTO posts (title, subtitle, body, img_url, user_id)
		VALUES (?, ?, ?, ?, ?)`

	res, err := m.db.ExecContext(ctx, query, p.Title, p.Subtitle, p.Body, p.ImgURL, p.UserID)
	if err != nil {
		switch {
		case constraintError(err, sqlite3.ErrConstraintUnique):
			return ErrDuplicateTitle
		case constraintError(err, sqlite3.ErrConstraintForeignKey):
			return ErrUserForeignKey
		default:
			return err
		}
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = int(id)

	return nil
}

// getPostById joins the users table so the author display name is always the
// current one rather than a denormalized copy.
func (m *PostModel) getPostById(ctx context.Context, id int) (*Post, error) {
	query := `
		SELECT p.id, p.title, p.subtitle, p.body, p.img_url, p.user_id, p.created_at, u.name
		FROM posts p
		JOIN users u ON p.user_id = u.id
		WHERE p.id = ?`

	row := m.db.QueryRowContext(ctx, query, id)

	var post Post
	err := row.Scan(&post.ID, &post.Title, &post.Subtitle, &post.Body, &post.ImgURL, &post.UserID, &post.CreatedAt, &post.Author)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &post, nil
}

func (m *PostModel) getPosts(ctx context.Context) ([]Post, error) {
	query := `
		SELECT p.id, p.title, p.subtitle, p.body, p.img_url, p.user_id, p.created_at, u.name
		FROM posts p
		JOIN users u ON p.user_id = u.id
		ORDER BY p.created_at DESC, p.id DESC`

	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		var post Post
		err := rows.Scan(&post.ID, &post.Title, &post.Subtitle, &post.Body, &post.ImgURL, &post.UserID, &post.CreatedAt, &post.Author)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

func (m *PostModel) updatePost(ctx context.Context, p *Post) error {
	query := `
		UPDATE posts
		SET title = ?, subtitle = ?, body = ?, img_url = ?
		WHERE id = ?`

	res, err := m.db.ExecContext(ctx, query, p.Title, p.Subtitle, p.Body, p.ImgURL, p.ID)
	if err != nil {
		switch {
		case constraintError(err, sqlite3.ErrConstraintUnique):
			return ErrDuplicateTitle
		default:
			return err
		}
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows != 1 {
		switch {
		case rows == 0:
			return ErrRecordNotFound
		default:
			return fmt.Errorf("expected 1 row to be affected, got %d", rows)
		}
	}

	return nil
}

// deletePost removes the post row. Its comments go with it through the
// ON DELETE CASCADE constraint.
func (m *PostModel) deletePost(ctx context.Context, id int) error {
	query := `
		DELETE FROM posts
		WHERE id = ?`

	res, err := m.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows != 1 {
		switch {
		case rows == 0:
			return ErrRecordNotFound
		default:
			return fmt.Errorf("expected 1 row to be affected, got %d", rows)
		}
	}

	return nil
}
