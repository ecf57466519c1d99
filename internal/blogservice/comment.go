package blogservice

import (
	"context"

	"github.com/mattn/go-sqlite3"
)

func (m *PostModel) insertComment(ctx context.Context, c *Comment) error {
	query := `
		INSERT INTO comments (body, user_id, post_id)
		VALUES (?, ?, ?)`

	res, err := m.db.ExecContext(ctx, query, c.Body, c.UserID, c.PostID)
	if err != nil {
		switch {
		case constraintError(err, sqlite3.ErrConstraintForeignKey):
			return ErrRecordNotFound
		default:
			return err
		}
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = int(id)

	return nil
}

// getCommentsByPostId resolves author name and email through the users table;
// the email feeds avatar derivation at render time.
func (m *PostModel) getCommentsByPostId(ctx context.Context, postID int) ([]Comment, error) {
	query := `
		SELECT c.id, c.body, c.user_id, c.post_id, c.created_at, u.name, u.email
		FROM comments c
		JOIN users u ON c.user_id = u.id
		WHERE c.post_id = ?
		ORDER BY c.created_at ASC, c.id ASC`

	rows, err := m.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []Comment
	for rows.Next() {
		var c Comment
		err := rows.Scan(&c.ID, &c.Body, &c.UserID, &c.PostID, &c.CreatedAt, &c.Author, &c.AuthorEmail)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return comments, nil
}
