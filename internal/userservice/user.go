package userservice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mattn/go-sqlite3"
)

var (
	ErrDuplicateEmail = errors.New("duplicate email")
	ErrNotFound       = errors.New("user not found")
)

func newUserModel(db *sql.DB) *DBModel {
	return &DBModel{db: db}
}

// insertUser creates the user row. The first account ever created becomes the
// admin; everyone after that is a plain member.
func (m *DBModel) insertUser(ctx context.Context, u *User) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	var count int
	err = tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count)
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	u.Role = RoleMember
	if count == 0 {
		u.Role = RoleAdmin
	}

	query := `
		INSERT INTO users (email, name, password, role)
		VALUES (?, ?, ?, ?)`

	res, err := tx.ExecContext(ctx, query, u.Email, u.Name, u.Password.hash, string(u.Role))
	if err != nil {
		_ = tx.Rollback()

		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return ErrDuplicateEmail
		}
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	u.ID = int(id)

	return tx.Commit()
}

func (m *DBModel) getUserByEmail(ctx context.Context, email string) (*User, error) {
	query := `
		SELECT id, email, name, password, role, created_at
		FROM users
		WHERE email = ?`

	var u User

	err := m.db.QueryRowContext(ctx, query, email).Scan(&u.ID, &u.Email, &u.Name, &u.Password.hash, &u.Role, &u.CreatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrNotFound
		default:
			return nil, err
		}
	}

	return &u, nil
}
