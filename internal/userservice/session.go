package userservice

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/base32"
	"errors"
	"time"
)

// hashSessionToken derives the stored lookup key from the plaintext cookie
// token. The hash is keyed with the session secret so a leaked database copy
// cannot be replayed as cookies.
func hashSessionToken(token string, secret []byte) []byte {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(token))
	return mac.Sum(nil)
}

func newSession(userID int, ttl time.Duration, secret []byte) (*Session, error) {
	randomBytes := make([]byte, 16)
	_, err := rand.Read(randomBytes)
	if err != nil {
		return nil, err
	}

	s := &Session{
		Plain:  base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(randomBytes),
		UserID: userID,
		Expiry: time.Now().Add(ttl),
	}

	s.Hash = hashSessionToken(s.Plain, secret)

	return s, nil
}

func (m *DBModel) insertSession(ctx context.Context, s *Session) error {
	query := `
		INSERT INTO sessions (hash, user_id, expiry)
		VALUES (?, ?, ?)`

	_, err := m.db.ExecContext(ctx, query, s.Hash, s.UserID, s.Expiry)
	return err
}

func (m *DBModel) getUserBySessionHash(ctx context.Context, hash []byte) (*User, error) {
	query := `
		SELECT u.id, u.email, u.name, u.role, u.created_at
		FROM users u
		INNER JOIN sessions s ON u.id = s.user_id
		WHERE s.hash = ? AND s.expiry > ?`

	var u User

	err := m.db.QueryRowContext(ctx, query, hash, time.Now()).Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.CreatedAt)
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

func (m *DBModel) deleteSessionByHash(ctx context.Context, hash []byte) error {
	query := `
		DELETE FROM sessions
		WHERE hash = ?`

	_, err := m.db.ExecContext(ctx, query, hash)
	return err
}

func (m *DBModel) deleteExpiredSessions(ctx context.Context) error {
	query := `
		DELETE FROM sessions
		WHERE expiry <= ?`

	_, err := m.db.ExecContext(ctx, query, time.Now())
	return err
}
