package userservice

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/inkstone-dev/inkstone/internal/common"
)

var (
	ErrAuthenticationFailure = fmt.Errorf("invalid email or password")
)

func NewUserService(db *sql.DB, mb common.MessageProducer, secret string) *UserService {
	return &UserService{
		m:      newUserModel(db),
		mb:     mb,
		secret: []byte(secret),
	}
}

// RegisterUser creates a new user account, logs it in and publishes an
// user.created event for the welcome email.
func (s *UserService) RegisterUser(ctx context.Context, name, email, password string) (*User, *Session, error) {
	v := common.NewValidator()
	validateName(v, name)
	validateEmail(v, email)
	validatePassword(v, password)
	if !v.Valid() {
		return nil, nil, v.ValidationError()
	}

	u := User{
		Name:     name,
		Email:    email,
		Password: Password{Plain: password},
	}

	err := u.Password.set(u.Password.Plain)
	if err != nil {
		return nil, nil, err
	}

	err = s.m.insertUser(ctx, &u)
	if err != nil {
		return nil, nil, err
	}

	session, err := s.createSession(ctx, u.ID)
	if err != nil {
		return nil, nil, err
	}

	data := struct {
		Email string
		Name  string
	}{
		Email: u.Email,
		Name:  u.Name,
	}

	emailData, err := json.Marshal(data)
	if err != nil {
		return nil, nil, err
	}

	err = s.mb.Publish(ctx, emailData, common.UserCreatedKey, common.MailExchange)
	if err != nil {
		return nil, nil, err
	}

	return &u, session, nil
}

// LoginUser authenticates by email and password and starts a session. A
// missing account and a wrong password are indistinguishable to the caller.
func (s *UserService) LoginUser(ctx context.Context, email, password string) (*User, *Session, error) {
	v := common.NewValidator()
	v.Check(email != "", "email", "must be provided")
	v.Check(password != "", "password", "must be provided")
	if !v.Valid() {
		return nil, nil, ErrAuthenticationFailure
	}

	user, err := s.m.getUserByEmail(ctx, email)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return nil, nil, ErrAuthenticationFailure
		default:
			return nil, nil, err
		}
	}

	ok, err := user.Password.compare(password)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, ErrAuthenticationFailure
	}

	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	return user, session, nil
}

// GetUserBySessionToken resolves the session cookie token to its user. The
// role comes straight from the users table on every call, never from the
// session itself.
func (s *UserService) GetUserBySessionToken(ctx context.Context, token string) (*User, error) {
	v := common.NewValidator()
	ValidateSessionToken(v, token)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	hash := hashSessionToken(token, s.secret)

	return s.m.getUserBySessionHash(ctx, hash)
}

func (s *UserService) LogoutUser(ctx context.Context, token string) error {
	v := common.NewValidator()
	ValidateSessionToken(v, token)
	if !v.Valid() {
		return v.ValidationError()
	}

	hash := hashSessionToken(token, s.secret)

	return s.m.deleteSessionByHash(ctx, hash)
}

// DeleteExpiredSessions is housekeeping for the sessions table.
func (s *UserService) DeleteExpiredSessions(ctx context.Context) error {
	return s.m.deleteExpiredSessions(ctx)
}

func (s *UserService) createSession(ctx context.Context, userID int) (*Session, error) {
	session, err := newSession(userID, SessionTokenTime, s.secret)
	if err != nil {
		return nil, err
	}

	err = s.m.insertSession(ctx, session)
	if err != nil {
		return nil, err
	}

	return session, nil
}

func (u *User) IsAnonymous() bool {
	return u == &AnonymousUser
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
