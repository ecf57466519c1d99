package userservice

import (
	"database/sql"
	"time"

	"github.com/inkstone-dev/inkstone/internal/common"
)

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"

	SessionTokenTime time.Duration = 7 * 24 * time.Hour
)

var (
	AnonymousUser = User{}
)

type UserService struct {
	m      *DBModel
	mb     common.MessageProducer
	secret []byte
}

type DBModel struct {
	db *sql.DB
}

type User struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Password  Password  `json:"-"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type Password struct {
	Plain string `json:"-"`
	hash  []byte `json:"-"`
}

// Session is a server-side login session. The cookie carries Plain; only the
// keyed hash is stored.
type Session struct {
	Plain  string
	Hash   []byte
	UserID int
	Expiry time.Time
}
