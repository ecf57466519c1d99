package blogservice

import (
	"database/sql"
	"time"

	"github.com/inkstone-dev/inkstone/internal/common"
)

type Post struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	// Body is stored as submitted, minus script tags.
	Body      string    `json:"body"`
	ImgURL    string    `json:"img_url"`
	UserID    int       `json:"user_id"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`

	Comments []Comment `json:"comments,omitempty"`
}

// DisplayDate renders the creation date the way the post page shows it.
func (p *Post) DisplayDate() string {
	return p.CreatedAt.Format("January 2, 2006")
}

type Comment struct {
	ID          int       `json:"id"`
	Body        string    `json:"body"`
	UserID      int       `json:"user_id"`
	PostID      int       `json:"post_id"`
	Author      string    `json:"author"`
	AuthorEmail string    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}

type PostModel struct {
	db *sql.DB
}

type BlogService struct {
	m *PostModel
	c *common.Cache
}
