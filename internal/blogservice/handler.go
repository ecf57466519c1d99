package blogservice

import (
	"context"
	"database/sql"
	"time"

	"github.com/inkstone-dev/inkstone/internal/common"
)

func NewBlogService(db *sql.DB) *BlogService {
	return &BlogService{
		m: newPostModel(db),
		c: common.NewCache(1*time.Minute, 5*time.Minute),
	}
}

type CreatePostRequest struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Body     string `json:"body"`
	ImgURL   string `json:"img_url"`
	UserID   int    `json:"user_id"`
}

// CreatePost creates a new blog post owned by the given user.
func (s *BlogService) CreatePost(ctx context.Context, req *CreatePostRequest) (*Post, error) {
	v := common.NewValidator()
	validateTitle(v, req.Title)
	validateSubtitle(v, req.Subtitle)
	validateBody(v, req.Body)
	validateImgURL(v, req.ImgURL)
	validateInt(v, req.UserID, "user_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	post := Post{
		Title:    req.Title,
		Subtitle: req.Subtitle,
		Body:     sanitizeBody(req.Body),
		ImgURL:   req.ImgURL,
		UserID:   req.UserID,
	}

	err := s.m.insert(ctx, &post)
	if err != nil {
		return nil, err
	}

	s.c.Delete(common.CacheKeyPostList())

	return &post, nil
}

// GetPostByID returns a post together with its comments.
func (s *BlogService) GetPostByID(ctx context.Context, id int) (*Post, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if cached, found := s.c.Get(common.CacheKeyPost(id)); found {
		return cached.(*Post), nil
	}

	post, err := s.m.getPostById(ctx, id)
	if err != nil {
		return nil, err
	}

	comments, err := s.m.getCommentsByPostId(ctx, id)
	if err != nil {
		return nil, err
	}
	post.Comments = comments

	s.c.Set(common.CacheKeyPost(id), post)

	return post, nil
}

// ListPosts returns every post, newest first.
func (s *BlogService) ListPosts(ctx context.Context) ([]Post, error) {
	if cached, found := s.c.Get(common.CacheKeyPostList()); found {
		return cached.([]Post), nil
	}

	posts, err := s.m.getPosts(ctx)
	if err != nil {
		return nil, err
	}

	s.c.Set(common.CacheKeyPostList(), posts)

	return posts, nil
}

// UpdatePost overwrites the post fields from the edit form. Ownership does not
// change and neither does the creation date.
func (s *BlogService) UpdatePost(ctx context.Context, post *Post) error {
	v := common.NewValidator()
	validateInt(v, post.ID, "id")
	validateTitle(v, post.Title)
	validateSubtitle(v, post.Subtitle)
	validateBody(v, post.Body)
	validateImgURL(v, post.ImgURL)
	if !v.Valid() {
		return v.ValidationError()
	}

	post.Body = sanitizeBody(post.Body)

	err := s.m.updatePost(ctx, post)
	if err != nil {
		return err
	}

	s.c.Delete(common.CacheKeyPost(post.ID))
	s.c.Delete(common.CacheKeyPostList())

	return nil
}

// DeletePost removes a post and, through the cascade, all of its comments.
func (s *BlogService) DeletePost(ctx context.Context, id int) error {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return v.ValidationError()
	}

	err := s.m.deletePost(ctx, id)
	if err != nil {
		return err
	}

	s.c.Delete(common.CacheKeyPost(id))
	s.c.Delete(common.CacheKeyPostList())

	return nil
}

// AddComment attaches a comment by an authenticated user to a post.
func (s *BlogService) AddComment(ctx context.Context, body string, userID, postID int) (*Comment, error) {
	v := common.NewValidator()
	validateComment(v, body)
	validateInt(v, userID, "user_id")
	validateInt(v, postID, "post_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	comment := Comment{
		Body:   sanitizeBody(body),
		UserID: userID,
		PostID: postID,
	}

	err := s.m.insertComment(ctx, &comment)
	if err != nil {
		return nil, err
	}

	s.c.Delete(common.CacheKeyPost(postID))

	return &comment, nil
}
