package blogservice

import (
	"context"
	"database/sql"
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"

	"blogsite/internal/common"
)

var (
	// ErrNotOwner is returned when the authenticated author tries to create a
	// blog attributed to a different author.
	ErrNotOwner = errors.New("author mismatch")
)

func NewBlogService(db *sql.DB, c *common.Cache) *BlogService {
	return &BlogService{m: newBlogModel(db), c: c}
}

type CreateBlogRequest struct {
	AuthorID    string   `json:"authorId"`
	Title       string   `json:"title"`
	Body        string   `json:"body"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	Subcategory []string `json:"subcategory"`
	IsPublished bool     `json:"isPublished"`
	IsDeleted   bool     `json:"isDeleted"`
}

// CreateBlog validates and persists a new blog. The caller id comes from the
// bearer credential; a blog can only be attributed to the caller itself.
func (s *BlogService) CreateBlog(ctx context.Context, callerID uuid.UUID, req *CreateBlogRequest) (*Blog, error) {
	v := common.NewValidator()

	if req.AuthorID == "" {
		v.AddError("authorId", "must be provided")
		return nil, v.ValidationError()
	}

	authorID, err := uuid.Parse(req.AuthorID)
	if err != nil {
		v.AddError("authorId", "must be a valid author id")
		return nil, v.ValidationError()
	}

	exists, err := s.m.authorExists(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if !exists {
		v.AddError("authorId", "does not exist")
		return nil, v.ValidationError()
	}

	v.Check(req.Title != "", "title", "must be provided")
	v.Check(req.Body != "", "body", "must be provided")
	v.Check(req.Category != "", "category", "must be provided")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	// Clients cannot create pre-deleted blogs.
	v.Check(!req.IsDeleted, "isDeleted", "cannot be true")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	validateNotBlank(v, "title", req.Title)
	validateNotBlank(v, "body", req.Body)
	validateNotBlank(v, "category", req.Category)
	for _, tag := range req.Tags {
		validateNotBlank(v, "tags", tag)
	}
	for _, sub := range req.Subcategory {
		validateNotBlank(v, "subcategory", sub)
	}
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if callerID != authorID {
		return nil, ErrNotOwner
	}

	blog := &Blog{
		Title:       req.Title,
		Body:        req.Body,
		Category:    req.Category,
		Tags:        req.Tags,
		Subcategory: req.Subcategory,
		AuthorID:    authorID,
		IsPublished: req.IsPublished,
	}

	if blog.Tags == nil {
		blog.Tags = []string{}
	}
	if blog.Subcategory == nil {
		blog.Subcategory = []string{}
	}

	if blog.IsPublished {
		now := time.Now()
		blog.PublishedAt = &now
	}

	if err := s.m.insert(ctx, blog); err != nil {
		return nil, err
	}

	s.c.Delete(common.CacheKeyBlogList())

	return blog, nil
}

// ListBlogs returns every non-deleted blog with its author embedded, newest
// first. An empty result is reported as ErrRecordNotFound.
func (s *BlogService) ListBlogs(ctx context.Context) ([]Blog, error) {
	if cached, ok := s.c.Get(common.CacheKeyBlogList()); ok {
		return cached.([]Blog), nil
	}

	blogs, err := s.m.getActiveBlogs(ctx)
	if err != nil {
		return nil, err
	}

	if len(blogs) == 0 {
		return nil, ErrRecordNotFound
	}

	s.c.Set(common.CacheKeyBlogList(), blogs)

	return blogs, nil
}

// GetBlogOwner resolves a blog id to its author id for ownership checks. It
// deliberately ignores the deletion flag so that the authorization middleware
// can reject a non-owner before the handler's privacy-preserving not-found.
func (s *BlogService) GetBlogOwner(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	return s.m.getBlogOwner(ctx, id)
}

type UpdateBlogRequest struct {
	Title       *string `json:"title"`
	Body        *string `json:"body"`
	Category    *string `json:"category"`
	Tags        *string `json:"tags"`
	Subcategory *string `json:"subcategory"`
	IsPublished *bool   `json:"isPublished"`
}

// UpdateBlog applies a partial update with merge semantics: title and category
// are replaced, body is appended, tags and subcategory gain the submitted value
// only if absent. The whole update is computed from one read of the record and
// written back as a single statement guarded by the record version.
func (s *BlogService) UpdateBlog(ctx context.Context, id uuid.UUID, req *UpdateBlogRequest) (*Blog, error) {
	v := common.NewValidator()
	if req.Title != nil {
		validateNotBlank(v, "title", *req.Title)
	}
	if req.Body != nil {
		validateNotBlank(v, "body", *req.Body)
	}
	if req.Category != nil {
		validateNotBlank(v, "category", *req.Category)
	}
	if req.Tags != nil {
		validateNotBlank(v, "tags", *req.Tags)
	}
	if req.Subcategory != nil {
		validateNotBlank(v, "subcategory", *req.Subcategory)
	}
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	blog, err := s.m.getBlogByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// A deleted blog must be indistinguishable from a missing one, and must
	// not be mutated in any way.
	if blog.IsDeleted {
		return nil, ErrRecordNotFound
	}

	if req.Title != nil {
		blog.Title = *req.Title
	}
	if req.Category != nil {
		blog.Category = *req.Category
	}
	if req.Body != nil {
		blog.Body += *req.Body
	}
	if req.Tags != nil && !slices.Contains(blog.Tags, *req.Tags) {
		blog.Tags = append(blog.Tags, *req.Tags)
	}
	if req.Subcategory != nil && !slices.Contains(blog.Subcategory, *req.Subcategory) {
		blog.Subcategory = append(blog.Subcategory, *req.Subcategory)
	}

	if req.IsPublished != nil {
		if *req.IsPublished {
			now := time.Now()
			blog.IsPublished = true
			blog.PublishedAt = &now
		} else {
			blog.IsPublished = false
			blog.PublishedAt = nil
		}
	}

	if err := s.m.updateBlog(ctx, blog); err != nil {
		return nil, err
	}

	s.c.Delete(common.CacheKeyBlogList())

	return blog, nil
}

// DeleteBlog soft-deletes a blog. An already deleted blog reports
// ErrRecordNotFound so callers cannot tell "deleted" from "never existed".
func (s *BlogService) DeleteBlog(ctx context.Context, id uuid.UUID) error {
	deleted, version, err := s.m.getDeleteState(ctx, id)
	if err != nil {
		return err
	}

	if deleted {
		return ErrRecordNotFound
	}

	if err := s.m.softDeleteBlog(ctx, id, version); err != nil {
		return err
	}

	s.c.Delete(common.CacheKeyBlogList())

	return nil
}
