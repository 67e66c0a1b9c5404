package blogservice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"blogsite/internal/authorservice"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrEditConflict   = errors.New("edit conflict")
	ErrAuthorNotFound = errors.New("author does not exist")
)

func newBlogModel(db *sql.DB) *BlogModel {
	return &BlogModel{db: db}
}

// ForeignKeyError is a helper function to check if the error is a foreign key constraint error.
func ForeignKeyError(err error, name string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == "23503" && pqErr.Constraint == name {
			return true
		}
	}

	return false
}

func (m *BlogModel) authorExists(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (SELECT 1 FROM authors WHERE id = $1)`

	var exists bool
	err := m.db.QueryRowContext(ctx, query, id).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (m *BlogModel) insert(ctx context.Context, blog *Blog) error {
	query := `
		INSERT INTO blogs (title, body, category, tags, subcategory, author_id, is_published, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at, version`

	args := []any{
		blog.Title,
		blog.Body,
		blog.Category,
		pq.Array(blog.Tags),
		pq.Array(blog.Subcategory),
		blog.AuthorID,
		blog.IsPublished,
		blog.PublishedAt,
	}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&blog.ID, &blog.CreatedAt, &blog.UpdatedAt, &blog.Version)
	if err != nil {
		switch {
		case ForeignKeyError(err, "blogs_author_id_fkey"):
			return ErrAuthorNotFound
		default:
			return err
		}
	}

	return nil
}

// getBlogByID loads the full record, deleted or not. Deletion handling is the
// service's concern.
func (m *BlogModel) getBlogByID(ctx context.Context, id uuid.UUID) (*Blog, error) {
	query := `
		SELECT id, title, body, category, tags, subcategory, author_id, is_published, published_at, is_deleted, deleted_at, created_at, updated_at, version
		FROM blogs
		WHERE id = $1`

	row := m.db.QueryRowContext(ctx, query, id)

	var blog Blog
	err := row.Scan(
		&blog.ID,
		&blog.Title,
		&blog.Body,
		&blog.Category,
		pq.Array(&blog.Tags),
		pq.Array(&blog.Subcategory),
		&blog.AuthorID,
		&blog.IsPublished,
		&blog.PublishedAt,
		&blog.IsDeleted,
		&blog.DeletedAt,
		&blog.CreatedAt,
		&blog.UpdatedAt,
		&blog.Version,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &blog, nil
}

func (m *BlogModel) getBlogOwner(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	query := `
		SELECT author_id
		FROM blogs
		WHERE id = $1`

	var owner uuid.UUID
	err := m.db.QueryRowContext(ctx, query, id).Scan(&owner)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return uuid.Nil, ErrRecordNotFound
		default:
			return uuid.Nil, err
		}
	}

	return owner, nil
}

// getActiveBlogs returns all non-deleted blogs joined with their author.
func (m *BlogModel) getActiveBlogs(ctx context.Context) ([]Blog, error) {
	query := `
		SELECT b.id, b.title, b.body, b.category, b.tags, b.subcategory, b.author_id, b.is_published, b.published_at, b.created_at, b.updated_at, b.version, a.id, a.name, a.email, a.created_at, a.updated_at
		FROM blogs b
		JOIN authors a ON b.author_id = a.id
		WHERE b.is_deleted = false
		ORDER BY b.created_at DESC`

	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blogs []Blog
	for rows.Next() {
		var blog Blog
		var author authorservice.Author
		err := rows.Scan(
			&blog.ID,
			&blog.Title,
			&blog.Body,
			&blog.Category,
			pq.Array(&blog.Tags),
			pq.Array(&blog.Subcategory),
			&blog.AuthorID,
			&blog.IsPublished,
			&blog.PublishedAt,
			&blog.CreatedAt,
			&blog.UpdatedAt,
			&blog.Version,
			&author.ID,
			&author.Name,
			&author.Email,
			&author.CreatedAt,
			&author.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		blog.Author = &author
		blogs = append(blogs, blog)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return blogs, nil
}

// updateBlog writes the merged record back in one statement. The version guard
// turns a concurrent modification into ErrEditConflict instead of a lost
// update.
func (m *BlogModel) updateBlog(ctx context.Context, blog *Blog) error {
	query := `
		UPDATE blogs
		SET title = $1, body = $2, category = $3, tags = $4, subcategory = $5, is_published = $6, published_at = $7, updated_at = now(), version = version + 1
		WHERE id = $8 AND version = $9 AND is_deleted = false
		RETURNING updated_at, version`

	args := []any{
		blog.Title,
		blog.Body,
		blog.Category,
		pq.Array(blog.Tags),
		pq.Array(blog.Subcategory),
		blog.IsPublished,
		blog.PublishedAt,
		blog.ID,
		blog.Version,
	}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&blog.UpdatedAt, &blog.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrEditConflict
		default:
			return err
		}
	}

	return nil
}

// getDeleteState reads only the deletion flag and version of a blog.
func (m *BlogModel) getDeleteState(ctx context.Context, id uuid.UUID) (bool, int, error) {
	query := `
		SELECT is_deleted, version
		FROM blogs
		WHERE id = $1`

	var deleted bool
	var version int
	err := m.db.QueryRowContext(ctx, query, id).Scan(&deleted, &version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return false, 0, ErrRecordNotFound
		default:
			return false, 0, err
		}
	}

	return deleted, version, nil
}

func (m *BlogModel) softDeleteBlog(ctx context.Context, id uuid.UUID, version int) error {
	query := `
		UPDATE blogs
		SET is_deleted = true, deleted_at = now(), updated_at = now(), version = version + 1
		WHERE id = $1 AND version = $2 AND is_deleted = false`

	res, err := m.db.ExecContext(ctx, query, id, version)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows != 1 {
		return ErrEditConflict
	}

	return nil
}
