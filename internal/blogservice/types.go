package blogservice

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"blogsite/internal/authorservice"
	"blogsite/internal/common"
)

type Blog struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Body     string    `json:"body"`
	Category string    `json:"category"`
	// Subcategory and Tags are ordered sets: updates append a value only if it
	// is not already present.
	Subcategory []string              `json:"subcategory"`
	Tags        []string              `json:"tags"`
	AuthorID    uuid.UUID             `json:"authorId"`
	Author      *authorservice.Author `json:"author,omitempty"`
	IsPublished bool                  `json:"isPublished"`
	PublishedAt *time.Time            `json:"publishedAt,omitempty"`
	IsDeleted   bool                  `json:"isDeleted"`
	DeletedAt   *time.Time            `json:"deletedAt,omitempty"`
	CreatedAt   time.Time             `json:"createdAt"`
	UpdatedAt   time.Time             `json:"updatedAt"`
	Version     int                   `json:"-"`
}

type BlogModel struct {
	db *sql.DB
}

type BlogService struct {
	m *BlogModel
	c *common.Cache
}
