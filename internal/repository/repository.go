package repository

import (
	"context"
	"database/sql"
	"time"

	"aquafeed/internal/models"
)

// Authorization stores operator accounts.
type Authorization interface {
	Create(ctx context.Context, username, hash string) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// EventRepo is the append-only dashboard journal.
type EventRepo interface {
	Append(ctx context.Context, e models.DashboardEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.DashboardEvent, error)
}

type Repository struct {
	EventRepo EventRepo
	Auth      Authorization
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		EventRepo: NewEventSQLite(db),
		Auth:      NewUserRepository(db),
	}
}
