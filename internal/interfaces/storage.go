package interfaces

import (
	"context"

	"github.com/bobmcallan/horizon/internal/models"
)

// InternalStore manages user accounts and system-level key-value config.
type InternalStore interface {
	GetUser(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	SaveUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, userID string) error
	ListUsers(ctx context.Context) ([]string, error)

	GetSystemKV(ctx context.Context, key string) (string, error)
	SetSystemKV(ctx context.Context, key, value string) error

	Close() error
}

// UserDataStore holds per-user domain documents: the portfolio and the
// latest forecast snapshot.
type UserDataStore interface {
	GetPortfolio(ctx context.Context, userID string) (*models.Portfolio, error)
	SavePortfolio(ctx context.Context, portfolio *models.Portfolio) error

	GetForecast(ctx context.Context, userID string) (*models.ForecastResult, error)
	SaveForecast(ctx context.Context, userID string, forecast *models.ForecastResult) error

	Close() error
}
