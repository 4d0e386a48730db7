// Package internaldb implements InternalStore using BadgerHold.
// It manages user accounts and system-level KV config.
package internaldb

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/timshannon/badgerhold/v4"

	"github.com/bobmcallan/horizon/internal/common"
	"github.com/bobmcallan/horizon/internal/interfaces"
	"github.com/bobmcallan/horizon/internal/models"
)

// Store implements interfaces.InternalStore using BadgerHold.
type Store struct {
	db     *badgerhold.Store
	logger *common.Logger
}

// systemKeyPrefix namespaces system KV entries so they cannot collide with
// user ids used as keys in the same store.
const systemKeyPrefix = "__system__\x00"

// NewStore creates a new InternalStore backed by BadgerHold.
func NewStore(logger *common.Logger, path string) (*Store, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create internal db path %s: %w", path, err)
	}
	opts := badgerhold.DefaultOptions
	opts.Dir = path
	opts.ValueDir = path
	opts.Logger = nil
	db, err := badgerhold.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open internal db at %s: %w", path, err)
	}
	logger.Info().Str("path", path).Msg("InternalDB opened")
	return &Store{db: db, logger: logger}, nil
}

// --- User accounts ---

func (s *Store) GetUser(_ context.Context, userID string) (*models.User, error) {
	var user models.User
	if err := s.db.Get(userID, &user); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("user '%s' not found", userID)
		}
		return nil, fmt.Errorf("failed to get user '%s': %w", userID, err)
	}
	return &user, nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var users []models.User
	if err := s.db.Find(&users, badgerhold.Where("Email").Eq(email)); err != nil {
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("user with email '%s' not found", email)
	}
	return &users[0], nil
}

func (s *Store) SaveUser(_ context.Context, user *models.User) error {
	if strings.TrimSpace(user.UserID) == "" {
		return fmt.Errorf("user id is required")
	}
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	now := time.Now()
	var existing models.User
	if err := s.db.Get(user.UserID, &existing); err == nil {
		user.CreatedAt = existing.CreatedAt
	} else if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.ModifiedAt = now

	if err := s.db.Upsert(user.UserID, user); err != nil {
		return fmt.Errorf("failed to save user '%s': %w", user.UserID, err)
	}
	s.logger.Debug().Str("user_id", user.UserID).Msg("User saved")
	return nil
}

func (s *Store) DeleteUser(_ context.Context, userID string) error {
	if err := s.db.Delete(userID, models.User{}); err != nil && err != badgerhold.ErrNotFound {
		return fmt.Errorf("failed to delete user '%s': %w", userID, err)
	}
	s.logger.Debug().Str("user_id", userID).Msg("User deleted")
	return nil
}

func (s *Store) ListUsers(_ context.Context) ([]string, error) {
	var users []models.User
	if err := s.db.Find(&users, nil); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	ids := make([]string, len(users))
	for i, u := range users {
		ids[i] = u.UserID
	}
	return ids, nil
}

// --- System key-value config ---

func (s *Store) GetSystemKV(_ context.Context, key string) (string, error) {
	var kv models.SystemKeyValue
	if err := s.db.Get(systemKeyPrefix+key, &kv); err != nil {
		if err == badgerhold.ErrNotFound {
			return "", fmt.Errorf("system key '%s' not found", key)
		}
		return "", fmt.Errorf("failed to get system key '%s': %w", key, err)
	}
	return kv.Value, nil
}

func (s *Store) SetSystemKV(_ context.Context, key, value string) error {
	kv := models.SystemKeyValue{
		Key:        key,
		Value:      value,
		ModifiedAt: time.Now(),
	}
	if err := s.db.Upsert(systemKeyPrefix+key, &kv); err != nil {
		return fmt.Errorf("failed to set system key '%s': %w", key, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ensure Store implements InternalStore
var _ interfaces.InternalStore = (*Store)(nil)
