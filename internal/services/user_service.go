package services

import (
	"context"
	"fmt"
	"strings"

	"daytrack/internal/core"
	"daytrack/internal/store"
)

// UserService registers accounts, upserting by normalized email.
type UserService struct {
	store store.RecordStore
}

func NewUserService(st store.RecordStore) *UserService {
	return &UserService{store: st}
}

// Register creates the user or updates the name of an existing one.
func (s *UserService) Register(ctx context.Context, name, email string) (core.User, error) {
	u := core.User{
		Name:  strings.TrimSpace(name),
		Email: core.NormalizeUserKey(email),
	}
	if err := u.Validate(); err != nil {
		return core.User{}, err
	}

	stored, err := s.store.UpsertUser(ctx, u)
	if err != nil {
		return core.User{}, fmt.Errorf("upsert user: %w", err)
	}
	return stored, nil
}
