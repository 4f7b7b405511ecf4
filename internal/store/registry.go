// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-portal-identity/internal/crypto"
	"github.com/MKhiriev/go-portal-identity/internal/logger"
	"github.com/MKhiriev/go-portal-identity/models"
)

// userRegistry keeps the whole registry in the "users" document and
// rewrites it on every mutation.
type userRegistry struct {
	docs   DocumentStore
	hasher crypto.PasswordHasher
	logger *logger.Logger
}

func NewUserRegistry(docs DocumentStore, hasher crypto.PasswordHasher, logger *logger.Logger) UserRegistry {
	return &userRegistry{
		docs:   docs,
		hasher: hasher,
		logger: logger,
	}
}

func (r *userRegistry) Initialize(ctx context.Context) error {
	users, err := r.load(ctx)
	if err != nil {
		return err
	}
	if len(users) > 0 {
		return nil
	}

	seeded := defaultAccounts()
	for i := range seeded {
		hash, err := r.hasher.Hash(defaultSeedPassword)
		if err != nil {
			return fmt.Errorf("hash seed password: %w", err)
		}
		seeded[i].Password = hash
	}

	if err = r.save(ctx, seeded); err != nil {
		return err
	}
	r.logger.Info().Str("func", "*userRegistry.Initialize").Int("accounts", len(seeded)).Msg("seeded default accounts")

	return nil
}

func (r *userRegistry) Find(ctx context.Context, username string) (models.User, error) {
	users, err := r.load(ctx)
	if err != nil {
		return models.User{}, err
	}

	if i := indexOf(users, username); i >= 0 {
		return users[i], nil
	}

	return models.User{}, ErrUserNotFound
}

func (r *userRegistry) Insert(ctx context.Context, user models.User) error {
	users, err := r.load(ctx)
	if err != nil {
		return err
	}

	if indexOf(users, user.Username) >= 0 {
		return ErrDuplicateUsername
	}

	return r.save(ctx, append(users, user))
}

func (r *userRegistry) UpdatePassword(ctx context.Context, username, passwordHash string) error {
	users, err := r.load(ctx)
	if err != nil {
		return err
	}

	i := indexOf(users, username)
	if i < 0 {
		return nil
	}
	users[i].Password = passwordHash

	return r.save(ctx, users)
}

func (r *userRegistry) All(ctx context.Context) ([]models.User, error) {
	return r.load(ctx)
}

func (r *userRegistry) ReplaceAll(ctx context.Context, users []models.User) error {
	return r.save(ctx, users)
}

// load reads the registry. An undecodable document is logged and read as
// an empty registry.
func (r *userRegistry) load(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if _, err := loadJSON(ctx, r.docs, DocumentUsers, &users); err != nil {
		if errors.Is(err, ErrCorruptDocument) {
			r.logger.Warn().Err(err).Str("func", "*userRegistry.load").Msg("registry unreadable, treating as empty")
			return []models.User{}, nil
		}
		return nil, err
	}

	if users == nil {
		users = []models.User{}
	}

	return users, nil
}

func (r *userRegistry) save(ctx context.Context, users []models.User) error {
	if users == nil {
		users = []models.User{}
	}

	return saveJSON(ctx, r.docs, DocumentUsers, users)
}

func indexOf(users []models.User, username string) int {
	for i := range users {
		if users[i].Username == username {
			return i
		}
	}

	return -1
}
