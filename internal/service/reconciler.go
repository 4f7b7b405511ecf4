// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/MKhiriev/go-portal-identity/internal/adapter"
	"github.com/MKhiriev/go-portal-identity/internal/crypto"
	"github.com/MKhiriev/go-portal-identity/internal/logger"
	"github.com/MKhiriev/go-portal-identity/internal/metrics"
	"github.com/MKhiriev/go-portal-identity/internal/store"
	"github.com/MKhiriev/go-portal-identity/models"
)

const cloudIDPrefix = "cloud-"

// reconciler pulls the mirror and merges it into the registry. It does not
// lock anything itself; callers serialize it with other registry writes.
type reconciler struct {
	users   store.UserRegistry
	mirror  adapter.MirrorAdapter
	hasher  crypto.PasswordHasher
	metrics *metrics.Metrics

	logger *logger.Logger
}

func NewReconciler(users store.UserRegistry, mirror adapter.MirrorAdapter, hasher crypto.PasswordHasher, m *metrics.Metrics, logger *logger.Logger) Reconciler {
	return &reconciler{
		users:   users,
		mirror:  mirror,
		hasher:  hasher,
		metrics: m,
		logger:  logger,
	}
}

// Reconcile walks the mirror records newest first. Unknown usernames are
// synthesized as administrators, known ones take the remote password when
// it differs. Only the newest record of a username is considered, so a
// second pass over an unchanged mirror writes nothing. Local records
// missing from the mirror are kept.
func (r *reconciler) Reconcile(ctx context.Context) (models.ReconcileResult, error) {
	log := r.logger.With().Str("func", "*reconciler.Reconcile").Logger()

	records, err := r.mirror.FetchAll(ctx)
	if err != nil {
		if errors.Is(err, adapter.ErrNotConfigured) {
			log.Debug().Msg("mirror is not configured, nothing to reconcile")
			r.metrics.ObserveReconcile(metrics.OutcomeSkipped, 0, 0)
		} else {
			log.Warn().Err(err).Msg("mirror fetch failed, keeping local registry")
			r.metrics.ObserveReconcile(metrics.OutcomeFailure, 0, 0)
		}
		return models.ReconcileResult{}, nil
	}

	result := models.ReconcileResult{Fetched: len(records)}

	users, err := r.users.All(ctx)
	if err != nil {
		return result, fmt.Errorf("load registry: %w", err)
	}

	index := make(map[string]int, len(users))
	for i, u := range users {
		index[u.Username] = i
	}
	seen := make(map[string]struct{}, len(records))

	for _, rec := range records {
		if rec.Username == "" || rec.Password == "" {
			log.Debug().Int64("remote_id", rec.ID).Msg("skipping incomplete mirror record")
			continue
		}
		if _, dup := seen[rec.Username]; dup {
			continue
		}
		seen[rec.Username] = struct{}{}

		i, known := index[rec.Username]
		if !known {
			hash, err := r.storedHash(rec.Password)
			if err != nil {
				log.Warn().Err(err).Str("username", rec.Username).Msg("skipping mirror record with unusable password")
				continue
			}
			users = append(users, synthesizeUser(rec, hash))
			index[rec.Username] = len(users) - 1
			result.Added++
			continue
		}

		hash, drifted, err := r.drift(users[i].Password, rec.Password)
		if err != nil {
			log.Warn().Err(err).Str("username", rec.Username).Msg("skipping mirror record with unusable password")
			continue
		}
		if drifted {
			users[i].Password = hash
			result.Updated++
		}
	}

	if result.Changed() {
		if err = r.users.ReplaceAll(ctx, users); err != nil {
			r.metrics.ObserveReconcile(metrics.OutcomeFailure, 0, 0)
			return result, fmt.Errorf("persist registry: %w", err)
		}
		result.Persisted = true
	}

	r.metrics.ObserveReconcile(metrics.OutcomeSuccess, result.Added, result.Updated)
	log.Info().
		Int("fetched", result.Fetched).
		Int("added", result.Added).
		Int("updated", result.Updated).
		Msg("reconciliation finished")

	return result, nil
}

// storedHash returns the value to keep locally for a remote password:
// hashes are kept as they are, legacy plaintext values are hashed.
func (r *reconciler) storedHash(remote string) (string, error) {
	if r.hasher.IsHash(remote) {
		return remote, nil
	}

	return r.hasher.Hash(remote)
}

// drift compares a remote password with the local hash. A remote hash must
// match byte for byte; a plaintext value matches when it verifies against
// the local hash.
func (r *reconciler) drift(local, remote string) (string, bool, error) {
	if r.hasher.IsHash(remote) {
		return remote, remote != local, nil
	}

	err := r.hasher.Verify(remote, local)
	if err == nil {
		return local, false, nil
	}
	if !errors.Is(err, crypto.ErrPasswordMismatch) && r.hasher.IsHash(local) {
		return "", false, err
	}

	hash, err := r.hasher.Hash(remote)
	if err != nil {
		return "", false, err
	}

	return hash, true, nil
}

func synthesizeUser(rec models.MirroredCredential, hash string) models.User {
	return models.User{
		ID:         cloudIDPrefix + strconv.FormatInt(rec.ID, 10),
		Username:   rec.Username,
		Password:   hash,
		FullName:   FullNameFromUsername(rec.Username),
		Role:       models.RoleAdmin,
		Avatar:     models.AvatarURL(rec.Username),
		Department: models.DefaultAdminDepartment,
	}
}
