// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/MKhiriev/go-portal-identity/internal/adapter"
	"github.com/MKhiriev/go-portal-identity/internal/logger"
	"github.com/MKhiriev/go-portal-identity/internal/metrics"
	"github.com/MKhiriev/go-portal-identity/internal/mock"
	"github.com/MKhiriev/go-portal-identity/internal/store"
	"github.com/MKhiriev/go-portal-identity/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestReconciler(t *testing.T, ctrl *gomock.Controller) (Reconciler, *store.Storages, *countingStore, *mock.MockMirrorAdapter, *metrics.Metrics) {
	t.Helper()
	storages, docs, hasher := newTestStorages()
	mirror := mock.NewMockMirrorAdapter(ctrl)
	m := metrics.New()

	require.NoError(t, storages.Users.Initialize(context.Background()))

	return NewReconciler(storages.Users, mirror, hasher, m, logger.Nop()), storages, docs, mirror, m
}

func mirrorRecord(id int64, username, password string) models.MirroredCredential {
	return models.MirroredCredential{
		ID:         id,
		Username:   username,
		Password:   password,
		CapturedAt: models.Timestamp{Time: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(id) * time.Minute)},
		UserAgent:  "go-portal-identity/test",
		AppContext: "Portal_Enterprise_Signup",
	}
}

// ── mirror empty ─────────────────────────────────────────────────────────────

func TestReconciler_EmptyMirror_IsNoop(t *testing.T) {
	ctrl := gomock.NewController(t)
	r, _, docs, mirror, m := newTestReconciler(t, ctrl)
	ctx := context.Background()

	before := docs.raw(t, store.DocumentUsers)
	mirror.EXPECT().FetchAll(gomock.Any()).Return([]models.MirroredCredential{}, nil)

	result, err := r.Reconcile(ctx)
	require.NoError(t, err)

	assert.Equal(t, models.ReconcileResult{}, result)
	assert.Equal(t, 1, docs.savesOf(store.DocumentUsers), "only the seeding write")
	assert.Equal(t, before, docs.raw(t, store.DocumentUsers))
	assert.Equal(t, float64(1), counterValue(t, m.ReconcileRuns.WithLabelValues(metrics.OutcomeSuccess)))
}

// ── new usernames ────────────────────────────────────────────────────────────

func TestReconciler_SynthesizesUnknownUsername(t *testing.T) {
	ctrl := gomock.NewController(t)
	r, storages, _, mirror, m := newTestReconciler(t, ctrl)
	ctx := context.Background()
	hasher := newTestHasher()

	mirror.EXPECT().FetchAll(gomock.Any()).Return([]models.MirroredCredential{mirrorRecord(7, "jane.doe", "pw1")}, nil)

	result, err := r.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.ReconcileResult{Fetched: 1, Added: 1, Persisted: true}, result)

	jane, err := storages.Users.Find(ctx, "jane.doe")
	require.NoError(t, err)
	assert.Equal(t, "cloud-7", jane.ID)
	assert.Equal(t, "Jane Doe", jane.FullName)
	assert.Equal(t, models.RoleAdmin, jane.Role)
	assert.Equal(t, models.DefaultAdminDepartment, jane.Department)
	assert.Equal(t, "https://picsum.photos/seed/jane.doe/200", jane.Avatar)

	assert.NotEqual(t, "pw1", jane.Password, "legacy plaintext must be hashed")
	assert.NoError(t, hasher.Verify("pw1", jane.Password))

	assert.Equal(t, float64(1), counterValue(t, m.ReconcileChanges.WithLabelValues(metrics.ChangeAdded)))
}

func TestReconciler_KeepsRemoteHashVerbatim(t *testing.T) {
	ctrl := gomock.NewController(t)
	r, storages, _, mirror, _ := newTestReconciler(t, ctrl)
	ctx := context.Background()

	hash := mustHash(t, newTestHasher(), "s3cret")
	mirror.EXPECT().FetchAll(gomock.Any()).Return([]models.MirroredCredential{mirrorRecord(1, "ops", hash)}, nil)

	_, err := r.Reconcile(ctx)
	require.NoError(t, err)

	ops, err := storages.Users.Find(ctx, "ops")
	require.NoError(t, err)
	assert.Equal(t, hash, ops.Password)
	assert.Equal(t, "Ops", ops.FullName)
}

// ── password drift ───────────────────────────────────────────────────────────

func TestReconciler_RemotePasswordWins(t *testing.T) {
	ctrl := gomock.NewController(t)
	r, storages, _, mirror, m := newTestReconciler(t, ctrl)
	ctx := context.Background()
	hasher := newTestHasher()

	require.NoError(t, storages.Users.Insert(ctx, models.User{
		ID:       "b1",
		Username: "bob",
		Password: mustHash(t, hasher, "old"),
		FullName: "Bob",
		Role:     models.RoleManager,
	}))

	mirror.EXPECT().FetchAll(gomock.Any()).Return([]models.MirroredCredential{mirrorRecord(3, "bob", "new")}, nil)

	result, err := r.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.ReconcileResult{Fetched: 1, Updated: 1, Persisted: true}, result)

	bob, err := storages.Users.Find(ctx, "bob")
	require.NoError(t, err)
	assert.NoError(t, hasher.Verify("new", bob.Password))
	assert.Error(t, hasher.Verify("old", bob.Password))

	assert.Equal(t, "b1", bob.ID, "only the password changes")
	assert.Equal(t, models.RoleManager, bob.Role)
	assert.Equal(t, float64(1), counterValue(t, m.ReconcileChanges.WithLabelValues(metrics.ChangeUpdated)))
}

func TestReconciler_DifferentRemoteHashOverwrites(t *testing.T) {
	ctrl := gomock.NewController(t)
	r, storages, _, mirror, _ := newTestReconciler(t, ctrl)
	ctx := context.Background()
	hasher := newTestHasher()

	remote := mustHash(t, hasher, "rotated")
	mirror.EXPECT().FetchAll(gomock.Any()).Return([]models.MirroredCredential{mirrorRecord(9, "admin", remote)}, nil)

	result, err := r.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Updated)

	admin, err := storages.Users.Find(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, remote, admin.Password)
}

func TestReconciler_PlaintextMatchingLocalHash_IsIdentical(t *testing.T) {
	ctrl := gomock.NewController(t)
	r, _, docs, mirror, _ := newTestReconciler(t, ctrl)

	mirror.EXPECT().FetchAll(gomock.Any()).Return([]models.MirroredCredential{mirrorRecord(2, "admin", "123")}, nil)

	result, err := r.Reconcile(context.Background())
	require.NoError(t, err)
	assert.False(t, result.Changed())
	assert.False(t, result.Persisted)
	assert.Equal(t, 1, docs.savesOf(store.DocumentUsers))
}

// ── idempotence, pruning, duplicates ─────────────────────────────────────────

func TestReconciler_SecondPassWritesNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	r, _, docs, mirror, _ := newTestReconciler(t, ctrl)
	ctx := context.Background()

	records := []models.MirroredCredential{
		mirrorRecord(5, "jane.doe", "pw1"),
		mirrorRecord(4, "admin", "changed"),
		mirrorRecord(3, "ops", mustHash(t, newTestHasher(), "x")),
	}
	mirror.EXPECT().FetchAll(gomock.Any()).Return(records, nil).Times(2)

	first, err := r.Reconcile(ctx)
	require.NoError(t, err)
	assert.True(t, first.Persisted)
	writes := docs.savesOf(store.DocumentUsers)

	second, err := r.Reconcile(ctx)
	require.NoError(t, err)
	assert.False(t, second.Changed())
	assert.Equal(t, writes, docs.savesOf(store.DocumentUsers))
}

func TestReconciler_NeverPrunesLocalUsers(t *testing.T) {
	ctrl := gomock.NewController(t)
	r, storages, _, mirror, _ := newTestReconciler(t, ctrl)
	ctx := context.Background()

	mirror.EXPECT().FetchAll(gomock.Any()).Return([]models.MirroredCredential{mirrorRecord(1, "remote.only", "pw")}, nil)

	_, err := r.Reconcile(ctx)
	require.NoError(t, err)

	all, err := storages.Users.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "admin", all[0].Username)
	assert.Equal(t, "001", all[1].Username)
	assert.Equal(t, "remote.only", all[2].Username)
}

func TestReconciler_NewestRecordPerUsernameWins(t *testing.T) {
	ctrl := gomock.NewController(t)
	r, storages, docs, mirror, _ := newTestReconciler(t, ctrl)
	ctx := context.Background()
	hasher := newTestHasher()

	newest := mustHash(t, hasher, "newest")
	older := mustHash(t, hasher, "older")
	records := []models.MirroredCredential{mirrorRecord(11, "alice", newest), mirrorRecord(10, "alice", older)}
	mirror.EXPECT().FetchAll(gomock.Any()).Return(records, nil).Times(2)

	result, err := r.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Added)
	assert.Equal(t, 0, result.Updated)

	alice, err := storages.Users.Find(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, newest, alice.Password)
	assert.Equal(t, "cloud-11", alice.ID)

	writes := docs.savesOf(store.DocumentUsers)
	_, err = r.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, writes, docs.savesOf(store.DocumentUsers))
}

func TestReconciler_SkipsIncompleteRecords(t *testing.T) {
	ctrl := gomock.NewController(t)
	r, storages, _, mirror, _ := newTestReconciler(t, ctrl)
	ctx := context.Background()

	mirror.EXPECT().FetchAll(gomock.Any()).Return([]models.MirroredCredential{
		mirrorRecord(1, "", "pw"),
		mirrorRecord(2, "nopass", ""),
	}, nil)

	result, err := r.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.ReconcileResult{Fetched: 2}, result)

	_, err = storages.Users.Find(ctx, "nopass")
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

// ── mirror failures ──────────────────────────────────────────────────────────

func TestReconciler_FetchFailure_LeavesRegistryUntouched(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		outcome string
	}{
		{name: "network down", err: fmt.Errorf("fetch: %w", adapter.ErrNetworkUnavailable), outcome: metrics.OutcomeFailure},
		{name: "server error", err: adapter.ErrInternalServerError, outcome: metrics.OutcomeFailure},
		{name: "malformed body", err: adapter.ErrMalformedResponse, outcome: metrics.OutcomeFailure},
		{name: "not configured", err: adapter.ErrNotConfigured, outcome: metrics.OutcomeSkipped},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			r, _, docs, mirror, m := newTestReconciler(t, ctrl)

			before := docs.raw(t, store.DocumentUsers)
			mirror.EXPECT().FetchAll(gomock.Any()).Return([]models.MirroredCredential{}, tt.err)

			result, err := r.Reconcile(context.Background())
			require.NoError(t, err)
			assert.Equal(t, models.ReconcileResult{}, result)
			assert.Equal(t, before, docs.raw(t, store.DocumentUsers))
			assert.Equal(t, 1, docs.savesOf(store.DocumentUsers))
			assert.Equal(t, float64(1), counterValue(t, m.ReconcileRuns.WithLabelValues(tt.outcome)))
		})
	}
}

func TestReconciler_PersistFailure_ReturnsError(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mock.NewMockUserRegistry(ctrl)
	mirror := mock.NewMockMirrorAdapter(ctrl)
	r := NewReconciler(users, mirror, newTestHasher(), metrics.New(), logger.Nop())

	mirror.EXPECT().FetchAll(gomock.Any()).Return([]models.MirroredCredential{mirrorRecord(1, "x", "pw")}, nil)
	users.EXPECT().All(gomock.Any()).Return([]models.User{}, nil)
	users.EXPECT().ReplaceAll(gomock.Any(), gomock.Len(1)).Return(assert.AnError)

	result, err := r.Reconcile(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
	assert.False(t, result.Persisted)
}
