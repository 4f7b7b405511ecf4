// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-portal-identity/internal/adapter"
	"github.com/MKhiriev/go-portal-identity/internal/crypto"
	"github.com/MKhiriev/go-portal-identity/internal/logger"
	"github.com/MKhiriev/go-portal-identity/internal/metrics"
	"github.com/MKhiriev/go-portal-identity/internal/store"
	"github.com/MKhiriev/go-portal-identity/internal/utils"
	"github.com/MKhiriev/go-portal-identity/models"
)

const defaultMirrorTimeout = 10 * time.Second

// SessionManagerDeps groups the collaborators of the session manager.
type SessionManagerDeps struct {
	Users      store.UserRegistry
	Sessions   store.SessionStore
	Reconciler Reconciler
	AuditLog   AuditLog
	Mirror     adapter.MirrorAdapter
	Hasher     crypto.PasswordHasher
	IDs        utils.IDGenerator
	Metrics    *metrics.Metrics

	// UserAgent identifies this client in mirror writes.
	UserAgent     string
	MirrorTimeout time.Duration
}

type sessionManager struct {
	users      store.UserRegistry
	sessions   store.SessionStore
	reconciler Reconciler
	audit      AuditLog
	mirror     adapter.MirrorAdapter
	hasher     crypto.PasswordHasher
	ids        utils.IDGenerator
	metrics    *metrics.Metrics

	userAgent     string
	mirrorTimeout time.Duration

	// mu guards session and every registry, session and audit mutation.
	mu      sync.Mutex
	session *models.Session
	state   atomic.Int32

	dummyOnce sync.Once
	dummyHash string

	wg sync.WaitGroup

	logger *logger.Logger
}

func NewSessionManager(deps SessionManagerDeps, logger *logger.Logger) SessionManager {
	if deps.MirrorTimeout <= 0 {
		deps.MirrorTimeout = defaultMirrorTimeout
	}

	return &sessionManager{
		users:         deps.Users,
		sessions:      deps.Sessions,
		reconciler:    deps.Reconciler,
		audit:         deps.AuditLog,
		mirror:        deps.Mirror,
		hasher:        deps.Hasher,
		ids:           deps.IDs,
		metrics:       deps.Metrics,
		userAgent:     deps.UserAgent,
		mirrorTimeout: deps.MirrorTimeout,
		logger:        logger,
	}
}

func (m *sessionManager) Start(ctx context.Context) error {
	log := m.logger.With().Str("func", "*sessionManager.Start").Logger()

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.users.Initialize(ctx); err != nil {
		return fmt.Errorf("initialize registry: %w", err)
	}

	if _, err := m.reconciler.Reconcile(ctx); err != nil {
		log.Error().Err(err).Msg("startup reconciliation could not persist the registry")
	}

	session, ok, err := m.sessions.Get(ctx)
	switch {
	case errors.Is(err, store.ErrCorruptDocument):
		log.Warn().Err(err).Msg("stored session is unreadable, clearing it")
		if err = m.sessions.Clear(ctx); err != nil {
			return fmt.Errorf("clear unreadable session: %w", err)
		}
	case err != nil:
		return fmt.Errorf("restore session: %w", err)
	case ok:
		m.session = &session
		log.Info().Str("username", session.Username).Msg("session restored")
	}

	m.syncState()

	return nil
}

// Login verifies the password against the registry hash. Unknown usernames
// are checked against a throwaway hash so both failures cost the same.
// A failed attempt leaves an existing session in place.
func (m *sessionManager) Login(ctx context.Context, username, password string) (models.Session, error) {
	log := m.logger.With().Str("func", "*sessionManager.Login").Str("username", username).Logger()

	if strings.TrimSpace(username) == "" || password == "" {
		return models.Session{}, ErrInvalidDataProvided
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.state.Store(int32(models.StateAuthenticating))
	defer m.syncState()

	user, err := m.users.Find(ctx, username)
	switch {
	case errors.Is(err, store.ErrUserNotFound):
		_ = m.hasher.Verify(password, m.throwawayHash())
		m.loginFailed(ctx, username)
		return models.Session{}, ErrInvalidCredentials
	case err != nil:
		return models.Session{}, fmt.Errorf("find user: %w", err)
	}

	if err = m.hasher.Verify(password, user.Password); err != nil {
		if !errors.Is(err, crypto.ErrPasswordMismatch) {
			log.Warn().Err(err).Msg("stored password hash is unusable")
		}
		m.loginFailed(ctx, username)
		return models.Session{}, ErrInvalidCredentials
	}

	session := user.Session()
	if err = m.sessions.Put(ctx, session); err != nil {
		return models.Session{}, fmt.Errorf("persist session: %w", err)
	}
	m.session = &session

	m.record(ctx, username, models.EventLogin, models.StatusSuccess)
	m.metrics.IncLogin(string(models.StatusSuccess))
	log.Info().Msg("user logged in")

	return session, nil
}

func (m *sessionManager) Logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	if m.session != nil {
		username := m.session.Username
		m.session = nil
		m.record(ctx, username, models.EventLogout, models.StatusSuccess)
		m.logger.Info().Str("func", "*sessionManager.Logout").Str("username", username).Msg("user logged out")
	}
	m.syncState()

	return nil
}

func (m *sessionManager) GetSession(_ context.Context) (models.Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		return models.Session{}, false
	}

	return *m.session, true
}

// Register creates an administrator account and logs it in. The mirror
// write runs after Register returns; once it succeeds the registry is
// reconciled again.
func (m *sessionManager) Register(ctx context.Context, username, password, fullName string) (models.Session, error) {
	log := m.logger.With().Str("func", "*sessionManager.Register").Str("username", username).Logger()

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return models.Session{}, ErrInvalidDataProvided
	}
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		fullName = FullNameFromUsername(username)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := m.users.Find(ctx, username); err == nil {
		return models.Session{}, store.ErrDuplicateUsername
	} else if !errors.Is(err, store.ErrUserNotFound) {
		return models.Session{}, fmt.Errorf("find user: %w", err)
	}

	hash, err := m.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, crypto.ErrPasswordTooLong) || errors.Is(err, crypto.ErrEmptyPassword) {
			return models.Session{}, fmt.Errorf("%w: %v", ErrInvalidDataProvided, err)
		}
		return models.Session{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		ID:         m.ids.Generate(),
		Username:   username,
		Password:   hash,
		FullName:   fullName,
		Role:       models.RoleAdmin,
		Avatar:     models.AvatarURL(username),
		Department: models.DefaultAdminDepartment,
	}
	if err = m.users.Insert(ctx, user); err != nil {
		return models.Session{}, err
	}

	session := user.Session()
	if err = m.sessions.Put(ctx, session); err != nil {
		return models.Session{}, fmt.Errorf("persist session: %w", err)
	}
	m.session = &session
	m.syncState()

	m.record(ctx, username, models.EventRegistration, models.StatusSuccess)
	m.metrics.IncRegistration()
	log.Info().Msg("account registered")

	m.wg.Add(1)
	go m.mirrorCredential(context.WithoutCancel(ctx), username, hash)

	return session, nil
}

func (m *sessionManager) Reconcile(ctx context.Context) (models.ReconcileResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.reconciler.Reconcile(ctx)
}

func (m *sessionManager) State() models.SessionState {
	return models.SessionState(m.state.Load())
}

func (m *sessionManager) Wait() {
	m.wg.Wait()
}

func (m *sessionManager) mirrorCredential(ctx context.Context, username, hash string) {
	defer m.wg.Done()
	log := m.logger.With().Str("func", "*sessionManager.mirrorCredential").Str("username", username).Logger()

	mirrorCtx, cancel := context.WithTimeout(ctx, m.mirrorTimeout)
	err := m.mirror.Append(mirrorCtx, username, hash, m.userAgent)
	cancel()

	switch {
	case errors.Is(err, adapter.ErrNotConfigured):
		log.Debug().Msg("mirror is not configured, credential kept local")
		m.metrics.IncMirrorWrite(metrics.OutcomeSkipped)
		return
	case err != nil:
		log.Warn().Err(err).Msg("credential mirror write failed")
		m.metrics.IncMirrorWrite(metrics.OutcomeFailure)
		return
	}

	m.metrics.IncMirrorWrite(metrics.OutcomeSuccess)
	log.Info().Msg("credential mirrored")

	if _, err = m.Reconcile(ctx); err != nil {
		log.Error().Err(err).Msg("post-mirror reconciliation failed")
	}
}

func (m *sessionManager) loginFailed(ctx context.Context, username string) {
	m.record(ctx, username, models.EventLogin, models.StatusFailure)
	m.metrics.IncLogin(string(models.StatusFailure))
	m.logger.Info().Str("func", "*sessionManager.Login").Str("username", username).Msg("login rejected")
}

// record appends to the audit log. A failed append is logged and does not
// fail the operation being audited.
func (m *sessionManager) record(ctx context.Context, username, event string, status models.LogStatus) {
	if _, err := m.audit.Append(ctx, username, event, status); err != nil {
		m.logger.Error().Err(err).
			Str("func", "*sessionManager.record").
			Str("event", event).
			Msg("could not append audit entry")
	}
}

// syncState derives the public state from the cached session. Callers hold mu.
func (m *sessionManager) syncState() {
	if m.session != nil {
		m.state.Store(int32(models.StateAuthenticated))
		return
	}
	m.state.Store(int32(models.StateAnonymous))
}

func (m *sessionManager) throwawayHash() string {
	m.dummyOnce.Do(func() {
		hash, err := m.hasher.Hash(m.ids.Generate())
		if err == nil {
			m.dummyHash = hash
		}
	})

	return m.dummyHash
}
