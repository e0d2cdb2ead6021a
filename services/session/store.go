package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	sessionModel "venue-booking/models/session"
	"venue-booking/models/user"
	"venue-booking/utils"

	"gorm.io/gorm"
)

var ErrSessionInvalid = errors.New("session expired or revoked")

// Store owns the signed-in session lifecycle: explicit init on login, explicit
// teardown on logout or expiry. It replaces ad-hoc browser-storage access with
// one collaborator passed to whatever needs it.
type Store struct {
	db       *gorm.DB
	ttl      time.Duration
	onExpire func(sessionModel.Session)
}

func NewStore(db *gorm.DB, ttl time.Duration) *Store {
	return &Store{db: db, ttl: ttl}
}

// OnExpire registers a callback invoked for every session the sweep revokes.
func (s *Store) OnExpire(fn func(sessionModel.Session)) {
	s.onExpire = fn
}

// Create opens a session for a signed-in user. The issued token is sealed
// before it is stored.
func (s *Store) Create(ctx context.Context, u *user.User, token, locale string) (*sessionModel.Session, error) {
	sealed, err := utils.SealToken(token)
	if err != nil {
		return nil, fmt.Errorf("seal session token: %w", err)
	}
	if locale == "" {
		locale = "en"
	}

	sess := &sessionModel.Session{
		UserID:      u.ID,
		TokenSealed: sealed,
		Role:        u.Role,
		Locale:      locale,
		ExpiresAt:   time.Now().Add(s.ttl),
	}
	if err := s.db.WithContext(ctx).Create(sess).Error; err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return sess, nil
}

// AttachToken seals and stores the final signed token. Login creates the
// session row first so the session id can be embedded in the token claims.
func (s *Store) AttachToken(ctx context.Context, id uint, token string) error {
	sealed, err := utils.SealToken(token)
	if err != nil {
		return fmt.Errorf("seal session token: %w", err)
	}
	return s.db.WithContext(ctx).
		Model(&sessionModel.Session{}).
		Where("id = ?", id).
		Update("token_sealed", sealed).Error
}

// Get loads a session and verifies it is still active.
func (s *Store) Get(ctx context.Context, id uint) (*sessionModel.Session, error) {
	var sess sessionModel.Session
	if err := s.db.WithContext(ctx).First(&sess, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionInvalid
		}
		return nil, err
	}
	if sess.RevokedAt != nil || time.Now().After(sess.ExpiresAt) {
		return nil, ErrSessionInvalid
	}
	return &sess, nil
}

// Revoke tears a session down (logout, or forced logout on a 401).
func (s *Store) Revoke(ctx context.Context, id uint) error {
	now := time.Now()
	return s.db.WithContext(ctx).
		Model(&sessionModel.Session{}).
		Where("id = ? AND revoked_at IS NULL", id).
		Update("revoked_at", now).Error
}

// SetLocale persists a locale change for the session.
func (s *Store) SetLocale(ctx context.Context, id uint, locale string) error {
	return s.db.WithContext(ctx).
		Model(&sessionModel.Session{}).
		Where("id = ?", id).
		Update("locale", locale).Error
}

// SweepExpired revokes every session past its expiry and invokes the
// registered callback per revoked session. Scheduled from main.
func (s *Store) SweepExpired(ctx context.Context) (int, error) {
	var expired []sessionModel.Session
	err := s.db.WithContext(ctx).
		Where("expires_at <= ? AND revoked_at IS NULL", time.Now()).
		Find(&expired).Error
	if err != nil {
		return 0, fmt.Errorf("load expired sessions: %w", err)
	}

	now := time.Now()
	for _, sess := range expired {
		err := s.db.WithContext(ctx).
			Model(&sessionModel.Session{}).
			Where("id = ?", sess.ID).
			Update("revoked_at", now).Error
		if err != nil {
			return 0, fmt.Errorf("revoke session %d: %w", sess.ID, err)
		}
		if s.onExpire != nil {
			s.onExpire(sess)
		}
	}
	return len(expired), nil
}
