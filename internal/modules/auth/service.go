package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"carrental/internal/domain"
	"carrental/internal/events"
	"carrental/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	maxFailedLoginAttempts = 5
	lockoutDuration        = 15 * time.Minute
)

// Service issues access tokens and rotating refresh tokens.
type Service struct {
	store         *repository.Store
	tokens        TokenIssuer
	bus           Publisher
	refreshTTL    time.Duration
	refreshPepper string
	now           func() time.Time
}

// NewService wires the account service. bus may be nil.
func NewService(store *repository.Store, tokens TokenIssuer, bus Publisher, refreshTTL time.Duration, refreshPepper string) *Service {
	return &Service{
		store:         store,
		tokens:        tokens,
		bus:           bus,
		refreshTTL:    refreshTTL,
		refreshPepper: refreshPepper,
		now:           time.Now,
	}
}

// Register creates a customer account. Admins are only created by cmd/seed.
func (s *Service) Register(ctx context.Context, req RegisterRequest, userAgent, ip string) (*Session, error) {
	exists, err := s.store.Users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := &domain.User{
		Email:        req.Email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Phone:        strings.TrimSpace(req.Phone),
	}
	if err := s.store.Users.Create(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}
	if s.bus != nil {
		// subscriber failures do not undo the registration
		_ = s.bus.Publish(ctx, events.Event{Type: events.TypeUserRegistered, SubjectID: user.ID})
	}

	return s.openSession(ctx, user, userAgent, ip)
}

func (s *Service) Login(ctx context.Context, req LoginRequest, userAgent, ip string) (*Session, error) {
	user, err := s.store.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	now := s.now()
	if user.IsLocked(now) {
		return nil, ErrAccountLocked
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		attempts := user.FailedLoginAttempts
		if user.LockedUntil != nil && !user.LockedUntil.After(now) {
			// the previous lock expired; count afresh
			attempts = 0
		}
		attempts++
		var lockedUntil *time.Time
		if attempts >= maxFailedLoginAttempts {
			until := now.Add(lockoutDuration)
			lockedUntil = &until
		}
		if err := s.store.Users.SetLoginFailures(ctx, user.ID, attempts, lockedUntil); err != nil {
			return nil, err
		}
		if lockedUntil != nil {
			return nil, ErrAccountLocked
		}
		return nil, ErrInvalidCredentials
	}

	if user.FailedLoginAttempts > 0 || user.LockedUntil != nil {
		if err := s.store.Users.SetLoginFailures(ctx, user.ID, 0, nil); err != nil {
			return nil, err
		}
	}

	return s.openSession(ctx, user, userAgent, ip)
}

// Refresh rotates a refresh token. Presenting an already rotated token
// revokes every token descended from the same login.
func (s *Service) Refresh(ctx context.Context, raw, userAgent, ip string) (*Session, error) {
	now := s.now()
	hash := s.hashToken(raw)

	var (
		session *Session
		reused  bool
	)
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		current, err := tx.RefreshTokens.GetByHashForUpdate(ctx, hash)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return ErrInvalidRefreshToken
			}
			return err
		}
		if current.IsExpired(now) {
			return ErrInvalidRefreshToken
		}
		if current.IsSpent() {
			reused = true
			return tx.RefreshTokens.RevokeFamily(ctx, current.FamilyID, now)
		}

		user, err := tx.Users.GetByID(ctx, current.UserID)
		if err != nil {
			return err
		}
		if err := tx.RefreshTokens.MarkUsed(ctx, current.ID, now); err != nil {
			return err
		}

		next, err := s.issue(ctx, tx, user, current.FamilyID, &current.ID, userAgent, ip)
		if err != nil {
			return err
		}
		session = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	if reused {
		return nil, ErrRefreshTokenReused
	}
	return session, nil
}

// Logout revokes the given refresh token. Unknown tokens are ignored.
func (s *Service) Logout(ctx context.Context, raw string) error {
	return s.store.RefreshTokens.RevokeByHash(ctx, s.hashToken(raw), s.now())
}

func (s *Service) GetCurrentUser(ctx context.Context, userID int64) (*domain.User, error) {
	return s.store.Users.GetByID(ctx, userID)
}

func (s *Service) UpdateProfile(ctx context.Context, userID int64, req UpdateProfileRequest) (*domain.User, error) {
	user, err := s.store.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if v := strings.TrimSpace(req.FirstName); v != "" {
		user.FirstName = v
	}
	if v := strings.TrimSpace(req.LastName); v != "" {
		user.LastName = v
	}
	if v := strings.TrimSpace(req.Phone); v != "" {
		user.Phone = v
	}
	if err := s.store.Users.UpdateProfile(ctx, user.ID, user.FirstName, user.LastName, user.Phone); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) openSession(ctx context.Context, user *domain.User, userAgent, ip string) (*Session, error) {
	return s.issue(ctx, s.store, user, uuid.NewString(), nil, userAgent, ip)
}

func (s *Service) issue(ctx context.Context, store *repository.Store, user *domain.User, familyID string, rotatedFrom *int64, userAgent, ip string) (*Session, error) {
	access, err := s.tokens.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}

	raw, err := randomToken()
	if err != nil {
		return nil, err
	}
	t := &domain.RefreshToken{
		UserID:      user.ID,
		TokenHash:   s.hashToken(raw),
		FamilyID:    familyID,
		RotatedFrom: rotatedFrom,
		UserAgent:   truncate(userAgent, 255),
		IP:          truncate(ip, 64),
		ExpiresAt:   s.now().Add(s.refreshTTL),
	}
	if err := store.RefreshTokens.Create(ctx, t); err != nil {
		return nil, err
	}

	return &Session{User: user, AccessToken: access, RefreshToken: raw}, nil
}

func (s *Service) hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw + s.refreshPepper))
	return hex.EncodeToString(sum[:])
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func randomToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) > n {
		return s[:n]
	}
	return s
}
