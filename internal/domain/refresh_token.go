package domain

import "time"

// RefreshToken is stored as a SHA-256 hash of the raw token. Tokens are
// rotated on every refresh; FamilyID ties a chain of rotations together so a
// replayed token can revoke the whole chain.
type RefreshToken struct {
	ID          int64      `json:"id" gorm:"primaryKey"`
	UserID      int64      `json:"user_id" gorm:"index;not null"`
	TokenHash   string     `json:"-" gorm:"size:64;uniqueIndex;not null"`
	FamilyID    string     `json:"family_id" gorm:"size:36;index;not null"`
	RotatedFrom *int64     `json:"rotated_from,omitempty"`
	UserAgent   string     `json:"user_agent,omitempty" gorm:"size:255"`
	IP          string     `json:"ip,omitempty" gorm:"size:64"`
	CreatedAt   time.Time  `json:"created_at"`
	ExpiresAt   time.Time  `json:"expires_at" gorm:"index;not null"`
	UsedAt      *time.Time `json:"used_at,omitempty"`
	RevokedAt   *time.Time `json:"revoked_at,omitempty" gorm:"index"`
}

func (t *RefreshToken) IsExpired(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}

// IsSpent reports a token that was already rotated or explicitly revoked.
func (t *RefreshToken) IsSpent() bool {
	return t.UsedAt != nil || t.RevokedAt != nil
}
