package repository

import (
	"context"
	"time"

	"carrental/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RefreshTokenRepository struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

func (r *RefreshTokenRepository) Create(ctx context.Context, t *domain.RefreshToken) error {
	return translate("create refresh token", r.db.WithContext(ctx).Create(t).Error)
}

// GetByHashForUpdate locks the row so two refreshes of one token serialise.
func (r *RefreshTokenRepository) GetByHashForUpdate(ctx context.Context, hash string) (*domain.RefreshToken, error) {
	var t domain.RefreshToken
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("token_hash = ?", hash).
		First(&t).Error
	if err != nil {
		return nil, translate("get refresh token", err)
	}
	return &t, nil
}

func (r *RefreshTokenRepository) MarkUsed(ctx context.Context, id int64, at time.Time) error {
	return translate("use refresh token", r.db.WithContext(ctx).
		Model(&domain.RefreshToken{}).
		Where("id = ?", id).
		Updates(map[string]any{"used_at": at, "revoked_at": at}).Error)
}

func (r *RefreshTokenRepository) RevokeByHash(ctx context.Context, hash string, at time.Time) error {
	return translate("revoke refresh token", r.db.WithContext(ctx).
		Model(&domain.RefreshToken{}).
		Where("token_hash = ? AND revoked_at IS NULL", hash).
		Update("revoked_at", at).Error)
}

func (r *RefreshTokenRepository) RevokeFamily(ctx context.Context, familyID string, at time.Time) error {
	return translate("revoke refresh token family", r.db.WithContext(ctx).
		Model(&domain.RefreshToken{}).
		Where("family_id = ? AND revoked_at IS NULL", familyID).
		Update("revoked_at", at).Error)
}

// DeleteStale removes expired tokens and tokens revoked before revokedBefore.
func (r *RefreshTokenRepository) DeleteStale(ctx context.Context, now, revokedBefore time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at < ? OR (revoked_at IS NOT NULL AND revoked_at < ?)", now, revokedBefore).
		Delete(&domain.RefreshToken{})
	if res.Error != nil {
		return 0, translate("delete stale refresh tokens", res.Error)
	}
	return res.RowsAffected, nil
}
