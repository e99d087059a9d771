package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"realty-crm.backend/internal/domain/entities"
	domainerrors "realty-crm.backend/internal/domain/errors"
	"realty-crm.backend/internal/domain/repositories"
	"realty-crm.backend/internal/infrastructure/models"
)

type sessionRepositoryImpl struct {
	db *gorm.DB
}

// NewSessionRepository creates a GORM-backed session repository.
func NewSessionRepository(db *gorm.DB) repositories.SessionRepository {
	return &sessionRepositoryImpl{db: db}
}

func (r *sessionRepositoryImpl) Create(ctx context.Context, session *entities.Session) error {
	model := toSessionModel(session)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	*session = *toSessionEntity(model)
	return nil
}

func (r *sessionRepositoryImpl) GetByTokenHash(ctx context.Context, tokenHash string) (*entities.Session, error) {
	var model models.Session
	if err := r.db.WithContext(ctx).First(&model, "token_hash = ?", tokenHash).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrSessionNotFound
		}
		return nil, err
	}
	return toSessionEntity(&model), nil
}

// DeleteByTokenHash removes the session if it exists. Deleting an
// absent session is not an error.
func (r *sessionRepositoryImpl) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	return r.db.WithContext(ctx).
		Where("token_hash = ?", tokenHash).
		Delete(&models.Session{}).Error
}

func (r *sessionRepositoryImpl) DeleteAllForUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.Session{}).Error
}

func (r *sessionRepositoryImpl) DeleteAllForUserExcept(ctx context.Context, userID uuid.UUID, keepTokenHash string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND token_hash <> ?", userID, keepTokenHash).
		Delete(&models.Session{}).Error
}

func (r *sessionRepositoryImpl) DeleteExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&models.Session{})
	return result.RowsAffected, result.Error
}

func toSessionModel(s *entities.Session) *models.Session {
	return &models.Session{
		ID:        s.ID,
		UserID:    s.UserID,
		TokenHash: s.TokenHash,
		ExpiresAt: s.ExpiresAt,
		IPAddress: s.IPAddress.Ptr(),
		UserAgent: s.UserAgent.Ptr(),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func toSessionEntity(m *models.Session) *entities.Session {
	return &entities.Session{
		ID:        m.ID,
		UserID:    m.UserID,
		TokenHash: m.TokenHash,
		ExpiresAt: m.ExpiresAt,
		IPAddress: null.StringFromPtr(m.IPAddress),
		UserAgent: null.StringFromPtr(m.UserAgent),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
