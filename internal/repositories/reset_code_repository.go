package repositories

import (
	"time"

	"github.com/ecotrack/backend/internal/models"
	"gorm.io/gorm"
)

// ResetCodeRepository defines the interface for password reset code operations
type ResetCodeRepository interface {
	CreateCode(code *models.PasswordResetCode) error
	DeleteUnusedByEmail(email string) error
	DeleteAllByEmail(email string) error
	FindActiveCode(email, code string, now time.Time) (*models.PasswordResetCode, error)
	MarkUsed(code *models.PasswordResetCode, usedAt time.Time) error
	FindRecentlyVerified(email, code string, since time.Time) (*models.PasswordResetCode, error)
}

// PostgresResetCodeRepository implements ResetCodeRepository for PostgreSQL
type PostgresResetCodeRepository struct {
	db *gorm.DB
}

// NewPostgresResetCodeRepository creates a new PostgresResetCodeRepository
func NewPostgresResetCodeRepository(db *gorm.DB) *PostgresResetCodeRepository {
	return &PostgresResetCodeRepository{db: db}
}

// CreateCode stores a freshly issued reset code
func (r *PostgresResetCodeRepository) CreateCode(code *models.PasswordResetCode) error {
	return r.db.Create(code).Error
}

// DeleteUnusedByEmail removes pending codes so at most one unused code
// exists per email after issuance.
func (r *PostgresResetCodeRepository) DeleteUnusedByEmail(email string) error {
	return r.db.Where("email = ? AND used = ?", email, false).Delete(&models.PasswordResetCode{}).Error
}

// DeleteAllByEmail removes every code row for an email, used or not
func (r *PostgresResetCodeRepository) DeleteAllByEmail(email string) error {
	return r.db.Where("email = ?", email).Delete(&models.PasswordResetCode{}).Error
}

// FindActiveCode retrieves an unused, unexpired code matching exactly.
// An expired row fails the expires_at check forever; it is never explicitly
// transitioned, only garbage-collected by the next issuance or reset.
func (r *PostgresResetCodeRepository) FindActiveCode(email, code string, now time.Time) (*models.PasswordResetCode, error) {
	var row models.PasswordResetCode
	if err := r.db.Where("email = ? AND code = ? AND used = ? AND expires_at > ?", email, code, false, now).
		First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// MarkUsed stamps a code as verified
func (r *PostgresResetCodeRepository) MarkUsed(code *models.PasswordResetCode, usedAt time.Time) error {
	return r.db.Model(code).Updates(map[string]any{
		"used":    true,
		"used_at": usedAt,
	}).Error
}

// FindRecentlyVerified retrieves a code that was verified at or after the
// given instant. The password change requires verification within the last
// five minutes.
func (r *PostgresResetCodeRepository) FindRecentlyVerified(email, code string, since time.Time) (*models.PasswordResetCode, error) {
	var row models.PasswordResetCode
	if err := r.db.Where("email = ? AND code = ? AND used = ? AND used_at >= ?", email, code, true, since).
		First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}
