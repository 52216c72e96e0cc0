package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ecotrack/backend/internal/models"
	"github.com/ecotrack/backend/internal/repositories"
	lru "github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	codeExpiry         = 15 * time.Minute
	verificationWindow = 5 * time.Minute
	requestCooldown    = 60 * time.Second
	throttleSize       = 4096
)

// Mailer delivers reset codes out-of-band.
type Mailer interface {
	SendPasswordResetEmail(email, name, code string)
}

// PasswordResetService drives the reset-code lifecycle:
// NoCode → Issued → Verified → Consumed/Expired.
type PasswordResetService struct {
	codeRepository repositories.ResetCodeRepository
	userRepository repositories.UserRepository
	mailer         Mailer
	throttle       *lru.LRU[string, time.Time]
	now            func() time.Time
}

// NewPasswordResetService creates a new PasswordResetService
func NewPasswordResetService(codeRepo repositories.ResetCodeRepository, userRepo repositories.UserRepository, mailer Mailer) *PasswordResetService {
	return &PasswordResetService{
		codeRepository: codeRepo,
		userRepository: userRepo,
		mailer:         mailer,
		throttle:       lru.NewLRU[string, time.Time](throttleSize, nil, requestCooldown),
		now:            time.Now,
	}
}

// GenerateCode returns a uniformly random zero-padded 4-digit code.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d", n.Int64()), nil
}

// RequestReset issues a new code for an active account and emails it.
// Any prior unused codes for the email are deleted first, so at most one
// pending code exists per email. Transition: → Issued.
func (s *PasswordResetService) RequestReset(email string) error {
	if _, pending := s.throttle.Get(email); pending {
		return ErrTooManyRequests
	}

	user, err := s.userRepository.GetUserByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrAccountNotFound
	}
	if err != nil {
		return err
	}
	if !user.IsActive() {
		return ErrAccountNotFound
	}

	if err := s.codeRepository.DeleteUnusedByEmail(email); err != nil {
		return err
	}

	code, err := GenerateCode()
	if err != nil {
		return err
	}
	row := &models.PasswordResetCode{
		Email:     email,
		Code:      code,
		ExpiresAt: s.now().Add(codeExpiry),
	}
	if err := s.codeRepository.CreateCode(row); err != nil {
		return err
	}

	s.throttle.Add(email, s.now())

	if s.mailer != nil {
		s.mailer.SendPasswordResetEmail(user.Email, user.Name, code)
	}
	return nil
}

// VerifyCode consumes an unused, unexpired code matching exactly, stamping
// it used. Re-verifying an already-used code fails. Transition:
// Issued → Verified.
func (s *PasswordResetService) VerifyCode(email, code string) error {
	row, err := s.codeRepository.FindActiveCode(email, code, s.now())
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrInvalidCode
	}
	if err != nil {
		return err
	}
	return s.codeRepository.MarkUsed(row, s.now())
}

// ResetPassword changes the account credential. It requires the code to have
// been verified within the last five minutes, then deletes every code row
// for the email. Transition: Verified → Consumed.
func (s *PasswordResetService) ResetPassword(email, code, newPassword string) error {
	_, err := s.codeRepository.FindRecentlyVerified(email, code, s.now().Add(-verificationWindow))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrCodeNotVerified
	}
	if err != nil {
		return err
	}

	user, err := s.userRepository.GetUserByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.userRepository.UpdatePassword(user.ID, string(hashed)); err != nil {
		return err
	}

	// Cleanup regardless of which code triggered the reset.
	return s.codeRepository.DeleteAllByEmail(email)
}
