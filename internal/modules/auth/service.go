package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"itravelly/internal/domain"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Service struct {
	users         UserRepository
	codes         VerificationCodeRepository
	tokens        TokenIssuer
	mailer        Mailer
	verifyCodeTTL time.Duration
	log           *logrus.Logger
}

func NewService(
	users UserRepository,
	codes VerificationCodeRepository,
	tokens TokenIssuer,
	mailer Mailer,
	verifyCodeTTL time.Duration,
	log *logrus.Logger,
) *Service {
	return &Service{
		users:         users,
		codes:         codes,
		tokens:        tokens,
		mailer:        mailer,
		verifyCodeTTL: verifyCodeTTL,
		log:           log,
	}
}

// Register creates a client account and sends a verification code. The
// account cannot log in until the email is verified.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	email := normalizeEmail(req.Email)

	existing, err := s.users.GetByEmailOrPhone(ctx, email, req.PhoneNumber)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		if existing.Email == email {
			return nil, ErrEmailAlreadyExists
		}
		return nil, ErrPhoneAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        email,
		PhoneNumber:  req.PhoneNumber,
		Country:      req.Country,
		CountryCode:  req.CountryCode,
		DialCode:     req.DialCode,
		PasswordHash: string(hash),
		Role:         domain.RoleClient,
		IsActive:     true,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := s.issueVerificationCode(ctx, user); err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

// Login authenticates a verified, active account and issues an access token.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}
	if !user.IsEmailVerified {
		return nil, ErrEmailNotVerified
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return &LoginResult{User: user, AccessToken: token}, nil
}

// VerifyEmail consumes an unused, unexpired code and marks the email verified.
func (s *Service) VerifyEmail(ctx context.Context, req VerifyEmailRequest) error {
	email := normalizeEmail(req.Email)

	vc, err := s.codes.FindUnused(ctx, email, req.Code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidCode
		}
		return err
	}
	if time.Now().After(vc.ExpiresAt) {
		return ErrCodeExpired
	}

	if err := s.codes.MarkUsed(ctx, vc.ID); err != nil {
		return err
	}
	return s.users.MarkEmailVerified(ctx, email)
}

// ResendCode issues a fresh code for an unverified account.
func (s *Service) ResendCode(ctx context.Context, req ResendCodeRequest) error {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if user.IsEmailVerified {
		return ErrAlreadyVerified
	}
	return s.issueVerificationCode(ctx, user)
}

func (s *Service) Me(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// CleanupExpiredCodes removes verification codes past their TTL.
func (s *Service) CleanupExpiredCodes(ctx context.Context) (int64, error) {
	return s.codes.DeleteExpired(ctx, time.Now())
}

// IssueCode sends a fresh verification code for the user; other modules that
// create accounts (corporate registration) reuse it.
func (s *Service) IssueCode(ctx context.Context, user *domain.User) error {
	return s.issueVerificationCode(ctx, user)
}

func (s *Service) issueVerificationCode(ctx context.Context, user *domain.User) error {
	code, err := generateCode()
	if err != nil {
		return err
	}

	vc := &domain.VerificationCode{
		UserID:    user.ID,
		Email:     user.Email,
		Code:      code,
		ExpiresAt: time.Now().Add(s.verifyCodeTTL),
	}
	if err := s.codes.Create(ctx, vc); err != nil {
		return err
	}

	if err := s.mailer.SendVerificationCode(user.Email, code); err != nil {
		s.log.WithError(err).WithField("user_id", user.ID).Warn("verification mail failed")
	}
	return nil
}

// generateCode returns a 6-digit numeric code.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
