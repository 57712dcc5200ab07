package services

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/11Jagan/Expense-Tracker/internal/config"

	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultBCryptCost = 12

	// bcrypt ignores everything past 72 bytes
	MaxPasswordLength = 72
)

var (
	ErrPasswordEmpty       = errors.New("password cannot be empty")
	ErrPasswordTooShort    = errors.New("password is too short")
	ErrPasswordTooLong     = fmt.Errorf("password must not exceed %d characters", MaxPasswordLength)
	ErrPasswordNoUppercase = errors.New("password must contain at least one uppercase letter")
	ErrPasswordNoLowercase = errors.New("password must contain at least one lowercase letter")
	ErrPasswordNoNumber    = errors.New("password must contain at least one number")
	ErrPasswordNoSpecial   = errors.New("password must contain at least one special character")

	uppercaseRegex = regexp.MustCompile(`[A-Z]`)
	lowercaseRegex = regexp.MustCompile(`[a-z]`)
	numberRegex    = regexp.MustCompile(`[0-9]`)
	specialRegex   = regexp.MustCompile(`[!@#$%^&*()_+\-=\[\]{}|;:,.<>?]`)
)

// PasswordService validates password policy and hashes with bcrypt
type PasswordService struct {
	policy config.SecurityConfig
	cost   int
}

// IsPasswordPolicyError reports whether err is a rejected password rather
// than a hashing failure
func IsPasswordPolicyError(err error) bool {
	for _, policyErr := range []error{
		ErrPasswordEmpty, ErrPasswordTooShort, ErrPasswordTooLong,
		ErrPasswordNoUppercase, ErrPasswordNoLowercase, ErrPasswordNoNumber, ErrPasswordNoSpecial,
	} {
		if errors.Is(err, policyErr) {
			return true
		}
	}
	return false
}

// NewPasswordService creates a password service enforcing the configured
// policy
func NewPasswordService(policy config.SecurityConfig) PasswordServiceInterface {
	cost := policy.BCryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBCryptCost
	}
	return &PasswordService{policy: policy, cost: cost}
}

// ValidatePassword reports the first policy rule the password breaks
func (ps *PasswordService) ValidatePassword(password string) error {
	switch {
	case password == "":
		return ErrPasswordEmpty
	case len(password) < ps.policy.PasswordMinLength:
		return fmt.Errorf("%w: minimum is %d characters", ErrPasswordTooShort, ps.policy.PasswordMinLength)
	case len(password) > MaxPasswordLength:
		return ErrPasswordTooLong
	case ps.policy.RequireUppercase && !uppercaseRegex.MatchString(password):
		return ErrPasswordNoUppercase
	case ps.policy.RequireLowercase && !lowercaseRegex.MatchString(password):
		return ErrPasswordNoLowercase
	case ps.policy.RequireNumbers && !numberRegex.MatchString(password):
		return ErrPasswordNoNumber
	case ps.policy.RequireSpecialChars && !specialRegex.MatchString(password):
		return ErrPasswordNoSpecial
	}
	return nil
}

func (ps *PasswordService) HashPassword(password string) (string, error) {
	if err := ps.ValidatePassword(password); err != nil {
		return "", fmt.Errorf("password validation failed: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), ps.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

func (ps *PasswordService) ComparePassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// PasswordStrength scores a password from 0 to 100. A password that passes
// the policy never scores below 80.
func (ps *PasswordService) PasswordStrength(password string) int {
	if password == "" {
		return 0
	}

	score := 0
	for _, length := range []int{8, 12, 16, 20} {
		if len(password) >= length {
			score += 10
		}
	}
	for _, re := range []*regexp.Regexp{uppercaseRegex, lowercaseRegex, numberRegex, specialRegex} {
		if re.MatchString(password) {
			score += 15
		}
	}

	unique := make(map[rune]struct{}, len(password))
	for _, r := range password {
		unique[r] = struct{}{}
	}
	switch {
	case len(unique) > len(password)*3/4:
		score += 10
	case len(unique) > len(password)/2:
		score += 5
	}

	if score < 80 && ps.ValidatePassword(password) == nil {
		score = 80
	}
	return min(score, 100)
}
