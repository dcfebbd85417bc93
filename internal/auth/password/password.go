package password

import (
	"fmt"
	"unicode"

	"github.com/alexedwards/argon2id"

	customErrors "github.com/mlukyanov/task-api/internal/auth/errors"
)

const (
	MinLength = 8
	MaxLength = 128
)

// DefaultParams resists offline brute force: 64 MiB memory, 3 passes.
var DefaultParams = &argon2id.Params{
	Memory:      64 * 1024,
	Iterations:  3,
	Parallelism: 4,
	SaltLength:  16,
	KeyLength:   32,
}

type Policy struct {
	params *argon2id.Params
}

func NewPolicy(params *argon2id.Params) *Policy {
	if params == nil {
		params = DefaultParams
	}
	return &Policy{params: params}
}

// Validate checks every strength rule and reports all failures at once.
func (p *Policy) Validate(password string) (bool, []string) {
	var violations []string

	if len(password) < MinLength {
		violations = append(violations, fmt.Sprintf("password must be at least %d characters", MinLength))
	}
	if len(password) > MaxLength {
		violations = append(violations, fmt.Sprintf("password must be at most %d characters", MaxLength))
	}

	var hasLower, hasUpper, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLower {
		violations = append(violations, "password must contain a lowercase letter")
	}
	if !hasUpper {
		violations = append(violations, "password must contain an uppercase letter")
	}
	if !hasDigit {
		violations = append(violations, "password must contain a number")
	}

	return len(violations) == 0, violations
}

func (p *Policy) Hash(password string) (string, error) {
	hash, err := argon2id.CreateHash(password, p.params)
	if err != nil {
		return "", customErrors.WrapInternal(err, "hash password")
	}
	return hash, nil
}

// Verify never errors on a plain mismatch, only on a hash that cannot
// be parsed at all.
func (p *Policy) Verify(hash, password string) (bool, error) {
	match, err := argon2id.ComparePasswordAndHash(password, hash)
	if err != nil {
		return false, fmt.Errorf("%w: %v", customErrors.ErrCorruptHash, err)
	}
	return match, nil
}
