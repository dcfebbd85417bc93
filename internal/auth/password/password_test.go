package password

import (
	"strings"
	"testing"

	"github.com/alexedwards/argon2id"
	"github.com/stretchr/testify/require"

	customErrors "github.com/mlukyanov/task-api/internal/auth/errors"
)

// cheap parameters so hashing tests stay fast
var testParams = &argon2id.Params{
	Memory:      16 * 1024,
	Iterations:  1,
	Parallelism: 2,
	SaltLength:  16,
	KeyLength:   32,
}

func TestValidate_AllRulesPass(t *testing.T) {
	p := NewPolicy(nil)
	ok, violations := p.Validate("Aa1aaaaa")
	require.True(t, ok)
	require.Empty(t, violations)
}

func TestValidate_ReportsEveryFailedRule(t *testing.T) {
	p := NewPolicy(nil)

	tests := []struct {
		name     string
		password string
		want     int
	}{
		{"too short only", "Aa1aaaa", 1},
		{"no upper no digit", "aaaaaaaa", 2},
		{"no lower no digit", "AAAAAAAA", 2},
		{"short lower only", "aaa", 3},
		{"too long", "Aa1" + strings.Repeat("a", 126), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, violations := p.Validate(tt.password)
			require.False(t, ok)
			require.Len(t, violations, tt.want)
		})
	}
}

func TestHashVerify_RoundTrip(t *testing.T) {
	p := NewPolicy(testParams)

	hash, err := p.Hash("Aa1aaaaa")
	require.NoError(t, err)
	require.NotContains(t, hash, "Aa1aaaaa")

	match, err := p.Verify(hash, "Aa1aaaaa")
	require.NoError(t, err)
	require.True(t, match)

	match, err = p.Verify(hash, "Aa1aaaab")
	require.NoError(t, err)
	require.False(t, match)
}

func TestHash_SaltedOutputDiffers(t *testing.T) {
	p := NewPolicy(testParams)
	h1, err := p.Hash("Aa1aaaaa")
	require.NoError(t, err)
	h2, err := p.Hash("Aa1aaaaa")
	require.NoError(t, err)
	require.NotEqual(t, h1, h2)
}

func TestVerify_CorruptHash(t *testing.T) {
	p := NewPolicy(testParams)
	_, err := p.Verify("not-an-argon2id-hash", "whatever")
	require.Error(t, err)
	require.True(t, customErrors.IsCorruptHash(err))
}
