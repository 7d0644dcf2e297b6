package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/SscSPs/coop_savings_app/internal/core/domain"
	"github.com/SscSPs/coop_savings_app/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommand_RegistersSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range NewRootCommand().Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"serve", "migrate", "reconcile", "token", "apikey"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("JWT_SECRET", "cli-test-secret")
	t.Setenv("JWT_ISSUER", "cli-test")

	out, err := run(t, "token", "--subject", "u-7", "--role", "member", "--member-id", "mem-7")
	require.NoError(t, err)

	claims, err := utils.ParseAndValidateJWT(strings.TrimSpace(out), "cli-test-secret", "cli-test")
	require.NoError(t, err)
	assert.Equal(t, "u-7", claims.Subject)
	assert.Equal(t, "member", claims.Role)
	assert.Equal(t, "mem-7", claims.MemberID)
}

func TestValidateTokenClaims(t *testing.T) {
	assert.NoError(t, validateTokenClaims(domain.RoleStaff, ""))
	assert.NoError(t, validateTokenClaims(domain.RoleMember, "mem-1"))
	assert.Error(t, validateTokenClaims(domain.RoleStaff, "mem-1"))
	assert.Error(t, validateTokenClaims(domain.RoleMember, ""))
	assert.Error(t, validateTokenClaims("admin", ""))
}

func TestAPIKeyCommand(t *testing.T) {
	out, err := run(t, "apikey")
	require.NoError(t, err)

	var key, hash string
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		switch {
		case strings.HasPrefix(line, "key:"):
			key = strings.TrimSpace(strings.TrimPrefix(line, "key:"))
		case strings.HasPrefix(line, "hash:"):
			hash = strings.TrimSpace(strings.TrimPrefix(line, "hash:"))
		}
	}
	require.Len(t, key, len(utils.APIKeyPrefix)+apiKeyBytes*2)
	assert.True(t, strings.HasPrefix(key, utils.APIKeyPrefix))
	assert.True(t, utils.CheckAPIKeyHash(key, hash))
}

func TestMigrateDown_RejectsNonPositiveSteps(t *testing.T) {
	_, err := run(t, "migrate", "down", "--steps", "0")
	assert.ErrorContains(t, err, "--steps must be positive")
}
