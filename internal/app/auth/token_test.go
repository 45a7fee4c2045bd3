package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	svc := TokenService{Secret: []byte("s3cret"), Issuer: "unbelong", Duration: time.Hour}

	tok, err := svc.Issue("admin", time.Now())
	require.NoError(t, err)

	claims, err := svc.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.Equal(t, "admin", claims.Subject)
}

func TestParseRejectsExpiredAndForeign(t *testing.T) {
	svc := TokenService{Secret: []byte("s3cret"), Duration: time.Hour}

	old, err := svc.Issue("admin", time.Now().Add(-2*time.Hour))
	require.NoError(t, err)
	_, err = svc.Parse(old)
	assert.Error(t, err)

	other := TokenService{Secret: []byte("other"), Duration: time.Hour}
	foreign, err := other.Issue("admin", time.Now())
	require.NoError(t, err)
	_, err = svc.Parse(foreign)
	assert.Error(t, err)
}

func TestIssueWithoutSecret(t *testing.T) {
	_, err := TokenService{}.Issue("admin", time.Now())
	assert.Error(t, err)
}

func TestCredentialsCheck(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	creds := Credentials{Username: "admin", PasswordHash: hash}

	assert.NoError(t, creds.Check("admin", "correct horse"))
	assert.ErrorIs(t, creds.Check("admin", "wrong"), ErrInvalidCredentials)
	assert.ErrorIs(t, creds.Check("root", "correct horse"), ErrInvalidCredentials)
	assert.ErrorIs(t, Credentials{Username: "admin"}.Check("admin", ""), ErrInvalidCredentials)
}
