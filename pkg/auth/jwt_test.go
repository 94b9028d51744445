package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("secret", time.Hour, "portal-api")
	id := uuid.New()

	token, err := svc.GenerateToken(id, "client", "ana@example.com")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.PatientID)
	assert.Equal(t, "client", claims.Role)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, "portal-api", claims.Issuer)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	issuer := NewJWTService("secret-a", time.Hour, "portal-api")
	verifier := NewJWTService("secret-b", time.Hour, "portal-api")

	token, err := issuer.GenerateToken(uuid.New(), "client", "ana@example.com")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	svc := NewJWTService("secret", -time.Minute, "portal-api")

	token, err := svc.GenerateToken(uuid.New(), "client", "ana@example.com")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}
