package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTTokenService_GenerateAndValidate(t *testing.T) {
	svc := NewJWTTokenService("test-secret-key", "HS256", time.Hour, "vwa-api")
	userID := uuid.New()
	wallet := "7xKXtg2CW87d97TXJSDpbD5jBkheTqA83TZRuJosgAsU"

	token, expiresAt, err := svc.Generate(userID, wallet)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, wallet, claims.WalletAddress)
}

func TestJWTTokenService_AlgorithmSelection(t *testing.T) {
	for _, alg := range []string{"HS256", "HS384", "HS512", "unknown"} {
		svc := NewJWTTokenService("secret", alg, time.Hour, "vwa-api")
		token, _, err := svc.Generate(uuid.New(), "wallet")
		require.NoError(t, err, "algorithm %s", alg)

		_, err = svc.Validate(token)
		assert.NoError(t, err, "algorithm %s", alg)
	}
}

func TestJWTTokenService_Validate_WrongSecret(t *testing.T) {
	svc := NewJWTTokenService("correct-secret", "HS256", time.Hour, "vwa-api")
	other := NewJWTTokenService("wrong-secret", "HS256", time.Hour, "vwa-api")

	token, _, err := svc.Generate(uuid.New(), "wallet")
	require.NoError(t, err)

	_, err = other.Validate(token)
	assert.Error(t, err)
}

func TestJWTTokenService_Validate_Expired(t *testing.T) {
	svc := NewJWTTokenService("secret", "HS256", -time.Minute, "vwa-api")

	token, _, err := svc.Generate(uuid.New(), "wallet")
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.Error(t, err)
}

func TestJWTTokenService_Validate_Garbage(t *testing.T) {
	svc := NewJWTTokenService("secret", "HS256", time.Hour, "vwa-api")

	_, err := svc.Validate("not.a.token")
	assert.Error(t, err)
}
