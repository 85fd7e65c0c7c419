package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateYParse(t *testing.T) {
	token, err := Generate("secreto", "u1", "a@b.co", "owner", "multitienda-api", 15)
	require.NoError(t, err)

	claims, err := Parse("secreto", token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "u1", claims.Subject)
	assert.Equal(t, "a@b.co", claims.Email)
	assert.Equal(t, "owner", claims.Role)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), claims.ExpiresAtTime(), 5*time.Second)
}

func TestGenerate_JTIUnico(t *testing.T) {
	a, err := Generate("secreto", "u1", "a@b.co", "owner", "", 15)
	require.NoError(t, err)
	b, err := Generate("secreto", "u1", "a@b.co", "owner", "", 15)
	require.NoError(t, err)

	ca, _ := Parse("secreto", a)
	cb, _ := Parse("secreto", b)
	assert.NotEqual(t, ca.ID, cb.ID)
}

func TestParse_Rechaza(t *testing.T) {
	token, err := Generate("secreto", "u1", "a@b.co", "owner", "", 15)
	require.NoError(t, err)

	_, err = Parse("otro", token)
	assert.Error(t, err, "firma incorrecta")

	expired, err := Generate("secreto", "u1", "a@b.co", "owner", "", -1)
	require.NoError(t, err)
	_, err = Parse("secreto", expired)
	assert.Error(t, err, "token vencido")

	_, err = Parse("", token)
	assert.Error(t, err)
	_, err = Generate("", "u1", "", "", "", 1)
	assert.Error(t, err)
}
