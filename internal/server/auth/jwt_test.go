package auth

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/gophrecords/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")

	tok, err := GenerateToken("owner-123", secret, time.Hour)
	require.NoError(t, err)

	owner, err := GetOwnerFromToken(tok, secret)
	require.NoError(t, err)
	assert.Equal(t, "owner-123", owner)
}

func TestGenerateToken_EmptyOwner(t *testing.T) {
	t.Parallel()

	_, err := GenerateToken("", []byte("k"), time.Hour)
	require.Error(t, err)
}

func TestGetOwnerFromToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	tok, err := GenerateToken("o1", secret, -1*time.Second)
	require.NoError(t, err)

	_, err = GetOwnerFromToken(tok, secret)
	require.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestGetOwnerFromToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken("o2", []byte("right-secret"), time.Hour)
	require.NoError(t, err)

	_, err = GetOwnerFromToken(tok, []byte("wrong-secret"))
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestGetOwnerFromToken_MalformedString(t *testing.T) {
	t.Parallel()

	_, err := GetOwnerFromToken("not.a.jwt", []byte("k"))
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestGetOwnerFromToken_NoOwnerClaim(t *testing.T) {
	t.Parallel()

	secret := []byte("k")
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(secret)
	require.NoError(t, err)

	_, err = GetOwnerFromToken(tok, secret)
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestGetOwnerFromToken_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{OwnerID: "o1"}).SignedString([]byte("k"))
	require.NoError(t, err)

	_, err = GetOwnerFromToken(tok, []byte("k"))
	require.ErrorIs(t, err, common.ErrInvalidToken)
}
