package jwt_test

import (
	"testing"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/smartshelf-api/pkg/jwt"
)

const secret = "test-secret"

func TestGenerateParse_RoundTrip(t *testing.T) {
	token, err := jwt.Generate(secret, "ana@shop.test", "ADMIN", "smartshelf", 60)
	require.NoError(t, err)

	email, role, err := jwt.Parse(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "ana@shop.test", email)
	assert.Equal(t, "ADMIN", role)
}

func TestGenerate_UsaHS512(t *testing.T) {
	token, err := jwt.Generate(secret, "ana@shop.test", "USER", "", 60)
	require.NoError(t, err)

	parsed, _, err := gojwt.NewParser().ParseUnverified(token, &jwt.Claims{})
	require.NoError(t, err)
	assert.Equal(t, "HS512", parsed.Method.Alg())
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, err := jwt.Generate(secret, "ana@shop.test", "USER", "", 60)
	require.NoError(t, err)

	_, _, err = jwt.Parse("otro-secret", token)
	assert.Error(t, err)
}

func TestParse_TokenExpirado(t *testing.T) {
	token, err := jwt.Generate(secret, "ana@shop.test", "USER", "", -1)
	require.NoError(t, err)

	_, _, err = jwt.Parse(secret, token)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := jwt.Generate("", "ana@shop.test", "USER", "", 60)
	assert.Error(t, err)
}
