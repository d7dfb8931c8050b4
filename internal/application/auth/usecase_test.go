package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/smartshelf-api/internal/application/auth"
	"github.com/jhoicas/smartshelf-api/internal/application/dto"
	"github.com/jhoicas/smartshelf-api/internal/domain"
	"github.com/jhoicas/smartshelf-api/internal/infrastructure/memory"
	pkgjwt "github.com/jhoicas/smartshelf-api/pkg/jwt"
)

const secret = "auth-test-secret"

func newAuth(store *memory.Store) *auth.AuthUseCase {
	return auth.NewAuthUseCase(store.Users(), auth.JWTConfig{Secret: secret, ExpMinutes: 5, Issuer: "test"}).
		WithBcryptCost(bcrypt.MinCost)
}

func register(t *testing.T, uc *auth.AuthUseCase, email, role string) {
	t.Helper()
	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		FullName: "Usuario", Email: email, Password: "clave123", Role: role,
	})
	require.NoError(t, err)
}

func TestRegister_HashYRolPorDefecto(t *testing.T) {
	store := memory.NewStore()
	uc := newAuth(store)
	ctx := context.Background()

	out, err := uc.Register(ctx, dto.RegisterRequest{FullName: "Ana", Email: " Ana@Shop.Test ", Password: "clave123"})
	require.NoError(t, err)
	assert.Equal(t, "ana@shop.test", out.Email)
	assert.Equal(t, "USER", out.Role)

	u, err := store.Users().GetByEmail(ctx, "ana@shop.test")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.NotEqual(t, "clave123", u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("clave123")))

	_, err = uc.Register(ctx, dto.RegisterRequest{Email: "ana@shop.test", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = uc.Register(ctx, dto.RegisterRequest{Email: "", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	weird, err := uc.Register(ctx, dto.RegisterRequest{Email: "b@shop.test", Password: "x", Role: "superuser"})
	require.NoError(t, err)
	assert.Equal(t, "USER", weird.Role)
}

func TestLogin_TokenConRolYEmail(t *testing.T) {
	uc := newAuth(memory.NewStore())
	register(t, uc, "jefe@shop.test", "STORE_MANAGER")

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "JEFE@shop.test", Password: "clave123"})
	require.NoError(t, err)
	assert.Equal(t, "STORE_MANAGER", out.Role)

	email, role, err := pkgjwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "jefe@shop.test", email)
	assert.Equal(t, "STORE_MANAGER", role)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc := newAuth(memory.NewStore())
	register(t, uc, "a@shop.test", "")

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "a@shop.test", Password: "mala"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@shop.test", Password: "clave123"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials, "email desconocido no se distingue de password incorrecto")
}

func TestResetPasswordDirect(t *testing.T) {
	uc := newAuth(memory.NewStore())
	register(t, uc, "a@shop.test", "")
	ctx := context.Background()

	err := uc.ResetPasswordDirect(ctx, dto.ResetPasswordRequest{Email: "nadie@shop.test", OldPassword: "x", NewPassword: "abc"})
	assert.ErrorIs(t, err, domain.ErrWeakPassword, "la longitud se valida primero")

	err = uc.ResetPasswordDirect(ctx, dto.ResetPasswordRequest{Email: "nadie@shop.test", OldPassword: "x", NewPassword: "nueva123"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	err = uc.ResetPasswordDirect(ctx, dto.ResetPasswordRequest{Email: "a@shop.test", OldPassword: "mala", NewPassword: "nueva123"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	require.NoError(t, uc.ResetPasswordDirect(ctx, dto.ResetPasswordRequest{Email: "a@shop.test", OldPassword: "clave123", NewPassword: "nueva123"}))

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "a@shop.test", Password: "clave123"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "a@shop.test", Password: "nueva123"})
	assert.NoError(t, err)
}
