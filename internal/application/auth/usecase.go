package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/smartshelf-api/internal/application/dto"
	"github.com/jhoicas/smartshelf-api/internal/application/usecase"
	"github.com/jhoicas/smartshelf-api/internal/domain"
	"github.com/jhoicas/smartshelf-api/internal/domain/entity"
	"github.com/jhoicas/smartshelf-api/internal/domain/repository"
	"github.com/jhoicas/smartshelf-api/pkg/jwt"
)

// MinPasswordLength longitud mínima de la nueva contraseña en el cambio directo.
const MinPasswordLength = 6

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login y cambio directo de contraseña.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	cost     int
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, cost: bcrypt.DefaultCost}
}

// WithBcryptCost cambia el costo de bcrypt (tests usan bcrypt.MinCost).
func (uc *AuthUseCase) WithBcryptCost(cost int) *AuthUseCase {
	uc.cost = cost
	return uc
}

// Register crea un usuario con password hasheado con bcrypt.
// Rol vacío o desconocido queda en USER. ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: email y password son obligatorios", domain.ErrInvalidInput)
	}
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.cost)
	if err != nil {
		return nil, fmt.Errorf("auth: hash password: %w", err)
	}
	role, _ := entity.ParseRole(in.Role)
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		FullName:     strings.TrimSpace(in.FullName),
		Email:        email,
		PasswordHash: string(hash),
		Contact:      in.Contact,
		Location:     in.Location,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	resp := usecase.ToUserResponse(user)
	return &resp, nil
}

// Login verifica email/password y emite un JWT con sub=email y el rol.
// Email desconocido y password incorrecto devuelven el mismo ErrInvalidCredentials.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.verify(ctx, normalizeEmail(in.Email), in.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	role, _ := entity.ParseRole(user.Role)
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.Email, role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("auth: generar token: %w", err)
	}
	return &dto.LoginResponse{Email: user.Email, Token: token, Role: role}, nil
}

// ResetPasswordDirect cambia la contraseña validando la anterior.
// Orden de validación: largo de la nueva (ErrWeakPassword), existencia del email (ErrUserNotFound),
// contraseña anterior (ErrInvalidCredentials).
func (uc *AuthUseCase) ResetPasswordDirect(ctx context.Context, in dto.ResetPasswordRequest) error {
	if len(in.NewPassword) < MinPasswordLength {
		return domain.ErrWeakPassword
	}
	user, err := uc.verify(ctx, normalizeEmail(in.Email), in.OldPassword)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), uc.cost)
	if err != nil {
		return fmt.Errorf("auth: hash password: %w", err)
	}
	return uc.userRepo.UpdatePassword(ctx, user.ID, string(hash), time.Now())
}

func (uc *AuthUseCase) verify(ctx context.Context, email, password string) (*entity.User, error) {
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
