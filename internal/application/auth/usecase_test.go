package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/boutique-api/internal/application/dto"
	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/infrastructure/memory"
	"github.com/jhoicas/boutique-api/pkg/jwt"
	"github.com/jhoicas/boutique-api/pkg/logger"
)

const secret = "auth-test-secret"

func newUC() *AuthUseCase {
	return NewAuthUseCase(memory.NewStore().Users(), JWTConfig{Secret: secret, ExpMinutes: 30, Issuer: "test"}, logger.Nop()).
		WithHashCost(bcrypt.MinCost)
}

func TestCreateUser_HasheaYNormalizaEmail(t *testing.T) {
	uc := newUC()
	ctx := context.Background()

	u, err := uc.CreateUser(ctx, dto.CreateUserRequest{Email: " Caja@Boutique.co ", Password: "secreta123", Name: "Caja", Role: entity.RoleOperator})
	require.NoError(t, err)
	assert.Equal(t, "caja@boutique.co", u.Email)
	assert.Equal(t, entity.UserStatusActive, u.Status)

	stored, err := uc.userRepo.GetByEmail(ctx, "caja@boutique.co")
	require.NoError(t, err)
	assert.NotEqual(t, "secreta123", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secreta123")))

	_, err = uc.CreateUser(ctx, dto.CreateUserRequest{Email: "CAJA@boutique.co", Password: "otra-clave", Role: entity.RoleAdmin})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = uc.CreateUser(ctx, dto.CreateUserRequest{Email: "x@boutique.co", Password: "secreta123", Role: "bodeguero"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_EmiteTokenConRol(t *testing.T) {
	uc := newUC()
	ctx := context.Background()
	_, err := uc.CreateUser(ctx, dto.CreateUserRequest{Email: "admin@boutique.co", Password: "secreta123", Name: "Admin", Role: entity.RoleAdmin})
	require.NoError(t, err)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "ADMIN@boutique.co", Password: "secreta123"})
	require.NoError(t, err)
	assert.Equal(t, 1800, out.ExpiresIn)

	userID, role, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, userID)
	assert.Equal(t, jwt.RoleAdmin, role)
}

func TestLogin_CredencialesInvalidasYUsuarioDesactivado(t *testing.T) {
	uc := newUC()
	ctx := context.Background()
	u, err := uc.CreateUser(ctx, dto.CreateUserRequest{Email: "op@boutique.co", Password: "secreta123", Role: entity.RoleOperator})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "op@boutique.co", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@boutique.co", Password: "secreta123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "email desconocido responde igual que password incorrecto")

	require.NoError(t, uc.SetStatus(ctx, u.ID, entity.UserStatusDisabled))
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "op@boutique.co", Password: "secreta123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	assert.ErrorIs(t, uc.SetStatus(ctx, "no-existe", entity.UserStatusActive), domain.ErrUserNotFound)
}

func TestEnsureAdmin_SoloConBaseVacia(t *testing.T) {
	uc := newUC()
	ctx := context.Background()

	require.NoError(t, uc.EnsureAdmin(ctx, "", ""))
	n, _ := uc.userRepo.Count(ctx)
	assert.Equal(t, 0, n)

	require.NoError(t, uc.EnsureAdmin(ctx, "root@boutique.co", "secreta123"))
	require.NoError(t, uc.EnsureAdmin(ctx, "otro@boutique.co", "secreta123"))
	list, err := uc.ListUsers(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "root@boutique.co", list[0].Email)
	assert.Equal(t, entity.RoleAdmin, list[0].Role)
}
