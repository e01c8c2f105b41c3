package auth

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

type stubUserRepo struct {
	users map[int64]domain.User
}

func (s *stubUserRepo) Create(context.Context, *domain.User) error { return nil }
func (s *stubUserRepo) Update(context.Context, *domain.User) error { return nil }
func (s *stubUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}
func (s *stubUserRepo) GetByEmail(context.Context, string) (*domain.User, error) {
	return nil, pgx.ErrNoRows
}
func (s *stubUserRepo) ExistsByEmail(context.Context, string) (bool, error) { return false, nil }
func (s *stubUserRepo) List(context.Context) ([]domain.User, error)         { return nil, nil }
func (s *stubUserRepo) ListActive(context.Context) ([]domain.User, error)   { return nil, nil }
func (s *stubUserRepo) Delete(context.Context, int64) error                 { return nil }

func newProtectedApp(t *testing.T, users *stubUserRepo, roles ...domain.RoleName) (*fiber.App, *TokenManager) {
	t.Helper()
	tokens := NewTokenManager("test-secret", 15)
	middleware := NewAuthMiddleware(tokens, users)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"error": domainErr.Code})
		},
	})
	app.Get("/protected", middleware.Handle, RequireRole(roles...), func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		require.True(t, ok)
		return c.JSON(fiber.Map{"id": principal.User.ID})
	})
	return app, tokens
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	users := &stubUserRepo{users: map[int64]domain.User{
		7: {ID: 7, Email: "jane@example.com", Active: true, Roles: []domain.Role{{ID: 1, Name: domain.RoleAdmin}}},
	}}
	app, tokens := newProtectedApp(t, users, domain.RoleAdmin)

	token, _, err := tokens.GenerateToken(7, []string{"ADMIN"})
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	app, _ := newProtectedApp(t, &stubUserRepo{users: map[int64]domain.User{}})

	resp, err := app.Test(httptest.NewRequest("GET", "/protected", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareRejectsInactiveUser(t *testing.T) {
	users := &stubUserRepo{users: map[int64]domain.User{
		7: {ID: 7, Email: "jane@example.com", Active: false},
	}}
	app, tokens := newProtectedApp(t, users)

	token, _, err := tokens.GenerateToken(7, nil)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRoleRejectsMissingRole(t *testing.T) {
	users := &stubUserRepo{users: map[int64]domain.User{
		7: {ID: 7, Email: "jane@example.com", Active: true, Roles: []domain.Role{{ID: 3, Name: domain.RoleUser}}},
	}}
	app, tokens := newProtectedApp(t, users, domain.RoleAdmin)

	token, _, err := tokens.GenerateToken(7, []string{"USER"})
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
