package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// UserService coordinates account lifecycle operations.
type UserService struct {
	users      repository.UserRepository
	roles      repository.RoleRepository
	dispatcher events.Dispatcher
	bcryptCost int
	logger     *zap.Logger
}

// UserDependencies bundles requirements for the user service.
type UserDependencies struct {
	UserRepo   repository.UserRepository
	RoleRepo   repository.RoleRepository
	Dispatcher events.Dispatcher
	BcryptCost int
	Logger     *zap.Logger
}

// UserCreateInput describes account creation payload.
type UserCreateInput struct {
	FullName  string
	Email     string
	Password  string
	RoleNames []string
}

// UserUpdateInput is a patch: nil fields are left untouched. RoleNames, when
// non-empty, fully replaces the existing role set.
type UserUpdateInput struct {
	FullName  *string
	Email     *string
	Password  *string
	RoleNames []string
}

// NewUserService constructs the service.
func NewUserService(deps UserDependencies) *UserService {
	return &UserService{
		users:      deps.UserRepo,
		roles:      deps.RoleRepo,
		dispatcher: deps.Dispatcher,
		bcryptCost: deps.BcryptCost,
		logger:     deps.Logger,
	}
}

// Create registers a new account. The password is hashed before storage and
// the account receives the requested roles, or the default USER role when
// none are given.
func (s *UserService) Create(ctx context.Context, input UserCreateInput) (*domain.User, error) {
	exists, err := s.users.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewAlreadyExists("email already registered", map[string]any{"email": input.Email})
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	roles, err := s.resolveRoles(ctx, input.RoleNames)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		FullName:     input.FullName,
		Email:        input.Email,
		PasswordHash: hash,
		Active:       true,
		Roles:        roles,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.NewAlreadyExists("email already registered", map[string]any{"email": input.Email})
		}
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:    events.EventUserRegistered,
		ActorID: &user.ID,
		Payload: events.UserRegisteredPayload{UserID: user.ID, Email: user.Email},
	})
	return user, nil
}

// GetByID fetches an account.
func (s *UserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundIfNoRows(err, "user")
	}
	return user, nil
}

// GetByEmail fetches an account by its unique email.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, notFoundIfNoRows(err, "user")
	}
	return user, nil
}

// List returns every account.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// ListActive returns accounts with the active flag set.
func (s *UserService) ListActive(ctx context.Context) ([]domain.User, error) {
	return s.users.ListActive(ctx)
}

// Update applies the patch. A present password is re-hashed; present role
// names fully replace the existing role set.
func (s *UserService) Update(ctx context.Context, id int64, input UserUpdateInput) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundIfNoRows(err, "user")
	}

	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Password != nil {
		hash, err := auth.HashPassword(*input.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	if len(input.RoleNames) > 0 {
		roles, err := s.resolveRoles(ctx, input.RoleNames)
		if err != nil {
			return nil, err
		}
		user.Roles = roles
	}

	if err := s.users.Update(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.NewAlreadyExists("email already registered", map[string]any{"email": user.Email})
		}
		return nil, notFoundIfNoRows(err, "user")
	}
	return user, nil
}

// Delete hard-deletes the account.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return notFoundIfNoRows(err, "user")
	}
	return nil
}

// Deactivate flips the active flag off. There is no reactivate operation.
func (s *UserService) Deactivate(ctx context.Context, id int64) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return notFoundIfNoRows(err, "user")
	}
	user.Active = false
	if err := s.users.Update(ctx, user); err != nil {
		return notFoundIfNoRows(err, "user")
	}
	return nil
}

// resolveRoles maps role names to seeded roles, falling back to the default
// USER role when no names are given. Unknown names fail the whole operation.
func (s *UserService) resolveRoles(ctx context.Context, names []string) ([]domain.Role, error) {
	if len(names) == 0 {
		role, err := s.roles.GetByName(ctx, domain.RoleUser)
		if err != nil {
			return nil, notFoundIfNoRows(err, "default role")
		}
		return []domain.Role{*role}, nil
	}

	seen := make(map[domain.RoleName]struct{}, len(names))
	roles := make([]domain.Role, 0, len(names))
	for _, raw := range names {
		name, err := domain.ParseRoleName(raw)
		if err != nil {
			return nil, apperrors.NewNotFound("role", map[string]any{"name": raw})
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		role, err := s.roles.GetByName(ctx, name)
		if err != nil {
			return nil, notFoundIfNoRows(err, "role")
		}
		roles = append(roles, *role)
	}
	return roles, nil
}

func (s *UserService) publish(ctx context.Context, event events.Event) {
	publishEvent(ctx, s.dispatcher, event)
}

// notFoundIfNoRows translates a missing-row error into the NotFound kind,
// leaving other errors untouched.
func notFoundIfNoRows(err error, resource string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound(resource, nil)
	}
	return err
}
