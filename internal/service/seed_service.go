package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
)

// SeedService ensures the fixed role set and a bootstrap admin account exist
// at startup.
type SeedService struct {
	users      repository.UserRepository
	roles      repository.RoleRepository
	cfg        config.SeedConfig
	bcryptCost int
	logger     *zap.Logger
}

// NewSeedService constructs the service.
func NewSeedService(users repository.UserRepository, roles repository.RoleRepository, cfg config.SeedConfig, bcryptCost int, logger *zap.Logger) *SeedService {
	return &SeedService{
		users:      users,
		roles:      roles,
		cfg:        cfg,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Run seeds roles and the admin account. Existing records are left untouched.
func (s *SeedService) Run(ctx context.Context) error {
	if !s.cfg.Enabled {
		return nil
	}
	for _, name := range domain.AllRoleNames() {
		if err := s.roles.Ensure(ctx, name); err != nil {
			return err
		}
	}

	exists, err := s.users.ExistsByEmail(ctx, s.cfg.AdminEmail)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	adminRole, err := s.roles.GetByName(ctx, domain.RoleAdmin)
	if err != nil {
		return err
	}
	hash, err := auth.HashPassword(s.cfg.AdminPassword, s.bcryptCost)
	if err != nil {
		return err
	}

	admin := &domain.User{
		FullName:     s.cfg.AdminName,
		Email:        s.cfg.AdminEmail,
		PasswordHash: hash,
		Active:       true,
		Roles:        []domain.Role{*adminRole},
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return err
	}
	s.logger.Info("seeded admin account", zap.String("email", admin.Email))
	return nil
}
