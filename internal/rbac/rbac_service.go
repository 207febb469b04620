package rbac

import (
	"sync"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

// Resources enforced across the ledger. The permission rows in the
// database use these exact strings.
const (
	ResourceShift             = "shift"
	ResourceStaleShift        = "stale_shift"
	ResourceOutOfRangeRequest = "out_of_range_request"
	ResourceRole              = "role"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	LoadOrganizationPolicy(organizationID string) error
	Enforce(req EnforceRequest) (bool, error)
}

type service struct {
	repo     Repository
	enforcer *casbin.Enforcer
	logger   *zap.Logger
	mu       sync.Mutex
}

func NewService(repo Repository, enforcer *casbin.Enforcer) Service {
	return &service{
		repo:     repo,
		enforcer: enforcer,
		logger:   zap.L().Named("rbac.service"),
	}
}

func (s *service) LoadOrganizationPolicy(organizationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadOrganizationPolicyUnlocked(organizationID)
}

func (s *service) loadOrganizationPolicyUnlocked(organizationID string) error {
	s.enforcer.ClearPolicy()

	userRoles, err := s.repo.GetUserRoles(organizationID)
	if err != nil {
		return err
	}

	for _, ur := range userRoles {
		if _, err := s.enforcer.AddGroupingPolicy(ur.UserID, ur.RoleID, organizationID); err != nil {
			return err
		}
	}

	rolePerms, err := s.repo.GetRolePermissions(organizationID)
	if err != nil {
		return err
	}

	for _, rp := range rolePerms {
		if _, err := s.enforcer.AddPolicy(rp.RoleID, organizationID, rp.Resource, rp.Action); err != nil {
			return err
		}
	}

	s.logger.Debug("organization policy loaded",
		zap.String("organization_id", organizationID),
		zap.Int("user_roles", len(userRoles)),
		zap.Int("role_permissions", len(rolePerms)),
	)
	return nil
}

func (s *service) Enforce(req EnforceRequest) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadOrganizationPolicyUnlocked(req.OrganizationID); err != nil {
		return false, err
	}

	allowed, err := s.enforcer.Enforce(
		req.UserID,
		req.OrganizationID,
		req.Resource,
		req.Action,
	)
	if err != nil {
		s.logger.Error("enforce failed",
			zap.String("user_id", req.UserID),
			zap.String("organization_id", req.OrganizationID),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("enforce result",
		zap.String("user_id", req.UserID),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}
