package rbac

import (
	"sort"
	"sync"

	"go-hr-admin/internal/domain"
	"go-hr-admin/internal/rbac/infra"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(role, resource, action string) (bool, error)
	AllowedRoles(resource, action string) []string
	Permissions(role string) []string
	Reload(policy *Policy) error
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   *zap.Logger
}

// NewService builds a casbin enforcer loaded with policy.
func NewService(policy *Policy, logger ...*zap.Logger) (Service, error) {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}

	s := &service{logger: l}
	if err := s.Reload(policy); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload swaps the enforcer for one built from policy. The old enforcer
// keeps serving until the new one is fully loaded.
func (s *service) Reload(policy *Policy) error {
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}

	rules, groups := 0, 0
	for role, rp := range policy.Roles {
		for _, parent := range rp.Inherits {
			if _, err := enforcer.AddGroupingPolicy(role, parent); err != nil {
				return err
			}
			groups++
		}
		for _, raw := range rp.Permissions {
			perm, err := ParsePermission(raw)
			if err != nil {
				return err
			}
			if _, err := enforcer.AddPolicy(role, perm.Resource, perm.Action); err != nil {
				return err
			}
			rules++
		}
	}

	s.mu.Lock()
	s.enforcer = enforcer
	s.mu.Unlock()

	s.logger.Info("rbac policy loaded",
		zap.Int("roles", len(policy.Roles)),
		zap.Int("permissions", rules),
		zap.Int("inherits", groups),
	)
	return nil
}

func (s *service) Enforce(role, resource, action string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	allowed, err := s.enforcer.Enforce(role, resource, action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("role", role),
			zap.String("resource", resource),
			zap.String("action", action),
			zap.Error(err),
		)
		return false, err
	}
	s.logger.Debug("rbac enforce result",
		zap.String("role", role),
		zap.String("resource", resource),
		zap.String("action", action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

// AllowedRoles lists the fixed roles that may perform resource:action,
// in role id order.
func (s *service) AllowedRoles(resource, action string) []string {
	out := make([]string, 0, len(domain.Roles))
	for _, r := range domain.Roles {
		if ok, err := s.Enforce(r.Name, resource, action); err == nil && ok {
			out = append(out, r.Name)
		}
	}
	return out
}

// Permissions returns every resource:action granted to role, including
// inherited ones, sorted.
func (s *service) Permissions(role string) []string {
	s.mu.RLock()
	perms, err := s.enforcer.GetImplicitPermissionsForUser(role)
	s.mu.RUnlock()
	if err != nil {
		s.logger.Error("rbac list permissions failed", zap.String("role", role), zap.Error(err))
		return nil
	}

	seen := make(map[string]struct{}, len(perms))
	out := make([]string, 0, len(perms))
	for _, p := range perms {
		if len(p) < 3 {
			continue
		}
		key := Permission{Resource: p[1], Action: p[2]}.String()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}
