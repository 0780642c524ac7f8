package rbac

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

// rbacModel is a plain role-based model. The role set is closed (employee,
// manager, director), so policies live in code rather than a policy store.
const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

//go:generate mockgen -source=rbac.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	// Enforce answers whether the role may perform action on resource.
	// This is the coarse route-level gate; per-request scoping is the
	// leave package's visibility filter.
	Enforce(role, resource, action string) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
}

func NewService() (Service, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, err
	}
	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	policies := [][]string{
		{"employee", "leave", "create"},
		{"employee", "leave", "read"},
		{"employee", "dashboard", "read"},
		{"manager", "leave", "decide"},
	}
	for _, p := range policies {
		if _, err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}

	// Managers inherit everything employees may do; directors everything
	// managers may do.
	groupings := [][]string{
		{"manager", "employee"},
		{"director", "manager"},
	}
	for _, g := range groupings {
		if _, err := e.AddGroupingPolicy(g[0], g[1]); err != nil {
			return nil, err
		}
	}

	return &service{enforcer: e}, nil
}

func (s *service) Enforce(role, resource, action string) (bool, error) {
	return s.enforcer.Enforce(role, resource, action)
}
