package authz

import (
	"context"
	"slices"

	"github.com/farellandr/melaka-tickets/internal/apperr"
	"github.com/farellandr/melaka-tickets/internal/models"
	"github.com/farellandr/melaka-tickets/internal/store"
)

// Policy is the set of caller roles allowed to run one operation.
type Policy struct {
	Name          string
	Allowed       []models.Role
	DeniedMessage string
}

// Each operation keeps its own policy even where the sets coincide.
var (
	CreateAdmin = Policy{
		Name:          "create-admin",
		Allowed:       []models.Role{models.RoleSuperAdmin},
		DeniedMessage: "Access denied",
	}
	DeleteAdmin = Policy{
		Name:          "delete-admin",
		Allowed:       []models.Role{models.RoleSuperAdmin},
		DeniedMessage: "Forbidden: Only Super Admin can delete admins",
	}
	DeleteUser = Policy{
		Name:          "delete-user",
		Allowed:       []models.Role{models.RoleAdmin, models.RoleSuperAdmin},
		DeniedMessage: "Forbidden: You must be Admin or Super Admin",
	}
)

func (p Policy) Allows(role models.Role) bool {
	return slices.Contains(p.Allowed, role)
}

type Authorizer struct {
	store store.Store
}

func NewAuthorizer(s store.Store) *Authorizer {
	return &Authorizer{store: s}
}

// Authorize loads admins/<uid> and checks its role against the policy.
func (a *Authorizer) Authorize(ctx context.Context, uid string, policy Policy) (*models.AdminRecord, error) {
	var caller models.AdminRecord

	found, err := a.store.Get(ctx, models.AdminsCollection, uid, &caller)
	if err != nil {
		return nil, err
	}

	if !found || !policy.Allows(caller.Role) {
		return nil, apperr.New(apperr.ErrPermissionDenied, policy.DeniedMessage)
	}

	return &caller, nil
}
