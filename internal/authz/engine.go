package authz

import (
	"github.com/aarondl/null/v8"
	"github.com/google/uuid"

	"licensing-system/internal/entities"
	"licensing-system/pkg/constants"
)

// Actor is the authenticated principal as resolved by the identity service.
type Actor struct {
	ID         uuid.UUID      `json:"id"`
	Name       string         `json:"name"`
	Role       constants.Role `json:"role"`
	ProvinceID null.Int       `json:"province_id"`
	IsActive   bool           `json:"is_active"`
}

type Context struct {
	Actor       Actor
	Permissions map[string]bool
	Target      interface{}
}

func (c *Context) HasPermission(permission string) bool {
	return c.Permissions[permission]
}

// WithinProvince is the province predicate for branch managers. Other roles are not province-bound.
func WithinProvince(actor Actor, req *entities.Request) bool {
	if actor.Role != constants.RoleBranchManager {
		return true
	}
	return actor.ProvinceID.Valid && actor.ProvinceID.Int == req.ProvinceID
}

func canAccessRequest(ctx Context, target *entities.Request) bool {
	if ctx.HasPermission(ScopeAll) {
		return true
	}
	if ctx.HasPermission(ScopeProvince) && WithinProvince(ctx.Actor, target) {
		return true
	}
	if ctx.HasPermission(ScopeOwn) && target.UserID == ctx.Actor.ID {
		return true
	}
	return false
}
