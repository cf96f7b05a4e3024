package authz

import (
	"licensing-system/internal/entities"
)

type Gatekeeper struct{}

func NewGatekeeper() *Gatekeeper {
	return &Gatekeeper{}
}

// Can checks the base permission of the actor's role and, when a target is given, its scope.
func (g *Gatekeeper) Can(actor Actor, permission string, target interface{}) bool {
	if !actor.IsActive {
		return false
	}

	perms := PermissionsFor(actor.Role)
	if !perms[permission] {
		return false
	}

	if target == nil {
		return true
	}

	ctx := Context{Actor: actor, Permissions: perms, Target: target}
	switch t := target.(type) {
	case *entities.Request:
		return canAccessRequest(ctx, t)
	case *entities.RequestDetails:
		return canAccessRequest(ctx, &t.Request)
	}

	return false
}
