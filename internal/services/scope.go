package services

import (
	sq "github.com/Masterminds/squirrel"

	"licensing-system/internal/authz"
	"licensing-system/pkg/constants"
)

var denyAll = sq.Expr("FALSE")

func statuses(s ...constants.RequestStatus) []string {
	out := make([]string, len(s))
	for i, v := range s {
		out[i] = string(v)
	}
	return out
}

// queueScope selects the requests waiting on the actor's role. A nil result means no restriction.
func queueScope(actor authz.Actor) sq.Sqlizer {
	switch actor.Role {
	case constants.RoleClient:
		return sq.Eq{"r.user_id": actor.ID}
	case constants.RoleBranchManager:
		if !actor.ProvinceID.Valid {
			return denyAll
		}
		return sq.Eq{
			"r.province_id": actor.ProvinceID.Int,
			"r.status":      string(constants.StatusPendingBranch),
		}
	case constants.RoleFacilitiesMgr:
		return sq.Eq{"r.status": string(constants.StatusPendingFacilities)}
	case constants.RoleReviewMgr:
		return sq.Or{
			sq.Eq{"r.status": statuses(constants.StatusPendingReview, constants.StatusPendingPayment)},
			sq.And{
				sq.Eq{"r.status": string(constants.StatusCompleted)},
				sq.Eq{"r.license_number": nil},
			},
		}
	case constants.RoleGeneralMgr:
		return nil
	case constants.RoleDeputyMinister:
		return sq.Eq{"r.status": string(constants.StatusPendingDeputy)}
	}
	return denyAll
}

// visibilityScope selects every request the actor may read, whatever its state.
func visibilityScope(actor authz.Actor) sq.Sqlizer {
	perms := authz.PermissionsFor(actor.Role)
	switch {
	case perms[authz.ScopeAll]:
		return nil
	case perms[authz.ScopeProvince]:
		if !actor.ProvinceID.Valid {
			return denyAll
		}
		return sq.Eq{"r.province_id": actor.ProvinceID.Int}
	case perms[authz.ScopeOwn]:
		return sq.Eq{"r.user_id": actor.ID}
	}
	return denyAll
}

// pendingScope is the part of the queue the actor is personally expected to act on.
// Clients and the general manager have none.
func pendingScope(actor authz.Actor) (sq.Sqlizer, bool) {
	switch actor.Role {
	case constants.RoleClient, constants.RoleGeneralMgr:
		return nil, false
	}
	return queueScope(actor), true
}
