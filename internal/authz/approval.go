package authz

import "licensing-system/pkg/constants"

// approvalMatrix lists the pending levels each role may approve or reject at.
var approvalMatrix = map[constants.Role][]constants.Level{
	constants.RoleClient:        {},
	constants.RoleBranchManager: {constants.LevelBranch},
	constants.RoleFacilitiesMgr: {constants.LevelFacilities},
	constants.RoleReviewMgr:     {constants.LevelReview},
	constants.RoleGeneralMgr:    {constants.LevelReview, constants.LevelFacilities},
	constants.RoleDeputyMinister: {
		constants.LevelDeputy,
		constants.LevelReview,
		constants.LevelFacilities,
		constants.LevelBranch,
	},
}

func CanApproveAtLevel(role constants.Role, level constants.Level) bool {
	for _, l := range approvalMatrix[role] {
		if l == level {
			return true
		}
	}
	return false
}

// CanHandlePayment reports whether the role may issue receipts, verify payments and issue licenses.
func CanHandlePayment(role constants.Role) bool {
	return role == constants.RoleReviewMgr
}

// ApprovableLevels returns a copy of the levels the role may act on.
func ApprovableLevels(role constants.Role) []constants.Level {
	levels := approvalMatrix[role]
	out := make([]constants.Level, len(levels))
	copy(out, levels)
	return out
}
