package authz

import "licensing-system/pkg/constants"

const (
	// Requests
	RequestsCreate = "requests:create"
	RequestsView   = "requests:view"
	RequestsAct    = "requests:act"
	PaymentsManage = "payments:manage"

	// Administration
	UsersManage   = "users:manage"
	ReportsExport = "reports:export"
	StatsView     = "stats:view"

	// Scope modifiers
	ScopeOwn      = "scope:own"
	ScopeProvince = "scope:province"
	ScopeAll      = "scope:all"
)

var rolePermissions = map[constants.Role][]string{
	constants.RoleClient: {
		RequestsCreate, RequestsView, StatsView, ScopeOwn,
	},
	constants.RoleBranchManager: {
		RequestsCreate, RequestsView, RequestsAct, StatsView, ScopeProvince,
	},
	constants.RoleFacilitiesMgr: {
		RequestsCreate, RequestsView, RequestsAct, StatsView, ScopeAll,
	},
	constants.RoleReviewMgr: {
		RequestsCreate, RequestsView, RequestsAct, PaymentsManage, StatsView, ScopeAll,
	},
	constants.RoleGeneralMgr: {
		RequestsCreate, RequestsView, RequestsAct, UsersManage, ReportsExport, StatsView, ScopeAll,
	},
	constants.RoleDeputyMinister: {
		RequestsCreate, RequestsView, RequestsAct, ReportsExport, StatsView, ScopeAll,
	},
}

// PermissionsFor returns the permission set of a role. Unknown roles get an empty set.
func PermissionsFor(role constants.Role) map[string]bool {
	perms := make(map[string]bool, len(rolePermissions[role]))
	for _, p := range rolePermissions[role] {
		perms[p] = true
	}
	return perms
}
