package admin

import "github.com/urbavisu/urbavisu-api/internal/domain/user"

// RoleHierarchy defines role levels (higher = more permissions)
var RoleHierarchy = map[user.Role]int{
	user.RoleSuperAdmin: 100,
	user.RoleAdmin:      80,
	user.RoleManager:    40,
	user.RoleClient:     10,
}

// CanAssignRole reports whether actor may give target to an account. Nobody
// may hand out a role above their own.
func CanAssignRole(actor, target user.Role) bool {
	return RoleHierarchy[actor] >= RoleHierarchy[target]
}

// CanManage reports whether actor may edit an account holding target.
// Super admins manage everyone; other roles only manage lower ones.
func CanManage(actor, target user.Role) bool {
	if actor == user.RoleSuperAdmin {
		return true
	}
	return RoleHierarchy[actor] > RoleHierarchy[target]
}
