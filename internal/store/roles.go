package store

import "fmt"

// Role is the closed set of account roles. Access-control decisions key off
// the tables below rather than ad-hoc string comparisons.
type Role string

const (
	RoleSuperAdmin Role = "SUPER_ADMIN"
	RoleAppStaff   Role = "APP_STAFF"
	RoleSponsor    Role = "SPONSOR"
	RoleMerchant   Role = "MERCHANT"
	RoleStaff      Role = "STAFF"
)

const (
	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusSuspended = "suspended"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleSuperAdmin, RoleAppStaff, RoleSponsor, RoleMerchant, RoleStaff:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role: %q", s)
}

func ValidStatus(s string) bool {
	switch s {
	case StatusActive, StatusInactive, StatusSuspended:
		return true
	}
	return false
}

// creatableRoles is the provisioning matrix: which roles an actor may create.
var creatableRoles = map[Role][]Role{
	RoleSuperAdmin: {RoleAppStaff, RoleSponsor},
	RoleAppStaff:   {RoleMerchant},
}

// manageableRoles governs listing and status updates of other accounts.
var manageableRoles = map[Role][]Role{
	RoleSuperAdmin: {RoleSuperAdmin, RoleAppStaff, RoleSponsor, RoleMerchant, RoleStaff},
	RoleAppStaff:   {RoleMerchant},
}

func (r Role) CanCreate(target Role) bool {
	for _, allowed := range creatableRoles[r] {
		if allowed == target {
			return true
		}
	}
	return false
}

func (r Role) CanManage(target Role) bool {
	for _, allowed := range manageableRoles[r] {
		if allowed == target {
			return true
		}
	}
	return false
}

// CanListAllUsers reports whether the actor may list users without a role filter.
func (r Role) CanListAllUsers() bool {
	return r == RoleSuperAdmin
}

func (r Role) CanDeleteUsers() bool {
	return r == RoleSuperAdmin
}
