package store

import "testing"

func TestRoleProvisioningMatrix(t *testing.T) {
	allRoles := []Role{RoleSuperAdmin, RoleAppStaff, RoleSponsor, RoleMerchant, RoleStaff}

	allowed := map[Role]map[Role]bool{
		RoleSuperAdmin: {RoleAppStaff: true, RoleSponsor: true},
		RoleAppStaff:   {RoleMerchant: true},
	}

	for _, actor := range allRoles {
		for _, target := range allRoles {
			want := allowed[actor][target]
			if got := actor.CanCreate(target); got != want {
				t.Errorf("%s.CanCreate(%s) = %v, want %v", actor, target, got, want)
			}
		}
	}
}

func TestRoleManagementScope(t *testing.T) {
	tests := []struct {
		actor  Role
		target Role
		want   bool
	}{
		{RoleSuperAdmin, RoleMerchant, true},
		{RoleSuperAdmin, RoleAppStaff, true},
		{RoleSuperAdmin, RoleSponsor, true},
		{RoleAppStaff, RoleMerchant, true},
		{RoleAppStaff, RoleAppStaff, false},
		{RoleAppStaff, RoleSponsor, false},
		{RoleAppStaff, RoleSuperAdmin, false},
		{RoleMerchant, RoleMerchant, false},
		{RoleSponsor, RoleMerchant, false},
		{RoleStaff, RoleMerchant, false},
	}

	for _, tt := range tests {
		if got := tt.actor.CanManage(tt.target); got != tt.want {
			t.Errorf("%s.CanManage(%s) = %v, want %v", tt.actor, tt.target, got, tt.want)
		}
	}
}

func TestOnlySuperAdminDeletesUsers(t *testing.T) {
	for _, role := range []Role{RoleAppStaff, RoleSponsor, RoleMerchant, RoleStaff} {
		if role.CanDeleteUsers() {
			t.Errorf("%s should not be able to delete users", role)
		}
	}
	if !RoleSuperAdmin.CanDeleteUsers() {
		t.Error("super admin should be able to delete users")
	}
}

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"SUPER_ADMIN", "APP_STAFF", "SPONSOR", "MERCHANT", "STAFF"} {
		if _, err := ParseRole(valid); err != nil {
			t.Errorf("ParseRole(%q) returned error: %v", valid, err)
		}
	}
	for _, invalid := range []string{"", "admin", "super_admin", "OWNER"} {
		if _, err := ParseRole(invalid); err == nil {
			t.Errorf("ParseRole(%q) should fail", invalid)
		}
	}
}

func TestValidStatus(t *testing.T) {
	for _, valid := range []string{"active", "inactive", "suspended"} {
		if !ValidStatus(valid) {
			t.Errorf("ValidStatus(%q) = false", valid)
		}
	}
	for _, invalid := range []string{"", "Active", "deleted", "banned"} {
		if ValidStatus(invalid) {
			t.Errorf("ValidStatus(%q) = true", invalid)
		}
	}
}
