package domain

import "testing"

func TestReservationStatusValid(t *testing.T) {
	for _, status := range []ReservationStatus{
		ReservationStatusPending, ReservationStatusConfirmed, ReservationStatusRejected,
	} {
		if !status.Valid() {
			t.Errorf("%q must be valid", status)
		}
	}
	for _, status := range []ReservationStatus{"", "Cancelled", "pending", "CONFIRMED"} {
		if status.Valid() {
			t.Errorf("%q must be rejected", status)
		}
	}
}

func TestUserRoleStaffMembership(t *testing.T) {
	staff := []UserRole{RoleAdministrator, RoleSupervisor, RoleEmployee}
	for _, role := range staff {
		if !role.IsStaff() {
			t.Errorf("%q must count as staff", role)
		}
	}
	if RoleClient.IsStaff() {
		t.Error("CLIENT must never count as staff")
	}
	if UserRole("WIZARD").Valid() {
		t.Error("unknown role must be invalid")
	}
}

func TestUserRoleDisplayName(t *testing.T) {
	cases := map[UserRole]string{
		RoleAdministrator: "Administrator",
		RoleEmployee:      "Employee",
		RoleSupervisor:    "Supervisor",
		RoleClient:        "Client",
	}
	for role, want := range cases {
		if got := role.DisplayName(); got != want {
			t.Errorf("DisplayName(%q) = %q, want %q", role, got, want)
		}
	}
}
