package user

import (
	"errors"
	"testing"
)

func TestParseRole(t *testing.T) {
	if _, err := ParseRole("superadmin"); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
	r, err := ParseRole("super_admin")
	if err != nil || !r.IsAdmin() {
		t.Fatalf("expected super_admin to be an admin role, got %q %v", r, err)
	}
	if RoleManager.IsAdmin() {
		t.Fatal("manager must not reach the back office")
	}
}

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusApproved, true},
		{StatusPending, StatusRejected, true},
		{StatusApproved, StatusApproved, true},
		{StatusApproved, StatusPending, false},
		{StatusRejected, StatusApproved, false},
		{StatusApproved, StatusRejected, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("%s -> %s: got %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestSetStatusSyncsValidated(t *testing.T) {
	u := &User{Status: StatusPending}
	u.SetStatus(StatusApproved)
	if !u.Validated {
		t.Fatal("approved user must be validated")
	}
	u.SetStatus(StatusRejected)
	if u.Validated {
		t.Fatal("rejected user must not be validated")
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Anna.Keller@Example.CH "); got != "anna.keller@example.ch" {
		t.Fatalf("unexpected normalized email %q", got)
	}
}
