package password

import (
	"errors"
	"testing"
)

func TestCheck(t *testing.T) {
	cases := []struct {
		name     string
		password string
		confirm  string
		want     error
	}{
		{"too short", "12345", "12345", ErrTooShort},
		{"mismatch", "123456", "123457", ErrMismatch},
		{"ok", "123456", "123456", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := Check(tc.password, tc.confirm); !errors.Is(err, tc.want) {
				t.Fatalf("Check() = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("cadastre")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !Verify("cadastre", hash) {
		t.Fatal("expected password to verify")
	}
	if Verify("other", hash) {
		t.Fatal("expected wrong password to fail")
	}
}
