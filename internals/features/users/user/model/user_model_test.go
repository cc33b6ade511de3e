package model

import (
	"testing"
	"time"

	"edutrack_backend/internals/constants"
)

func TestSetDefaultValues(t *testing.T) {
	u := UserModel{}
	u.SetDefaultValues()
	if u.Role != constants.RoleStudent {
		t.Errorf("Role = %q, want %q", u.Role, constants.RoleStudent)
	}

	u = UserModel{Role: constants.RoleTeacher}
	u.SetDefaultValues()
	if u.Role != constants.RoleTeacher {
		t.Errorf("Role = %q, explicit role must survive", u.Role)
	}
}

func TestHasValidResetOTP(t *testing.T) {
	now := time.Now()
	hash := "deadbeef"
	future := now.Add(5 * time.Minute)
	past := now.Add(-5 * time.Minute)

	cases := []struct {
		name   string
		otp    *string
		expiry *time.Time
		want   bool
	}{
		{"no otp stored", nil, nil, false},
		{"otp without expiry", &hash, nil, false},
		{"expiry without otp", nil, &future, false},
		{"valid", &hash, &future, true},
		{"expired", &hash, &past, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			u := UserModel{ResetOTP: tc.otp, ResetOTPExpiry: tc.expiry}
			if got := u.HasValidResetOTP(now); got != tc.want {
				t.Errorf("HasValidResetOTP = %v, want %v", got, tc.want)
			}
		})
	}
}
