package helper

import (
	"errors"
	"fmt"
	"testing"
)

// fakePgError mimics the driver error shape.
type fakePgError struct {
	code string
}

func (e *fakePgError) SQLState() string { return e.code }
func (e *fakePgError) Error() string    { return "SQLSTATE " + e.code }

func TestIsDuplicateKey(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"pg unique violation", &fakePgError{code: "23505"}, true},
		{"pg other code", &fakePgError{code: "23503"}, false},
		{"wrapped pg error", fmt.Errorf("insert: %w", &fakePgError{code: "23505"}), true},
		{"message sniff duplicate key", errors.New(`ERROR: duplicate key value violates unique constraint "users_email_key"`), true},
		{"message sniff sqlstate", errors.New("driver: SQLSTATE 23505"), true},
		{"unrelated error", errors.New("connection refused"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsDuplicateKey(tc.err); got != tc.want {
				t.Errorf("IsDuplicateKey(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	if !IsForeignKeyViolation(&fakePgError{code: "23503"}) {
		t.Error("23503 not detected")
	}
	if IsForeignKeyViolation(&fakePgError{code: "23505"}) {
		t.Error("23505 reported as foreign key violation")
	}
	if IsForeignKeyViolation(nil) {
		t.Error("nil reported as foreign key violation")
	}
}
