package constants

// Closed role set. Every role comparison in the codebase goes through
// these constants, never through ad hoc strings.
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
)

var validRoles = map[string]struct{}{
	RoleStudent: {},
	RoleTeacher: {},
}

func IsValidRole(role string) bool {
	_, ok := validRoles[role]
	return ok
}

// Forbidden-message templates used by the role gate.
const (
	ErrOnlyTeachersCanAccess = "Only teachers can access this resource"
	ErrOnlyStudentsCanAccess = "Only students can access this resource"
)
