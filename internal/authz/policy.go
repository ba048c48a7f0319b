// Package authz is the pure authorization policy: given an actor, an
// action and the resource's ownership facts it answers permit or deny.
// It performs no I/O; callers load whatever rows the decision needs.
package authz

type Role string

const (
	RoleStudent    Role = "student"
	RoleInstructor Role = "instructor"
)

// ParseRole maps a stored role string onto the closed Role set.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleStudent:
		return RoleStudent, true
	case RoleInstructor:
		return RoleInstructor, true
	default:
		return "", false
	}
}

type Action int

const (
	ActionCreateCourse Action = iota
	ActionEnrollInCourse
	ActionReadCourse
	ActionReadLiveSessions
	ActionUpdateEnrollmentProgress
	ActionUpdateEnrollmentGrade
)

type Actor struct {
	ID   int64
	Role Role
}

// Resource carries only the ownership facts a rule can depend on. Zero
// values are fine for actions that do not inspect them.
type Resource struct {
	EnrollmentUserID   int64
	CourseInstructorID int64
}

// Decide returns true when the actor may perform the action on the
// resource. Every action must be listed here; an unknown action or role
// is always denied.
func Decide(actor Actor, action Action, res Resource) bool {
	switch action {
	case ActionCreateCourse:
		return actor.Role == RoleInstructor
	case ActionEnrollInCourse:
		return actor.Role == RoleStudent
	case ActionReadCourse, ActionReadLiveSessions:
		return actor.Role == RoleStudent || actor.Role == RoleInstructor
	case ActionUpdateEnrollmentProgress:
		return actor.Role == RoleStudent && actor.ID == res.EnrollmentUserID
	case ActionUpdateEnrollmentGrade:
		return actor.Role == RoleInstructor && actor.ID == res.CourseInstructorID
	default:
		return false
	}
}
