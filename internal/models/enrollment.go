package models

import "time"

// Enrollment tracks one student's standing in one course. Progress moves
// from 0 to 100 and never decreases; Grade stays nil until the owning
// instructor assigns one.
type Enrollment struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	CourseID  int64     `json:"course_id"`
	Progress  int       `json:"progress"`
	Grade     *int      `json:"grade"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
