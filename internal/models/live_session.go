package models

import "time"

// LiveSession is read-only here; the join URL points at an external
// meeting provider.
type LiveSession struct {
	ID       int64     `json:"id"`
	CourseID int64     `json:"course_id"`
	Date     time.Time `json:"date"`
	JoinURL  string    `json:"join_url"`
}
