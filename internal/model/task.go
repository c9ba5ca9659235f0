package model

import "time"

// Task is a row of the tasks table. ProjectID and EmployeeID reference
// projects and employees; Status false means pending.
type Task struct {
	ID          int
	ProjectID   int
	EmployeeID  int
	Title       string
	Description string
	Deadline    time.Time
	Status      bool
}
