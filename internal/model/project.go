package model

import "time"

// Project is a row of the projects table.
type Project struct {
	ID          int
	Name        string
	Description string
	InitDate    time.Time
	FinishDate  time.Time
}
