package model

// Employee is a row of the employees table.
type Employee struct {
	ID    int
	Name  string
	Email string
	Phone string
	Post  string
}
