package schema

import "projectdesk/internal/model"

// EmployeePayload is the body accepted by create and full update.
type EmployeePayload struct {
	Name  *string `json:"name" binding:"required,max=50"`
	Email *string `json:"email" binding:"required,max=50"`
	Phone *string `json:"phone" binding:"required,max=50"`
	Post  *string `json:"post" binding:"required,max=50"`
}

func (p EmployeePayload) Record() model.Employee {
	return model.Employee{
		Name:  *p.Name,
		Email: *p.Email,
		Phone: *p.Phone,
		Post:  *p.Post,
	}
}

// EmployeePatch is the body of a partial update. Absent fields keep their
// stored value.
type EmployeePatch struct {
	Name  *string `json:"name" binding:"omitempty,max=50"`
	Email *string `json:"email" binding:"omitempty,max=50"`
	Phone *string `json:"phone" binding:"omitempty,max=50"`
	Post  *string `json:"post" binding:"omitempty,max=50"`
}

// Apply merges the provided fields over e.
func (p EmployeePatch) Apply(e *model.Employee) {
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.Email != nil {
		e.Email = *p.Email
	}
	if p.Phone != nil {
		e.Phone = *p.Phone
	}
	if p.Post != nil {
		e.Post = *p.Post
	}
}

type EmployeeResponse struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Post  string `json:"post"`
}

func NewEmployeeResponse(e *model.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:    e.ID,
		Name:  e.Name,
		Email: e.Email,
		Phone: e.Phone,
		Post:  e.Post,
	}
}

func NewEmployeeList(employees []model.Employee) []EmployeeResponse {
	out := make([]EmployeeResponse, 0, len(employees))
	for i := range employees {
		out = append(out, NewEmployeeResponse(&employees[i]))
	}
	return out
}
