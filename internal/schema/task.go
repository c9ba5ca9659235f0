package schema

import "projectdesk/internal/model"

// TaskPayload is the body accepted by create and update. Status defaults
// to false (pending) when omitted. References are int32 to match the
// INTEGER columns they point at.
type TaskPayload struct {
	ProjectID   *int32  `json:"project_id" binding:"required"`
	EmployeeID  *int32  `json:"employee_id" binding:"required"`
	Title       *string `json:"title" binding:"required"`
	Description *string `json:"description" binding:"required"`
	Deadline    *Date   `json:"deadline" binding:"required"`
	Status      *bool   `json:"status"`
}

func (p TaskPayload) Record() model.Task {
	t := model.Task{
		ProjectID:   int(*p.ProjectID),
		EmployeeID:  int(*p.EmployeeID),
		Title:       *p.Title,
		Description: *p.Description,
		Deadline:    p.Deadline.Time(),
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	return t
}

type TaskResponse struct {
	ID          int    `json:"id"`
	ProjectID   int    `json:"project_id"`
	EmployeeID  int    `json:"employee_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Deadline    Date   `json:"deadline"`
	Status      bool   `json:"status"`
}

func NewTaskResponse(t *model.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		ProjectID:   t.ProjectID,
		EmployeeID:  t.EmployeeID,
		Title:       t.Title,
		Description: t.Description,
		Deadline:    NewDate(t.Deadline),
		Status:      t.Status,
	}
}

func NewTaskList(tasks []model.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, NewTaskResponse(&tasks[i]))
	}
	return out
}
