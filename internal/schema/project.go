package schema

import "projectdesk/internal/model"

// ProjectPayload is the body accepted by create and update.
type ProjectPayload struct {
	Name        *string `json:"name" binding:"required,max=50"`
	Description *string `json:"description" binding:"required,max=50"`
	InitDate    *Date   `json:"init_date" binding:"required"`
	FinishDate  *Date   `json:"finish_date" binding:"required"`
}

// Record maps a validated payload onto a storage record without an id.
func (p ProjectPayload) Record() model.Project {
	return model.Project{
		Name:        *p.Name,
		Description: *p.Description,
		InitDate:    p.InitDate.Time(),
		FinishDate:  p.FinishDate.Time(),
	}
}

type ProjectResponse struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	InitDate    Date   `json:"init_date"`
	FinishDate  Date   `json:"finish_date"`
}

func NewProjectResponse(p *model.Project) ProjectResponse {
	return ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		InitDate:    NewDate(p.InitDate),
		FinishDate:  NewDate(p.FinishDate),
	}
}

func NewProjectList(projects []model.Project) []ProjectResponse {
	out := make([]ProjectResponse, 0, len(projects))
	for i := range projects {
		out = append(out, NewProjectResponse(&projects[i]))
	}
	return out
}
