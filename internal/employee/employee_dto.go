package employee

type EmployeeResponse struct {
	ID            string  `json:"id"`
	FullName      string  `json:"full_name"`
	Email         string  `json:"email"`
	Role          string  `json:"role"`
	ManagerID     *string `json:"manager_id,omitempty"`
	Department    string  `json:"department"`
	RemainingDays int     `json:"remaining_days"`
	TotalDays     int     `json:"total_days"`
}

func MapToResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:            e.ID.String(),
		FullName:      e.FullName,
		Email:         e.Email,
		Role:          string(e.Role),
		Department:    e.Department,
		RemainingDays: e.RemainingDays,
		TotalDays:     e.TotalDays,
	}
	if e.ManagerID != nil {
		v := e.ManagerID.String()
		resp.ManagerID = &v
	}
	return resp
}
