package leave

type CreateLeaveRequest struct {
	Type      string `json:"type" binding:"required,oneof=vacation sick personal maternity other"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Reason    string `json:"reason" binding:"required"`
}

type DecideLeaveRequest struct {
	Comments string `json:"comments"`
}

type LeaveResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	Type         string  `json:"type"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	Days         int     `json:"days"`
	Reason       string  `json:"reason"`
	Status       string  `json:"status"`
	RequestDate  string  `json:"request_date"`
	ReviewedBy   *string `json:"reviewed_by,omitempty"`
	ReviewDate   *string `json:"review_date,omitempty"`
	Comments     *string `json:"comments,omitempty"`
}

// CreateLeaveResponse carries the balance projection alongside the stored
// request so callers can flag over-budget submissions before a decision.
type CreateLeaveResponse struct {
	LeaveResponse
	ProjectedRemaining int `json:"projected_remaining"`
}

type DashboardStats struct {
	TotalRequests    int `json:"total_requests"`
	PendingRequests  int `json:"pending_requests"`
	ApprovedRequests int `json:"approved_requests"`
	RejectedRequests int `json:"rejected_requests"`
	RemainingDays    int `json:"remaining_days"`
}

const dateLayout = "2006-01-02"

func mapToResponse(l LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:           l.ID.String(),
		EmployeeID:   l.EmployeeID.String(),
		EmployeeName: l.EmployeeName,
		Type:         string(l.Category),
		StartDate:    l.StartDate.Format(dateLayout),
		EndDate:      l.EndDate.Format(dateLayout),
		Days:         l.Days,
		Reason:       l.Reason,
		Status:       string(l.Status),
		RequestDate:  l.RequestDate.Format(dateLayout),
	}
	resp.ReviewedBy = l.ReviewedBy
	if l.ReviewedAt != nil {
		v := l.ReviewedAt.Format(dateLayout)
		resp.ReviewDate = &v
	}
	resp.Comments = l.Comments
	return resp
}

func mapToListResponse(requests []LeaveRequest) []LeaveResponse {
	resp := make([]LeaveResponse, len(requests))
	for i, l := range requests {
		resp[i] = mapToResponse(l)
	}
	return resp
}
