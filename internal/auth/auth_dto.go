package auth

import "github.com/Niriantsoa01/absence-tracker-intranet-flow/internal/employee"

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken string                    `json:"access_token"`
	Employee    employee.EmployeeResponse `json:"employee"`
}
