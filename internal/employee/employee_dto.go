package employee

type CreateEmployeeRequest struct {
	EmployeeCode string `json:"employee_code" binding:"required"`
	FullName     string `json:"full_name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	CostCenter   string `json:"cost_center" binding:"required"`
}

type EmployeeResponse struct {
	ID           string `json:"id"`
	EmployeeCode string `json:"employee_code"`
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	CostCenter   string `json:"cost_center"`
	CreatedAt    string `json:"created_at"`
}
