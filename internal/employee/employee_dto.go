package employee

type CreateEmployeeRequest struct {
	FirstName      string  `json:"first_name" binding:"required"`
	LastName       string  `json:"last_name" binding:"required"`
	Email          string  `json:"email" binding:"required,email"`
	Phone          *string `json:"phone"`
	DepartmentID   string  `json:"department_id" binding:"omitempty,uuid"`
	EmployeeNumber string  `json:"employee_number"`
	HireDate       string  `json:"hire_date" binding:"required"`
}

type UpdateEmployeeRequest struct {
	FirstName        string  `json:"first_name" binding:"required"`
	LastName         string  `json:"last_name" binding:"required"`
	Email            string  `json:"email" binding:"required,email"`
	Phone            *string `json:"phone"`
	DepartmentID     string  `json:"department_id" binding:"omitempty,uuid"`
	EmploymentStatus string  `json:"employment_status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
}

type EmployeeResponse struct {
	ID               string  `json:"id"`
	CompanyID        string  `json:"company_id"`
	DepartmentID     string  `json:"department_id,omitempty"`
	EmployeeNumber   string  `json:"employee_number"`
	FirstName        string  `json:"first_name"`
	LastName         string  `json:"last_name"`
	Email            string  `json:"email"`
	Phone            *string `json:"phone,omitempty"`
	HireDate         string  `json:"hire_date"`
	EmploymentStatus string  `json:"employment_status"`
}
