package company

type CreateCompanyRequest struct {
	Name      string `json:"name" binding:"required,min=2,max=150"`
	Subdomain string `json:"subdomain" binding:"required,min=3,max=63"`
	Email     string `json:"email" binding:"omitempty,email"`
}

type UpdateCompanyRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"omitempty,email"`
	IsActive *bool  `json:"is_active"`
}

type CompanyResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Subdomain string `json:"subdomain"`
	Email     string `json:"email"`
	IsActive  bool   `json:"is_active"`
}
