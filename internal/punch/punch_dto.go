package punch

type PunchRequest struct {
	Notes      *string  `json:"notes"`
	Location   *string  `json:"location"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
	DeviceInfo *string  `json:"device_info"`
}

type CorrectPunchRequest struct {
	OccurredAt *string `json:"occurred_at"`
	Notes      *string `json:"notes"`
	Location   *string `json:"location"`
}

type PunchResponse struct {
	ID           string   `json:"id"`
	CompanyID    string   `json:"company_id"`
	EmployeeID   string   `json:"employee_id"`
	EmployeeName string   `json:"employee_name,omitempty"`
	Kind         string   `json:"kind"`
	OccurredAt   string   `json:"occurred_at"`
	Notes        *string  `json:"notes,omitempty"`
	Location     *string  `json:"location,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	DeviceInfo   *string  `json:"device_info,omitempty"`
}

type StatusResponse struct {
	EmployeeID string  `json:"employee_id"`
	State      string  `json:"state"`
	LastKind   *string `json:"last_kind,omitempty"`
	Since      *string `json:"since,omitempty"`
}
