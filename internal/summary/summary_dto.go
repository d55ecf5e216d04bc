package summary

type DailySummaryResponse struct {
	EmployeeID      string  `json:"employee_id"`
	Date            string  `json:"date"`
	Status          string  `json:"status"`
	WorkedMinutes   int     `json:"worked_minutes"`
	BreakMinutes    int     `json:"break_minutes"`
	OvertimeMinutes int     `json:"overtime_minutes"`
	IsLate          bool    `json:"is_late"`
	IsEarlyLeave    bool    `json:"is_early_leave"`
	FirstCheckIn    *string `json:"first_check_in,omitempty"`
	LastCheckOut    *string `json:"last_check_out,omitempty"`
}
