package report

// ReportRow is one employee's attendance for one workday. Rows exist for
// every active employee on every workday in the range, including absences.
type ReportRow struct {
	EmployeeID     string  `json:"employee_id"`
	EmployeeNumber string  `json:"employee_number"`
	EmployeeName   string  `json:"employee_name"`
	Date           string  `json:"date"`
	Status         string  `json:"status"`
	WorkedHours    float64 `json:"worked_hours"`
	BreakHours     float64 `json:"break_hours"`
	OvertimeHours  float64 `json:"overtime_hours"`
	IsLate         bool    `json:"is_late"`
	IsEarlyLeave   bool    `json:"is_early_leave"`
	CheckIns       int     `json:"check_ins"`
	OnTimeCheckIns int     `json:"on_time_check_ins"`
	FirstCheckIn   *string `json:"first_check_in,omitempty"`
	LastCheckOut   *string `json:"last_check_out,omitempty"`
}

// SummaryResponse aggregates a whole company over a date range.
// Weekends are not counted as workdays.
type SummaryResponse struct {
	From            string `json:"from"`
	To              string `json:"to"`
	Workdays        int    `json:"workdays"`
	ActiveEmployees int    `json:"active_employees"`

	PresentDays    int `json:"present_days"`
	AbsentDays     int `json:"absent_days"`
	LateDays       int `json:"late_days"`
	EarlyLeaveDays int `json:"early_leave_days"`
	NoCheckOutDays int `json:"no_check_out_days"`

	TotalWorkedHours   float64 `json:"total_worked_hours"`
	TotalOvertimeHours float64 `json:"total_overtime_hours"`

	// AttendanceRate is attended employee-days over expected employee-days, in percent.
	AttendanceRate float64 `json:"attendance_rate"`
	// PunctualityRate is on-time check-ins over all check-ins, in percent.
	PunctualityRate float64 `json:"punctuality_rate"`
}
