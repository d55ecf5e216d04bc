package report

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"sphere-timecontrol/internal/employee"
	"sphere-timecontrol/internal/punch"
	reporterrors "sphere-timecontrol/internal/report/errors"
	"sphere-timecontrol/internal/shared/contextutil"
	"sphere-timecontrol/internal/tenant"
	"sphere-timecontrol/internal/timesheet"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	// maxRangeDays mencegah satu request menarik data terlalu banyak sekaligus.
	maxRangeDays = 92

	summaryCacheTTL       = 10 * time.Minute
	SummaryCacheKeyPrefix = "reports:summary:"
)

func GetSummaryCacheKey(companyID string, from, to time.Time) string {
	return fmt.Sprintf("%s%s:%s:%s",
		SummaryCacheKeyPrefix,
		companyID,
		from.Format("2006-01-02"),
		to.Format("2006-01-02"),
	)
}

//go:generate mockgen -source=report_service.go -destination=mock/report_service_mock.go -package=mock
type Service interface {
	Daily(ctx context.Context, tc tenant.Context, date time.Time, employeeIDs, departmentIDs []string) ([]ReportRow, error)
	Range(ctx context.Context, tc tenant.Context, from, to time.Time, employeeIDs, departmentIDs []string) ([]ReportRow, error)
	Summary(ctx context.Context, tc tenant.Context, from, to time.Time) (SummaryResponse, error)
}

type service struct {
	punches   punch.Repository
	employees employee.Repository
	cfg       timesheet.Config
	rdb       *redis.Client
	sf        *singleflight.Group
	logger    *zap.Logger
}

func NewService(punches punch.Repository, employees employee.Repository, cfg timesheet.Config, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("report.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.service")
	}
	return &service{
		punches:   punches,
		employees: employees,
		cfg:       cfg,
		rdb:       rdb,
		sf:        &singleflight.Group{},
		logger:    l,
	}
}

func (s *service) Daily(ctx context.Context, tc tenant.Context, date time.Time, employeeIDs, departmentIDs []string) ([]ReportRow, error) {
	day := date.UTC().Truncate(24 * time.Hour)
	return s.Range(ctx, tc, day, day, employeeIDs, departmentIDs)
}

func (s *service) Range(ctx context.Context, tc tenant.Context, from, to time.Time, employeeIDs, departmentIDs []string) ([]ReportRow, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("attendance report requested",
		zap.String("request_id", rid),
		zap.String("company_id", tc.CompanyID),
		zap.Time("from", from),
		zap.Time("to", to),
	)

	if err := validateRange(tc, from, to); err != nil {
		return nil, err
	}

	rows, err := s.buildRows(ctx, tc, from, to, employeeIDs, departmentIDs)
	if err != nil {
		return nil, err
	}

	s.logger.Info("attendance report built",
		zap.String("request_id", rid),
		zap.Int("rows", len(rows)),
	)
	return rows, nil
}

func (s *service) Summary(ctx context.Context, tc tenant.Context, from, to time.Time) (SummaryResponse, error) {
	if err := validateRange(tc, from, to); err != nil {
		return SummaryResponse{}, err
	}

	cacheKey := GetSummaryCacheKey(tc.CompanyID, from, to)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp SummaryResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// singleflight collapses concurrent summary builds per company and range
	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		rows, err := s.buildRows(ctx, tc, from, to, nil, nil)
		if err != nil {
			return nil, err
		}

		resp := summarize(rows, from, to)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, summaryCacheTTL)
			}
		}
		return resp, nil
	})
	if err != nil {
		return SummaryResponse{}, err
	}
	return v.(SummaryResponse), nil
}

// buildRows produces one row per active employee per workday, absences
// included. Order follows the employee repository (surname, first name),
// then date.
func (s *service) buildRows(ctx context.Context, tc tenant.Context, from, to time.Time, employeeIDs, departmentIDs []string) ([]ReportRow, error) {
	staff, err := s.employees.FindActiveByCompany(ctx, tc.CompanyID, departmentIDs)
	if err != nil {
		s.logger.Error("report load employees failed", zap.Error(err))
		return nil, err
	}
	staff = filterStaff(staff, employeeIDs)

	// rentang query eksklusif di sisi kanan
	events, err := s.punches.FindByCompanyAndRange(ctx, tc.CompanyID, from, to.AddDate(0, 0, 1), employeeIDs)
	if err != nil {
		s.logger.Error("report load punches failed", zap.Error(err))
		return nil, err
	}

	byEmployeeDay := make(map[string]map[string][]punch.PunchEvent)
	for _, e := range events {
		empID := e.EmployeeID.String()
		day := e.OccurredAt.UTC().Format("2006-01-02")
		if byEmployeeDay[empID] == nil {
			byEmployeeDay[empID] = make(map[string][]punch.PunchEvent)
		}
		byEmployeeDay[empID][day] = append(byEmployeeDay[empID][day], e)
	}

	days := workdays(from, to)
	rows := make([]ReportRow, 0, len(staff)*len(days))
	for _, emp := range staff {
		empID := emp.ID.String()
		for _, day := range days {
			sum := timesheet.DaySummary(empID, day, byEmployeeDay[empID][day], s.cfg)
			rows = append(rows, mapToRow(emp, sum))
		}
	}
	return rows, nil
}

func validateRange(tc tenant.Context, from, to time.Time) error {
	if _, err := uuid.Parse(tc.CompanyID); err != nil {
		return reporterrors.ErrInvalidCompanyID
	}
	if from.After(to) {
		return reporterrors.ErrInvalidDateRange
	}
	if to.Sub(from) > maxRangeDays*24*time.Hour {
		return reporterrors.ErrRangeTooWide
	}
	return nil
}

func filterStaff(staff []employee.Employee, employeeIDs []string) []employee.Employee {
	if len(employeeIDs) == 0 {
		return staff
	}
	wanted := make(map[string]struct{}, len(employeeIDs))
	for _, id := range employeeIDs {
		wanted[id] = struct{}{}
	}
	filtered := staff[:0]
	for _, emp := range staff {
		if _, ok := wanted[emp.ID.String()]; ok {
			filtered = append(filtered, emp)
		}
	}
	return filtered
}

// workdays lists the YYYY-MM-DD dates in [from, to] that fall on Mon-Fri.
func workdays(from, to time.Time) []string {
	var days []string
	for d := from.UTC().Truncate(24 * time.Hour); !d.After(to); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		days = append(days, d.Format("2006-01-02"))
	}
	return days
}

func summarize(rows []ReportRow, from, to time.Time) SummaryResponse {
	resp := SummaryResponse{
		From:     from.Format("2006-01-02"),
		To:       to.Format("2006-01-02"),
		Workdays: len(workdays(from, to)),
	}

	seen := make(map[string]struct{})
	var attended, checkIns, onTime int
	for _, row := range rows {
		seen[row.EmployeeID] = struct{}{}

		switch row.Status {
		case string(timesheet.StatusAbsent):
			resp.AbsentDays++
			continue
		case string(timesheet.StatusNoCheckOut):
			resp.NoCheckOutDays++
		case string(timesheet.StatusPresent):
			resp.PresentDays++
		}

		if row.FirstCheckIn != nil {
			attended++
		}
		checkIns += row.CheckIns
		onTime += row.OnTimeCheckIns
		if row.IsLate {
			resp.LateDays++
		}
		if row.IsEarlyLeave {
			resp.EarlyLeaveDays++
		}
		resp.TotalWorkedHours += row.WorkedHours
		resp.TotalOvertimeHours += row.OvertimeHours
	}

	resp.ActiveEmployees = len(seen)
	if expected := resp.Workdays * resp.ActiveEmployees; expected > 0 {
		resp.AttendanceRate = roundRate(float64(attended) / float64(expected) * 100)
	}
	// every check-in is judged against the cutoff, not just the day's first
	if checkIns > 0 {
		resp.PunctualityRate = roundRate(float64(onTime) / float64(checkIns) * 100)
	}
	resp.TotalWorkedHours = roundRate(resp.TotalWorkedHours)
	resp.TotalOvertimeHours = roundRate(resp.TotalOvertimeHours)
	return resp
}

func roundRate(v float64) float64 {
	return math.Round(v*100) / 100
}

func mapToRow(emp employee.Employee, sum timesheet.Summary) ReportRow {
	row := ReportRow{
		EmployeeID:     sum.EmployeeID,
		EmployeeNumber: emp.EmployeeNumber,
		EmployeeName:   emp.FullName(),
		Date:           sum.Date,
		Status:         string(sum.Status),
		WorkedHours:    roundRate(sum.Totals.Worked.Hours()),
		BreakHours:     roundRate(sum.Totals.Break.Hours()),
		OvertimeHours:  roundRate(sum.Overtime.Hours()),
		IsLate:         sum.IsLate,
		IsEarlyLeave:   sum.IsEarlyLeave,
		CheckIns:       sum.CheckIns,
		OnTimeCheckIns: sum.OnTimeCheckIns,
	}
	if sum.FirstCheckIn != nil {
		v := sum.FirstCheckIn.UTC().Format(time.RFC3339)
		row.FirstCheckIn = &v
	}
	if sum.LastCheckOut != nil {
		v := sum.LastCheckOut.UTC().Format(time.RFC3339)
		row.LastCheckOut = &v
	}
	return row
}
