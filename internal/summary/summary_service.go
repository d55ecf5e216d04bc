package summary

import (
	"context"
	"time"

	"sphere-timecontrol/internal/events"
	"sphere-timecontrol/internal/punch"
	puncherrors "sphere-timecontrol/internal/punch/errors"
	"sphere-timecontrol/internal/tenant"
	"sphere-timecontrol/internal/timesheet"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=summary_service.go -destination=mock/summary_service_mock.go -package=mock
type Service interface {
	// Apply reprojects one employee-day from raw events. Idempotent, so
	// redelivered messages are safe.
	Apply(ctx context.Context, evt events.PunchRecordedEvent) error
	GetAll(ctx context.Context, tc tenant.Context, actorID string, canReadAll bool, from, to time.Time) ([]DailySummaryResponse, error)
}

type service struct {
	repo    Repository
	punches punch.Repository
	cfg     timesheet.Config
	logger  *zap.Logger
}

func NewService(repo Repository, punches punch.Repository, cfg timesheet.Config, logger ...*zap.Logger) Service {
	l := zap.L().Named("summary.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("summary.service")
	}
	return &service{
		repo:    repo,
		punches: punches,
		cfg:     cfg,
		logger:  l,
	}
}

func (s *service) Apply(ctx context.Context, evt events.PunchRecordedEvent) error {
	companyUUID, err := uuid.Parse(evt.CompanyID)
	if err != nil {
		return puncherrors.ErrInvalidCompanyID
	}
	employeeUUID, err := uuid.Parse(evt.EmployeeID)
	if err != nil {
		return puncherrors.ErrInvalidEmployeeID
	}

	dayStart := evt.OccurredAt.UTC().Truncate(24 * time.Hour)
	date := dayStart.Format("2006-01-02")

	dayEvents, err := s.punches.FindByEmployeeAndRange(ctx, evt.CompanyID, evt.EmployeeID, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		s.logger.Error("summary load day events failed",
			zap.String("employee_id", evt.EmployeeID),
			zap.String("date", date),
			zap.Error(err),
		)
		return err
	}

	sum := timesheet.DaySummary(evt.EmployeeID, date, dayEvents, s.cfg)

	row := &DailySummary{
		ID:              uuid.New(),
		CompanyID:       companyUUID,
		EmployeeID:      employeeUUID,
		Date:            date,
		Status:          string(sum.Status),
		WorkedMinutes:   int(sum.Totals.Worked.Minutes()),
		BreakMinutes:    int(sum.Totals.Break.Minutes()),
		OvertimeMinutes: int(sum.Overtime.Minutes()),
		IsLate:          sum.IsLate,
		IsEarlyLeave:    sum.IsEarlyLeave,
		FirstCheckIn:    sum.FirstCheckIn,
		LastCheckOut:    sum.LastCheckOut,
	}
	if err := s.repo.Upsert(ctx, row); err != nil {
		s.logger.Error("summary upsert failed",
			zap.String("employee_id", evt.EmployeeID),
			zap.String("date", date),
			zap.Error(err),
		)
		return err
	}

	s.logger.Debug("summary projected",
		zap.String("employee_id", evt.EmployeeID),
		zap.String("date", date),
		zap.String("status", row.Status),
	)
	return nil
}

func (s *service) GetAll(ctx context.Context, tc tenant.Context, actorID string, canReadAll bool, from, to time.Time) ([]DailySummaryResponse, error) {
	fromDate := from.UTC().Format("2006-01-02")
	toDate := to.UTC().Format("2006-01-02")

	var rows []DailySummary
	var err error
	if canReadAll {
		rows, err = s.repo.FindByCompanyAndRange(ctx, tc.CompanyID, fromDate, toDate)
	} else {
		if _, parseErr := uuid.Parse(actorID); parseErr != nil {
			return nil, puncherrors.ErrInvalidEmployeeID
		}
		rows, err = s.repo.FindByEmployeeAndRange(ctx, tc.CompanyID, actorID, fromDate, toDate)
	}
	if err != nil {
		s.logger.Error("get summaries failed", zap.Error(err))
		return nil, err
	}

	resp := make([]DailySummaryResponse, len(rows))
	for i, row := range rows {
		resp[i] = mapToResponse(row)
	}
	return resp, nil
}

func mapToResponse(row DailySummary) DailySummaryResponse {
	resp := DailySummaryResponse{
		EmployeeID:      row.EmployeeID.String(),
		Date:            row.Date,
		Status:          row.Status,
		WorkedMinutes:   row.WorkedMinutes,
		BreakMinutes:    row.BreakMinutes,
		OvertimeMinutes: row.OvertimeMinutes,
		IsLate:          row.IsLate,
		IsEarlyLeave:    row.IsEarlyLeave,
	}
	if row.FirstCheckIn != nil {
		v := row.FirstCheckIn.UTC().Format(time.RFC3339)
		resp.FirstCheckIn = &v
	}
	if row.LastCheckOut != nil {
		v := row.LastCheckOut.UTC().Format(time.RFC3339)
		resp.LastCheckOut = &v
	}
	return resp
}
