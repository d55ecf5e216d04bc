package punch

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"sphere-timecontrol/internal/events"
	"sphere-timecontrol/internal/messaging/kafka"
	puncherrors "sphere-timecontrol/internal/punch/errors"
	"sphere-timecontrol/internal/shared/contextutil"
	"sphere-timecontrol/internal/tenant"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	// correction window for occurred_at edits
	maxFutureCorrection = 5 * time.Minute
	maxPastCorrection   = 30 * 24 * time.Hour
)

//go:generate mockgen -source=punch_service.go -destination=mock/punch_service_mock.go -package=mock
type Service interface {
	Punch(ctx context.Context, tc tenant.Context, employeeID string, kind Kind, req PunchRequest) (PunchResponse, error)
	GetStatus(ctx context.Context, tc tenant.Context, employeeID string) (StatusResponse, error)
	GetAll(ctx context.Context, tc tenant.Context, actorID string, canReadAll bool, from, to time.Time) ([]PunchResponse, error)
	Correct(ctx context.Context, tc tenant.Context, actorID string, canEditAll bool, id string, req CorrectPunchRequest) (PunchResponse, error)
	Delete(ctx context.Context, tc tenant.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, logger...)
}

func NewServiceWithOutbox(db *sql.DB, repo Repository, outboxRepo kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("punch.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("punch.service")
	}
	return &service{db: db, repo: repo, outbox: outboxRepo, logger: l}
}

func (s *service) Punch(ctx context.Context, tc tenant.Context, employeeID string, kind Kind, req PunchRequest) (PunchResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("punch requested",
		zap.String("request_id", rid),
		zap.String("company_id", tc.CompanyID),
		zap.String("employee_id", employeeID),
		zap.String("kind", string(kind)),
	)

	companyUUID, err := uuid.Parse(tc.CompanyID)
	if err != nil {
		return PunchResponse{}, puncherrors.ErrInvalidCompanyID
	}
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return PunchResponse{}, puncherrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("punch begin tx failed", zap.Error(err))
		return PunchResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	last, err := qtx.FindLatestByEmployee(ctx, tc.CompanyID, employeeID)
	if err != nil {
		s.logger.Error("punch fetch latest failed", zap.Error(err))
		return PunchResponse{}, err
	}

	if err := Sequence(last, kind); err != nil {
		s.logger.Warn("punch rejected by sequencer",
			zap.String("employee_id", employeeID),
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
		return PunchResponse{}, err
	}

	now := time.Now().UTC()
	row := &PunchEvent{
		ID:         uuid.New(),
		CompanyID:  companyUUID,
		EmployeeID: employeeUUID,
		Kind:       kind,
		OccurredAt: now,
		Notes:      req.Notes,
		Location:   req.Location,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		DeviceInfo: req.DeviceInfo,
	}

	if err := qtx.Create(ctx, row); err != nil {
		s.logger.Error("punch persist failed", zap.Error(err))
		return PunchResponse{}, err
	}

	if s.outbox != nil {
		event := events.PunchRecordedEvent{
			EventType:  "punch_recorded",
			RequestID:  rid,
			PunchID:    row.ID.String(),
			CompanyID:  tc.CompanyID,
			EmployeeID: employeeID,
			Kind:       string(kind),
			OccurredAt: now,
		}
		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("marshal punch event failed", zap.Error(err))
			return PunchResponse{}, err
		}

		if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "punch",
			AggregateID:   row.ID.String(),
			EventType:     event.EventType,
			Topic:         events.PunchRecordedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("punch outbox persist failed",
				zap.String("punch_id", row.ID.String()),
				zap.Error(err),
			)
			return PunchResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("punch commit failed", zap.Error(err))
		return PunchResponse{}, err
	}

	s.logger.Info("punch recorded",
		zap.String("request_id", rid),
		zap.String("punch_id", row.ID.String()),
		zap.String("employee_id", employeeID),
		zap.String("kind", string(kind)),
	)
	return mapToResponse(*row), nil
}

func (s *service) GetStatus(ctx context.Context, tc tenant.Context, employeeID string) (StatusResponse, error) {
	last, err := s.repo.FindLatestByEmployee(ctx, tc.CompanyID, employeeID)
	if err != nil {
		s.logger.Error("get status fetch latest failed", zap.Error(err))
		return StatusResponse{}, err
	}

	resp := StatusResponse{
		EmployeeID: employeeID,
		State:      string(CurrentState(last)),
	}
	if last != nil {
		kind := string(last.Kind)
		since := last.OccurredAt.Format(time.RFC3339)
		resp.LastKind = &kind
		resp.Since = &since
	}
	return resp, nil
}

func (s *service) GetAll(ctx context.Context, tc tenant.Context, actorID string, canReadAll bool, from, to time.Time) ([]PunchResponse, error) {
	var (
		rows []PunchEvent
		err  error
	)
	if canReadAll {
		rows, err = s.repo.FindByCompanyAndRange(ctx, tc.CompanyID, from, to, nil)
	} else {
		if _, parseErr := uuid.Parse(actorID); parseErr != nil {
			return nil, puncherrors.ErrInvalidEmployeeID
		}
		rows, err = s.repo.FindByEmployeeAndRange(ctx, tc.CompanyID, actorID, from, to)
	}
	if err != nil {
		return nil, err
	}

	res := make([]PunchResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

func (s *service) Correct(ctx context.Context, tc tenant.Context, actorID string, canEditAll bool, id string, req CorrectPunchRequest) (PunchResponse, error) {
	s.logger.Debug("correct punch requested",
		zap.String("company_id", tc.CompanyID),
		zap.String("punch_id", id),
		zap.String("actor_id", actorID),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("correct punch begin tx failed", zap.Error(err))
		return PunchResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByIDAndCompany(ctx, tc.CompanyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PunchResponse{}, puncherrors.ErrPunchNotFound
		}
		return PunchResponse{}, err
	}
	if !canEditAll && row.EmployeeID.String() != actorID {
		return PunchResponse{}, puncherrors.ErrCorrectionNotOwned
	}

	if req.OccurredAt != nil {
		occurredAt, err := time.Parse(time.RFC3339, *req.OccurredAt)
		if err != nil {
			return PunchResponse{}, puncherrors.ErrInvalidTimestamp
		}
		occurredAt = occurredAt.UTC()

		now := time.Now().UTC()
		if occurredAt.After(now.Add(maxFutureCorrection)) {
			return PunchResponse{}, puncherrors.ErrCorrectionTooFarFuture
		}
		if occurredAt.Before(now.Add(-maxPastCorrection)) {
			return PunchResponse{}, puncherrors.ErrCorrectionTooFarPast
		}
		row.OccurredAt = occurredAt
	}
	if req.Notes != nil {
		row.Notes = req.Notes
	}
	if req.Location != nil {
		row.Location = req.Location
	}

	if err := qtx.Update(ctx, row); err != nil {
		s.logger.Error("correct punch persist failed",
			zap.String("punch_id", id),
			zap.Error(err),
		)
		return PunchResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("correct punch commit failed", zap.Error(err))
		return PunchResponse{}, err
	}

	s.logger.Info("punch corrected",
		zap.String("punch_id", id),
		zap.String("actor_id", actorID),
	)
	return mapToResponse(*row), nil
}

func (s *service) Delete(ctx context.Context, tc tenant.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Delete(ctx, tc.CompanyID, id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("punch deleted",
		zap.String("company_id", tc.CompanyID),
		zap.String("punch_id", id),
	)
	return nil
}

func mapToResponse(p PunchEvent) PunchResponse {
	resp := PunchResponse{
		ID:         p.ID.String(),
		CompanyID:  p.CompanyID.String(),
		EmployeeID: p.EmployeeID.String(),
		Kind:       string(p.Kind),
		OccurredAt: p.OccurredAt.Format(time.RFC3339),
		Notes:      p.Notes,
		Location:   p.Location,
		Latitude:   p.Latitude,
		Longitude:  p.Longitude,
		DeviceInfo: p.DeviceInfo,
	}
	if p.Employee != nil {
		resp.EmployeeName = p.Employee.FirstName + " " + p.Employee.LastName
	}
	return resp
}
