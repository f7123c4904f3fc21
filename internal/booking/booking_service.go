package booking

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	bookingerrors "github.com/AndreiCindea/workflow-service/internal/booking/errors"
	"github.com/AndreiCindea/workflow-service/internal/employee"
	"github.com/AndreiCindea/workflow-service/internal/events"
	"github.com/AndreiCindea/workflow-service/internal/messaging/kafka"
	"github.com/AndreiCindea/workflow-service/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EmployeeDirectory is the slice of the employee module this service needs:
// resolving a business code to the stored employee record.
type EmployeeDirectory interface {
	ResolveByCode(ctx context.Context, code string) (*employee.Employee, error)
}

//go:generate mockgen -source=booking_service.go -destination=mock/booking_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateBookingRequest) (BookingResponse, error)
	GetByID(ctx context.Context, id string) (BookingResponse, error)
	GetAllByEmployeeCode(ctx context.Context, code string) ([]BookingResponse, error)
	GetAll(ctx context.Context) ([]BookingResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	directory EmployeeDirectory
	outbox    kafka.OutboxRepository
	logger    *zap.Logger
}

func NewService(db *sql.DB, repo Repository, directory EmployeeDirectory, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, directory, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	directory EmployeeDirectory,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("booking.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("booking.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		directory: directory,
		outbox:    outboxRepo,
		logger:    l,
	}
}

// Create runs the booking workflow: validate the request shape, resolve the
// owning employee, persist with the initial status. The order is fixed;
// each step assumes the previous one succeeded.
func (s *service) Create(
	ctx context.Context,
	req CreateBookingRequest,
) (BookingResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	logger := contextutil.GetLogger(ctx, s.logger)
	logger.Debug("create booking requested",
		zap.String("request_id", rid),
		zap.String("employee_code", req.EmployeeCode),
		zap.String("resource_type", req.ResourceType),
		zap.String("destination", req.Destination),
	)

	departure, ret, err := validateCreateRequest(req)
	if err != nil {
		logger.Warn("create booking validation failed",
			zap.String("request_id", rid),
			zap.Error(err),
		)
		return BookingResponse{}, err
	}

	empl, err := s.directory.ResolveByCode(ctx, req.EmployeeCode)
	if err != nil {
		logger.Warn("create booking employee resolution failed",
			zap.String("request_id", rid),
			zap.String("employee_code", req.EmployeeCode),
			zap.Error(err),
		)
		return BookingResponse{}, err
	}

	b := &Booking{
		ID:            uuid.New(),
		EmployeeID:    empl.ID,
		ResourceType:  NormalizeResourceType(req.ResourceType),
		Destination:   req.Destination,
		DepartureDate: departure,
		ReturnDate:    ret,
		TravelerCount: req.TravelerCount,
		CostCenterRef: req.CostCenterRef,
		TripPurpose:   req.TripPurpose,
		Status:        StatusCreated,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("create booking begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return BookingResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, b); err != nil {
		logger.Error("create booking persist failed", zap.Error(err))
		return BookingResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		event := events.BookingCreatedEvent{
			EventType:    "booking_created",
			RequestID:    rid,
			BookingID:    b.ID.String(),
			EmployeeCode: empl.EmployeeCode,
			ResourceType: string(b.ResourceType),
			Destination:  b.Destination,
			OccurredAt:   time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			logger.Error("marshal event failed", zap.String("request_id", rid), zap.Error(err))
			return BookingResponse{}, err
		}

		outboxRepo := s.outbox.WithTx(tx)
		if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "booking",
			AggregateID:   b.ID.String(),
			EventType:     event.EventType,
			Topic:         events.BookingCreatedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			logger.Error("create booking outbox persist failed",
				zap.String("booking_id", b.ID.String()),
				zap.Error(err),
			)
			return BookingResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		logger.Error("create booking commit failed", zap.String("request_id", rid), zap.Error(err))
		return BookingResponse{}, err
	}

	// The freshly created row was written without its association loaded.
	b.Employee = &EmployeeRef{
		ID:           empl.ID,
		EmployeeCode: empl.EmployeeCode,
		FullName:     empl.FullName,
	}

	logger.Info("create booking success",
		zap.String("request_id", rid),
		zap.String("booking_id", b.ID.String()),
		zap.String("employee_code", empl.EmployeeCode),
	)

	return mapToResponse(*b), nil
}

func (s *service) GetByID(ctx context.Context, id string) (BookingResponse, error) {
	s.logger.Debug("get booking by id requested", zap.String("booking_id", id))

	// A malformed id can never name a booking; reject it before it reaches
	// the store as a failed uuid cast.
	if _, err := uuid.Parse(id); err != nil {
		return BookingResponse{}, bookingerrors.ErrBookingNotFound
	}

	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Warn("get booking by id failed", zap.String("booking_id", id), zap.Error(err))
		return BookingResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*b), nil
}

func (s *service) GetAllByEmployeeCode(ctx context.Context, code string) ([]BookingResponse, error) {
	s.logger.Debug("get bookings by employee requested", zap.String("employee_code", code))

	// Resolve first so an unknown code is a not-found, not an empty list.
	empl, err := s.directory.ResolveByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	bookings, err := s.repo.FindAllByEmployee(ctx, empl.ID.String())
	if err != nil {
		s.logger.Error("get bookings by employee failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(bookings), nil
}

func (s *service) GetAll(ctx context.Context) ([]BookingResponse, error) {
	s.logger.Debug("get all bookings requested")
	bookings, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all bookings failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(bookings), nil
}

func mapToResponse(b Booking) BookingResponse {
	resp := BookingResponse{
		ID:            b.ID.String(),
		EmployeeID:    b.EmployeeID.String(),
		ResourceType:  string(b.ResourceType),
		Destination:   b.Destination,
		DepartureDate: b.DepartureDate.UTC().Format(time.RFC3339),
		ReturnDate:    b.ReturnDate.UTC().Format(time.RFC3339),
		TravelerCount: b.TravelerCount,
		CostCenterRef: b.CostCenterRef,
		TripPurpose:   b.TripPurpose,
		Status:        string(b.Status),
		CreatedAt:     b.CreatedAt.UTC().Format(time.RFC3339),
	}
	if b.Employee != nil {
		resp.EmployeeCode = b.Employee.EmployeeCode
		resp.EmployeeName = b.Employee.FullName
	}
	return resp
}

func mapToListResponse(bookings []Booking) []BookingResponse {
	res := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		res[i] = mapToResponse(b)
	}
	return res
}
