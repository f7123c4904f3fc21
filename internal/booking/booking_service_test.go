package booking_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/AndreiCindea/workflow-service/internal/booking"
	bookingerrors "github.com/AndreiCindea/workflow-service/internal/booking/errors"
	"github.com/AndreiCindea/workflow-service/internal/employee"
	employeeerrors "github.com/AndreiCindea/workflow-service/internal/employee/errors"
	"github.com/AndreiCindea/workflow-service/internal/events"
	"github.com/AndreiCindea/workflow-service/internal/messaging/kafka"
	"github.com/AndreiCindea/workflow-service/internal/shared/apperror"
	"github.com/AndreiCindea/workflow-service/internal/shared/contextutil"

	bookingMock "github.com/AndreiCindea/workflow-service/internal/booking/mock"
	kafkaMock "github.com/AndreiCindea/workflow-service/internal/messaging/kafka/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type fakeDirectory struct {
	ResolveByCodeFn func(ctx context.Context, code string) (*employee.Employee, error)
}

func (f *fakeDirectory) ResolveByCode(ctx context.Context, code string) (*employee.Employee, error) {
	return f.ResolveByCodeFn(ctx, code)
}

func directoryWith(empl *employee.Employee) *fakeDirectory {
	return &fakeDirectory{
		ResolveByCodeFn: func(ctx context.Context, code string) (*employee.Employee, error) {
			if empl != nil && code == empl.EmployeeCode {
				return empl, nil
			}
			return nil, employeeerrors.ErrEmployeeNotFound
		},
	}
}

type serviceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	service   booking.Service
	repo      *bookingMock.MockRepository
	outbox    *kafkaMock.MockOutboxRepository
	directory *fakeDirectory
}

func setupServiceTest(t *testing.T, directory *fakeDirectory) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, _ := sqlmock.New()
	repo := bookingMock.NewMockRepository(ctrl)
	outboxRepo := kafkaMock.NewMockOutboxRepository(ctrl)

	svc := booking.NewServiceWithOutbox(db, repo, directory, outboxRepo)

	return &serviceDeps{
		db:        db,
		sqlMock:   sqlMock,
		service:   svc,
		repo:      repo,
		outbox:    outboxRepo,
		directory: directory,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func validCreateRequest() booking.CreateBookingRequest {
	return booking.CreateBookingRequest{
		EmployeeCode:  "EMP001",
		ResourceType:  "FLIGHT",
		Destination:   "NYC",
		DepartureDate: "2024-12-15T10:00:00Z",
		ReturnDate:    "2024-12-20T18:00:00Z",
		TravelerCount: 2,
		CostCenterRef: "CC-1",
		TripPurpose:   "Conference",
	}
}

type outboxWithRID struct {
	rid string
}

func (m outboxWithRID) Matches(x any) bool {
	event, ok := x.(kafka.OutboxEvent)
	if !ok {
		return false
	}
	return event.RequestID == m.rid &&
		event.Topic == events.BookingCreatedTopic &&
		event.EventType == "booking_created" &&
		event.Status == kafka.OutboxStatusPending
}

func (m outboxWithRID) String() string {
	return fmt.Sprintf("pending booking_created outbox event with request id %q", m.rid)
}

func TestBookingService_Create(t *testing.T) {
	jane := &employee.Employee{
		ID:           uuid.New(),
		EmployeeCode: "EMP001",
		FullName:     "Jane Doe",
		Email:        "jane@x.com",
		CostCenter:   "CC-1",
	}

	t.Run("success - status CREATED and employee denormalized", func(t *testing.T) {
		deps := setupServiceTest(t, directoryWith(jane))
		defer deps.db.Close()

		rid := "REQ-123-ABC"
		ctx := contextutil.WithRequestID(context.Background(), rid)
		req := validCreateRequest()

		expectTx(t, deps.sqlMock, true)

		deps.repo.EXPECT().
			WithTx(gomock.Any()).
			Return(deps.repo)

		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, b *booking.Booking) error {
				assert.Equal(t, jane.ID, b.EmployeeID)
				assert.Equal(t, booking.StatusCreated, b.Status)
				assert.Equal(t, booking.ResourceFlight, b.ResourceType)
				assert.Equal(t, "NYC", b.Destination)
				assert.Equal(t, 2, b.TravelerCount)
				assert.Equal(t, "CC-1", b.CostCenterRef)
				assert.Equal(t, "Conference", b.TripPurpose)
				assert.NotEqual(t, uuid.Nil, b.ID)
				return nil
			})

		deps.outbox.EXPECT().
			WithTx(gomock.Any()).
			Return(deps.outbox)

		deps.outbox.EXPECT().
			Create(gomock.Any(), outboxWithRID{rid: rid}).
			Return(nil).
			Times(1)

		resp, err := deps.service.Create(ctx, req)

		assert.NoError(t, err)
		assert.NotEmpty(t, resp.ID)
		assert.Equal(t, "CREATED", resp.Status)
		assert.Equal(t, "EMP001", resp.EmployeeCode)
		assert.Equal(t, "Jane Doe", resp.EmployeeName)
		assert.Equal(t, "2024-12-15T10:00:00Z", resp.DepartureDate)
		assert.Equal(t, "2024-12-20T18:00:00Z", resp.ReturnDate)
		assert.Equal(t, 2, resp.TravelerCount)
	})

	t.Run("lower-case resource type is normalized", func(t *testing.T) {
		deps := setupServiceTest(t, directoryWith(jane))
		defer deps.db.Close()

		ctx := context.Background()
		req := validCreateRequest()
		req.ResourceType = "hotel"

		expectTx(t, deps.sqlMock, true)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, b *booking.Booking) error {
				assert.Equal(t, booking.ResourceHotel, b.ResourceType)
				return nil
			})
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		resp, err := deps.service.Create(ctx, req)

		assert.NoError(t, err)
		assert.Equal(t, "HOTEL", resp.ResourceType)
	})

	t.Run("return before departure -> validation error, nothing persisted", func(t *testing.T) {
		deps := setupServiceTest(t, directoryWith(jane))
		defer deps.db.Close()

		req := validCreateRequest()
		req.DepartureDate = "2024-12-20T18:00:00Z"
		req.ReturnDate = "2024-12-15T10:00:00Z"

		_, err := deps.service.Create(context.Background(), req)

		assert.ErrorIs(t, err, bookingerrors.ErrReturnBeforeDeparture)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("traveler count zero -> validation error", func(t *testing.T) {
		deps := setupServiceTest(t, directoryWith(jane))
		defer deps.db.Close()

		req := validCreateRequest()
		req.TravelerCount = 0

		_, err := deps.service.Create(context.Background(), req)

		assert.ErrorIs(t, err, bookingerrors.ErrInvalidTravelerCount)
	})

	t.Run("missing departure date -> invalid input", func(t *testing.T) {
		deps := setupServiceTest(t, directoryWith(jane))
		defer deps.db.Close()

		req := validCreateRequest()
		req.DepartureDate = ""

		_, err := deps.service.Create(context.Background(), req)

		var appErr *apperror.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperror.CodeInvalidInput, appErr.Code)
	})

	t.Run("validation runs before employee resolution", func(t *testing.T) {
		resolved := false
		dir := &fakeDirectory{
			ResolveByCodeFn: func(ctx context.Context, code string) (*employee.Employee, error) {
				resolved = true
				return nil, employeeerrors.ErrEmployeeNotFound
			},
		}
		deps := setupServiceTest(t, dir)
		defer deps.db.Close()

		req := validCreateRequest()
		req.EmployeeCode = "NOPE"
		req.TravelerCount = -1

		_, err := deps.service.Create(context.Background(), req)

		assert.ErrorIs(t, err, bookingerrors.ErrInvalidTravelerCount)
		assert.False(t, resolved)
	})

	t.Run("unknown employee code -> not found, nothing persisted", func(t *testing.T) {
		deps := setupServiceTest(t, directoryWith(jane))
		defer deps.db.Close()

		req := validCreateRequest()
		req.EmployeeCode = "NOPE"

		_, err := deps.service.Create(context.Background(), req)

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("repo error -> rollback", func(t *testing.T) {
		deps := setupServiceTest(t, directoryWith(jane))
		defer deps.db.Close()

		ctx := context.Background()
		req := validCreateRequest()

		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			Return(errors.New("db error"))

		_, err := deps.service.Create(ctx, req)

		assert.Error(t, err)
	})

	t.Run("logs through the request-scoped logger", func(t *testing.T) {
		deps := setupServiceTest(t, directoryWith(jane))
		defer deps.db.Close()

		core, logs := observer.New(zapcore.DebugLevel)
		ctx := contextutil.WithLogger(context.Background(), zap.New(core))

		req := validCreateRequest()
		req.TravelerCount = 0

		_, err := deps.service.Create(ctx, req)

		assert.Error(t, err)

		warned := false
		for _, entry := range logs.All() {
			if entry.Message == "create booking validation failed" {
				warned = true
			}
		}
		assert.True(t, warned)
	})

	t.Run("outbox error -> rollback", func(t *testing.T) {
		deps := setupServiceTest(t, directoryWith(jane))
		defer deps.db.Close()

		ctx := context.Background()
		req := validCreateRequest()

		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(errors.New("outbox insert failed"))

		_, err := deps.service.Create(ctx, req)

		assert.Error(t, err)
	})
}

// Drives the real gorm repository and the real outbox repository over
// sqlmock connections. The gorm pool and the transaction use separate mock
// databases so a write that escapes the transaction shows up as an
// unexpected statement on the pool.
func TestBookingService_CreateIsAtomic(t *testing.T) {
	jane := &employee.Employee{
		ID:           uuid.New(),
		EmployeeCode: "EMP001",
		FullName:     "Jane Doe",
	}

	t.Run("outbox failure leaves no booking behind", func(t *testing.T) {
		pool, poolMock, err := sqlmock.New()
		assert.NoError(t, err)
		defer pool.Close()

		gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: pool}), &gorm.Config{})
		assert.NoError(t, err)

		txDB, txMock, err := sqlmock.New()
		assert.NoError(t, err)
		defer txDB.Close()

		txMock.ExpectBegin()
		txMock.ExpectExec(`INSERT INTO "bookings"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		txMock.ExpectExec("INSERT INTO outbox_events").
			WillReturnError(errors.New("outbox insert failed"))
		txMock.ExpectRollback()

		svc := booking.NewServiceWithOutbox(
			txDB,
			booking.NewRepository(gormDB),
			directoryWith(jane),
			kafka.NewOutboxRepository(txDB),
		)

		_, err = svc.Create(context.Background(), validCreateRequest())

		assert.Error(t, err)
		assert.NoError(t, txMock.ExpectationsWereMet())
		// Nothing may reach the pooled connection behind gorm.
		assert.NoError(t, poolMock.ExpectationsWereMet())
	})

	t.Run("commit carries booking and outbox row together", func(t *testing.T) {
		pool, poolMock, err := sqlmock.New()
		assert.NoError(t, err)
		defer pool.Close()

		gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: pool}), &gorm.Config{})
		assert.NoError(t, err)

		txDB, txMock, err := sqlmock.New()
		assert.NoError(t, err)
		defer txDB.Close()

		txMock.ExpectBegin()
		txMock.ExpectExec(`INSERT INTO "bookings"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		txMock.ExpectExec("INSERT INTO outbox_events").
			WillReturnResult(sqlmock.NewResult(0, 1))
		txMock.ExpectCommit()

		svc := booking.NewServiceWithOutbox(
			txDB,
			booking.NewRepository(gormDB),
			directoryWith(jane),
			kafka.NewOutboxRepository(txDB),
		)

		resp, err := svc.Create(context.Background(), validCreateRequest())

		assert.NoError(t, err)
		assert.Equal(t, "CREATED", resp.Status)
		assert.NoError(t, txMock.ExpectationsWereMet())
		assert.NoError(t, poolMock.ExpectationsWereMet())
	})
}

func TestBookingService_GetByID(t *testing.T) {
	jane := &employee.Employee{ID: uuid.New(), EmployeeCode: "EMP001", FullName: "Jane Doe"}
	deps := setupServiceTest(t, directoryWith(jane))
	defer deps.db.Close()

	ctx := context.Background()

	t.Run("success - repeated reads return identical views", func(t *testing.T) {
		stored := &booking.Booking{
			ID:         uuid.New(),
			EmployeeID: jane.ID,
			Employee: &booking.EmployeeRef{
				ID:           jane.ID,
				EmployeeCode: "EMP001",
				FullName:     "Jane Doe",
			},
			ResourceType:  booking.ResourceFlight,
			Destination:   "NYC",
			DepartureDate: time.Date(2024, 12, 15, 10, 0, 0, 0, time.UTC),
			ReturnDate:    time.Date(2024, 12, 20, 18, 0, 0, 0, time.UTC),
			TravelerCount: 2,
			CostCenterRef: "CC-1",
			TripPurpose:   "Conference",
			Status:        booking.StatusCreated,
		}

		deps.repo.EXPECT().
			FindByID(ctx, stored.ID.String()).
			Return(stored, nil).
			Times(2)

		first, err := deps.service.GetByID(ctx, stored.ID.String())
		assert.NoError(t, err)

		second, err := deps.service.GetByID(ctx, stored.ID.String())
		assert.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, "Jane Doe", first.EmployeeName)
		assert.Equal(t, "CREATED", first.Status)
	})

	t.Run("malformed id -> not found without store access", func(t *testing.T) {
		_, err := deps.service.GetByID(ctx, "abc")

		assert.ErrorIs(t, err, bookingerrors.ErrBookingNotFound)
	})

	t.Run("unknown id -> not found", func(t *testing.T) {
		id := uuid.New().String()

		deps.repo.EXPECT().
			FindByID(ctx, id).
			Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.GetByID(ctx, id)

		assert.ErrorIs(t, err, bookingerrors.ErrBookingNotFound)
	})
}

func TestBookingService_GetAllByEmployeeCode(t *testing.T) {
	jane := &employee.Employee{ID: uuid.New(), EmployeeCode: "EMP001", FullName: "Jane Doe"}
	deps := setupServiceTest(t, directoryWith(jane))
	defer deps.db.Close()

	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		stored := []booking.Booking{
			{
				ID:         uuid.New(),
				EmployeeID: jane.ID,
				Employee:   &booking.EmployeeRef{ID: jane.ID, EmployeeCode: "EMP001", FullName: "Jane Doe"},
				Status:     booking.StatusCreated,
			},
		}

		deps.repo.EXPECT().
			FindAllByEmployee(ctx, jane.ID.String()).
			Return(stored, nil)

		resp, err := deps.service.GetAllByEmployeeCode(ctx, "EMP001")

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, stored[0].ID.String(), resp[0].ID)
		assert.Equal(t, "Jane Doe", resp[0].EmployeeName)
	})

	t.Run("unknown employee -> not found without listing", func(t *testing.T) {
		_, err := deps.service.GetAllByEmployeeCode(ctx, "NOPE")

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})

	t.Run("employee without bookings -> empty list", func(t *testing.T) {
		deps.repo.EXPECT().
			FindAllByEmployee(ctx, jane.ID.String()).
			Return([]booking.Booking{}, nil)

		resp, err := deps.service.GetAllByEmployeeCode(ctx, "EMP001")

		assert.NoError(t, err)
		assert.Empty(t, resp)
	})
}

func TestBookingService_GetAll(t *testing.T) {
	jane := &employee.Employee{ID: uuid.New(), EmployeeCode: "EMP001", FullName: "Jane Doe"}
	deps := setupServiceTest(t, directoryWith(jane))
	defer deps.db.Close()

	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		stored := []booking.Booking{
			{ID: uuid.New(), EmployeeID: jane.ID, Status: booking.StatusCreated},
			{ID: uuid.New(), EmployeeID: jane.ID, Status: booking.StatusCreated},
		}

		deps.repo.EXPECT().
			FindAll(ctx).
			Return(stored, nil)

		resp, err := deps.service.GetAll(ctx)

		assert.NoError(t, err)
		assert.Len(t, resp, 2)
	})

	t.Run("error repository", func(t *testing.T) {
		cause := errors.New("db error")
		deps.repo.EXPECT().
			FindAll(ctx).
			Return(nil, cause)

		resp, err := deps.service.GetAll(ctx)

		assert.Error(t, err)
		assert.Nil(t, resp)

		// Unknown storage errors come back wrapped, cause preserved.
		var appErr *apperror.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperror.CodeInternalError, appErr.Code)
		assert.ErrorIs(t, err, cause)
	})
}
