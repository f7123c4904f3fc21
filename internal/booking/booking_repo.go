package booking

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=booking_repo.go -destination=mock/booking_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, b *Booking) error
	FindByID(ctx context.Context, id string) (*Booking, error)
	FindAllByEmployee(ctx context.Context, employeeID string) ([]Booking, error)
	FindAll(ctx context.Context) ([]Booking, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx binds the session to the caller's transaction so every statement
// issued through the returned repository rides that transaction and rolls
// back with it.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	session := r.db.Session(&gorm.Session{Context: r.db.Statement.Context, NewDB: true})
	session.Statement.ConnPool = tx
	return &repository{db: session}
}

func (r *repository) Create(ctx context.Context, b *Booking) error {
	return r.db.WithContext(ctx).Omit("Employee").Create(b).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Booking, error) {
	var b Booking
	err := r.db.WithContext(ctx).
		Preload("Employee").
		First(&b, "id = ?", id).Error
	return &b, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string) ([]Booking, error) {
	var bookings []Booking
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("employee_id = ?", employeeID).
		Order("created_at ASC").
		Find(&bookings).Error
	return bookings, err
}

func (r *repository) FindAll(ctx context.Context) ([]Booking, error) {
	var bookings []Booking
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Order("created_at ASC").
		Find(&bookings).Error
	return bookings, err
}
