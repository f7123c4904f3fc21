package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	employeeerrors "github.com/AndreiCindea/workflow-service/internal/employee/errors"
	"github.com/AndreiCindea/workflow-service/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const EmployeeViewKeyPrefix = "employees:view:"

func GetEmployeeViewKey(code string) string {
	return EmployeeViewKeyPrefix + code
}

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Register(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetByCode(ctx context.Context, code string) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)

	// ResolveByCode returns the stored entity for other modules that need
	// the employee reference itself, not the external view. It always reads
	// the store, never the cache.
	ResolveByCode(ctx context.Context, code string) (*Employee, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) Register(
	ctx context.Context,
	req CreateEmployeeRequest,
) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	logger := contextutil.GetLogger(ctx, s.logger)
	logger.Debug("register employee requested",
		zap.String("request_id", rid),
		zap.String("employee_code", req.EmployeeCode),
		zap.String("email", req.Email),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("register employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	empl := &Employee{
		ID:           uuid.New(),
		EmployeeCode: req.EmployeeCode,
		FullName:     req.FullName,
		Email:        req.Email,
		CostCenter:   req.CostCenter,
	}

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, empl); err != nil {
		logger.Error("register employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		logger.Error("register employee commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	if s.rdb != nil {
		cacheKey := GetEmployeeViewKey(empl.EmployeeCode)
		if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
			logger.Error("failed to invalidate employee view cache",
				zap.Error(err),
				zap.String("key", cacheKey),
			)
		}
	}

	logger.Info("register employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
		zap.String("employee_code", empl.EmployeeCode),
	)

	return mapToResponse(*empl), nil
}

func (s *service) GetByCode(ctx context.Context, code string) (EmployeeResponse, error) {
	cacheKey := GetEmployeeViewKey(code)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp EmployeeResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// Singleflight collapses concurrent misses for the same code.
	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		empl, err := s.repo.FindByCode(ctx, code)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := mapToResponse(*empl)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, 1*time.Hour)
			}
		}

		return resp, nil
	})

	if err != nil {
		return EmployeeResponse{}, err
	}

	return v.(EmployeeResponse), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	s.logger.Debug("get all employees requested")
	empls, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(empls), nil
}

func (s *service) ResolveByCode(ctx context.Context, code string) (*Employee, error) {
	if strings.TrimSpace(code) == "" {
		return nil, employeeerrors.ErrMissingEmployeeCode
	}

	empl, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		s.logger.Warn("resolve employee by code failed",
			zap.String("employee_code", code),
			zap.Error(err),
		)
		return nil, mapRepositoryError(err)
	}
	return empl, nil
}

func mapToResponse(empl Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:           empl.ID.String(),
		EmployeeCode: empl.EmployeeCode,
		FullName:     empl.FullName,
		Email:        empl.Email,
		CostCenter:   empl.CostCenter,
		CreatedAt:    empl.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func mapToListResponse(empls []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(empls))
	for i, e := range empls {
		res[i] = mapToResponse(e)
	}
	return res
}
