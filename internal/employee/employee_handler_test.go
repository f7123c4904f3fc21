package employee_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/AndreiCindea/workflow-service/internal/employee"
	employeeerrors "github.com/AndreiCindea/workflow-service/internal/employee/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeEmployeeService struct {
	RegisterFn      func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error)
	GetByCodeFn     func(ctx context.Context, code string) (employee.EmployeeResponse, error)
	GetAllFn        func(ctx context.Context) ([]employee.EmployeeResponse, error)
	ResolveByCodeFn func(ctx context.Context, code string) (*employee.Employee, error)
}

func (f *fakeEmployeeService) Register(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.RegisterFn(ctx, req)
}
func (f *fakeEmployeeService) GetByCode(ctx context.Context, code string) (employee.EmployeeResponse, error) {
	return f.GetByCodeFn(ctx, code)
}
func (f *fakeEmployeeService) GetAll(ctx context.Context) ([]employee.EmployeeResponse, error) {
	return f.GetAllFn(ctx)
}
func (f *fakeEmployeeService) ResolveByCode(ctx context.Context, code string) (*employee.Employee, error) {
	return f.ResolveByCodeFn(ctx, code)
}

func TestEmployeeHandler_Register(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		svc := &fakeEmployeeService{
			RegisterFn: func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				assert.Equal(t, "EMP001", req.EmployeeCode)
				assert.Equal(t, "Jane Doe", req.FullName)
				return employee.EmployeeResponse{
					ID:           uuid.New().String(),
					EmployeeCode: req.EmployeeCode,
					FullName:     req.FullName,
					Email:        req.Email,
					CostCenter:   req.CostCenter,
				}, nil
			},
		}

		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{"employee_code":"EMP001","full_name":"Jane Doe","email":"jane@x.com","cost_center":"CC-1"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/employees", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req

		h.Register(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "Jane Doe")
		assert.Contains(t, w.Body.String(), "EMP001")
	})

	t.Run("validation error", func(t *testing.T) {
		svc := &fakeEmployeeService{}
		h := employee.NewHandler(svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/employees", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req

		h.Register(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("duplicate code", func(t *testing.T) {
		svc := &fakeEmployeeService{
			RegisterFn: func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, employeeerrors.ErrEmployeeCodeAlreadyExists
			},
		}

		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{"employee_code":"EMP001","full_name":"Jane Doe","email":"jane@x.com","cost_center":"CC-1"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/employees", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req

		h.Register(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "CONFLICT")
	})

	t.Run("service error", func(t *testing.T) {
		svc := &fakeEmployeeService{
			RegisterFn: func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, errors.New("database connection failed")
			},
		}

		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{"employee_code":"EMP001","full_name":"Jane Doe","email":"jane@x.com","cost_center":"CC-1"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/employees", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req

		h.Register(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestEmployeeHandler_GetByCode(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		svc := &fakeEmployeeService{
			GetByCodeFn: func(ctx context.Context, code string) (employee.EmployeeResponse, error) {
				assert.Equal(t, "EMP001", code)
				return employee.EmployeeResponse{
					ID:           uuid.New().String(),
					EmployeeCode: code,
					FullName:     "Jane Doe",
				}, nil
			},
		}

		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/employees/EMP001", nil)
		c.Params = gin.Params{{Key: "code", Value: "EMP001"}}

		h.GetByCode(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Jane Doe")
	})

	t.Run("not found", func(t *testing.T) {
		svc := &fakeEmployeeService{
			GetByCodeFn: func(ctx context.Context, code string) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
			},
		}

		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/employees/NOPE", nil)
		c.Params = gin.Params{{Key: "code", Value: "NOPE"}}

		h.GetByCode(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "NOT_FOUND")
	})
}

func TestEmployeeHandler_GetAll(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		svc := &fakeEmployeeService{
			GetAllFn: func(ctx context.Context) ([]employee.EmployeeResponse, error) {
				return []employee.EmployeeResponse{
					{ID: uuid.New().String(), EmployeeCode: "EMP001", FullName: "Jane Doe"},
					{ID: uuid.New().String(), EmployeeCode: "EMP002", FullName: "John Doe"},
				}, nil
			},
		}

		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/employees", nil)

		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "EMP002")
	})

	t.Run("service error", func(t *testing.T) {
		svc := &fakeEmployeeService{
			GetAllFn: func(ctx context.Context) ([]employee.EmployeeResponse, error) {
				return nil, errors.New("db down")
			},
		}

		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/employees", nil)

		h.GetAll(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
