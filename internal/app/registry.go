package app

import (
	"database/sql"

	"github.com/AndreiCindea/workflow-service/internal/booking"
	"github.com/AndreiCindea/workflow-service/internal/employee"
	"github.com/AndreiCindea/workflow-service/internal/messaging/kafka"
	"github.com/AndreiCindea/workflow-service/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	logger := zap.L()

	// --- Repositories ---
	employeeRepo := employee.NewRepository(gormDB)
	bookingRepo := booking.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	// The employee service doubles as the directory the booking workflow
	// resolves employee codes against.
	employeeService := employee.NewService(db, employeeRepo, rdb)
	bookingService := booking.NewServiceWithOutbox(db, bookingRepo, employeeService, outboxRepo)

	// --- Handlers ---
	employeeHandler := employee.NewHandler(employeeService)
	bookingHandler := booking.NewHandlerWithRedis(bookingService, rdb)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	api.Use(middleware.RequestID())
	{
		employee.RegisterRoutes(api, employeeHandler, logger)
		booking.RegisterRoutes(api, bookingHandler, rdb, logger)
	}

	return nil
}
