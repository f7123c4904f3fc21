package booking

import (
	"github.com/AndreiCindea/workflow-service/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	bookings := r.Group("/bookings")
	bookings.Use(middleware.ContextLogger(logger))
	{
		bookings.GET("",
			middleware.RateLimitByIP(5, 20),
			handler.GetAll,
		)

		bookings.GET("/:id",
			middleware.RateLimitByIP(5, 20),
			handler.GetByID,
		)

		bookings.GET("/employee/:code",
			middleware.RateLimitByIP(5, 20),
			handler.GetAllByEmployee,
		)

		bookings.POST("",
			middleware.RateLimitByIP(1, 5),
			middleware.Idempotency(rdb),
			handler.Create,
		)
	}
}
