package employee

import (
	"github.com/AndreiCindea/workflow-service/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	logger *zap.Logger,
) {
	employees := r.Group("/employees")
	employees.Use(middleware.ContextLogger(logger))
	{
		employees.GET("",
			middleware.RateLimitByIP(5, 20),
			handler.GetAll,
		)

		employees.GET("/:code",
			middleware.RateLimitByIP(5, 20),
			handler.GetByCode,
		)

		employees.POST("",
			middleware.RateLimitByIP(1, 5),
			handler.Register,
		)
	}
}
