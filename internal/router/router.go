package router

import (
	"github.com/gin-gonic/gin"

	"rollcall/internal/handler"
	"rollcall/internal/middleware"
)

// maxMultipartMemory bounds the in-memory part of a batch upload; larger
// forms spill to temporary files.
const maxMultipartMemory = 32 << 20

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	attendanceH *handler.AttendanceHandler,
	rosterH *handler.RosterHandler,
	healthH *handler.HealthHandler,
	allowedOrigins []string,
) *gin.Engine {
	r := gin.New()
	r.MaxMultipartMemory = maxMultipartMemory

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger("/healthz", "/readyz"))
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	attendance := v1.Group("/attendance")
	attendance.POST("/batches", attendanceH.ProcessBatch)
	attendance.GET("/weeks/:week", attendanceH.GetWeek)

	roster := v1.Group("/roster")
	roster.GET("", rosterH.List)
	roster.POST("", rosterH.Add)
	roster.PUT("", rosterH.Replace)
	roster.DELETE("", rosterH.Remove)

	return r
}
