package handler

import "github.com/gin-gonic/gin"

// RegisterStudentRoutes mounts the student endpoints on group. writeGuards run
// before every mutating route.
func RegisterStudentRoutes(group *gin.RouterGroup, h *StudentHandler, writeGuards ...gin.HandlerFunc) {
	students := group.Group("/students")
	students.GET("", h.List)
	students.GET("/statistics", h.Statistics)
	students.GET("/export", h.Export)
	students.GET("/:id", h.Get)

	writes := students.Group("", writeGuards...)
	writes.POST("", h.Create)
	writes.PUT("/:id", h.Update)
	writes.DELETE("/:id", h.Delete)
}

// RegisterHealthRoutes mounts liveness, readiness and optionally the metrics endpoint.
func RegisterHealthRoutes(r gin.IRoutes, h *MetricsHandler, metricsPath string) {
	r.GET("/health", h.Health)
	r.GET("/ready", h.Ready)
	if metricsPath != "" {
		r.GET(metricsPath, h.Prometheus)
	}
}
