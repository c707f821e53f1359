package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/tattoo-scheduler/internal/handlers"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/middleware"
)

// Dependencies reúne os handlers já montados em main.
type Dependencies struct {
	JWTSecret   string
	CORSOrigins []string
	Log         *zap.Logger
	Gatherer    prometheus.Gatherer

	Appointments  *handlers.AppointmentHandler
	Availability  *handlers.AvailabilityHandler
	Public        *handlers.PublicHandler
	ServicePrices *handlers.ServicePriceHandler
	AuditLogs     *handlers.AuditLogsHandler
}

func RegisterRoutes(r *gin.Engine, deps Dependencies) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.Logger(deps.Log),
		middleware.CORSMiddleware(deps.CORSOrigins),
	)

	// ======================================================
	// 🔧 INFRA
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		api.GET("/service-types", deps.Public.ServiceTypes)

		professionals := api.Group("/professionals/:id")
		{
			professionals.GET("/availability", deps.Availability.GetByProfessional)
			professionals.GET("/slots", deps.Public.Slots)
			professionals.GET("/services", deps.ServicePrices.ListPublic)
		}

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(deps.JWTSecret))
		{
			secured.POST("/appointments", deps.Appointments.Create)
			secured.PATCH("/appointments/:id/cancel", deps.Appointments.Cancel)

			// ------------------------------
			// PROFISSIONAL
			// ------------------------------
			me := secured.Group("/me")
			me.Use(middleware.RequireRole(middleware.RoleProfessional))
			{
				me.GET("/availability", deps.Availability.GetMine)
				me.PUT("/availability", deps.Availability.Update)
				me.DELETE("/availability", deps.Availability.Delete)

				me.GET("/services", deps.ServicePrices.ListMine)
				me.PUT("/services/:service_type", deps.ServicePrices.Upsert)

				me.GET("/appointments", deps.Appointments.ListByDate)
				me.GET("/appointments/month", deps.Appointments.ListByMonth)

				me.GET("/audit-logs", deps.AuditLogs.List)
			}
		}
	}
}
