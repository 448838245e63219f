package routes

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/PedrohFolster/inkspiration/internal/audit"
	"github.com/PedrohFolster/inkspiration/internal/cache"
	"github.com/PedrohFolster/inkspiration/internal/config"
	apDomain "github.com/PedrohFolster/inkspiration/internal/domain/appointment"
	"github.com/PedrohFolster/inkspiration/internal/handlers"
	infraRepo "github.com/PedrohFolster/inkspiration/internal/infra/repository"
	"github.com/PedrohFolster/inkspiration/internal/middleware"
	"github.com/PedrohFolster/inkspiration/internal/storage"
	"github.com/PedrohFolster/inkspiration/internal/timezone"
	ucAppointment "github.com/PedrohFolster/inkspiration/internal/usecase/appointment"
	ucProfessional "github.com/PedrohFolster/inkspiration/internal/usecase/professional"
	ucRating "github.com/PedrohFolster/inkspiration/internal/usecase/rating"
)

// Deps are the singletons owned by the process.
type Deps struct {
	DB     *gorm.DB
	Config *config.Config
	Logger *zap.Logger
	Cache  cache.ProfessionalCache
	Store  storage.ObjectStore // nil when S3 is not configured
	Audit  *audit.Dispatcher
}

func RegisterRoutes(r *gin.Engine, d Deps) error {
	cfg := d.Config

	mode, err := apDomain.ParseOverlapMode(cfg.OverlapMode)
	if err != nil {
		return fmt.Errorf("routes: %w", err)
	}
	loc := timezone.Location(cfg.StudioTimezone)

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.Recovery(d.Logger),
		middleware.Logger(d.Logger),
		middleware.CORSMiddleware(),
		middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin),
	)

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB, mode)
	professionalRepo := infraRepo.NewProfessionalGormRepository(d.DB)
	ratingRepo := infraRepo.NewRatingGormRepository(d.DB)

	// ======================================================
	// 🧠 USE CASES — APPOINTMENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(appointmentRepo, d.Audit, loc)
	getAppointmentUC := ucAppointment.NewGetAppointment(appointmentRepo)
	cancelAppointmentUC := ucAppointment.NewCancelAppointment(appointmentRepo, d.Audit, loc)
	completeAppointmentUC := ucAppointment.NewCompleteAppointment(appointmentRepo, d.Audit, loc)
	listClientUC := ucAppointment.NewListClientAppointments(appointmentRepo, loc)

	// ======================================================
	// 🧠 USE CASES — PROFESSIONALS
	// ======================================================
	professionalUCs := handlers.ProfessionalUsecases{
		Create:       ucProfessional.NewCreateCompleteProfessional(professionalRepo, d.Cache, d.Audit),
		Get:          ucProfessional.NewGetProfessional(professionalRepo, d.Cache, d.Store),
		List:         ucProfessional.NewListProfessionals(professionalRepo),
		Exists:       ucProfessional.NewExistsProfile(professionalRepo),
		Availability: ucProfessional.NewReplaceAvailability(professionalRepo, d.Cache, d.Audit),
		Upload:       ucProfessional.NewUploadPortfolioImage(professionalRepo, d.Cache, d.Store, d.Audit),
		Delete:       ucProfessional.NewDeleteProfessional(professionalRepo, d.Cache, d.Store, d.Audit, loc),

		Conflict:     ucAppointment.NewHasConflict(appointmentRepo),
		Slots:        ucAppointment.NewGetSlots(appointmentRepo, mode, loc),
		Appointments: ucAppointment.NewListProfessionalAppointments(appointmentRepo),
		Ratings:      ucRating.NewListRatings(ratingRepo),
	}

	// ======================================================
	// 🧠 USE CASES — RATINGS
	// ======================================================
	rateUC := ucRating.NewRateAppointment(ratingRepo, d.Cache, d.Audit)
	getRatingUC := ucRating.NewGetRating(ratingRepo)
	listRatingsUC := ucRating.NewListRatings(ratingRepo)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	healthHandler := handlers.NewHealthHandler(d.DB)
	authHandler := handlers.NewAuthHandler(d.DB, cfg, d.Audit)
	meHandler := handlers.NewMeHandler(d.DB)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB)

	professionalHandler := handlers.NewProfessionalHandler(professionalUCs, loc)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		getAppointmentUC,
		cancelAppointmentUC,
		completeAppointmentUC,
		listClientUC,
		loc,
	)

	ratingHandler := handlers.NewRatingHandler(rateUC, getRatingUC, listRatingsUC)

	r.GET("/health", healthHandler.Health)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		api.GET("/professionals", professionalHandler.List)
		api.GET("/professionals/:id", professionalHandler.Get)
		api.GET("/professionals/:id/ratings", professionalHandler.Ratings)
		api.GET("/professionals/:id/conflicts", professionalHandler.Conflicts)
		api.GET("/professionals/:id/appointments", professionalHandler.Appointments)
		api.GET("/professionals/:id/slots", professionalHandler.Slots)
		api.GET("/users/:id/professional-profile/exists", professionalHandler.Exists)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.POST("/me/addresses", meHandler.CreateAddress)
			secured.GET("/me/addresses", meHandler.ListAddresses)
			secured.GET("/me/professional", professionalHandler.GetMine)
			secured.GET("/me/audit-logs", auditLogsHandler.List)

			// ------------------------------
			// PROFESSIONALS
			// ------------------------------
			secured.POST("/professionals", professionalHandler.Create)
			secured.PUT("/professionals/:id/availability", professionalHandler.ReplaceAvailability)
			secured.POST("/professionals/:id/images", professionalHandler.UploadImage)
			secured.DELETE("/professionals/:id", professionalHandler.Delete)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments/:id", appointmentHandler.Get)
			secured.GET("/me/appointments", appointmentHandler.ListMine)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/appointments/:id/complete", appointmentHandler.Complete)

			// ------------------------------
			// RATINGS
			// ------------------------------
			secured.POST("/appointments/:id/rating", ratingHandler.Rate)
			secured.GET("/ratings/:id", ratingHandler.Get)
			secured.GET("/me/ratings", ratingHandler.ListMine)
		}
	}

	return nil
}
