package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rigtrack/rigtrack-backend/api/controllers"
	"github.com/rigtrack/rigtrack-backend/api/middleware"
	"github.com/rigtrack/rigtrack-backend/internal/assets"
	"github.com/rigtrack/rigtrack-backend/internal/auth"
	"github.com/rigtrack/rigtrack-backend/internal/bom"
	"github.com/rigtrack/rigtrack-backend/internal/companies"
	"github.com/rigtrack/rigtrack-backend/internal/contracts"
	emailsvc "github.com/rigtrack/rigtrack-backend/internal/email"
	"github.com/rigtrack/rigtrack-backend/internal/notifications"
	"github.com/rigtrack/rigtrack-backend/internal/rigs"
	"github.com/rigtrack/rigtrack-backend/internal/users"
	"github.com/rigtrack/rigtrack-backend/pkg/config"
	"github.com/rigtrack/rigtrack-backend/pkg/db"
	"github.com/rigtrack/rigtrack-backend/pkg/enums"
	"github.com/rigtrack/rigtrack-backend/pkg/logger"
	"github.com/rigtrack/rigtrack-backend/pkg/metrics"
	"github.com/rigtrack/rigtrack-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	cache redis.Pinger,
	limiter middleware.RateStore,
	httpMetrics *metrics.HTTPMetrics,
	promGatherer prometheus.Gatherer,
	authService auth.Service,
	assetService assets.Service,
	bomService bom.Service,
	companyService companies.Service,
	rigService rigs.Service,
	contractService contracts.Service,
	userService users.Service,
	notificationService notifications.Service,
	emailService emailsvc.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)
	if httpMetrics != nil {
		r.Use(middleware.Metrics(httpMetrics))
	}

	canEdit := middleware.RequireRoles(logg, enums.UserRoleAdmin, enums.UserRoleManager, enums.UserRoleEditor)
	canManage := middleware.RequireRoles(logg, enums.UserRoleAdmin, enums.UserRoleManager)
	adminOnly := middleware.RequireRoles(logg, enums.UserRoleAdmin)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, dbP, cache))
	})

	if promGatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(promGatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.APIRateLimit, limiter, logg))

		r.Post("/auth/login", controllers.Login(authService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))

			r.Route("/auth", func(r chi.Router) {
				r.Get("/me", controllers.Me(authService, logg))
				r.Post("/change-password", controllers.ChangePassword(authService, logg))
			})

			r.Route("/assets", func(r chi.Router) {
				r.Get("/", controllers.ListAssets(assetService, logg))
				r.Get("/summary", controllers.AssetsSummary(assetService, logg))
				r.Get("/export", controllers.ExportAssets(assetService, logg))
				r.Get("/{id}", controllers.GetAsset(assetService, logg))
				r.With(canEdit).Post("/", controllers.CreateAsset(assetService, logg))
				r.With(canEdit).Post("/import", controllers.ImportAssets(assetService, cfg.Import, logg))
				r.With(canEdit).Put("/{id}", controllers.UpdateAsset(assetService, logg))
				r.With(canManage).Delete("/{id}", controllers.DeleteAsset(assetService, logg))
			})

			r.Route("/bom", func(r chi.Router) {
				r.Get("/", controllers.ListBOMItems(bomService, logg))
				r.Get("/export", controllers.ExportBOM(bomService, logg))
				r.Get("/tree/{assetId}", controllers.GetBOMTree(bomService, logg))
				r.Get("/summary/{assetId}", controllers.GetBOMSummary(bomService, logg))
				r.Get("/{id}", controllers.GetBOMItem(bomService, logg))
				r.With(canEdit).Post("/", controllers.CreateBOMItem(bomService, logg))
				r.With(canEdit).Put("/{id}", controllers.UpdateBOMItem(bomService, logg))
				r.With(canManage).Delete("/{id}", controllers.DeleteBOMItem(bomService, logg))
			})

			r.Route("/companies", func(r chi.Router) {
				r.Get("/", controllers.ListCompanies(companyService, logg))
				r.With(canManage).Post("/", controllers.CreateCompany(companyService, logg))
				r.With(canManage).Put("/{id}", controllers.UpdateCompany(companyService, logg))
			})

			r.Route("/rigs", func(r chi.Router) {
				r.Get("/", controllers.ListRigs(rigService, logg))
				r.With(canManage).Post("/", controllers.CreateRig(rigService, logg))
				r.With(canManage).Put("/{id}", controllers.UpdateRig(rigService, logg))
			})

			r.Route("/contracts", func(r chi.Router) {
				r.Get("/", controllers.ListContracts(contractService, logg))
				r.With(canManage).Post("/", controllers.CreateContract(contractService, logg))
				r.With(canEdit).Put("/{id}", controllers.UpdateContract(contractService, logg))
				r.With(adminOnly).Delete("/{id}", controllers.DeleteContract(contractService, logg))
			})

			r.Route("/users", func(r chi.Router) {
				r.With(canManage).Get("/", controllers.ListUsers(userService, logg))
				r.With(adminOnly).Post("/", controllers.CreateUser(userService, logg))
				r.With(adminOnly).Put("/{id}", controllers.UpdateUser(userService, logg))
				r.With(adminOnly).Delete("/{id}", controllers.DeactivateUser(userService, logg))
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", controllers.ListNotifications(notificationService, logg))
				r.Post("/{id}/read", controllers.MarkNotificationRead(notificationService, logg))
				r.Post("/read-all", controllers.MarkAllNotificationsRead(notificationService, logg))
				r.Delete("/{id}", controllers.DeleteNotification(notificationService, logg))
			})

			r.Route("/email", func(r chi.Router) {
				r.Post("/send-alert", controllers.SendAlertEmail(emailService, logg))
				r.With(canManage).Get("/logs", controllers.ListEmailLogs(emailService, logg))
			})
		})
	})

	return r
}
