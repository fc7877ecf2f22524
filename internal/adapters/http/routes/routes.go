package routes

import (
	"harambee-sacco/internal/adapters/http/handlers"
	"harambee-sacco/internal/adapters/http/middleware"
	"harambee-sacco/internal/adapters/persistence/repositories"
	"harambee-sacco/internal/config"
	"harambee-sacco/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	txnRepo := repositories.NewTransactionRepository(db)
	loanRepo := repositories.NewLoanRepository(db)

	// One lock registry shared by every balance-affecting operation
	locks := services.NewMemberLocks()

	// Services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg)
	userService := services.NewUserService(userRepo)
	ledgerService := services.NewLedgerService(txnRepo, locks)
	loanService := services.NewLoanService(loanRepo, txnRepo, locks, cfg.Ledger.AnnualRate, cfg.Ledger.OverpaymentPolicy)
	investmentService := services.NewInvestmentService(txnRepo)
	dashboardService := services.NewDashboardService(ledgerService, investmentService, loanRepo, userRepo)

	// Handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, userService, cfg)
	ledgerHandler := handlers.NewLedgerHandler(ledgerService, loanService)
	loanHandler := handlers.NewLoanHandler(loanService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	adminHandler := handlers.NewAdminHandler(investmentService, ledgerService, userService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	// Auth routes (public except /me)
	auth := apiV1.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	auth.Post("/logout", authHandler.Logout)
	auth.Get("/me", middleware.AuthMiddleware(cfg), authHandler.Me)

	// Member routes
	member := apiV1.Group("", middleware.AuthMiddleware(cfg))
	member.Get("/dashboard", dashboardHandler.GetMemberDashboard)
	member.Get("/ledger/balance", ledgerHandler.GetBalance)
	member.Post("/ledger/transact", ledgerHandler.Transact)
	member.Get("/loans", loanHandler.MyLoans)
	member.Post("/loans/apply", loanHandler.Apply)

	// Staff routes
	staff := apiV1.Group("/staff", middleware.AuthMiddleware(cfg), middleware.StaffOrAdmin())
	staff.Get("/loans/pending", loanHandler.ListPending)
	staff.Post("/loans/:id/approve", loanHandler.Approve)
	staff.Post("/loans/:id/reject", loanHandler.Reject)

	// Admin routes (staff may read and operate the pool; deletion is admin only)
	admin := apiV1.Group("/admin", middleware.AuthMiddleware(cfg), middleware.StaffOrAdmin())
	admin.Get("/dashboard", dashboardHandler.GetAdminDashboard)
	admin.Get("/pool", adminHandler.GetPool)
	admin.Post("/invest", adminHandler.Invest)
	admin.Get("/members", adminHandler.ListMembers)
	admin.Post("/members/:id/fines", adminHandler.RecordFine)
	admin.Delete("/members/:id", middleware.AdminOnly(), adminHandler.DeleteMember)
}
