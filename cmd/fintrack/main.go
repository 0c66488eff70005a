package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/fintrackapp/fintrack/db"
	"github.com/fintrackapp/fintrack/internal/auth"
	"github.com/fintrackapp/fintrack/internal/finance/application"
	"github.com/fintrackapp/fintrack/internal/finance/infrastructure"
	"github.com/fintrackapp/fintrack/internal/finance/interfaces"
	"github.com/fintrackapp/fintrack/internal/user"
)

type Response struct {
	Message string `json:"message"`
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("Started %s %s", r.Method, r.URL.Path)

		next.ServeHTTP(w, r)

		log.Printf("Completed %s in %v", r.URL.Path, time.Since(start))
	})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string, errs ...[]string) {
	payload := map[string]interface{}{
		"status":  "error",
		"message": message,
		"code":    status,
	}
	if len(errs) > 0 && len(errs[0]) > 0 {
		payload["errors"] = errs[0]
	}
	respondJSON(w, status, payload)
}

type Server struct {
	router             *http.ServeMux
	dbService          *database.DBService
	authHandler        *auth.Handler
	authService        auth.Service
	userHandler        *user.Handler
	transactionHandler *interfaces.TransactionHandler
	categoryHandler    *interfaces.CategoryHandler
	accountHandler     *interfaces.AccountHandler
	goalHandler        *interfaces.GoalHandler
	scoreHandler       *interfaces.ScoreHandler
	dashboardHandler   *interfaces.DashboardHandler
	exportHandler      *interfaces.ExportHandler
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(Response{Message: "Path not found"})
}

func checkConfiguration() error {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, continuing with system environment variables")
	}

	if os.Getenv("JWT_SECRET") == "" {
		return errors.New("no JWT_SECRET provided")
	}
	if os.Getenv("DB_CONNECTION_STRING") == "" {
		return errors.New("no DB_CONNECTION_STRING provided")
	}
	return nil
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	health := s.dbService.Health()
	if health["status"] != "up" {
		respondJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status": "not ready",
			"db":     health,
		})
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ready",
		"db":     health,
	})
}

func (s *Server) RegisterRoutes() {
	protect := s.authService.SessionMiddleware()

	// Public routes
	publicRoutes := http.NewServeMux()
	publicRoutes.Handle("POST /api/register", http.HandlerFunc(s.userHandler.HandleRegister))
	publicRoutes.Handle("POST /api/auth/login", http.HandlerFunc(s.authHandler.HandleLogin))
	publicRoutes.Handle("POST /api/auth/logout", http.HandlerFunc(s.authHandler.HandleLogout))
	publicRoutes.Handle("GET /api/ready", http.HandlerFunc(s.handleReady))

	// Protected routes
	protectedRoutes := http.NewServeMux()

	protectedRoutes.Handle("GET /api/protected/transactions", protect(http.HandlerFunc(s.transactionHandler.GetUserTransactions)))
	protectedRoutes.Handle("POST /api/protected/transactions", protect(http.HandlerFunc(s.transactionHandler.CreateTransaction)))
	protectedRoutes.Handle("GET /api/protected/transactions/export", protect(http.HandlerFunc(s.exportHandler.ExportTransactions)))
	protectedRoutes.Handle("POST /api/protected/transactions/import", protect(http.HandlerFunc(s.exportHandler.ImportTransactions)))
	protectedRoutes.Handle("GET /api/protected/transactions/{id}", protect(http.HandlerFunc(s.transactionHandler.GetTransaction)))
	protectedRoutes.Handle("PUT /api/protected/transactions/{id}", protect(http.HandlerFunc(s.transactionHandler.UpdateTransaction)))
	protectedRoutes.Handle("DELETE /api/protected/transactions/{id}", protect(http.HandlerFunc(s.transactionHandler.DeleteTransaction)))

	protectedRoutes.Handle("GET /api/protected/categories", protect(http.HandlerFunc(s.categoryHandler.GetUserCategories)))
	protectedRoutes.Handle("POST /api/protected/categories", protect(http.HandlerFunc(s.categoryHandler.CreateCategory)))
	protectedRoutes.Handle("PUT /api/protected/categories/{id}", protect(http.HandlerFunc(s.categoryHandler.UpdateCategory)))
	protectedRoutes.Handle("DELETE /api/protected/categories/{id}", protect(http.HandlerFunc(s.categoryHandler.DeleteCategory)))

	protectedRoutes.Handle("GET /api/protected/accounts", protect(http.HandlerFunc(s.accountHandler.GetUserAccounts)))
	protectedRoutes.Handle("POST /api/protected/accounts", protect(http.HandlerFunc(s.accountHandler.CreateAccount)))
	protectedRoutes.Handle("PUT /api/protected/accounts/{id}", protect(http.HandlerFunc(s.accountHandler.UpdateAccount)))
	protectedRoutes.Handle("DELETE /api/protected/accounts/{id}", protect(http.HandlerFunc(s.accountHandler.DeleteAccount)))

	protectedRoutes.Handle("GET /api/protected/goals", protect(http.HandlerFunc(s.goalHandler.GetUserGoals)))
	protectedRoutes.Handle("POST /api/protected/goals", protect(http.HandlerFunc(s.goalHandler.CreateGoal)))
	protectedRoutes.Handle("PUT /api/protected/goals/{id}", protect(http.HandlerFunc(s.goalHandler.UpdateGoal)))
	protectedRoutes.Handle("DELETE /api/protected/goals/{id}", protect(http.HandlerFunc(s.goalHandler.DeleteGoal)))

	protectedRoutes.Handle("GET /api/protected/score", protect(http.HandlerFunc(s.scoreHandler.GetScoreReport)))
	protectedRoutes.Handle("GET /api/protected/score/rules", protect(http.HandlerFunc(s.scoreHandler.GetScoreRules)))
	protectedRoutes.Handle("POST /api/protected/score/rules", protect(http.HandlerFunc(s.scoreHandler.UpsertScoreRule)))
	protectedRoutes.Handle("PUT /api/protected/score/rules/{id}", protect(http.HandlerFunc(s.scoreHandler.UpdateScoreRule)))
	protectedRoutes.Handle("DELETE /api/protected/score/rules/{id}", protect(http.HandlerFunc(s.scoreHandler.DeleteScoreRule)))

	protectedRoutes.Handle("GET /api/protected/dashboard", protect(http.HandlerFunc(s.dashboardHandler.GetDashboard)))

	// Main router
	mainRouter := http.NewServeMux()
	mainRouter.Handle("/api/", publicRoutes)
	mainRouter.Handle("/api/protected/", protectedRoutes)
	mainRouter.Handle("/", http.HandlerFunc(notFoundHandler))

	s.router = mainRouter
}

func startSessionCleanupScheduler(authService auth.Service) error {
	c := cron.New()
	_, err := c.AddFunc("@every 1h", func() {
		authService.CleanupSessions()
	})
	if err != nil {
		return err
	}
	c.Start()
	return nil
}

func main() {
	if err := checkConfiguration(); err != nil {
		log.Fatalf("Missing configuration, update to start server: %v", err)
	}

	dbService, err := database.NewDBService()
	if err != nil {
		log.Fatalf("Could not initialize database: %v", err)
	}
	defer dbService.Close()

	transactionRepo := infrastructure.NewTransactionRepository(dbService.DB)
	categoryRepo := infrastructure.NewCategoryRepository(dbService.DB)
	accountRepo := infrastructure.NewAccountRepository(dbService.DB)
	goalRepo := infrastructure.NewGoalRepository(dbService.DB)
	scoreRuleRepo := infrastructure.NewScoreRuleRepository(dbService.DB)

	categoryService := application.NewCategoryService(categoryRepo, transactionRepo)
	accountService := application.NewAccountService(accountRepo, transactionRepo)
	transactionService := application.NewTransactionService(transactionRepo, categoryService, accountService)
	goalService := application.NewGoalService(goalRepo, categoryService)
	scoreService := application.NewScoreService(scoreRuleRepo, transactionRepo, categoryService)
	dashboardService := application.NewDashboardService(transactionRepo, goalRepo)
	importService := application.NewImportService(transactionRepo, categoryService, accountService)
	exportService := application.NewExportService(transactionRepo)

	userRepo := user.NewUserRepository(dbService.DB)
	userService := user.NewUserService(userRepo, accountService)
	userHandler := user.NewHandler(userService)

	sessionManager := auth.NewSessionManager()
	jwtManager := auth.NewJWTManager()
	authService := auth.NewAuthService(userService, sessionManager, jwtManager)
	authHandler := auth.NewHandler(authService)

	server := &Server{
		dbService:          dbService,
		authHandler:        authHandler,
		authService:        authService,
		userHandler:        userHandler,
		transactionHandler: interfaces.NewTransactionHandler(transactionService, respondJSON, respondError),
		categoryHandler:    interfaces.NewCategoryHandler(categoryService, respondJSON, respondError),
		accountHandler:     interfaces.NewAccountHandler(accountService, respondJSON, respondError),
		goalHandler:        interfaces.NewGoalHandler(goalService, respondJSON, respondError),
		scoreHandler:       interfaces.NewScoreHandler(scoreService, respondJSON, respondError),
		dashboardHandler:   interfaces.NewDashboardHandler(dashboardService, respondJSON, respondError),
		exportHandler:      interfaces.NewExportHandler(exportService, importService, respondJSON, respondError),
	}
	server.RegisterRoutes()

	if err := startSessionCleanupScheduler(authService); err != nil {
		log.Fatalf("Scheduler didn't start, stopping the app ...")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	handler := loggingMiddleware(server.router)
	log.Printf("Server starting on port %s...", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
