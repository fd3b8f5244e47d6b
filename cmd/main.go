package main

import (
	"context"

	"github.com/ashwithareddy05/SiteLink-Architectureapp/internal/handler"
	"github.com/ashwithareddy05/SiteLink-Architectureapp/internal/middleware"
	"github.com/ashwithareddy05/SiteLink-Architectureapp/internal/model"
	"github.com/ashwithareddy05/SiteLink-Architectureapp/pkg/config"
	"github.com/ashwithareddy05/SiteLink-Architectureapp/pkg/database"
	"github.com/ashwithareddy05/SiteLink-Architectureapp/pkg/jwtutil"
	"github.com/ashwithareddy05/SiteLink-Architectureapp/pkg/logger"
	"github.com/ashwithareddy05/SiteLink-Architectureapp/pkg/mediastore"
	"github.com/ashwithareddy05/SiteLink-Architectureapp/prometheus"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	logger.InitLogger(cfg)
	log := logger.GetLogger()
	log.Info("Starting SiteLink service...", zap.String("environment", cfg.Server.Env))

	// Initialize database
	if err := database.InitDB(cfg); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Initialize JWT utility
	jwtutil.Initialize(&cfg.JWT)
	log.Info("JWT utility initialized")

	// Initialize media storage for resumes and firm logos
	if err := mediastore.Init(context.Background(), &cfg.Media); err != nil {
		log.Fatal("Failed to initialize media storage", zap.Error(err))
	}
	log.Info("Media storage initialized", zap.String("bucket", cfg.Media.Bucket))

	// Initialize Echo framework
	e := echo.New()

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware(log))
	e.Use(prometheus.MetricsMiddleware())

	// Public routes - no authentication required
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", handler.MetricsHandler)
	e.GET("/", handler.Home)

	// Session lifecycle
	e.POST("/register", handler.Register)
	e.POST("/login", handler.Login)
	e.POST("/logout", handler.Logout)

	// Public listing and profiles
	e.GET("/internships", handler.ListInternships)
	e.GET("/internship/:id", handler.InternshipDetail)
	e.GET("/firm/profile/:id", handler.FirmProfile)

	// Student routes
	student := e.Group("", middleware.AuthMiddleware, middleware.RequireRole(model.RoleStudent))
	student.GET("/student/dashboard", handler.StudentDashboard)
	student.GET("/internship/apply/:id", handler.ApplyForm)
	student.POST("/internship/apply/:id", handler.Apply)
	student.POST("/media/resume", handler.UploadResume)

	// Firm routes
	firm := e.Group("/firm", middleware.AuthMiddleware, middleware.RequireRole(model.RoleFirm))
	firm.GET("/dashboard", handler.FirmDashboard)
	firm.GET("/post-internship", handler.PostInternshipForm)
	firm.POST("/post-internship", handler.PostInternship)
	firm.POST("/internship/:id/delete", handler.DeleteInternship)
	firm.GET("/internship/:id/applicants", handler.ViewApplicants)
	firm.POST("/approve_project/:id", handler.ApproveProject)
	firm.POST("/media/logo", handler.UploadLogo)

	// Client routes
	client := e.Group("/client", middleware.AuthMiddleware, middleware.RequireRole(model.RoleClient))
	client.GET("/dashboard", handler.ClientDashboard)
	client.POST("/dashboard", handler.SubmitProject)

	// Shared authenticated routes
	authed := e.Group("", middleware.AuthMiddleware)
	authed.GET("/notifications", handler.ListNotifications)
	authed.POST("/notifications/:id/read", handler.MarkNotificationRead)
	authed.GET("/media/:kind/:key", handler.DownloadMedia)

	// Start server
	port := cfg.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
