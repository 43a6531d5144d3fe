// Package api builds the HTTP router: middleware, handlers and routes.
package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/teambuilder-dev/teambuilder/internal/ai"
	iauth "github.com/teambuilder-dev/teambuilder/internal/auth"
	"github.com/teambuilder-dev/teambuilder/internal/handlers"
	"github.com/teambuilder-dev/teambuilder/internal/middleware"
	"github.com/teambuilder-dev/teambuilder/internal/models"
	"github.com/teambuilder-dev/teambuilder/internal/services"
)

// NewRouter builds the Gin engine, wires middleware and registers all routes.
// The generator may be nil; the concierge then always answers from its local
// fallback.
func NewRouter(db *gorm.DB, jwt *iauth.JWTService, generator ai.TextGenerator, conciergeOpts ...services.ConciergeOption) (*gin.Engine, error) {
	if db == nil {
		return nil, fmt.Errorf("database handle must be provided")
	}
	if jwt == nil {
		return nil, fmt.Errorf("jwt service must be provided")
	}

	userService, err := services.NewUserService(db)
	if err != nil {
		return nil, err
	}
	projectService, err := services.NewProjectService(db)
	if err != nil {
		return nil, err
	}
	applicationService, err := services.NewApplicationService(db)
	if err != nil {
		return nil, err
	}
	inviteService, err := services.NewInviteService(db)
	if err != nil {
		return nil, err
	}
	conciergeService, err := services.NewConciergeService(db, generator, conciergeOpts...)
	if err != nil {
		return nil, err
	}

	authHandler := handlers.NewAuthHandler(userService, jwt)
	profileHandler := handlers.NewProfileHandler(userService)
	projectsHandler := handlers.NewProjectsHandler(projectService, userService)
	applicationsHandler := handlers.NewApplicationsHandler(applicationService)
	invitesHandler := handlers.NewInvitesHandler(inviteService)
	studentsHandler := handlers.NewStudentsHandler(userService)
	conciergeHandler := handlers.NewConciergeHandler(conciergeService)

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS())
	// Basic rate limiting: 100 requests/minute per IP+path
	r.Use(middleware.RateLimit(100, time.Minute))

	// Public endpoints
	r.GET("/health", handlers.Health())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := r.Group("/api/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	// Protected routes
	requireAuth := middleware.Auth(jwt)
	requireAdmin := middleware.RequireRole(models.RoleAdmin)
	requireStudent := middleware.RequireRole(models.RoleStudent)

	api := r.Group("/api")
	api.Use(requireAuth)

	api.GET("/auth/me", authHandler.Me)

	profile := api.Group("/profile")
	{
		profile.GET("", profileHandler.Get)
		profile.PUT("", profileHandler.Update)
		profile.GET("/qr", profileHandler.ContactQR)
	}

	projects := api.Group("/projects")
	{
		projects.GET("", projectsHandler.List)
		projects.POST("", requireAdmin, projectsHandler.Create)
		projects.DELETE("/:id", requireAdmin, projectsHandler.Delete)
		projects.GET("/:id/applications", requireAdmin, applicationsHandler.ListForProject)
	}

	applications := api.Group("/applications")
	{
		applications.POST("", requireStudent, applicationsHandler.Apply)
		applications.GET("/mine", requireStudent, applicationsHandler.Mine)
		applications.GET("/accepted", requireStudent, applicationsHandler.Accepted)
		applications.POST("/:id/decision", requireAdmin, applicationsHandler.Decide)
	}

	invites := api.Group("/invites")
	{
		invites.POST("", invitesHandler.Send)
		invites.GET("/received", invitesHandler.Received)
		invites.GET("/sent", invitesHandler.Sent)
		invites.POST("/:id/respond", invitesHandler.Respond)
	}

	api.GET("/students", studentsHandler.List)
	api.POST("/concierge", conciergeHandler.BuildTeam)

	// NotFound fallback
	r.NoRoute(middleware.NotFoundHandler)

	return r, nil
}
