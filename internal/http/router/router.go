package router

import (
	"github.com/gin-gonic/gin"

	"github.com/skillmatrix/skill-matrix/internal/app"
	"github.com/skillmatrix/skill-matrix/internal/config"
	"github.com/skillmatrix/skill-matrix/internal/http/handlers"
	"github.com/skillmatrix/skill-matrix/internal/http/middleware"
	"github.com/skillmatrix/skill-matrix/internal/ws"
)

func SetupRouter(cfg *config.Config, a *app.App, hub *ws.Hub) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := a.Services
	healthHandler := handlers.NewHealthHandler(a.Store)
	groupHandler := handlers.NewGroupHandler(s.Groups, s.Users, s.Evaluations)
	userHandler := handlers.NewUserHandler(s.Users, s.Evaluations)
	categoryHandler := handlers.NewCategoryHandler(s.Categories, s.Skills)
	skillHandler := handlers.NewSkillHandler(s.Skills, s.Evaluations)
	evaluationHandler := handlers.NewEvaluationHandler(s.Evaluations)
	exchangeHandler := handlers.NewExchangeHandler(s.Exporter, s.Importer, cfg.MaxUploadSizeMB)
	wsHandler := handlers.NewWSHandler(hub, cfg.AllowedOrigins)
	systemHandler := handlers.NewSystemHandler(s.System)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", healthHandler.Health)

	api := r.Group("/api")
	api.GET("/ws", wsHandler.Handle)

	api.Use(middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod))

	if cfg.IsDevelopment() {
		api.POST("/seed", handlers.NewSeedHandler(s.Seed).Seed)
	}

	api.GET("/levels", evaluationHandler.Levels)

	// Группы
	api.GET("/groups", groupHandler.ListGroups)
	api.POST("/groups", groupHandler.CreateGroup)
	api.GET("/groups/:id", middleware.IDValidator("id"), groupHandler.GetGroup)
	api.PUT("/groups/:id", middleware.IDValidator("id"), groupHandler.UpdateGroup)
	api.DELETE("/groups/:id", middleware.IDValidator("id"), groupHandler.DeleteGroup)
	api.GET("/groups/:id/stats", middleware.IDValidator("id"), groupHandler.GroupStats)
	api.GET("/groups/:id/users", middleware.IDValidator("id"), groupHandler.ListGroupUsers)
	api.GET("/groups/:id/radar", middleware.IDValidator("id"), groupHandler.GroupRadar)

	// Пользователи
	api.GET("/users", userHandler.ListUsers)
	api.POST("/users", userHandler.CreateUser)
	api.GET("/users/:id", middleware.IDValidator("id"), userHandler.GetUser)
	api.PUT("/users/:id", middleware.IDValidator("id"), userHandler.UpdateUser)
	api.DELETE("/users/:id", middleware.IDValidator("id"), userHandler.DeleteUser)
	api.GET("/users/:id/evaluations", middleware.IDValidator("id"), userHandler.ListEvaluations)
	api.DELETE("/users/:id/evaluations/:skillId", middleware.IDValidator("id"), middleware.IDValidator("skillId"), userHandler.DeleteEvaluation)
	api.GET("/users/:id/categories/:categoryId/average", middleware.IDValidator("id"), middleware.IDValidator("categoryId"), userHandler.CategoryAverage)
	api.GET("/users/:id/radar", middleware.IDValidator("id"), userHandler.UserRadar)

	// Категории
	api.GET("/categories", categoryHandler.ListCategories)
	api.GET("/categories/tree", categoryHandler.Tree)
	api.GET("/categories/roots", categoryHandler.ListRoots)
	api.POST("/categories", categoryHandler.CreateCategory)
	api.GET("/categories/:id", middleware.IDValidator("id"), categoryHandler.GetCategory)
	api.PUT("/categories/:id", middleware.IDValidator("id"), categoryHandler.UpdateCategory)
	api.DELETE("/categories/:id", middleware.IDValidator("id"), categoryHandler.DeleteCategory)
	api.PUT("/categories/:id/parent", middleware.IDValidator("id"), categoryHandler.MoveCategory)
	api.GET("/categories/:id/children", middleware.IDValidator("id"), categoryHandler.ListChildren)
	api.GET("/categories/:id/skills", middleware.IDValidator("id"), categoryHandler.ListSkills)

	// Навыки и цели
	api.GET("/skills", skillHandler.ListSkills)
	api.POST("/skills", skillHandler.CreateSkill)
	api.GET("/skills/:id", middleware.IDValidator("id"), skillHandler.GetSkill)
	api.PUT("/skills/:id", middleware.IDValidator("id"), skillHandler.UpdateSkill)
	api.DELETE("/skills/:id", middleware.IDValidator("id"), skillHandler.DeleteSkill)
	api.PUT("/skills/:id/target", middleware.IDValidator("id"), skillHandler.SetTarget)
	api.DELETE("/skills/:id/target", middleware.IDValidator("id"), skillHandler.ClearTarget)

	// Оценки
	api.PUT("/evaluations", evaluationHandler.SetEvaluation)
	api.POST("/evaluations/bulk", evaluationHandler.BulkSetEvaluations)
	api.POST("/gap", evaluationHandler.ComputeGap)

	// Обслуживание
	api.GET("/system/info", systemHandler.Info)
	api.POST("/system/backup", systemHandler.Backup)

	// Обмен файлами
	api.GET("/export", exchangeHandler.Export)
	api.POST("/import", exchangeHandler.Import)

	return r
}
