package main

import (
	"net/http"

	"tasknest/backend/internal/cache"
	"tasknest/backend/internal/config"
	"tasknest/backend/internal/handlers"
	"tasknest/backend/internal/middleware"
	"tasknest/backend/internal/monitoring"
	"tasknest/backend/internal/services"
	"tasknest/backend/internal/token"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const loginPage = `<!DOCTYPE html>
<html><head><title>Log in</title></head>
<body><h1>Log in</h1>
<form id="login"><input name="email" type="email" placeholder="Email">
<input name="password" type="password" placeholder="Password">
<button type="submit">Log in</button></form>
<a href="/register">Create an account</a></body></html>`

const registerPage = `<!DOCTYPE html>
<html><head><title>Register</title></head>
<body><h1>Register</h1>
<form id="register"><input name="name" placeholder="Name">
<input name="email" type="email" placeholder="Email">
<input name="password" type="password" placeholder="Password">
<button type="submit">Sign up</button></form>
<a href="/login">Already have an account?</a></body></html>`

const dashboardPage = `<!DOCTYPE html>
<html><head><title>My Tasks</title></head>
<body><h1>My Tasks</h1><div id="tasks"></div>
<form id="new-task"><input name="title" placeholder="Title">
<input name="description" placeholder="Description">
<button type="submit">Add</button></form></body></html>`

// NewRouter wires middleware, services, and routes. redisCache may be nil,
// in which case task reads go straight to the database.
func NewRouter(db *gorm.DB, redisCache *cache.RedisCache, cfg *config.Config) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RecoveryWithLog())
	router.Use(monitoring.MetricsMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: true,
	}))
	router.Use(middleware.RateLimit(cfg.RateLimit))

	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{
			"error":   "method_not_allowed",
			"message": "Method not allowed",
		})
	})

	codec := token.NewCodec(cfg.Auth.SessionSecret, cfg.Auth.SessionTTL)
	authService := services.NewAuthService(cfg.Auth.BCryptCost)

	var taskService services.TaskService = services.NewTaskService()
	if redisCache != nil {
		taskService = services.NewCachedTaskService(taskService, redisCache)
	}

	authHandler := handlers.NewAuthHandler(db, authService, codec, cfg.Auth.SessionTTL)
	taskHandler := handlers.NewTaskHandler(db, taskService)

	auth := router.Group("/api/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/check", middleware.RequireSession(codec), authHandler.Check)
	}

	tasks := router.Group("/api/tasks")
	tasks.Use(middleware.RequireSession(codec))
	{
		tasks.GET("", taskHandler.ListTasks)
		tasks.POST("", taskHandler.CreateTask)
		tasks.PUT("/:id", taskHandler.UpdateTask)
		tasks.DELETE("/:id", taskHandler.DeleteTask)
	}

	pages := router.Group("/")
	pages.Use(middleware.PageGuard(codec))
	{
		pages.GET("/login", servePage(loginPage))
		pages.GET("/register", servePage(registerPage))
		pages.GET("/dashboard", servePage(dashboardPage))
	}

	router.GET("/health", monitoring.HealthHandler())
	router.GET("/metrics", monitoring.MetricsHandler())

	return router
}

func servePage(page string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
	}
}
