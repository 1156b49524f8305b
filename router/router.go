package router

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-tables/controllers"
	"github.com/yeremiapane/restaurant-tables/kds"
	"github.com/yeremiapane/restaurant-tables/middlewares"
	"github.com/yeremiapane/restaurant-tables/models"
	"github.com/yeremiapane/restaurant-tables/services"
	"github.com/yeremiapane/restaurant-tables/utils"
	"gorm.io/gorm"
)

// Deps are the long-lived objects the routes are wired to.
type Deps struct {
	DB         *gorm.DB
	Floor      *services.FloorService
	Journal    *services.Journal
	Hub        *kds.Hub
	Tokens     *utils.TokenManager
	CORSOrigin string

	// optional
	RateLimiter *middlewares.RateLimiter
}

func SetupRouter(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.RequestID())
	if deps.RateLimiter != nil {
		r.Use(deps.RateLimiter.RateLimit())
	}
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(deps.CORSOrigin))
	r.Use(middlewares.LoggerMiddleware())

	userCtrl := controllers.NewUserController(deps.DB, deps.Tokens)
	tableCtrl := controllers.NewTableController(deps.Floor)
	bookingCtrl := controllers.NewBookingController(deps.Floor)
	activityCtrl := controllers.NewActivityController(deps.Journal)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/login", userCtrl.Login)
	}

	r.GET("/tables", tableCtrl.GetAllTables)
	r.GET("/tables/:name", tableCtrl.GetTableByName)
	r.GET("/stats", tableCtrl.GetStats)
	r.GET("/bookings", bookingCtrl.GetAllBookings)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/admin")
	auth.Use(middlewares.AuthMiddleware(deps.Tokens))

	auth.GET("/profile", userCtrl.GetProfile)
	auth.POST("/logout", userCtrl.Logout)
	auth.GET("/users", middlewares.RequireRole(models.RoleAdmin), userCtrl.GetAllUsers)
	auth.POST("/users", middlewares.RequireRole(models.RoleAdmin), userCtrl.Register)

	// TABLES
	tables := auth.Group("/tables")
	tables.Use(middlewares.FloorActionLogger())
	{
		tables.POST("", tableCtrl.CreateTable)
		tables.DELETE("/:name", tableCtrl.DeleteTable)
		tables.POST("/:name/take", tableCtrl.TakeTable)
		tables.POST("/:name/release", tableCtrl.ReleaseTable)
	}

	// BOOKINGS
	auth.POST("/bookings", bookingCtrl.CreateBooking)
	auth.DELETE("/bookings", bookingCtrl.DeleteBookings)

	// JOURNAL
	auth.GET("/activity", activityCtrl.GetActivity)

	// WebSocket endpoint for floor displays
	wsGroup := r.Group("/ws")
	wsGroup.Use(middlewares.WebSocketAuthMiddleware(deps.Tokens))
	{
		wsGroup.GET("", controllers.FloorSocketHandler(deps.Hub, deps.Floor))
	}

	return r
}
