package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/spinkerton88/tiny-tastes-tracker-v2-sub001/controllers"
	"github.com/spinkerton88/tiny-tastes-tracker-v2-sub001/middlewares"
	"github.com/spinkerton88/tiny-tastes-tracker-v2-sub001/services"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	store := services.NewGormDocumentStore(db)
	sync := services.NewProfileSynchronizer(store)
	auth := services.NewAuthService(db)
	session := services.NewSession(auth, sync)

	hub := services.NewRealtimeHub()
	alerts := services.NewAlertService(db, hub)
	foods := services.NewFoodLogService(db, alerts)
	growth := services.NewGrowthService(db)
	children := services.NewChildService(db, foods)
	suggestions := services.NewSuggestionService()

	authCtl := controllers.NewAuthController(session)
	profileCtl := controllers.NewProfileController(store, sync)
	childCtl := controllers.NewChildController(children)
	foodCtl := controllers.NewFoodLogController(foods)
	growthCtl := controllers.NewGrowthController(growth)
	balanceCtl := controllers.NewBalanceController(foods, suggestions)
	alertCtl := controllers.NewAlertController(alerts)
	rtCtl := controllers.NewRealtimeController(hub, store)

	// Public auth routes
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", authCtl.Register)
		authGroup.POST("/login", authCtl.Login)
		authGroup.POST("/login/federated", authCtl.LoginFederated)
		authGroup.POST("/forgot-password", authCtl.ForgotPassword)
		authGroup.POST("/reset-password", authCtl.ResetPassword)
	}

	// Protected routes
	api := r.Group("/")
	api.Use(middlewares.AuthMiddleware(db))
	{
		api.POST("/auth/logout", authCtl.Logout)

		api.GET("/profile", profileCtl.GetProfile)
		api.PUT("/profile/status", profileCtl.UpdateStatus)

		api.PUT("/child", childCtl.UpsertChild)
		api.GET("/child", childCtl.GetChild)
		api.GET("/ideas", childCtl.StageIdeas)

		api.POST("/foods/logs", foodCtl.LogFood)
		api.GET("/foods/logs", foodCtl.ListLogs)
		api.DELETE("/foods/logs/:id", foodCtl.RemoveLog)
		api.GET("/foods/logs/prefill", foodCtl.Prefill)

		api.POST("/growth", growthCtl.Create)
		api.GET("/growth", growthCtl.List)
		api.PUT("/growth/:id", growthCtl.Replace)
		api.DELETE("/growth/:id", growthCtl.Delete)

		api.GET("/balance/weekly", balanceCtl.Weekly)
		api.GET("/balance/suggestions", balanceCtl.GapSuggestions)

		api.GET("/alerts", alertCtl.List)
		api.GET("/ws", rtCtl.ProfileWS)

		api.POST("/upload", controllers.UploadImage)
	}

	return r
}
