package routes

import (
	"Grimoire/controllers"
	"Grimoire/middleware"
	"Grimoire/services/catalog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, db *gorm.DB, store *catalog.Store) {
	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/")

	api.GET("/status", controllers.Status)

	api.GET("/cards", controllers.GetAllCards(store))

	api.POST("/deck/calculate_size", controllers.CalculateDeckSize())

	api.POST("/account/create", controllers.CreateAccount(db, store))

	api.POST("/card_used", controllers.CardUsed())

	// Every endpoint below re-verifies player_id (or dm_player_id) and
	// password from the request body. There is no session token.
	authenticated := api.Group("/")
	authenticated.Use(middleware.PlayerAuth(db))
	{
		authenticated.POST("/account/login", controllers.Login())

		authenticated.POST("/account/save", controllers.SaveDeck(db))

		authenticated.POST("/booster/open", controllers.OpenBooster(db, store))

		authenticated.POST("/player/open_pending_booster", controllers.OpenPendingBooster(db, store))

		authenticated.POST("/player/accept_pending_card", controllers.AcceptPendingCard(db, store))

		authenticated.POST("/player/pending_items", controllers.PendingItems())

		authenticated.POST("/player/join_session", controllers.JoinSession(db))

		authenticated.POST("/dm/create_session", controllers.CreateSession(db))

		authenticated.POST("/dm/my_sessions", controllers.MySessions(db))

		authenticated.POST("/dm/sessions/:session_id/players", controllers.SessionPlayers(db))

		authenticated.POST("/dm/give_card", controllers.GiveCard(db, store))

		authenticated.POST("/dm/give_booster", controllers.GiveBooster(db))

		authenticated.POST("/dm/create_custom_card", controllers.CreateCustomCard(store))
	}
}
