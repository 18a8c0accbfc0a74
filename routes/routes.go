package routes

import (
	"github.com/rdg11/recipe-app-backend/controllers"
	"github.com/rdg11/recipe-app-backend/middlewares"
	"github.com/rdg11/recipe-app-backend/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter wires services, controllers and routes. Every service gets the
// one injected DB handle; nothing reaches for a global connection.
func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	hub := services.NewPantryHub()
	pantrySvc := services.NewPantryService(db)
	recipeSvc := services.NewRecipeService(db, pantrySvc, services.NewGenerationService())

	authCtrl := controllers.NewAuthController(services.NewAuthService(db))
	userCtrl := controllers.NewUserController(services.NewUserService(db))
	pantryCtrl := controllers.NewPantryController(pantrySvc, hub)
	recipeCtrl := controllers.NewRecipeController(recipeSvc)
	realtimeCtrl := controllers.NewRealtimeController(hub)

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", authCtrl.Register)
		auth.POST("/login", authCtrl.Login)
	}

	protected := r.Group("/")
	protected.Use(middlewares.AuthMiddleware(db))
	{
		protected.GET("/user/profile", userCtrl.GetProfile)
		protected.PATCH("/user/preferences", userCtrl.UpdatePreferences)

		protected.GET("/pantry", pantryCtrl.GetPantry)
		protected.PATCH("/pantry", pantryCtrl.UpdatePantry)

		protected.POST("/recipes/generate", recipeCtrl.Generate)
		protected.POST("/recipes/save", recipeCtrl.SaveRecipe)
		protected.POST("/recipes/save-ai", recipeCtrl.SaveAIRecipe)
		protected.GET("/recipes/favorites", recipeCtrl.ListFavorites)
		protected.DELETE("/recipes/favorites/:id", recipeCtrl.DeleteFavorite)
		protected.POST("/recipes/:id/reviews", recipeCtrl.CreateReview)
		protected.GET("/recipes/:id/reviews", recipeCtrl.ListReviews)

		protected.GET("/ws/pantry", realtimeCtrl.PantryWS)
	}

	return r
}
