package api

import (
	"flashcard_app/internal/middleware" // Request-gating middleware

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// RegisterRoutes wires every endpoint onto the router.
// Auth, deck, and test routes are public; flashcard routes require a valid session token.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, jwtSecret string) {
	// Auth routes (public)
	r.POST("/auth/register", RegisterHandler(db, jwtSecret))            // Registration endpoint
	r.POST("/auth/login", LoginHandler(db, jwtSecret))                  // Login endpoint
	r.POST("/auth/oauth/callback", OAuthCallbackHandler(db, jwtSecret)) // Federated login endpoint

	// Deck routes (public)
	r.GET("/decks", ListDecksHandler(db, rdb))                  // List all decks
	r.GET("/decks/:id", GetDeckHandler(db, rdb))                // Get a deck by id
	r.GET("/decks/user/:userId", ListUserDecksHandler(db, rdb)) // List a user's decks
	r.POST("/decks", CreateDeckHandler(db, rdb))                // Create a deck
	r.PUT("/decks/:id", UpdateDeckHandler(db, rdb))             // Update a deck
	r.DELETE("/decks/:id", DeleteDeckHandler(db, rdb))          // Delete a deck

	// Flashcard routes (protected by session token)
	protected := r.Group("", middleware.JWTAuthMiddleware(jwtSecret))
	protected.GET("/decks/:id/flashcards", ListFlashcardsHandler(db))                  // List a deck's flashcards
	protected.GET("/flashcards/:id", GetFlashcardHandler(db))                          // Get a flashcard by id
	protected.POST("/decks/:id/flashcards", CreateFlashcardHandler(db, rdb))           // Create a flashcard
	protected.PUT("/decks/:id/flashcards/:cardID", UpdateFlashcardHandler(db))         // Update a flashcard
	protected.DELETE("/decks/:id/flashcards/:cardID", DeleteFlashcardHandler(db, rdb)) // Delete a flashcard

	// Connectivity-check routes (public)
	r.GET("/test", TestGetHandler())   // Status endpoint
	r.POST("/test", TestPostHandler()) // Echo endpoint
}
