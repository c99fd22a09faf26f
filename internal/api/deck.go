package api

import (
	"context"  // Context for Redis operations
	"errors"   // Error inspection
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"strings"  // String manipulation
	"time"     // Time durations

	"flashcard_app/internal/domain"     // Importing domain models
	"flashcard_app/internal/repository" // Typed query operations
	"flashcard_app/internal/utils"      // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// deckCacheTTL bounds staleness of the cached deck reads
const deckCacheTTL = 60 * time.Second

// DeckRequest is the client-supplied deck body for create and update
type DeckRequest struct {
	Title       string  `json:"title"`       // Deck title
	Description *string `json:"description"` // Optional description
	CardCount   int     `json:"cardCount"`   // Ignored except for normalization on create
	UserID      *uint   `json:"userId"`      // Optional owning user
}

// DeckResponse is the deck summary shape; it never embeds the flashcard collection
type DeckResponse struct {
	ID          uint    `json:"id"`          // Deck ID
	Title       string  `json:"title"`       // Deck title
	Description *string `json:"description"` // Optional description
	CardCount   int     `json:"cardCount"`   // Denormalized flashcard count
}

// toDeckResponse projects a deck entity onto its summary shape
func toDeckResponse(deck *domain.Deck) DeckResponse {
	return DeckResponse{
		ID:          deck.ID,          // Deck ID
		Title:       deck.Title,       // Deck title
		Description: deck.Description, // Optional description
		CardCount:   deck.CardCount,   // Denormalized flashcard count
	}
}

// Cache keys for the public deck reads
func deckListCacheKey() string         { return "decks:all" }
func deckCacheKey(id uint) string      { return "deck:" + strconv.Itoa(int(id)) }
func userDecksCacheKey(id uint) string { return "decks:user:" + strconv.Itoa(int(id)) }

// invalidateDeckCache drops every cache entry a deck or flashcard write can stale
func invalidateDeckCache(rdb *redis.Client, deckID uint, userID *uint) {
	ctx := context.Background()                           // Context for Redis operations
	_ = utils.DeleteCache(ctx, rdb, deckListCacheKey())   // Invalidate the full listing
	_ = utils.DeleteCache(ctx, rdb, deckCacheKey(deckID)) // Invalidate the single deck
	if userID != nil {
		_ = utils.DeleteCache(ctx, rdb, userDecksCacheKey(*userID)) // Invalidate the owner's listing
	}
}

// parseIDParam parses a numeric path parameter; false means it was not a valid id
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(v), true
}

// ListDecksHandler returns all decks as summaries
func ListDecksHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Context for Redis operations
		var cached []DeckResponse
		// Try to get cached listing
		found, err := utils.GetCache(ctx, rdb, deckListCacheKey(), &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, cached) // Return cached listing
			return
		}
		decks, err := repository.FindAllDecks(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error retrieving decks: " + err.Error()})
			return
		}
		// Project to summaries to avoid serializing the flashcard collections
		resp := make([]DeckResponse, 0, len(decks))
		for i := range decks {
			resp = append(resp, toDeckResponse(&decks[i]))
		}
		_ = utils.SetCache(ctx, rdb, deckListCacheKey(), resp, deckCacheTTL) // Cache the listing
		c.JSON(http.StatusOK, resp)
	}
}

// GetDeckHandler returns a single deck summary
func GetDeckHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"message": "Deck not found with id: " + c.Param("id")})
			return
		}
		ctx := context.Background() // Context for Redis operations
		var cached DeckResponse
		// Try to get cached deck
		found, err := utils.GetCache(ctx, rdb, deckCacheKey(id), &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, cached) // Return cached deck
			return
		}
		deck, err := repository.FindDeckByID(db, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Deck not found with id: " + c.Param("id")})
			return
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error retrieving deck: " + err.Error()})
			return
		}
		resp := toDeckResponse(deck)
		_ = utils.SetCache(ctx, rdb, deckCacheKey(id), resp, deckCacheTTL) // Cache the deck
		c.JSON(http.StatusOK, resp)
	}
}

// ListUserDecksHandler returns the deck summaries owned by a user.
// An unknown user yields an empty list, not an error.
func ListUserDecksHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := parseIDParam(c, "userId")
		if !ok {
			c.JSON(http.StatusOK, []DeckResponse{}) // Non-numeric ids own nothing
			return
		}
		ctx := context.Background() // Context for Redis operations
		var cached []DeckResponse
		// Try to get cached listing for this user
		found, err := utils.GetCache(ctx, rdb, userDecksCacheKey(userID), &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, cached) // Return cached listing
			return
		}
		decks, err := repository.FindDecksByUserID(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error retrieving decks for user: " + err.Error()})
			return
		}
		resp := make([]DeckResponse, 0, len(decks))
		for i := range decks {
			resp = append(resp, toDeckResponse(&decks[i]))
		}
		_ = utils.SetCache(ctx, rdb, userDecksCacheKey(userID), resp, deckCacheTTL) // Cache the listing
		c.JSON(http.StatusOK, resp)
	}
}

// CreateDeckHandler creates a new deck
func CreateDeckHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req DeckRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Deck title cannot be empty"})
			return
		}
		// Title is required and must be non-blank
		if strings.TrimSpace(req.Title) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Deck title cannot be empty"})
			return
		}
		// Normalize a negative card count to zero
		cardCount := req.CardCount
		if cardCount < 0 {
			cardCount = 0
		}
		// The id is always server-assigned, even if the caller supplied one
		deck := domain.Deck{
			Title:       req.Title,       // Deck title
			Description: req.Description, // Optional description
			CardCount:   cardCount,       // Normalized card count
			UserID:      req.UserID,      // Optional owner
		}
		if err := repository.CreateDeck(db, &deck); err != nil {
			// Unique-constraint violations surface as a typed error
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusConflict, gin.H{"message": "A deck with this information already exists"})
				return
			}
			logrus.WithFields(logrus.Fields{
				"title": req.Title,   // Deck title
				"error": err.Error(), // Error message
			}).Error("Failed to create deck")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error: " + err.Error()})
			return
		}
		// Log successful creation
		logrus.WithFields(logrus.Fields{
			"deck_id": deck.ID,    // Deck ID
			"title":   deck.Title, // Deck title
		}).Info("Deck created")
		invalidateDeckCache(rdb, deck.ID, deck.UserID) // Drop stale cache entries
		c.JSON(http.StatusCreated, toDeckResponse(&deck))
	}
}

// UpdateDeckHandler overwrites a deck's title and description.
// The card count and ownership are not mutable through this operation.
func UpdateDeckHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"message": "Deck not found with id: " + c.Param("id")})
			return
		}
		deck, err := repository.FindDeckByID(db, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Deck not found with id: " + c.Param("id")})
			return
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating deck: " + err.Error()})
			return
		}
		var req DeckRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
			return
		}
		deck.Title = req.Title             // Overwrite title
		deck.Description = req.Description // Overwrite description
		if err := repository.SaveDeck(db, deck); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating deck: " + err.Error()})
			return
		}
		invalidateDeckCache(rdb, deck.ID, deck.UserID) // Drop stale cache entries
		c.JSON(http.StatusOK, toDeckResponse(deck))
	}
}

// DeleteDeckHandler deletes a deck and cascades to its flashcards
func DeleteDeckHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"message": "Deck not found with id: " + c.Param("id")})
			return
		}
		deck, err := repository.FindDeckByID(db, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Deck not found with id: " + c.Param("id")})
			return
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error deleting deck: " + err.Error()})
			return
		}
		if err := repository.DeleteDeck(db, id); err != nil {
			logrus.WithFields(logrus.Fields{
				"deck_id": id,          // Deck ID
				"error":   err.Error(), // Error message
			}).Error("Failed to delete deck")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error deleting deck: " + err.Error()})
			return
		}
		invalidateDeckCache(rdb, id, deck.UserID) // Drop stale cache entries
		c.Status(http.StatusNoContent)
	}
}
