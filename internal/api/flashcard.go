package api

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes

	"flashcard_app/internal/domain"     // Importing domain models
	"flashcard_app/internal/repository" // Typed query operations

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// FlashcardRequest is the client-supplied flashcard body for create and update
type FlashcardRequest struct {
	Front string `json:"front"` // Front side text
	Back  string `json:"back"`  // Back side text
}

// FlashcardResponse is the flashcard shape returned by every flashcard endpoint
type FlashcardResponse struct {
	ID     uint   `json:"id"`     // Flashcard ID
	Front  string `json:"front"`  // Front side text
	Back   string `json:"back"`   // Back side text
	DeckID uint   `json:"deckId"` // Owning deck ID
}

// toFlashcardResponse projects a flashcard entity onto its response shape
func toFlashcardResponse(card *domain.Flashcard) FlashcardResponse {
	return FlashcardResponse{
		ID:     card.ID,     // Flashcard ID
		Front:  card.Front,  // Front side text
		Back:   card.Back,   // Back side text
		DeckID: card.DeckID, // Owning deck ID
	}
}

// ListFlashcardsHandler returns all flashcards belonging to a deck
func ListFlashcardsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		deckID, ok := parseIDParam(c, "id")
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"message": "Deck not found with id: " + c.Param("id")})
			return
		}
		// The parent deck must exist
		exists, err := repository.DeckExistsByID(db, deckID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error retrieving flashcards: " + err.Error()})
			return
		}
		if !exists {
			c.JSON(http.StatusNotFound, gin.H{"message": "Deck not found with id: " + c.Param("id")})
			return
		}
		cards, err := repository.FindFlashcardsByDeckID(db, deckID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error retrieving flashcards: " + err.Error()})
			return
		}
		resp := make([]FlashcardResponse, 0, len(cards))
		for i := range cards {
			resp = append(resp, toFlashcardResponse(&cards[i]))
		}
		c.JSON(http.StatusOK, resp)
	}
}

// GetFlashcardHandler returns a flashcard by its own id.
// Lookup is global, not deck-scoped.
func GetFlashcardHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"message": "Flashcard not found with id: " + c.Param("id")})
			return
		}
		card, err := repository.FindFlashcardByID(db, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Flashcard not found with id: " + c.Param("id")})
			return
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error retrieving flashcard: " + err.Error()})
			return
		}
		c.JSON(http.StatusOK, toFlashcardResponse(card))
	}
}

// CreateFlashcardHandler attaches a new flashcard to a deck and refreshes the
// deck's card count in the same transaction
func CreateFlashcardHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		deckID, ok := parseIDParam(c, "id")
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"message": "Deck not found with id: " + c.Param("id")})
			return
		}
		deck, err := repository.FindDeckByID(db, deckID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Deck not found with id: " + c.Param("id")})
			return
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error creating flashcard: " + err.Error()})
			return
		}
		var req FlashcardRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
			return
		}
		card := domain.Flashcard{
			Front:  req.Front, // Front side text
			Back:   req.Back,  // Back side text
			DeckID: deckID,    // Attach to the parent deck
		}
		// Write the flashcard and the recomputed card count atomically
		err = db.Transaction(func(tx *gorm.DB) error {
			if err := repository.CreateFlashcard(tx, &card); err != nil {
				return err // Return error to rollback
			}
			count, err := repository.CountFlashcardsByDeckID(tx, deckID)
			if err != nil {
				return err // Return error to rollback
			}
			deck.CardCount = count // Keep the denormalized count consistent
			return repository.SaveDeck(tx, deck)
		})
		if err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"deck_id": deckID,      // Deck ID
				"error":   err.Error(), // Error message
			}).Error("Failed to create flashcard")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error creating flashcard: " + err.Error()})
			return
		}
		invalidateDeckCache(rdb, deckID, deck.UserID) // The cached card count is now stale
		c.JSON(http.StatusCreated, toFlashcardResponse(&card))
	}
}

// UpdateFlashcardHandler overwrites a flashcard's front and back.
// The deck association is immutable and the card count is unchanged.
func UpdateFlashcardHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		deckID, ok := parseIDParam(c, "id")
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"message": "Deck not found with id: " + c.Param("id")})
			return
		}
		exists, err := repository.DeckExistsByID(db, deckID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating flashcard: " + err.Error()})
			return
		}
		if !exists {
			c.JSON(http.StatusNotFound, gin.H{"message": "Deck not found with id: " + c.Param("id")})
			return
		}
		cardID, ok := parseIDParam(c, "cardID")
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"message": "Flashcard not found with id: " + c.Param("cardID")})
			return
		}
		card, err := repository.FindFlashcardByID(db, cardID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Flashcard not found with id: " + c.Param("cardID")})
			return
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating flashcard: " + err.Error()})
			return
		}
		var req FlashcardRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
			return
		}
		card.Front = req.Front // Overwrite front
		card.Back = req.Back   // Overwrite back
		if err := repository.SaveFlashcard(db, card); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating flashcard: " + err.Error()})
			return
		}
		c.JSON(http.StatusOK, toFlashcardResponse(card))
	}
}

// DeleteFlashcardHandler deletes a flashcard and refreshes the deck's card count
// in the same transaction
func DeleteFlashcardHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		deckID, ok := parseIDParam(c, "id")
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"message": "Deck not found with id: " + c.Param("id")})
			return
		}
		deck, err := repository.FindDeckByID(db, deckID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Deck not found with id: " + c.Param("id")})
			return
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error deleting flashcard: " + err.Error()})
			return
		}
		cardID, ok := parseIDParam(c, "cardID")
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"message": "Flashcard not found with id: " + c.Param("cardID")})
			return
		}
		exists, err := repository.FlashcardExistsByID(db, cardID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error deleting flashcard: " + err.Error()})
			return
		}
		if !exists {
			c.JSON(http.StatusNotFound, gin.H{"message": "Flashcard not found with id: " + c.Param("cardID")})
			return
		}
		// Delete the flashcard and the recomputed card count atomically
		err = db.Transaction(func(tx *gorm.DB) error {
			if err := repository.DeleteFlashcard(tx, cardID); err != nil {
				return err // Return error to rollback
			}
			count, err := repository.CountFlashcardsByDeckID(tx, deckID)
			if err != nil {
				return err // Return error to rollback
			}
			deck.CardCount = count // Keep the denormalized count consistent
			return repository.SaveDeck(tx, deck)
		})
		if err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"deck_id": deckID,      // Deck ID
				"card_id": cardID,      // Flashcard ID
				"error":   err.Error(), // Error message
			}).Error("Failed to delete flashcard")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error deleting flashcard: " + err.Error()})
			return
		}
		invalidateDeckCache(rdb, deckID, deck.UserID) // The cached card count is now stale
		c.Status(http.StatusNoContent)
	}
}
