package repository

import (
	"flashcard_app/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// FindAllDecks returns every deck
func FindAllDecks(db *gorm.DB) ([]domain.Deck, error) {
	var decks []domain.Deck
	if err := db.Find(&decks).Error; err != nil {
		return nil, err
	}
	return decks, nil
}

// FindDeckByID looks up a deck by its primary key
func FindDeckByID(db *gorm.DB, id uint) (*domain.Deck, error) {
	var deck domain.Deck
	if err := db.First(&deck, id).Error; err != nil {
		return nil, err // Not found or database error
	}
	return &deck, nil
}

// FindDecksByUserID returns all decks owned by a user.
// An unknown user yields an empty slice, not an error.
func FindDecksByUserID(db *gorm.DB, userID uint) ([]domain.Deck, error) {
	var decks []domain.Deck
	if err := db.Where("user_id = ?", userID).Find(&decks).Error; err != nil {
		return nil, err
	}
	return decks, nil
}

// DeckExistsByID reports whether a deck with the given id exists
func DeckExistsByID(db *gorm.DB, id uint) (bool, error) {
	var count int64
	if err := db.Model(&domain.Deck{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateDeck persists a new deck
func CreateDeck(db *gorm.DB, deck *domain.Deck) error {
	return db.Create(deck).Error
}

// SaveDeck persists changes to an existing deck
func SaveDeck(db *gorm.DB, deck *domain.Deck) error {
	return db.Save(deck).Error
}

// DeleteDeck deletes a deck and all of its flashcards
func DeleteDeck(db *gorm.DB, id uint) error {
	// Application-level cascade: children first, then the deck itself
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("deck_id = ?", id).Delete(&domain.Flashcard{}).Error; err != nil {
			return err // Return error to rollback
		}
		return tx.Delete(&domain.Deck{}, id).Error
	})
}
