package repository

import (
	"flashcard_app/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// FindFlashcardsByDeckID returns all flashcards belonging to a deck
func FindFlashcardsByDeckID(db *gorm.DB, deckID uint) ([]domain.Flashcard, error) {
	var cards []domain.Flashcard
	if err := db.Where("deck_id = ?", deckID).Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

// FindFlashcardByID looks up a flashcard by its primary key (global, not deck-scoped)
func FindFlashcardByID(db *gorm.DB, id uint) (*domain.Flashcard, error) {
	var card domain.Flashcard
	if err := db.First(&card, id).Error; err != nil {
		return nil, err // Not found or database error
	}
	return &card, nil
}

// FlashcardExistsByID reports whether a flashcard with the given id exists
func FlashcardExistsByID(db *gorm.DB, id uint) (bool, error) {
	var count int64
	if err := db.Model(&domain.Flashcard{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountFlashcardsByDeckID returns the live flashcard count for a deck
func CountFlashcardsByDeckID(db *gorm.DB, deckID uint) (int, error) {
	var count int64
	if err := db.Model(&domain.Flashcard{}).Where("deck_id = ?", deckID).Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

// CreateFlashcard persists a new flashcard
func CreateFlashcard(db *gorm.DB, card *domain.Flashcard) error {
	return db.Create(card).Error
}

// DeleteFlashcard deletes a flashcard by id
func DeleteFlashcard(db *gorm.DB, id uint) error {
	return db.Delete(&domain.Flashcard{}, id).Error
}

// SaveFlashcard persists changes to an existing flashcard
func SaveFlashcard(db *gorm.DB, card *domain.Flashcard) error {
	return db.Save(card).Error
}
