package domain

// Deck Model
type Deck struct {
	ID          uint        `gorm:"primaryKey"` // Primary key
	Title       string      `gorm:"not null"`   // Deck title
	Description *string     // Optional description
	CardCount   int         `gorm:"not null;default:0"`                            // Denormalized count of flashcards in this deck
	UserID      *uint       `gorm:"index"`                                         // Foreign key to User; nil for ownerless decks
	Flashcards  []Flashcard `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"` // One-to-many relationship with Flashcard
}
