package domain

// Flashcard Model
type Flashcard struct {
	ID     uint   `gorm:"primaryKey"`     // Primary key
	Front  string `gorm:"not null"`       // Front side text
	Back   string `gorm:"not null"`       // Back side text
	DeckID uint   `gorm:"not null;index"` // Foreign key to the owning Deck
}
