package domain

// User Model
type User struct {
	ID       uint    `gorm:"primaryKey"`      // Primary key
	Username string  `gorm:"unique;not null"` // Unique username
	Email    string  `gorm:"unique;not null"` // Unique email address
	Password *string // Bcrypt hash; nil for federated-login accounts
	Provider *string // Federated-login source (e.g. google); nil for local accounts
	Decks    []Deck  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"` // One-to-many relationship with Deck
}
