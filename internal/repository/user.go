package repository

import (
	"flashcard_app/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// FindUserByEmail looks up a user by email address
func FindUserByEmail(db *gorm.DB, email string) (*domain.User, error) {
	var user domain.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err // Not found or database error
	}
	return &user, nil
}

// FindUserByUsername looks up a user by username
func FindUserByUsername(db *gorm.DB, username string) (*domain.User, error) {
	var user domain.User
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err // Not found or database error
	}
	return &user, nil
}

// UserExistsByEmail reports whether a user with the given email exists
func UserExistsByEmail(db *gorm.DB, email string) (bool, error) {
	var count int64
	if err := db.Model(&domain.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// UserExistsByUsername reports whether a user with the given username exists
func UserExistsByUsername(db *gorm.DB, username string) (bool, error) {
	var count int64
	if err := db.Model(&domain.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateUser persists a new user
func CreateUser(db *gorm.DB, user *domain.User) error {
	return db.Create(user).Error
}
