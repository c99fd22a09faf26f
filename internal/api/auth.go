package api

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes

	"flashcard_app/internal/domain"     // Importing domain models
	"flashcard_app/internal/repository" // Typed query operations
	"flashcard_app/internal/utils"      // Utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// Request struct for registration
type RegisterRequest struct {
	Username string `json:"username"` // Desired username
	Password string `json:"password"` // Plaintext password
	Email    string `json:"email"`    // Email address
}

// Request struct for login
type LoginRequest struct {
	Email    string `json:"email"`    // Email address
	Password string `json:"password"` // Plaintext password
}

// Request struct for federated login callbacks
type OAuthRequest struct {
	Email    string `json:"email"`    // Asserted email address
	Name     string `json:"name"`     // Asserted display name, becomes the username
	Provider string `json:"provider"` // Identity provider name
}

// UserResponse is the user summary returned by every auth endpoint
type UserResponse struct {
	ID       uint   `json:"id"`       // User ID
	Username string `json:"username"` // Username
	Email    string `json:"email"`    // Email address
}

// authResponse builds the {token, user} payload shared by all auth endpoints
func authResponse(token string, user *domain.User) gin.H {
	return gin.H{
		"token": token, // Signed session token
		"user": UserResponse{
			ID:       user.ID,       // User ID
			Username: user.Username, // Username
			Email:    user.Email,    // Email address
		},
	}
}

// RegisterHandler creates a local account and issues a session token
func RegisterHandler(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"message": "Username, email, and password are required"})
			return
		}
		// All three fields are required
		if req.Username == "" || req.Email == "" || req.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Username, email, and password are required"})
			return
		}
		// Reject duplicate username or email up front
		emailTaken, err := repository.UserExistsByEmail(db, req.Email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Registration failed: " + err.Error()})
			return
		}
		usernameTaken, err := repository.UserExistsByUsername(db, req.Username)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Registration failed: " + err.Error()})
			return
		}
		if emailTaken || usernameTaken {
			c.JSON(http.StatusConflict, gin.H{"message": "User already exists"})
			return
		}
		// Hash the password and create the user
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			// If hashing fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Registration failed: " + err.Error()})
			return
		}
		hashStr := string(hash)
		user := domain.User{Username: req.Username, Email: req.Email, Password: &hashStr}
		// Attempt to create the user in the database
		if err := repository.CreateUser(db, &user); err != nil {
			// A concurrent registration can still hit the unique constraint
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusConflict, gin.H{"message": "User already exists"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Registration failed: " + err.Error()})
			return
		}
		// Issue a session token for the new account
		token, err := utils.GenerateJWT(user.Username, user.ID, user.Email, jwtSecret)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Registration failed: " + err.Error()})
			return
		}
		// Log successful registration
		logrus.WithFields(logrus.Fields{
			"user_id":  user.ID,       // User ID
			"username": user.Username, // Username
		}).Info("User registered")
		c.JSON(http.StatusCreated, authResponse(token, &user))
	}
}

// LoginHandler authenticates a user by email and password and issues a session token
func LoginHandler(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
			return
		}
		// Look up the user by email; an unknown email is reported as bad credentials,
		// never as not-found
		user, err := repository.FindUserByEmail(db, req.Email)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
			return
		}
		// Federated-login accounts have no password and cannot log in locally
		if user.Password == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
			return
		}
		// Compare provided password with stored hash
		if err := bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
			return
		}
		// Generate session token
		token, err := utils.GenerateJWT(user.Username, user.ID, user.Email, jwtSecret)
		if err != nil {
			// If token generation fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Login failed: " + err.Error()})
			return
		}
		c.JSON(http.StatusOK, authResponse(token, user))
	}
}

// OAuthCallbackHandler signs in a federated identity, creating the user on first sight.
// It trusts the caller-supplied identity claims; the provider handshake is expected
// to happen in a separate trusted layer.
func OAuthCallbackHandler(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req OAuthRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email, name, and provider are required"})
			return
		}
		// All three fields are required
		if req.Email == "" || req.Name == "" || req.Provider == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email, name, and provider are required"})
			return
		}
		// Find existing user by email, or create one without a password
		user, err := repository.FindUserByEmail(db, req.Email)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			newUser := domain.User{Username: req.Name, Email: req.Email, Provider: &req.Provider}
			if err := repository.CreateUser(db, &newUser); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"message": "OAuth callback failed: " + err.Error()})
				return
			}
			// Log first federated login
			logrus.WithFields(logrus.Fields{
				"user_id":  newUser.ID,   // User ID
				"provider": req.Provider, // Identity provider
			}).Info("Federated user created")
			user = &newUser
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "OAuth callback failed: " + err.Error()})
			return
		}
		// Generate session token
		token, err := utils.GenerateJWT(user.Username, user.ID, user.Email, jwtSecret)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "OAuth callback failed: " + err.Error()})
			return
		}
		c.JSON(http.StatusOK, authResponse(token, user))
	}
}
