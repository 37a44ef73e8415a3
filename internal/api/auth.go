package api

import (
	"net/http" // HTTP status codes
	"regexp"   // Email validation
	"strings"  // String manipulation

	"leave_tracker/internal/domain" // Domain models
	"leave_tracker/internal/middleware"
	"leave_tracker/internal/store" // Persistence boundary
	"leave_tracker/internal/utils" // JWT utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"golang.org/x/crypto/bcrypt" // Password hashing
)

// Request struct for registration
type RegisterRequest struct {
	Name            string `json:"name" binding:"required"`             // Display name
	Email           string `json:"email" binding:"required"`            // Email address
	Password        string `json:"password" binding:"required"`         // Plain password
	ConfirmPassword string `json:"confirm_password" binding:"required"` // Must match Password
	Role            string `json:"role"`                                // Optional role, defaults to employee
}

// Request struct for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`    // Email address
	Password string `json:"password" binding:"required"` // Plain password
}

// Response struct for authentication
type AuthResponse struct {
	Token string `json:"token"` // JWT token
	User  gin.H  `json:"user"`  // Minimal user identity
}

var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

// isValidEmail checks the email shape
func isValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// RegisterHandler creates a new user account with default leave balances
func RegisterHandler(users store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide all required fields"})
			return
		}
		// Validate name length
		if len(strings.TrimSpace(req.Name)) < 3 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name must be at least 3 characters"})
			return
		}
		email := strings.ToLower(strings.TrimSpace(req.Email)) // Lowercase email to ensure uniqueness
		if !isValidEmail(email) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide a valid email"})
			return
		}
		// Validate password length and confirmation
		if len(req.Password) < 6 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 6 characters"})
			return
		}
		if req.Password != req.ConfirmPassword {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Passwords do not match"})
			return
		}
		role := req.Role // Optional role
		if role == "" {
			role = domain.RoleEmployee // Default role
		}
		if role != domain.RoleEmployee && role != domain.RoleAdmin {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Role must be either employee or admin"})
			return
		}
		// Hash the password and create the user
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			// If hashing fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		user := &domain.User{
			Name:         strings.TrimSpace(req.Name),
			Email:        email,
			Password:     string(hash),
			Role:         role,
			EarnedLeaves: domain.DefaultBalance, // Default leave entitlement
			SickLeaves:   domain.DefaultBalance, // Default leave entitlement
			IsActive:     true,
		}
		// Attempt to create the user in the database
		if err := users.Create(c.Request.Context(), user); err != nil {
			// Creation fails on a duplicate email
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id": user.ID,
			"email":   user.Email,
			"role":    user.Role,
		}).Info("User registered")
		// Return success response
		c.JSON(http.StatusCreated, gin.H{
			"message": "User registered successfully",
			"user": gin.H{
				"id":    user.ID,
				"name":  user.Name,
				"email": user.Email,
				"role":  user.Role,
			},
		})
	}
}

// LoginHandler authenticates a user and returns a JWT token
func LoginHandler(users store.UserStore, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide email and password"})
			return
		}
		// Fetch user by email
		user, err := users.ByEmail(c.Request.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
		if err != nil {
			// If user not found, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		// Compare provided password with stored hash
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		// Deactivated accounts cannot log in
		if !user.IsActive {
			c.JSON(http.StatusForbidden, gin.H{"error": "Your account has been deactivated"})
			return
		}
		// Generate JWT token
		token, err := utils.GenerateJWT(user, jwtSecret)
		if err != nil {
			// If token generation fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		// Return the token plus minimal identity in the response
		c.JSON(http.StatusOK, AuthResponse{
			Token: token,
			User: gin.H{
				"id":            user.ID,
				"name":          user.Name,
				"email":         user.Email,
				"role":          user.Role,
				"earned_leaves": user.EarnedLeaves,
				"sick_leaves":   user.SickLeaves,
			},
		})
	}
}

// ProfileHandler returns the authenticated user's record
func ProfileHandler(users store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := middleware.Principal(c) // Get principal from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		user, err := users.ByID(c.Request.Context(), p.UserID)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}
