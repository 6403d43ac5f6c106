package handlers

import (
	"net/http"
	"time"

	"github.com/aminebkr/linkup-backend/internal/models"
	"github.com/aminebkr/linkup-backend/internal/repositories"
	"github.com/aminebkr/linkup-backend/pkg/uploads"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	userRepository repositories.UserRepository
	uploadDir      string
	jwtSecret      string
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo repositories.UserRepository, uploadDir, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		userRepository: userRepo,
		uploadDir:      uploadDir,
		jwtSecret:      jwtSecret,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
}

// RegisterProtectedRoutes registers the routes that require a valid JWT
func (h *AuthHandler) RegisterProtectedRoutes(g *echo.Group) {
	g.GET("/me", h.Me)
}

// Register handles account creation. The request is multipart: the profile
// fields plus an optional avatar file.
func (h *AuthHandler) Register(c echo.Context) error {
	req := models.RegisterRequest{
		Username: c.FormValue("username"),
		Email:    c.FormValue("email"),
		Password: c.FormValue("password"),
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "All fields are required"})
	}

	// Check if a user with the same email already exists
	if _, err := h.userRepository.GetUserByEmail(c.Request().Context(), req.Email); err == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Email already exists"})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}

	avatar := ""
	if file, err := c.FormFile("avatar"); err == nil {
		name, err := uploads.SaveFile(h.uploadDir, file)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to store avatar")
		}
		avatar = name
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashedPassword),
		Avatar:   avatar,
	}

	if err := h.userRepository.CreateUser(c.Request().Context(), user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "User registered successfully", "user": user})
}

// Login authenticates by email and password and issues a JWT access token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Email and password are required"})
	}

	user, err := h.userRepository.GetUserByEmail(c.Request().Context(), req.Email)
	if err != nil {
		if err == repositories.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Incorrect password"})
	}

	token, err := h.generateJWT(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token")
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Login successful", "user": user, "token": token})
}

// Me returns the account of the authenticated caller.
func (h *AuthHandler) Me(c echo.Context) error {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	user, err := h.userRepository.GetUserByID(c.Request().Context(), claims.UserID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}

	return c.JSON(http.StatusOK, user)
}

// generateJWT generates a JWT token for a given user
func (h *AuthHandler) generateJWT(user *models.User) (string, error) {
	claims := &models.JwtCustomClaims{
		UserID:   user.ID.Hex(),
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(30 * 24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}
