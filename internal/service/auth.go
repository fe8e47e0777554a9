package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/safebite/backend/internal/middleware"
	"github.com/safebite/backend/internal/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("an account with this email already exists")
)

type AuthService struct {
	db        *gorm.DB
	jwtSecret string
}

func NewAuthService(db *gorm.DB, jwtSecret string) *AuthService {
	return &AuthService{
		db:        db,
		jwtSecret: jwtSecret,
	}
}

// Register creates a customer account and returns a signed token for it.
func (s *AuthService) Register(ctx context.Context, email, password, address string) (string, *models.User, error) {
	var existing models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error; err == nil {
		return "", nil, ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         models.RoleCustomer,
		Address:      address,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return "", nil, err
	}

	token, err := s.generateToken(user.ID, user.Role)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

// Login verifies credentials and returns a signed token for the account.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.generateToken(user.ID, user.Role)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

// CreateRestaurantAccount provisions a restaurant login plus its approved
// Restaurant record in one transaction. Admin-initiated only; the route
// guard enforces that.
func (s *AuthService) CreateRestaurantAccount(ctx context.Context, email, password, name, cuisine, address string) (*models.Restaurant, error) {
	var existing models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         models.RoleRestaurant,
		Address:      address,
	}

	var restaurant models.Restaurant
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		restaurant = models.Restaurant{
			ID:       user.ID,
			Name:     name,
			Cuisine:  cuisine,
			Email:    email,
			Address:  address,
			Approved: true,
		}
		return tx.Create(&restaurant).Error
	})
	if err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (s *AuthService) generateToken(userID uuid.UUID, role string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"role":    role,
		"exp":     time.Now().Add(time.Hour * 24).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// ValidateToken implements middleware.TokenValidator.
func (s *AuthService) ValidateToken(tokenString string) (*middleware.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, err
	}

	role, _ := claims["role"].(string)
	return &middleware.TokenClaims{
		UserID: userID,
		Role:   role,
	}, nil
}
