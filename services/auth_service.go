package services

import (
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/dailyudhari/udhari-backend/models"
	"github.com/dailyudhari/udhari-backend/repository"
	"github.com/dailyudhari/udhari-backend/utils"
)

// AuthService handles registration, login and JWT issuance
type AuthService struct {
	userRepo      *repository.UserRepository
	groupRepo     *repository.GroupRepository
	secretKey     []byte
	tokenDuration time.Duration
}

// Claims represents the custom JWT claims for a user session
type Claims struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo *repository.UserRepository, groupRepo *repository.GroupRepository, secretKey string, tokenDuration time.Duration) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		groupRepo:     groupRepo,
		secretKey:     []byte(secretKey),
		tokenDuration: tokenDuration,
	}
}

// Register creates an account with a hashed password and fulfills any group
// invitations pending on the mobile number.
func (s *AuthService) Register(req *models.RegisterRequest) (*models.AuthResponse, error) {
	mobile := utils.NormalizeMobile(req.MobileNumber)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if existing, err := s.userRepo.FindByEmail(email); err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	} else if existing != nil {
		return nil, utils.NewValidationError("user with this email already exists")
	}
	if existing, err := s.userRepo.FindByMobile(mobile); err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	} else if existing != nil {
		return nil, utils.NewValidationError("user with this mobile number already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, utils.NewInternalError("failed to hash password")
	}

	user := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		MobileNumber: mobile,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.CreateUser(user); err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToStore)
	}

	// Fulfill pending invitations created before this number registered.
	groupIDs, err := s.groupRepo.GetPendingInvitations(mobile)
	if err == nil && len(groupIDs) > 0 {
		for _, groupID := range groupIDs {
			if err := s.groupRepo.AddMember(groupID, user.ID); err != nil {
				slog.Warn("failed to fulfill invitation", "group_id", groupID, "user_id", user.ID, "error", err)
			}
		}
		if err := s.groupRepo.DeletePendingInvitations(mobile); err != nil {
			slog.Warn("failed to clear invitations", "mobile", mobile, "error", err)
		}
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, utils.NewInternalError("failed to sign token")
	}
	return &models.AuthResponse{Token: token, User: user}, nil
}

// Login authenticates by email or mobile number plus password
func (s *AuthService) Login(req *models.LoginRequest) (*models.AuthResponse, error) {
	var user *models.User
	var err error

	switch {
	case req.Email != "":
		user, err = s.userRepo.FindByEmail(strings.ToLower(strings.TrimSpace(req.Email)))
	case req.MobileNumber != "":
		user, err = s.userRepo.FindByMobile(utils.NormalizeMobile(req.MobileNumber))
	default:
		return nil, utils.NewValidationError("email or mobileNumber is required")
	}
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	if user == nil {
		return nil, utils.NewUnauthorizedError(utils.ErrInvalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, utils.NewUnauthorizedError(utils.ErrInvalidCredentials)
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, utils.NewInternalError("failed to sign token")
	}
	return &models.AuthResponse{Token: token, User: user}, nil
}

// SearchUser finds a user by email or mobile number
func (s *AuthService) SearchUser(query string) (*models.User, error) {
	var user *models.User
	var err error
	if strings.Contains(query, "@") {
		user, err = s.userRepo.FindByEmail(strings.ToLower(strings.TrimSpace(query)))
	} else {
		user, err = s.userRepo.FindByMobile(utils.NormalizeMobile(query))
	}
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	if user == nil {
		return nil, utils.NewNotFoundError("User")
	}
	return user, nil
}

func (s *AuthService) generateToken(user *models.User) (string, error) {
	claims := &Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

// ValidateToken parses and validates a JWT, returning the claims if valid
func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, utils.NewUnauthorizedError("unexpected signing method")
		}
		return s.secretKey, nil
	})
	if err != nil {
		return nil, utils.NewUnauthorizedError("invalid or expired token")
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, utils.NewUnauthorizedError("invalid or expired token")
	}
	return claims, nil
}
