package auth

import (
	"time"

	"github.com/simpdb/simpdb-api/model"
	"github.com/simpdb/simpdb-api/utils/auth"
	"github.com/simpdb/simpdb-api/utils/middleware"
	"github.com/simpdb/simpdb-api/utils/validation"
	"gorm.io/gorm"
)

// AuthHandler handles authentication requests. There is no self-registration:
// the admin account is seeded and lecturer accounts are provisioned when a
// lecturer record is created.
type AuthHandler struct {
	db                   *gorm.DB
	jwtManager           *auth.JWTManager
	blacklistService     *auth.BlacklistService
	bruteForceProtection *middleware.BruteForceProtection
	validator            *validation.Validator
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(db *gorm.DB, jwtManager *auth.JWTManager, bruteForce *middleware.BruteForceProtection) *AuthHandler {
	return &AuthHandler{
		db:                   db,
		jwtManager:           jwtManager,
		blacklistService:     auth.NewBlacklistService(db),
		bruteForceProtection: bruteForce,
		validator:            validation.NewValidator(),
	}
}

// UserResponse is the account payload returned by auth endpoints
type UserResponse struct {
	ID         uint            `json:"id"`
	Username   string          `json:"username"`
	Name       string          `json:"name"`
	Role       string          `json:"role"`
	LecturerID *uint           `json:"lecturer_id,omitempty"`
	Lecturer   *model.Lecturer `json:"lecturer,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func toUserResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:         user.ID,
		Username:   user.Username,
		Name:       user.Name,
		Role:       user.Role,
		LecturerID: user.LecturerID,
		Lecturer:   user.Lecturer,
		CreatedAt:  user.CreatedAt,
		UpdatedAt:  user.UpdatedAt,
	}
}

func lecturerIDOf(user *model.User) uint {
	if user.LecturerID == nil {
		return 0
	}
	return *user.LecturerID
}
