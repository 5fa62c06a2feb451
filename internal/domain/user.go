package domain

import (
	"crypto/rand"
	"math/big"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleUser   = "user"
	RoleRenter = "renter"
	RoleAdmin  = "admin"
)

func IsValidRole(role string) bool {
	switch role {
	case RoleUser, RoleRenter, RoleAdmin:
		return true
	default:
		return false
	}
}

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	Photo        string             `bson:"photo" json:"photo"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	Role         string             `bson:"role" json:"role"`
	RenterCode   string             `bson:"renter_code,omitempty" json:"renter_code,omitempty"`
	FailedLogins int                `bson:"failed_logins" json:"-"`
	Locked       bool               `bson:"locked" json:"-"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Photo    string `json:"photo"`
}

func (r *RegisterRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = NormalizeEmail(r.Email)
}

func (r *RegisterRequest) Validate() error {
	if r.Name == "" {
		return ValidationError("Name is required")
	}
	if !IsValidEmail(r.Email) {
		return ValidationError("A valid email is required")
	}
	if len(r.Password) < 6 {
		return ValidationError("Password must be at least 6 characters")
	}
	return nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Normalize() {
	r.Email = NormalizeEmail(r.Email)
}

type SocialLoginRequest struct {
	Email string `json:"email"`
	Name  string `json:"displayName"`
	Photo string `json:"photoURL"`
}

type LoginResponse struct {
	AccessToken string    `json:"accessToken"`
	ExpiresIn   int64     `json:"expiresIn"`
	User        *UserInfo `json:"user"`
}

type UserInfo struct {
	Email      string `json:"email"`
	Name       string `json:"name"`
	Photo      string `json:"photo"`
	Role       string `json:"role"`
	RenterCode string `json:"renter_code,omitempty"`
}

func (u *User) ToUserInfo() *UserInfo {
	return &UserInfo{
		Email:      u.Email,
		Name:       u.Name,
		Photo:      u.Photo,
		Role:       u.Role,
		RenterCode: u.RenterCode,
	}
}

type UserPatch struct {
	Name            *string `json:"name,omitempty"`
	Photo           *string `json:"photo,omitempty"`
	CurrentPassword *string `json:"currentPassword,omitempty"`
	NewPassword     *string `json:"newPassword,omitempty"`
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsValidEmail performs basic email validation
func IsValidEmail(email string) bool {
	normalized := NormalizeEmail(email)
	if normalized == "" {
		return false
	}

	parts := strings.Split(normalized, "@")
	if len(parts) != 2 {
		return false
	}

	local, dom := parts[0], parts[1]
	return len(local) > 0 && len(dom) > 2 && strings.Contains(dom, ".")
}

const renterCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewRenterCode mints a renter token matching RENTER-[A-Z0-9]{6}.
// Uniqueness is enforced by the renter_records collection; callers
// regenerate on conflict.
func NewRenterCode() string {
	buf := make([]byte, 6)
	for i := range buf {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(renterCodeAlphabet))))
		if err != nil {
			idx = big.NewInt(int64(i % len(renterCodeAlphabet)))
		}
		buf[i] = renterCodeAlphabet[idx.Int64()]
	}
	return "RENTER-" + string(buf)
}
