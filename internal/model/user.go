package model

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User identifies who entered a ledger movement. The identity key is
// (user_name, account_name); registering the same pair twice is a
// conflict. updated_at is trigger-maintained on Postgres.
type User struct {
	UserID       uint      `gorm:"column:user_id;primaryKey;autoIncrement" json:"user_id"`
	UserName     string    `gorm:"column:user_name;type:varchar(20);not null;uniqueIndex:idx_users_identity" json:"user_name"`
	AccountName  string    `gorm:"column:account_name;type:varchar(50);not null;uniqueIndex:idx_users_identity" json:"account_name"`
	Password     string    `gorm:"type:varchar(255);not null" json:"-"`
	Role         string    `gorm:"type:varchar(255);not null" json:"role"`
	Email        string    `gorm:"type:varchar(100)" json:"email"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	TokenVersion string    `gorm:"column:token_version;type:varchar(255);default:''" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// SetPassword hashes and sets the user's password.
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies the provided password against the stored hash.
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// UserResponse is used for API responses (without sensitive data).
type UserResponse struct {
	UserID      uint      `json:"user_id"`
	UserName    string    `json:"user_name"`
	AccountName string    `json:"account_name"`
	Role        string    `json:"role"`
	Email       string    `json:"email"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToResponse converts User to UserResponse.
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		UserID:      u.UserID,
		UserName:    u.UserName,
		AccountName: u.AccountName,
		Role:        u.Role,
		Email:       u.Email,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
