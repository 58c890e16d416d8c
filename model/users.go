package model

import "time"

type User struct {
	UserID             string    `bson:"user_id" json:"user_id"`
	Username           string    `bson:"username" json:"username" validate:"required,min=4,max=20"`
	Email              string    `bson:"email" json:"email" validate:"required,email"`
	Password           string    `bson:"password" json:"-" validate:"required,password"`
	CreatedAt          time.Time `bson:"created_at" json:"created_at"`
	LastPasswordChange time.Time `bson:"last_password_change,omitempty" json:"last_password_change,omitempty"`
	TwoFactorEnabled   bool      `bson:"two_factor_enabled" json:"two_factor_enabled"`
	TwoFactorSecret    string    `bson:"two_factor_secret,omitempty" json:"-"`
	RecoveryCodes      []string  `bson:"recovery_codes,omitempty" json:"-"`
}

type LoginRequest struct {
	Username      string `json:"username" binding:"required"`
	Password      string `json:"password" binding:"required"`
	TwoFactorCode string `json:"two_factor_code,omitempty"`
}

type RegistrationRequest struct {
	Username string `json:"username" binding:"required,min=4,max=20"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
