package dto

import "github.com/google/uuid"

// LoginInput is the body of a login.
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Session is the admin behind a session token.
type Session struct {
	AdminID uuid.UUID `json:"adminId"`
	Email   string    `json:"email"`
}
