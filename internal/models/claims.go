package models

import "github.com/golang-jwt/jwt/v5"

// UserClaims carries the authenticated identity through the request context.
type UserClaims struct {
	jwt.RegisteredClaims
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
}
