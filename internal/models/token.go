package models

import "github.com/golang-jwt/jwt/v5"

// ScopeStudentsWrite grants access to the mutating student endpoints.
const ScopeStudentsWrite = "students:write"

// WriterClaims is the JWT payload accepted by the write endpoints.
type WriterClaims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}
