package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims é o conteúdo do token emitido após a senha de acesso ser aceita
type Claims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

const ScopeDashboard = "dashboard"
