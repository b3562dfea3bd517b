package handler

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/vfg2006/baile-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/baile-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/baile-dashboard-api/pkg/log"
)

type LoginRequest struct {
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

// Login troca a senha de acesso do painel por um token
func Login(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		token, err := service.Login(req.Password)
		if err != nil {
			handleLoginError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, LoginResponse{Token: token})
	}
}

func handleLoginError(w http.ResponseWriter, r *http.Request, err error) {
	var authErr *authenticating.AuthError
	if errors.As(err, &authErr) && authErr.Code != "" {
		if authErr.Code == apiErrors.ErrInternalServer {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao realizar login")
			apiErrors.WriteError(w, authErr.Code, "Erro interno ao realizar login", nil)
			return
		}
		apiErrors.WriteError(w, authErr.Code, authErr.Error(), nil)
		return
	}

	switch {
	case errors.Is(err, authenticating.ErrInvalidCredentials):
		apiErrors.WriteError(w, apiErrors.ErrInvalidCredentials, "Senha incorreta", nil)

	case errors.Is(err, authenticating.ErrMissingRequiredData):
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Senha é obrigatória", nil)

	default:
		log.ForContext(r.Context()).WithError(err).Error("Erro ao realizar login")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao realizar login", nil)
	}
}
