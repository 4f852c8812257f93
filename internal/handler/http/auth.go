package http

import (
	"encoding/json"
	"net/http"

	"github.com/smpn1padarincang/presensi-backend-go/internal/domain/auth"
	"github.com/smpn1padarincang/presensi-backend-go/internal/handler/http/middleware"
	"github.com/smpn1padarincang/presensi-backend-go/internal/handler/http/response"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	LastUsername(w http.ResponseWriter, r *http.Request)
}

type authHandlerImpl struct {
	authService auth.AuthService
}

func NewAuthHandler(authService auth.AuthService) AuthHandler {
	return &authHandlerImpl{
		authService: authService,
	}
}

// Login implements AuthHandler.
func (h *authHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.authService.Login(r.Context(), middleware.DeviceID(r.Context()), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// LastUsername implements AuthHandler.
func (h *authHandlerImpl) LastUsername(w http.ResponseWriter, r *http.Request) {
	username, err := h.authService.LastUsername(r.Context(), middleware.DeviceID(r.Context()))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, auth.LastUsernameResponse{Username: username})
}
