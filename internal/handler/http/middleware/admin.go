package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/jwtauth/v5"
	"github.com/smpn1padarincang/presensi-backend-go/internal/domain/auth"
	"github.com/smpn1padarincang/presensi-backend-go/internal/handler/http/response"
)

// AdminOnly guards the monitoring dashboard. The role claim holds the login
// mode, so an admin session always carries "Admin" here.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		role, ok := claims["role"].(string)
		if !ok || !strings.Contains(strings.ToLower(role), "admin") {
			response.Forbidden(w, "Halaman ini khusus admin.")
			return
		}

		next.ServeHTTP(w, r)
	})
}
