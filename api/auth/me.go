package auth

import (
	"net/http"
	"paiges_bagels_server/api/middleware"

	"github.com/MonkyMars/gecho"
)

// HandleMe lets the admin console check whether its session is still valid.
func (ar *AuthRoutesManager) HandleMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"email":      claims.Email,
			"role":       claims.Role,
			"expires_at": claims.Exp,
		}),
		gecho.Send(),
	)
}
