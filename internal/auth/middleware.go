// internal/auth/middleware.go
package auth

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
)

type ctxKey string

const UserCtxKey ctxKey = "user"

// Claims dell'access token emesso dall'identity provider esterno.
// L'applicazione non emette né rinnova token: li valida soltanto.
type Claims struct {
	Scope    string `json:"scope,omitempty"`
	TokenUse string `json:"token_use,omitempty"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

var jwks *keyfunc.JWKS

func ensureJWKS() error {
	if jwks != nil {
		return nil
	}
	url := os.Getenv("AUTH_JWKS_URL")
	if url == "" {
		return errors.New("AUTH_JWKS_URL non configurata")
	}
	var err error
	jwks, err = keyfunc.Get(url, keyfunc.Options{
		RefreshInterval:     time.Hour,
		RefreshErrorHandler: func(err error) { /* loggare se serve */ },
	})
	return err
}

// MiddlewareAutenticazione valida il bearer token contro le chiavi
// pubbliche dell'identity provider e inietta l'identità nel contesto.
func MiddlewareAutenticazione(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		authz := r.Header.Get("Authorization")
		if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
			http.Error(w, "Token assente", http.StatusUnauthorized)
			return
		}
		raw := strings.TrimPrefix(authz, "Bearer ")

		if err := ensureJWKS(); err != nil {
			http.Error(w, "jwks non disponibile", http.StatusInternalServerError)
			return
		}

		var claims Claims
		token, err := jwt.ParseWithClaims(raw, &claims, jwks.Keyfunc,
			jwt.WithAudience(os.Getenv("AUTH_AUDIENCE")),
			jwt.WithIssuer(os.Getenv("AUTH_ISSUER")),
		)
		if err != nil || !token.Valid {
			http.Error(w, "Token non valido", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), UserCtxKey, map[string]any{
			"sub":      claims.Subject,
			"username": claims.Username,
			"email":    claims.Email,
			"scope":    claims.Scope,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUser restituisce l'identità iniettata dal middleware.
func GetUser(r *http.Request) (map[string]any, error) {
	u, ok := r.Context().Value(UserCtxKey).(map[string]any)
	if !ok || u == nil {
		return nil, errors.New("nessun utente nel contesto")
	}
	return u, nil
}
