// internal/httpx/middleware.go
package httpx

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"local.dev/prepcircle-backend/internal/config"
	"local.dev/prepcircle-backend/internal/playback"
	"local.dev/prepcircle-backend/internal/store"
)

type ctxKey string

const uidKey ctxKey = "uid" // identity key: lowercased email, uid, or dev_xxx

// TokenVerifier is satisfied by *auth.Client.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

type AppCtx struct {
	Store    *store.Store
	Playback *playback.Manager
	Auth     TokenVerifier // nil in NO_AUTH mode
	Config   config.Config
	Logger   *zap.SugaredLogger
}

// pickKey normalizes email/uid into the identity key.
func pickKey(email, uid string) string {
	if e := strings.TrimSpace(strings.ToLower(email)); e != "" {
		return e
	}
	return strings.TrimSpace(uid)
}

func currentUID(r *http.Request) string {
	if s, ok := r.Context().Value(uidKey).(string); ok {
		return s
	}
	return ""
}

// ---- NO_AUTH: cookie is the last fallback, one dev_ id per browser ----
const devUIDCookie = "DEV_UID"

func genDevUID() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return "dev_" + hex.EncodeToString(b[:])
}

func devUIDFromCookie(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(devUIDCookie); err == nil && c.Value != "" {
		return c.Value
	}
	id := genDevUID()
	http.SetCookie(w, &http.Cookie{
		Name:     devUIDCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(365 * 24 * time.Hour),
	})
	return id
}

// devClaimsFromBearer reads email/uid from a bearer JWT without verifying
// the signature. NO_AUTH only.
func devClaimsFromBearer(authz string) (email, uid string) {
	raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return "", ""
	}
	get := func(k string) string {
		if v, ok := claims[k]; ok && v != nil {
			return strings.TrimSpace(fmt.Sprintf("%v", v))
		}
		return ""
	}
	email = get("email")
	for _, k := range []string{"user_id", "uid", "sub"} {
		if uid = get(k); uid != "" {
			break
		}
	}
	return email, uid
}

func debugKey(authz string) string {
	k := strings.TrimSpace(strings.TrimPrefix(authz, "Debug "))
	if strings.Contains(k, "@") {
		return strings.ToLower(k)
	}
	return k
}

func verifiedKey(app *AppCtx, r *http.Request, idToken string) (string, error) {
	tok, err := app.Auth.VerifyIDToken(r.Context(), idToken)
	if err != nil {
		return "", err
	}
	email, _ := tok.Claims["email"].(string)
	return pickKey(email, tok.UID), nil
}

// WithAuth requires an identity. In NO_AUTH mode: Debug > Bearer claims >
// cookie. Otherwise a Firebase ID token is mandatory.
func WithAuth(app *AppCtx, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authz := r.Header.Get("Authorization")
		var key string

		if app.Config.Auth.NoAuth {
			switch {
			case strings.HasPrefix(authz, "Debug "):
				key = debugKey(authz)
			case strings.HasPrefix(authz, "Bearer "):
				key = pickKey(devClaimsFromBearer(authz))
			}
			if key == "" {
				key = devUIDFromCookie(w, r)
			}
		} else {
			if !strings.HasPrefix(authz, "Bearer ") || app.Auth == nil {
				writeFail(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
				return
			}
			k, err := verifiedKey(app, r, strings.TrimSpace(strings.TrimPrefix(authz, "Bearer ")))
			if err != nil {
				app.Logger.Debugw("token rejected", "error", err)
				writeFail(w, http.StatusUnauthorized, "unauthorized", "invalid token")
				return
			}
			key = k
		}

		ctx := context.WithValue(r.Context(), uidKey, key)
		next(w, r.WithContext(ctx))
	}
}

// tryViewerUID is the optional identity used to decorate reads.
func tryViewerUID(app *AppCtx, r *http.Request) string {
	authz := r.Header.Get("Authorization")
	if app.Config.Auth.NoAuth {
		switch {
		case strings.HasPrefix(authz, "Debug "):
			return debugKey(authz)
		case strings.HasPrefix(authz, "Bearer "):
			if k := pickKey(devClaimsFromBearer(authz)); k != "" {
				return k
			}
		}
		if c, err := r.Cookie(devUIDCookie); err == nil && c.Value != "" {
			return c.Value
		}
		return ""
	}
	if strings.HasPrefix(authz, "Bearer ") && app.Auth != nil {
		if k, err := verifiedKey(app, r, strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))); err == nil {
			return k
		}
	}
	return ""
}

// WithAdmin runs next only for ids listed in auth.admins.
func WithAdmin(app *AppCtx, next http.HandlerFunc) http.HandlerFunc {
	return WithAuth(app, func(w http.ResponseWriter, r *http.Request) {
		if !app.Config.IsAdmin(currentUID(r)) {
			writeFail(w, http.StatusForbidden, string(store.KindAuthorization), "admin access required")
			return
		}
		next(w, r)
	})
}

func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func AccessLog(logger *zap.SugaredLogger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Infow("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"remote", clientIPFromRequest(r),
			"elapsed", time.Since(start),
		)
	})
}

func Recover(logger *zap.SugaredLogger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				logger.Errorw("panic", "error", err, "path", r.URL.Path)
				writeFail(w, http.StatusInternalServerError, "internal", "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// clientIPFromRequest prefers the first X-Forwarded-For hop.
func clientIPFromRequest(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return strings.TrimSpace(strings.Split(xff, ",")[0])
	}
	host := r.RemoteAddr
	if i := strings.LastIndex(host, ":"); i > 0 {
		return host[:i]
	}
	return host
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
