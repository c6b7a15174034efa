package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"CourierReconSaas/api/auth"
	"CourierReconSaas/api/constants"
	"CourierReconSaas/internal/config"
)

type contextKey string

const SessionKey contextKey = "session"

// GetSessionFromCtx returns the authenticated session attached by
// SessionMiddleware, or nil.
func GetSessionFromCtx(ctx context.Context) *auth.UserSession {
	if session, ok := ctx.Value(SessionKey).(*auth.UserSession); ok {
		return session
	}
	return nil
}

// GetUserIDFromCtx returns the authenticated user id, or "".
func GetUserIDFromCtx(ctx context.Context) string {
	if s := GetSessionFromCtx(ctx); s != nil {
		return s.UserID
	}
	return ""
}

// WithSession attaches a session to a context. Handlers read it back through
// GetSessionFromCtx; tests use it to run handlers without the middleware.
func WithSession(ctx context.Context, s *auth.UserSession) context.Context {
	return context.WithValue(ctx, SessionKey, s)
}

// SessionMiddleware pulls user_id out of the request (JSON body, form value or
// multipart field), validates it against the active sessions and attaches the
// session to the request context. Requests without a valid session never reach
// the wrapped handler.
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var userID string
		ct := r.Header.Get(constants.ContentTypeText)
		if strings.HasPrefix(ct, constants.ContentTypeJSON) && (r.Method == "POST" || r.Method == "PUT") {
			var bodyMap map[string]interface{}
			bodyBytes, _ := io.ReadAll(r.Body)
			if err := json.Unmarshal(bodyBytes, &bodyMap); err == nil {
				if uid, ok := bodyMap[constants.KeyUserID].(string); ok {
					userID = uid
				}
			}
			r.Body = io.NopCloser(strings.NewReader(string(bodyBytes)))
		} else if strings.HasPrefix(ct, constants.ContentTypeMultipart) && (r.Method == "POST" || r.Method == "PUT") {
			if err := r.ParseMultipartForm(config.MaxUploadBytes); err == nil {
				userID = r.FormValue(constants.KeyUserID)
			}
		} else {
			userID = r.URL.Query().Get(constants.KeyUserID)
		}

		if userID == "" {
			RespondWithError(w, http.StatusBadRequest, constants.ErrMissingUserID)
			return
		}

		var session *auth.UserSession
		for _, s := range auth.GetActiveSessions() {
			if s.UserID == userID {
				session = s
				break
			}
		}
		if session == nil {
			RespondWithError(w, http.StatusUnauthorized, constants.ErrInvalidSession)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
	})
}
