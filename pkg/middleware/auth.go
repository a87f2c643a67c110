package middleware

import (
	"net/http"

	"movie-review/pkg/firebase"
	"movie-review/pkg/utils"

	"go.uber.org/zap"
)

// Authenticate verifies the bearer ID token on every request and attaches the
// caller identity to the context. No session is kept between requests.
func Authenticate(verifier firebase.TokenVerifier, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := utils.BearerToken(r.Header.Get("Authorization"))
			if !ok {
				utils.ResponseAppError(w, utils.NewError(utils.ErrUnauthenticated, "No token provided"))
				return
			}

			identity, err := verifier.VerifyToken(r.Context(), token)
			if err != nil {
				rejectToken(w, r, logger, utils.NewError(utils.ErrInvalidToken, "Invalid token").
					WithDetail(err.Error()).
					WithCause(err))
				return
			}

			if identity.UID == "" {
				rejectToken(w, r, logger, utils.NewError(utils.ErrInvalidToken, "Invalid token").
					WithDetail("token has no uid"))
				return
			}

			next.ServeHTTP(w, r.WithContext(utils.SetIdentityContext(r.Context(), identity)))
		})
	}
}

func rejectToken(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err *utils.Error) {
	logger.Warn("Token verification failed",
		zap.Error(err),
		zap.String("path", r.URL.Path),
	)
	utils.ResponseAppError(w, err)
}
