package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v4"

	"github.com/m04kA/SMC-MeetingService/internal/api/handlers"
	"github.com/m04kA/SMC-MeetingService/internal/domain"
)

const (
	msgMissingToken = "отсутствует токен авторизации"
	msgInvalidToken = "недействительный токен авторизации"
)

// ActorClaims claims токена участника: sub содержит ID пользователя
type ActorClaims struct {
	Roles          []string `json:"roles,omitempty"`
	LedDepartments []int64  `json:"led_departments,omitempty"`
	jwt.RegisteredClaims
}

// JWTAuth определяет участника запроса по Bearer токену, подписанному HS256
func JWTAuth(secret []byte, log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			tokenString := strings.TrimPrefix(header, "Bearer ")
			if header == "" || tokenString == header {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			actor, err := parseActor(tokenString, secret)
			if err != nil {
				log.Warn("JWTAuth: %v", err)
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

func parseActor(tokenString string, secret []byte) (*domain.Actor, error) {
	claims := &ActorClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return nil, fmt.Errorf("invalid subject %q", claims.Subject)
	}

	return &domain.Actor{
		UserID:         userID,
		Roles:          claims.Roles,
		LedDepartments: claims.LedDepartments,
	}, nil
}
