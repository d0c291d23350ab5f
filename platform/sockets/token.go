package socket

import (
	"time"

	jwt "github.com/form3tech-oss/jwt-go"
)

func SeatTokens(secret string, ttl time.Duration) TokenIssuer {
	return func(roomCode, memberID, name string) (string, error) {
		token := jwt.New(jwt.SigningMethodHS256)
		claims := token.Claims.(jwt.MapClaims)
		claims["room"] = roomCode
		claims["member"] = memberID
		claims["name"] = name
		claims["exp"] = time.Now().Add(ttl).Unix()
		return token.SignedString([]byte(secret))
	}
}
