package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"edutrack_backend/internals/configs"
	userModel "edutrack_backend/internals/features/users/user/model"
)

// Session tokens live for 7 days.
const TokenTTL = 7 * 24 * time.Hour

// JwtGenerate signs a session token embedding the user id and role.
func JwtGenerate(user userModel.UserModel) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   user.ID.String(),
		"role": user.Role,
		"name": user.Name,
		"iat":  now.Unix(),
		"exp":  now.Add(TokenTTL).Unix(),
	})
	return token.SignedString([]byte(configs.JWTSecret))
}

// ParseToken verifies signature and expiry and returns the claims.
func ParseToken(tokenString string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(configs.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
