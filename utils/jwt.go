package utils

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleTable = "table"
	RoleAdmin = "admin"
)

func jwtSecret() []byte {
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		return []byte(secret)
	}
	return []byte("secret")
}

func jwtExpiry() time.Duration {
	if expiry, err := time.ParseDuration(os.Getenv("JWT_EXPIRY")); err == nil {
		return expiry
	}
	return 24 * time.Hour
}

// GenerateTableToken issues the token a table device gets after login. It
// carries everything the order and event endpoints need, so they never have
// to trust table identifiers from the request body.
func GenerateTableToken(storeID, tableID int, tableNumber string) (string, error) {
	claims := jwt.MapClaims{
		"role":         RoleTable,
		"store_id":     storeID,
		"table_id":     tableID,
		"table_number": tableNumber,
		"exp":          time.Now().Add(jwtExpiry()).Unix(),
		"iat":          time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

func GenerateAdminToken(storeID int, username string) (string, error) {
	claims := jwt.MapClaims{
		"role":     RoleAdmin,
		"store_id": storeID,
		"username": username,
		"exp":      time.Now().Add(jwtExpiry()).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

func ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret(), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// ClaimInt reads a numeric claim. JSON numbers decode as float64.
func ClaimInt(claims jwt.MapClaims, key string) int {
	if v, ok := claims[key].(float64); ok {
		return int(v)
	}
	return 0
}

func ClaimString(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
