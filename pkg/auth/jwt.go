package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	RoleAdmin   = "admin"
	RolePatient = "patient"
)

// Claims are the token claims carried by authenticated requests.
type Claims struct {
	SubjectID uuid.UUID
	Username  string
	Role      string
}

type JWTService interface {
	GenerateToken(subjectID uuid.UUID, username, role string) (string, error)
	ValidateToken(token string) (*Claims, error)
}

type jwtService struct {
	secret []byte
	expiry time.Duration
}

func NewJWTService(secret string, expiry time.Duration) JWTService {
	return &jwtService{secret: []byte(secret), expiry: expiry}
}

func (s *jwtService) GenerateToken(subjectID uuid.UUID, username, role string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      subjectID.String(),
		"username": username,
		"role":     role,
		"iat":      now.Unix(),
		"exp":      now.Add(s.expiry).Unix(),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *jwtService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	sub, _ := claims["sub"].(string)
	subjectID, err := uuid.Parse(sub)
	if err != nil {
		return nil, fmt.Errorf("invalid token subject: %w", err)
	}
	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)

	return &Claims{SubjectID: subjectID, Username: username, Role: role}, nil
}
