package jwt

import (
	"Pantry-Ledger/domain"
	"Pantry-Ledger/internal/utils"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

type (
	// JWTService issues and validates the owner-scoping tokens every request
	// carries. The token holds the owner id the handlers trust for data
	// isolation.
	JWTService interface {
		GenerateTokenOwner(ownerID string) string
		ValidateTokenOwner(token string) (*jwt.Token, error)
		GetOwnerIDByToken(token string) (string, error)
	}

	jwtOwnerClaim struct {
		OwnerID string `json:"owner_id"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey string
		issuer    string
	}
)

func getSecretKey() string {
	utils.LoadConfig()
	secretKey := utils.GetConfig("JWT_SECRET")
	return secretKey
}

func NewJWTService() JWTService {
	return &jwtService{
		secretKey: getSecretKey(),
		issuer:    "PANTRY-LEDGER",
	}
}

func (j *jwtService) GenerateTokenOwner(ownerID string) string {
	claims := jwtOwnerClaim{
		ownerID,
		jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute * 120)),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tx, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		log.Println(err)
	}
	return tx
}

func (j *jwtService) parseToken(t_ *jwt.Token) (any, error) {
	if _, ok := t_.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t_.Header["alg"])
	}
	return []byte(j.secretKey), nil
}

func (j *jwtService) ValidateTokenOwner(token string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(token, &jwtOwnerClaim{}, j.parseToken)
}

func (j *jwtService) GetOwnerIDByToken(token string) (string, error) {
	t_Token, err := j.ValidateTokenOwner(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrTokenExpired
		}
		return "", domain.ErrTokenInvalid
	}
	if !t_Token.Valid {
		return "", domain.ErrTokenInvalid
	}

	claims := t_Token.Claims.(*jwtOwnerClaim)
	return fmt.Sprintf("%v", claims.OwnerID), nil
}
