package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	log "github.com/sirupsen/logrus"

	"eventos_inscricoes/internal/domain/entities"
	"eventos_inscricoes/internal/infrastructure/config"
	"eventos_inscricoes/internal/usecase/interfaces"
)

var ErrMissingJWTSecret = errors.New("missing JWT_SECRET")

// Claims is the token payload issued by the identity provider. The subject
// is the user id; admin marks back office operators.
type Claims struct {
	Admin bool `json:"admin,omitempty"`
	jwt.RegisteredClaims
}

// JWTVerifier validates HS256 bearer tokens. A caller is admin when the token
// carries the admin claim or its subject is listed in ADMIN_UIDS.
type JWTVerifier struct {
	secret []byte
	issuer string
	auth   config.AuthConfig
}

var _ interfaces.IIdentityVerifier = (*JWTVerifier)(nil)

func NewJWTVerifier(cfg config.AuthConfig) (*JWTVerifier, error) {
	if cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}
	return &JWTVerifier{secret: []byte(cfg.JWTSecret), issuer: cfg.JWTIssuer, auth: cfg}, nil
}

func (v *JWTVerifier) Verify(_ context.Context, token string) (entities.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return entities.Principal{}, interfaces.ErrInvalidCredential
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, opts...)
	if err != nil || !parsed.Valid {
		log.WithError(err).Debug("[auth][verifier] token rejected")
		return entities.Principal{}, fmt.Errorf("%w: %v", interfaces.ErrInvalidCredential, err)
	}
	if claims.Subject == "" {
		return entities.Principal{}, fmt.Errorf("%w: missing subject", interfaces.ErrInvalidCredential)
	}

	return entities.Principal{
		ID:      claims.Subject,
		IsAdmin: claims.Admin || v.auth.IsAdminUID(claims.Subject),
	}, nil
}
