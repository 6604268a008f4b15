package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken agrupa firma incorrecta, expiración, emisor ajeno y claims incompletos.
var ErrInvalidToken = errors.New("jwt: token inválido")

// Identity operador autenticado que viaja en el token.
type Identity struct {
	UserID    string
	CompanyID string
	Role      string // admin | supervisor | cajero; vacío en tokens sin rol
}

// claims: el usuario va en sub, la empresa y el rol como claims propios.
type claims struct {
	jwt.RegisteredClaims
	CompanyID string `json:"company_id"`
	Role      string `json:"role,omitempty"`
}

// Signer firma y valida tokens HS256 de un emisor con una vigencia fija.
type Signer struct {
	key    []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewSigner construye el firmador. Un secret vacío hace fallar Sign y Verify.
func NewSigner(secret, issuer string, ttl time.Duration) *Signer {
	return &Signer{key: []byte(secret), issuer: issuer, ttl: ttl, now: time.Now}
}

// Sign emite un token para id que vence después de la vigencia configurada.
func (s *Signer) Sign(id Identity) (string, error) {
	if len(s.key) == 0 {
		return "", errors.New("jwt: secret vacío")
	}
	now := s.now()
	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		CompanyID: id.CompanyID,
		Role:      id.Role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.key)
}

// Verify valida firma, algoritmo, emisor y vencimiento y devuelve la identidad del token.
// Cualquier rechazo se reporta envuelto en ErrInvalidToken.
func (s *Signer) Verify(token string) (Identity, error) {
	if len(s.key) == 0 {
		return Identity{}, fmt.Errorf("%w: secret vacío", ErrInvalidToken)
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}
	var c claims
	if _, err := jwt.ParseWithClaims(token, &c, func(*jwt.Token) (any, error) { return s.key, nil }, opts...); err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if c.Subject == "" || c.CompanyID == "" {
		return Identity{}, fmt.Errorf("%w: falta usuario o empresa", ErrInvalidToken)
	}
	return Identity{UserID: c.Subject, CompanyID: c.CompanyID, Role: c.Role}, nil
}
