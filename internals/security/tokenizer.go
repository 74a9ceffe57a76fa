package security

import (
	"time"

	"github.com/iffarurrahat/matrimony-server-mern-project/config"
	"github.com/iffarurrahat/matrimony-server-mern-project/pkg/apperror"

	"github.com/golang-jwt/jwt/v5"
)

type TokenService struct {
	secret []byte
	expiry time.Duration
}

func NewTokenService(authCfg *config.AuthConfig) *TokenService {
	return &TokenService{
		secret: []byte(authCfg.Secret),
		expiry: time.Duration(authCfg.ExpiryDays) * 24 * time.Hour,
	}
}

// Expiry returns the lifetime stamped into every issued token. The session
// cookie max-age must match it.
func (ts *TokenService) Expiry() time.Duration {
	return ts.expiry
}

// IssueToken signs the given claims into a bearer token. Claims content is
// not inspected here; any mapping is accepted. The exp and iat registered
// claims are set by this method and overwrite caller-supplied values.
func (ts *TokenService) IssueToken(claims SessionClaims) (string, error) {
	now := time.Now()

	payload := jwt.MapClaims{}
	for k, v := range claims {
		payload[k] = v
	}
	payload["iat"] = jwt.NewNumericDate(now)
	payload["exp"] = jwt.NewNumericDate(now.Add(ts.expiry))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, payload)
	signedToken, err := token.SignedString(ts.secret)
	if err != nil {
		return "", err
	}

	return signedToken, nil
}

// ValidateToken verifies signature and expiry and returns the embedded
// claims. Callers only get one failure shape; the concrete reason (bad
// signature, expired, malformed) is carried in the wrapped error for logging.
func (ts *TokenService) ValidateToken(accessToken string) (SessionClaims, error) {
	const op string = "service.token.validate_token"

	claims := jwt.MapClaims{}

	token, err := jwt.ParseWithClaims(
		accessToken,
		claims,
		func(t *jwt.Token) (any, error) {
			if t.Method != jwt.SigningMethodHS256 {
				return nil, jwt.ErrSignatureInvalid
			}
			return ts.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
	)

	if err != nil || !token.Valid {
		return nil, &apperror.Error{
			Kind:    apperror.Unauthorised,
			Op:      op,
			Err:     err,
			Message: "invalid token",
		}
	}

	return SessionClaims(claims), nil
}
