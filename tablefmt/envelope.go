package tablefmt

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// envelopeIssuer identifies lalrrun-signed table envelopes in the "iss"
// claim, mirroring how the donor server's own JWTs carry a fixed issuer.
const envelopeIssuer = "lalrrun-tablefmt"

// SignEnvelope produces a JWT wrapping the blake2b-256 checksum of a table
// artifact's bytes, so a host can distribute a table file alongside a
// signature proving which trusted process produced it without re-shipping
// the whole artifact inside the token. The token is valid for ttl from now.
func SignEnvelope(artifactData []byte, key []byte, ttl time.Duration) (string, error) {
	sum := Checksum(artifactData)
	claims := jwt.MapClaims{
		"iss":      envelopeIssuer,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(ttl).Unix(),
		"checksum": hex.EncodeToString(sum[:]),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("sign table envelope: %w", err)
	}
	return signed, nil
}

// VerifyEnvelope checks a table envelope JWT against key and the actual
// checksum of artifactData, returning an error unless the token is validly
// signed, unexpired, issued by this package, and its embedded checksum
// matches the artifact actually being loaded.
func VerifyEnvelope(envelope string, key []byte, artifactData []byte) error {
	tok, err := jwt.Parse(envelope, func(t *jwt.Token) (interface{}, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(envelopeIssuer))
	if err != nil {
		return fmt.Errorf("table envelope: %w", err)
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return fmt.Errorf("table envelope: unexpected claims type")
	}

	want, ok := claims["checksum"].(string)
	if !ok {
		return fmt.Errorf("table envelope: missing checksum claim")
	}

	sum := Checksum(artifactData)
	if want != hex.EncodeToString(sum[:]) {
		return fmt.Errorf("table envelope: checksum mismatch; artifact does not match signed version")
	}

	return nil
}
