// Package testhelpers provides utilities for testing practice-engine components.
package testhelpers

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// GenerateTestJWT creates a test JWT token for use when verification is
// disabled. The token has a valid structure but no signature (alg: none).
// aid is the practice account (tenant); roles become the caller's roles.
func GenerateTestJWT(sub, accountID, email string, roles ...string) string {
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"none","typ":"JWT"}`))

	payload := fmt.Sprintf(`{"sub":"%s"`, sub)
	if accountID != "" {
		payload += fmt.Sprintf(`,"aid":"%s"`, accountID)
	}
	if email != "" {
		payload += fmt.Sprintf(`,"email":"%s"`, email)
	}
	if len(roles) > 0 {
		payload += fmt.Sprintf(`,"roles":["%s"]`, strings.Join(roles, `","`))
	}
	payload += "}"

	encodedPayload := base64.RawURLEncoding.EncodeToString([]byte(payload))
	return fmt.Sprintf("%s.%s.", header, encodedPayload)
}

// GenerateTestJWTWithBearer returns the token with "Bearer " prefix for the
// Authorization header.
func GenerateTestJWTWithBearer(sub, accountID, email string, roles ...string) string {
	return "Bearer " + GenerateTestJWT(sub, accountID, email, roles...)
}
