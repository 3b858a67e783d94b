// SPDX-FileCopyrightText: 2026 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// MailSendRole is the application permission required for /users/{id}/sendMail.
const MailSendRole = "Mail.Send"

// Claims is the subset of an Entra ID app-only access token that matters for
// diagnosing send failures.
type Claims struct {
	AppID     string    `json:"appId" yaml:"appId"`
	TenantID  string    `json:"tenantId" yaml:"tenantId"`
	Audience  string    `json:"audience" yaml:"audience"`
	Roles     []string  `json:"roles" yaml:"roles"`
	ExpiresAt time.Time `json:"expiresAt,omitempty" yaml:"expiresAt,omitempty"`
}

// DecodeClaims reads the claims of token without verifying its signature.
// Only use the result for display and diagnostics.
func DecodeClaims(token string) (*Claims, error) {
	parser := jwt.Parser{}
	mc := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, mc); err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	c := &Claims{
		AppID:    stringClaim(mc, "appid"),
		TenantID: stringClaim(mc, "tid"),
	}
	if c.AppID == "" {
		c.AppID = stringClaim(mc, "azp")
	}
	switch aud := mc["aud"].(type) {
	case string:
		c.Audience = aud
	case []interface{}:
		if len(aud) > 0 {
			c.Audience, _ = aud[0].(string)
		}
	}
	if roles, ok := mc["roles"].([]interface{}); ok {
		for _, r := range roles {
			if s, ok := r.(string); ok {
				c.Roles = append(c.Roles, s)
			}
		}
	}
	if exp, ok := mc["exp"].(float64); ok {
		c.ExpiresAt = time.Unix(int64(exp), 0).UTC()
	}
	return c, nil
}

func (c *Claims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func stringClaim(mc jwt.MapClaims, key string) string {
	s, _ := mc[key].(string)
	return s
}
