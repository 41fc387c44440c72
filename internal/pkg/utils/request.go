package utils

import (
	"medconsult-service/internal/pkg/constvars"
	"net/http"
	"strings"
)

// ExtractBearerToken returns the token from an "Authorization: Bearer <token>" header.
func ExtractBearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get(constvars.HeaderAuthorization))
	if len(header) < len(constvars.AuthorizationBearerPrefix) {
		return ""
	}
	if !strings.EqualFold(header[:len(constvars.AuthorizationBearerPrefix)], constvars.AuthorizationBearerPrefix) {
		return ""
	}
	return strings.TrimSpace(header[len(constvars.AuthorizationBearerPrefix):])
}
