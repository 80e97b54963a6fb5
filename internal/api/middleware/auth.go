package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/logger"
)

// AuthConfig holds authentication configuration
type AuthConfig struct {
	APIKeys []string
}

// APIKeyAuth returns a gin middleware that requires a valid API key in the
// Authorization header ("ApiKey <key>"). Only the ingestion-trigger endpoint
// uses it; the read endpoints are public.
func APIKeyAuth(cfg AuthConfig) gin.HandlerFunc {
	validKeys := make(map[string]bool, len(cfg.APIKeys))
	for _, key := range cfg.APIKeys {
		if key != "" {
			validKeys[key] = true
		}
	}

	return func(c *gin.Context) {
		if err := authenticate(c.GetHeader("Authorization"), validKeys); err != nil {
			logger.Warn("Authentication failed",
				zap.Error(err),
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication failed",
			})
			return
		}
		c.Next()
	}
}

func authenticate(authHeader string, validKeys map[string]bool) error {
	if len(validKeys) == 0 {
		return errors.New("no API keys configured")
	}
	if authHeader == "" {
		return errors.New("missing Authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "apikey") {
		return errors.New("invalid Authorization header format")
	}
	if !validKeys[parts[1]] {
		return errors.New("invalid API key")
	}
	return nil
}
