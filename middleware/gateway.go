package middleware

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

// GatewayWebhookAuth verifies the payment gateway's HMAC-SHA256 body
// signature (X-Gateway-Signature header). Verification is skipped in
// sandbox/dev mode so local gateways can post unsigned callbacks.
func GatewayWebhookAuth() gin.HandlerFunc {
	secret := os.Getenv("GATEWAY_WEBHOOK_SECRET")
	mode := strings.ToLower(os.Getenv("GATEWAY_MODE"))

	return func(c *gin.Context) {
		if mode == "sandbox" || mode == "dev" {
			log.Println("Sandbox/dev mode: skipping gateway webhook signature verification")
			c.Next()
			return
		}

		if secret == "" {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "gateway webhook secret not configured"})
			c.Abort()
			return
		}

		provided := c.GetHeader("X-Gateway-Signature")
		if provided == "" {
			c.JSON(http.StatusForbidden, gin.H{"error": "missing gateway signature"})
			c.Abort()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read webhook body"})
			c.Abort()
			return
		}
		// Handlers downstream still need the body.
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		mac := hmac.New(sha256.New, []byte(secret))
		mac.Write(body)
		calculated := hex.EncodeToString(mac.Sum(nil))

		if !hmac.Equal([]byte(strings.ToLower(provided)), []byte(calculated)) {
			c.JSON(http.StatusForbidden, gin.H{"error": "invalid webhook signature"})
			c.Abort()
			return
		}

		c.Next()
	}
}
