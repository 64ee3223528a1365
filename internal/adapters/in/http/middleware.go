package http

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/suchimauz/pet-clinic-core/internal/config"
	"github.com/suchimauz/pet-clinic-core/internal/core/ports/out"
)

const requestIDHeader = "X-Request-Id"

func basicAuth(clients []config.ConfigBasicClient) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		username, password, hasAuth := ctx.Request.BasicAuth()
		if !hasAuth || !knownClient(clients, username, password) {
			ctx.Header("WWW-Authenticate", "Basic realm=Authorization Required")
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		ctx.Next()
	}
}

func knownClient(clients []config.ConfigBasicClient, username, password string) bool {
	matched := false
	for _, client := range clients {
		userOK := subtle.ConstantTimeCompare([]byte(username), []byte(client.Username)) == 1
		passOK := subtle.ConstantTimeCompare([]byte(password), []byte(client.Password)) == 1
		if userOK && passOK {
			matched = true
		}
	}
	return matched
}

// requestLogger проставляет X-Request-Id и пишет итог запроса
func requestLogger(logger out.LoggerPort) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		requestID := ctx.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx.Header(requestIDHeader, requestID)
		ctx.Set("requestId", requestID)

		start := time.Now()
		ctx.Next()

		fields := out.LogFields{
			"requestId": requestID,
			"method":    ctx.Request.Method,
			"path":      ctx.FullPath(),
			"status":    ctx.Writer.Status(),
			"latencyMs": time.Since(start).Milliseconds(),
		}
		if ctx.Writer.Status() >= http.StatusInternalServerError {
			logger.Error("http.request.completed", fields)
			return
		}
		logger.Info("http.request.completed", fields)
	}
}
