package utils

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const maxLoggedBody = 512

// CacheControl sets the default cache-control header. Handlers can override it.
// maxAge <= 0 means no caching
func CacheControl(maxAge int) gin.HandlerFunc {
	value := "no-cache"
	if maxAge > 0 {
		value = "private, max-age=" + strconv.Itoa(maxAge)
	}
	return func(c *gin.Context) {
		c.Header("cache-control", value)
		c.Next()
	}
}

// LimitBody rejects request bodies larger than maxBytes
func LimitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": "request too large"})
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

type errorLogWriter struct {
	gin.ResponseWriter
	gc *gin.Context
}

func (w errorLogWriter) Write(b []byte) (int, error) {
	status := w.gc.Writer.Status()
	if status >= 400 {
		body := b
		if len(body) > maxLoggedBody {
			body = body[:maxLoggedBody]
		}
		log.Printf("[DEBUG ERROR]: %s %s, Status %d, Body: %s", w.gc.Request.Method, w.gc.Request.URL.Path, status, string(body))
	}
	return w.ResponseWriter.Write(b)
}

// ErrorLogMiddleware logs failed responses. Doesn't work with GZIP
func ErrorLogMiddleware(c *gin.Context) {
	c.Writer = &errorLogWriter{gc: c, ResponseWriter: c.Writer}
	c.Next()
}
