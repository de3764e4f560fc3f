package handlers

import (
	"attendance/attendance"
	"attendance/events"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Response struct {
	Error string `json:"error"`
}

// ResultResponse is the answer of the upload, identify and verify end-points
type ResultResponse struct {
	Results string `json:"results"`
}

const (
	etagHeader  = "ETag"
	rootMessage = "Attendance verification service"
)

var (
	// Predefined errors
	NoFileResponse   = Response{"file is required"}
	NoNameResponse   = Response{"name is required"}
	NotFoundResponse = Response{"not found"}
	TooLargeResponse = Response{"request too large"}
	DBErrorResponse  = Response{"DB Error"}

	service *attendance.Service
	hub     *events.Hub
)

// Init sets what the handlers work with. hub can be nil, then /ws is refused
func Init(s *attendance.Service, h *events.Hub) {
	service = s
	hub = h
}

func Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": rootMessage})
}

// isNotModified sets the ETag to the last record ID (from tx) followed by variant,
// which identifies the rest of the request (e.g. the limit of a list)
func isNotModified(c *gin.Context, tx *gorm.DB, variant string) bool {
	row := tx.Row()
	lastID := uint64(0)
	if row.Scan(&lastID) != nil {
		return false
	}
	etag := strconv.FormatUint(lastID, 10)
	if variant != "" {
		etag += "-" + variant
	}
	// Set the current ETag in all cases
	c.Header("cache-control", "private, max-age=1")
	c.Header(etagHeader, etag)

	if c.Request.Header.Get("If-None-Match") == etag {
		c.Status(http.StatusNotModified)
		return true
	}
	return false
}
