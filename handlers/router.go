package handlers

import (
	"attendance/utils"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// NewRouter sets up all end-points. Init must be called before serving requests
func NewRouter(debug bool, maxUploadMB int) *gin.Engine {
	router := gin.Default()
	_ = router.SetTrustedProxies([]string{})
	if debug {
		router.Use(utils.ErrorLogMiddleware)
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST"},
		AllowHeaders:  []string{"Origin", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        30 * 24 * time.Hour,
	}))
	if !debug {
		router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/gallery/face", "/ws"})))
	}
	router.Use(utils.CacheControl(0)) // No cache by default, individual end-points can override that
	router.Use(utils.LimitBody(int64(maxUploadMB) << 20))

	router.GET("/", Root)
	// Recognition
	router.POST("/upload/", Upload)
	router.POST("/identify/", Identify)
	router.POST("/verify/", Verify)
	// Gallery management
	router.GET("/gallery/list", GalleryList)
	router.GET("/gallery/face", GalleryFace)
	router.POST("/gallery/delete", GalleryDelete)
	// Attendance log
	router.GET("/attendance/list", AttendanceList)
	router.GET("/ws", WebSocket)
	return router
}
