package cmd

import (
	"attendance/config"
	"attendance/handlers"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/autotls"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the HTTP server with the upload, identify and verify end-points,
gallery management, the attendance log and the /ws live feed.

TLS certificates are obtained automatically when TLS_DOMAINS is set.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("bind", config.BIND_ADDRESS, "Address to listen on")
}

func runServe(cmd *cobra.Command, args []string) error {
	c, err := setup(cmd, true)
	if err != nil {
		return err
	}
	defer c.Close()
	if config.GALLERY_SYNC_SECS > 0 {
		go c.service.StartSync(time.Duration(config.GALLERY_SYNC_SECS) * time.Second)
	}

	if !config.DEBUG_MODE {
		gin.SetMode(gin.ReleaseMode)
	}
	handlers.Init(c.service, c.hub)
	router := handlers.NewRouter(config.DEBUG_MODE, config.MAX_UPLOAD_MB)

	if config.TLS_DOMAINS != "" {
		err = autotls.Run(router, strings.Split(config.TLS_DOMAINS, ",")...)
	} else {
		err = router.Run(mustGetString(cmd, "bind"))
	}
	log.Printf("Server stopped: %v", err)
	return err
}
