package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/wordstats/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/wordstats/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Serve the upload, file and statistics API over HTTP until interrupted.
Uploaded files are also served under /media/.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

// serveAddr is the --addr flag of serve.
var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config, 127.0.0.1:8000)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if uploadService == nil || fileService == nil || statsService == nil {
		return errNotConfigured
	}

	addr := appSettings.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}
	if addr == "" {
		return fmt.Errorf("no listen address configured")
	}

	if !logger.IsVerbose() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := httpapi.NewRouter(uploadService, fileService, statsService, httpapi.ConfigFromSettings(appSettings))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return httpapi.NewServer(addr, router).Run(ctx)
}
