// Package cli implements the wordstats command line with cobra.
package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/wordstats/internal/adapters/driven/config/file"
	"github.com/custodia-labs/wordstats/internal/adapters/driven/storage/blob"
	"github.com/custodia-labs/wordstats/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/wordstats/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/wordstats/internal/core/domain"
	"github.com/custodia-labs/wordstats/internal/core/ports/driving"
	"github.com/custodia-labs/wordstats/internal/core/services"
	"github.com/custodia-labs/wordstats/internal/logger"
	"github.com/custodia-labs/wordstats/internal/normalisers/docx"
	"github.com/custodia-labs/wordstats/internal/normalisers/plaintext"
)

// version is set at build time with -ldflags "-X .../cli.version=...".
var version = "dev"

// Global flags.
var (
	configPath string
	dataDir    string
	verbose    bool
)

// Services used by the commands. Set by setupServices, or by SetServices in tests.
var (
	settingsService driving.SettingsService
	uploadService   driving.UploadService
	fileService     driving.FileService
	statsService    driving.StatsService
	appSettings     domain.AppSettings

	servicesInjected bool
	closeServices    func() error
)

// annotationNoServices marks commands that run without storage.
const annotationNoServices = "no-services"

var rootCmd = &cobra.Command{
	Use:   "wordstats",
	Short: "Word frequency statistics for uploaded documents",
	Long: `wordstats stores uploaded plain text and DOCX documents, counts the
words in each, and reports per-word statistics across all documents or
scoped to one.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setupServices,
	PersistentPostRunE: teardownServices,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.wordstats/config.toml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Directory holding the database")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// Services bundles the services the commands call.
type Services struct {
	Settings driving.SettingsService
	Upload   driving.UploadService
	Files    driving.FileService
	Stats    driving.StatsService
	Config   domain.AppSettings
}

// SetServices injects services and disables the default wiring.
// Passing nil restores the default wiring.
func SetServices(s *Services) {
	if s == nil {
		servicesInjected = false
		settingsService, uploadService, fileService, statsService = nil, nil, nil, nil
		appSettings = domain.AppSettings{}
		return
	}
	servicesInjected = true
	settingsService = s.Settings
	uploadService = s.Upload
	fileService = s.Files
	statsService = s.Stats
	appSettings = s.Config
}

// setupServices loads settings and opens storage for the command.
func setupServices(cmd *cobra.Command, _ []string) error {
	if verbose {
		logger.SetVerbose(true)
	}
	if servicesInjected || cmd.Annotations[annotationNoServices] == "true" {
		return nil
	}

	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	logger.SetVerbose(settings.Verbose)
	logger.Debug("data dir %s, media dir %s", settings.Storage.DataDir, settings.Storage.MediaDir)

	store, err := sqlite.NewStore(settings.Storage.DataDir)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	blobs, err := blob.NewStore(settings.Storage.MediaDir)
	if err != nil {
		store.Close()
		return fmt.Errorf("opening media directory: %w", err)
	}

	extractors := services.NewExtractorRegistry(plaintext.New(), docx.New())
	uploadService = services.NewUploadService(blobs, store, extractors, settings.Upload.MaxBytes)
	fileService = services.NewFileService(store, blobs, extractors)
	statsService = services.NewStatsService(store, store)
	appSettings = *settings
	closeServices = store.Close
	return nil
}

func teardownServices(_ *cobra.Command, _ []string) error {
	if closeServices == nil {
		return nil
	}
	err := closeServices()
	closeServices = nil
	return err
}

// loadSettings reads the config file and applies flag overrides.
func loadSettings(cmd *cobra.Command) (*domain.AppSettings, error) {
	if settingsService == nil {
		svc, err := newSettingsService()
		if err != nil {
			return nil, err
		}
		settingsService = svc
	}

	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	if cmd.Flags().Changed("data-dir") {
		settings.Storage.DataDir = dataDir
	}
	if cmd.Flags().Changed("verbose") {
		settings.Verbose = verbose
	}
	resolveStorageDirs(settings)
	return settings, nil
}

// newSettingsService opens the config file. Without a usable home
// directory and no --config, defaults are used from memory.
func newSettingsService() (*services.SettingsService, error) {
	path := configPath
	if path == "" {
		p, err := file.DefaultPath()
		if err != nil {
			logger.Warn("no config file: %v", err)
			return services.NewSettingsService(memory.NewConfigStore()), nil
		}
		path = p
	}

	store, err := file.NewConfigStore(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return services.NewSettingsService(store), nil
}

// resolveStorageDirs fills empty storage directories under ~/.wordstats.
func resolveStorageDirs(settings *domain.AppSettings) {
	base := ".wordstats"
	if home, err := os.UserHomeDir(); err == nil {
		base = filepath.Join(home, ".wordstats")
	}
	if settings.Storage.DataDir == "" {
		settings.Storage.DataDir = filepath.Join(base, "data")
	}
	if settings.Storage.MediaDir == "" {
		settings.Storage.MediaDir = filepath.Join(base, "media")
	}
}

// parseFileID parses a positive integer file id argument.
func parseFileID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid file id %q", arg)
	}
	return id, nil
}

var errNotConfigured = errors.New("services not configured")
