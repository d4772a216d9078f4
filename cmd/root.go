/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/herbolive/herbdb/internal/iofs"
	"github.com/herbolive/herbdb/internal/iologger"
	app "github.com/herbolive/herbdb/pkg"
	"github.com/herbolive/herbdb/pkg/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// getRootCmd returns the root command with all subcommands attached.
// Extracted as a function to facilitate testing.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "herbdb",
		Short:   "Plant catalog backend with enrichment from botanical sources",
		Long: `HerbDB keeps a catalog of plants in PostgreSQL or SQLite.

Records are imported from CSV datasets or the Trefle listing, enriched
on lookup from Perenual, Trefle, Wikipedia and a local CSV file, and
optionally translated before they are served over an HTTP API.

Configuration: ~/.config/herbdb/config.yaml
Environment:   HERBDB_* variables, also read from ~/.config/herbdb/.env`,
		PersistentPreRunE: bootstrap,
		RunE:              runRoot,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "herbdb version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for herbdb")

	rootCmd.AddCommand(
		getCreateCmd(),
		getMigrateCmd(),
		getOptimizeCmd(),
		getImportCmd(),
		getGetCmd(),
		getServeCmd(),
	)

	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog, false); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	envPath := config.EnvFilePath(homeDir)
	if iofs.Exists(envPath) {
		// variables already set in the environment are kept
		if err = godotenv.Load(envPath); err != nil {
			err = iofs.ReadFileError(envPath, err)
			gn.PrintErrorMessage(err)
			return err
		}
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// Reconfigure logging with user's settings and proper log file location
	if err = reconfigureLogging(cfg); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir),
		"driver", cfg.Database.Driver,
	)

	return nil
}

// reconfigureLogging reinitializes the logger with the loaded configuration.
// The log of the bootstrap run is kept.
func reconfigureLogging(cfg *config.Config) error {
	logDir := config.LogDir(cfg.HomeDir)
	return iologger.Init(logDir, cfg.Log, true)
}

func runRoot(cmd *cobra.Command, _ []string) error {
	gn.Info(
		"Configuration files are available at <em>%s</em>",
		config.ConfigDir(homeDir),
	)
	return cmd.Help()
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := getRootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	// ToOptions always carries db_first, a missing key reads as true.
	v.SetDefault("server.db_first", true)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables are allowed.
	// These match the fields included in config.ToOptions() - i.e., persistent
	// configuration that can be stored in config.yaml.
	v.SetEnvPrefix("HERBDB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Database configuration
	v.BindEnv("database.driver", "HERBDB_DATABASE_DRIVER")
	v.BindEnv("database.host", "HERBDB_DATABASE_HOST")
	v.BindEnv("database.port", "HERBDB_DATABASE_PORT")
	v.BindEnv("database.user", "HERBDB_DATABASE_USER")
	v.BindEnv("database.password", "HERBDB_DATABASE_PASSWORD")
	v.BindEnv("database.database", "HERBDB_DATABASE_DATABASE")
	v.BindEnv("database.ssl_mode", "HERBDB_DATABASE_SSL_MODE")
	v.BindEnv("database.sqlite_path", "HERBDB_DATABASE_SQLITE_PATH")
	v.BindEnv("database.batch_size", "HERBDB_DATABASE_BATCH_SIZE")

	// Sources configuration
	v.BindEnv("sources.perenual_url", "HERBDB_SOURCES_PERENUAL_URL")
	v.BindEnv("sources.perenual_key", "HERBDB_SOURCES_PERENUAL_KEY")
	v.BindEnv("sources.trefle_url", "HERBDB_SOURCES_TREFLE_URL")
	v.BindEnv("sources.trefle_token", "HERBDB_SOURCES_TREFLE_TOKEN")
	v.BindEnv("sources.wikipedia_url", "HERBDB_SOURCES_WIKIPEDIA_URL")
	v.BindEnv("sources.csv_path", "HERBDB_SOURCES_CSV_PATH")
	v.BindEnv("sources.csv_max_read", "HERBDB_SOURCES_CSV_MAX_READ")
	v.BindEnv("sources.timeout_sec", "HERBDB_SOURCES_TIMEOUT_SEC")
	v.BindEnv("sources.listing_max", "HERBDB_SOURCES_LISTING_MAX")

	// Translate configuration
	v.BindEnv("translate.provider", "HERBDB_TRANSLATE_PROVIDER")
	v.BindEnv("translate.url", "HERBDB_TRANSLATE_URL")
	v.BindEnv("translate.api_key", "HERBDB_TRANSLATE_API_KEY")
	v.BindEnv("translate.target", "HERBDB_TRANSLATE_TARGET")
	v.BindEnv("translate.cache_size", "HERBDB_TRANSLATE_CACHE_SIZE")

	// Server configuration
	v.BindEnv("server.host", "HERBDB_SERVER_HOST")
	v.BindEnv("server.port", "HERBDB_SERVER_PORT")
	v.BindEnv("server.db_first", "HERBDB_SERVER_DB_FIRST")
	v.BindEnv("server.list_concurrency", "HERBDB_SERVER_LIST_CONCURRENCY")
	v.BindEnv("server.page_size", "HERBDB_SERVER_PAGE_SIZE")

	// Log configuration
	v.BindEnv("log.level", "HERBDB_LOG_LEVEL")
	v.BindEnv("log.format", "HERBDB_LOG_FORMAT")
	v.BindEnv("log.destination", "HERBDB_LOG_DESTINATION")

	// General configuration
	v.BindEnv("jobs_number", "HERBDB_JOBS_NUMBER")

	v.AutomaticEnv()
}
