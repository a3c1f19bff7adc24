package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jamesainslie/strung/pkg/strung/catalog"
	"github.com/jamesainslie/strung/pkg/strung/config"
	"github.com/jamesainslie/strung/pkg/strung/logging"
	"github.com/jamesainslie/strung/pkg/strung/store"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "strung",
		Short: "Choose string gauges by mechanical tension",
		Long: `Strung computes string tensions from gauge, scale length, and pitch,
recommends gauges for a target tension window, and minimizes the number
of distinct gauges in use across all your instruments.

Examples:
  strung tension -g 0.042 -c wound -s 25.5 -n E2   # One string's tension
  strung recommend -c plain -s 25.5 -n E4          # Best gauge for the default window
  strung inventory                                 # Gauge usage and swap report
  strung optimize --write                          # Repair and consolidate selections
  strung watch                                     # Live inventory on file changes`,
		SilenceUsage: true,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/strung/config.yaml)")
	rootCmd.PersistentFlags().StringP("output", "o", "pretty", "output format (pretty, plain, json, yaml)")
	rootCmd.PersistentFlags().String("instruments", "", "instruments file (default: ~/.config/strung/instruments.yaml)")
	rootCmd.PersistentFlags().String("selections", "", "selections file (default: ~/.config/strung/selections.yaml)")
	rootCmd.PersistentFlags().String("catalog", "", "gauge catalog file (default: built-in catalog)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "minimal output")

	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("instruments_path", rootCmd.PersistentFlags().Lookup("instruments"))
	_ = viper.BindPFlag("selections_path", rootCmd.PersistentFlags().Lookup("selections"))
	_ = viper.BindPFlag("catalog_path", rootCmd.PersistentFlags().Lookup("catalog"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}

// initConfig reads in config file and environment variables.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")

		if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
			viper.AddConfigPath(filepath.Join(xdgConfigHome, "strung"))
		}
		homeDir, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(homeDir, ".config", "strung"))
		}
	}

	viper.SetEnvPrefix("STRUNG")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	_ = viper.ReadInConfig()
}

// Execute runs the root command.
func Execute() error {
	defer func() { _ = logging.Close() }()
	return rootCmd.Execute()
}

// environment bundles everything a command needs to evaluate: the loaded
// configuration, the gauge catalog, and the file store.
type environment struct {
	cfg     *config.Config
	catalog *catalog.Catalog
	store   *store.Store
}

// setup loads configuration, initializes logging, and resolves the catalog
// and store. Flag values take precedence over the config file.
func setup() (*environment, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if path := viper.GetString("instruments_path"); path != "" {
		cfg.InstrumentsPath = path
	}
	if path := viper.GetString("selections_path"); path != "" {
		cfg.SelectionsPath = path
	}
	if path := viper.GetString("catalog_path"); path != "" {
		cfg.CatalogPath = path
	}

	logCfg := logging.Config{
		Level:      cfg.Logging.Level,
		Path:       cfg.Logging.Path,
		Components: cfg.Logging.Components,
	}
	if getVerbose() {
		logCfg.Level = "debug"
		logCfg.Console = true
	}
	if err := logging.Init(logCfg); err != nil {
		return nil, fmt.Errorf("initializing logging: %w", err)
	}

	cat := catalog.Default()
	if cfg.CatalogPath != "" {
		cat, err = catalog.LoadFile(cfg.CatalogPath)
		if err != nil {
			return nil, err
		}
	}

	return &environment{
		cfg:     cfg,
		catalog: cat,
		store: &store.Store{
			InstrumentsPath: cfg.InstrumentsPath,
			SelectionsPath:  cfg.SelectionsPath,
			DefaultPlain:    cfg.PlainTarget(),
			DefaultWound:    cfg.WoundTarget(),
		},
	}, nil
}

// getVerbose returns true if verbose mode is enabled.
func getVerbose() bool {
	return viper.GetBool("verbose")
}

// getQuiet returns true if quiet mode is enabled.
func getQuiet() bool {
	return viper.GetBool("quiet")
}

// printInfo prints a message if quiet mode is not enabled.
func printInfo(format string, args ...interface{}) {
	if !getQuiet() {
		fmt.Printf(format+"\n", args...)
	}
}
