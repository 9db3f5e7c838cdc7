package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/janelia-flyem/dvidplane/dvid"
	"github.com/janelia-flyem/dvidplane/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "dvidplane",
	Short: "Extract planes and rendering defaults from 5d pixel sets",
	Long: `dvidplane stores 5d (X, Y, Z, channel, time) pixel sets and extracts XY, XZ, or ZY
planes from them, computes channel statistics, and synthesizes default rendering settings.

Examples:
  # Import a DICOM file, computing channel statistics from its pixels
  dvidplane import --stats scan.dcm

  # Print the XZ plane at y = 100 of channel 1
  dvidplane extract --shape xz --index 100 --channel 1 <id>

  # Print rendering defaults as JSON
  dvidplane defaults <id>`,
	SilenceUsage: true,
}

var envKeyReplacer = strings.NewReplacer(".", "_", "-", "_")

// Execute adds all child commands to the root command and runs it.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	dvid.Shutdown()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "TOML or YAML configuration file")
	rootCmd.PersistentFlags().String("store", "", "badger store directory (overrides configuration)")
	rootCmd.PersistentFlags().String("byteorder", "", "byte order for pixel sets that don't declare one: big|little")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log debug messages")

	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("store", rootCmd.PersistentFlags().Lookup("store"))
	viper.BindPFlag("byteorder", rootCmd.PersistentFlags().Lookup("byteorder"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig reads settings from DVIDPLANE_* environment variables if set.  Subcommand
// keys map with underscores, e.g., extract.shape is DVIDPLANE_EXTRACT_SHAPE.
func initConfig() {
	viper.SetEnvPrefix("dvidplane")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()
	if viper.GetBool("verbose") {
		dvid.SetLogMode(dvid.DebugMode)
	} else {
		dvid.SetLogMode(dvid.WarningMode)
	}
}

// loadConfig reads the configuration file and applies command-line overrides.
func loadConfig() (*server.Config, error) {
	config, err := server.LoadConfig(viper.GetString("config"))
	if err != nil {
		return nil, err
	}
	if path := viper.GetString("store"); path != "" {
		config.Store.Path = path
		config.Store.InMemory = false
	}
	if order := viper.GetString("byteorder"); order != "" {
		config.Pixels.ByteOrder = order
	}
	return config, nil
}

// withService runs fn with a service opened from the current configuration.
func withService(cmd *cobra.Command, fn func(ctx context.Context, s *server.Service) error) error {
	config, err := loadConfig()
	if err != nil {
		return err
	}
	config.Logging.SetLogger()
	s, err := server.NewService(config, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err := s.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "error closing store: %v\n", err)
		}
	}()
	return fn(cmd.Context(), s)
}
