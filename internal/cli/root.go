// Package cli assembles the jsonxsd command tree,
// grounded on pyneda-sukyan/cmd's cobra+viper wiring.
package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/brettsor/jsonxsd/internal/config"
)

var (
	v       = viper.New()
	logger  zerolog.Logger
	cfg     *config.CLI
	cfgFile string
	locale  string
	workers int
)

// rootCmd is the base jsonxsd command.
var rootCmd = &cobra.Command{
	Use:   "jsonxsd",
	Short: "Synthesize an XSD and XML serialization from a JSON sample",
}

// Execute runs the command tree. It is the sole entry point called
// from cmd/jsonxsd/main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (none is read when unset)")
	rootCmd.PersistentFlags().StringVar(&locale, "locale", "en", "StringFormatRecognizer locale (en, ru)")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 0, "batch render worker count (default: NumCPU)")

	v.BindPFlag("locale", rootCmd.PersistentFlags().Lookup("locale"))
	v.BindPFlag("workers", rootCmd.PersistentFlags().Lookup("workers"))
	v.SetEnvPrefix("JSONXSD")
	v.AutomaticEnv()

	rootCmd.AddCommand(renderCmd, batchRenderCmd, summarizeCmd, convertCmd)
}

func initConfig() {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err == nil {
			fmt.Fprintln(os.Stderr, "using config file:", v.ConfigFileUsed())
		}
	}
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	loaded, err := config.Load(v)
	if err != nil {
		fmt.Fprintln(os.Stderr, "jsonxsd:", err)
		os.Exit(1)
	}
	cfg = loaded
}

// printFatal prints a taxonomy-colored diagnostic and exits non-zero.
func printFatal(err error) {
	kind := "error"
	if e, ok := asTaxonomyError(err); ok {
		kind = e.Kind.String()
	}
	switch kind {
	case "not-implemented", "unsupported-union", "malformed-input":
		color.Yellow("jsonxsd: %s", err)
	default:
		color.Red("jsonxsd: %s", err)
	}
	os.Exit(1)
}
