// Package cmd is for command line interactions with the sdm application
package cmd

import (
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jjtimmons/sdm/config"
)

var (
	// logger is built before any subcommand runs
	logger = zap.NewNop()

	settingsFile string
	verbose      bool

	stderr = log.New(os.Stderr, "", 0)
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use: "sdm",
	Short: `Design primers for site-directed mutagenesis.
Substitutions, insertions, deletions and codon changes with back-to-back or overlapping primers`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := zapcore.InfoLevel
		if verbose {
			level = zapcore.DebugLevel
		}
		logConf := zap.NewProductionConfig()
		logConf.Level = zap.NewAtomicLevelAt(level)
		logConf.Encoding = "console"
		logConf.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

		l, err := logConf.Build()
		if err != nil {
			return err
		}
		logger = l

		return config.Setup(viper.GetViper(), settingsFile)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := RootCmd.Execute()
	_ = logger.Sync()
	if err != nil {
		stderr.Println(err)
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&settingsFile, "settings", "", "path to a YAML settings file")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log search progress")
}
