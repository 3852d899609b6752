package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/fivetwenty-io/reapi-client/cmd/reapi/commands"
	"github.com/fivetwenty-io/reapi-client/internal/constants"
	"github.com/fivetwenty-io/reapi-client/pkg/reapi"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "reapi",
	Short: "Redis Enterprise REST API CLI",
	Long: `A command-line interface for the Redis Enterprise cluster REST API.

Connection settings come from flags, REDIS_ENTERPRISE_* environment variables,
a .env file in the working directory, or $HOME/.reapi/config.yml.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initLogger()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.reapi/config.yml)")
	rootCmd.PersistentFlags().StringP("url", "u", reapi.DefaultBaseURL, "cluster REST API URL")
	rootCmd.PersistentFlags().String("user", reapi.DefaultUsername, "cluster admin username")
	rootCmd.PersistentFlags().StringP("password", "p", "", "cluster admin password (prompted when omitted)")
	rootCmd.PersistentFlags().BoolP("insecure", "k", false, "skip TLS certificate verification")
	rootCmd.PersistentFlags().Duration("timeout", reapi.DefaultTimeout, "request timeout")
	rootCmd.PersistentFlags().StringP("output", "o", constants.FormatTable, "output format (table, json, yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output, including HTTP requests")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	rootCmd.PersistentFlags().String("nats-url", "", "publish streamed items to this NATS server instead of stdout")
	rootCmd.PersistentFlags().String("nats-subject", "reapi.stream", "NATS subject for streamed items")

	// Bind flags to viper
	for _, name := range []string{
		"config", "url", "user", "password", "insecure", "timeout",
		"output", "verbose", "no-color", "nats-url", "nats-subject",
	} {
		_ = viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}

	// Add commands
	rootCmd.AddCommand(commands.NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(commands.NewClusterCommand())
	rootCmd.AddCommand(commands.NewDatabasesCommand())
	rootCmd.AddCommand(commands.NewNodesCommand())
	rootCmd.AddCommand(commands.NewLogsCommand())
	rootCmd.AddCommand(commands.NewStatsCommand())
	rootCmd.AddCommand(commands.NewActionsCommand())
	rootCmd.AddCommand(commands.NewDebugInfoCommand())
	rootCmd.AddCommand(commands.NewModulesCommand())
	rootCmd.AddCommand(commands.NewLicenseCommand())
	rootCmd.AddCommand(commands.NewUsageReportCommand())
	rootCmd.AddCommand(commands.NewAPICommand())
	rootCmd.AddCommand(commands.NewOverviewCommand())
}

func initConfig() {
	// A missing .env file is not an error.
	_ = godotenv.Load()

	cfgFile := viper.GetString("config")

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".reapi"))
		}

		viper.SetConfigType("yml")
		viper.SetConfigName("config")
	}

	// REDIS_ENTERPRISE_URL, REDIS_ENTERPRISE_USER, REDIS_ENTERPRISE_PASSWORD, ...
	viper.SetEnvPrefix(constants.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

func initLogger() {
	level := slog.LevelInfo
	if viper.GetBool("verbose") {
		level = slog.LevelDebug
	}

	noColor := viper.GetBool("no-color") || !term.IsTerminal(int(os.Stderr.Fd()))

	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		NoColor:    noColor,
	})))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
