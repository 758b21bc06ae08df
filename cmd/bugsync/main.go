package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	_ "github.com/bugsynclabs/bugsync/internal/backlog"
	"github.com/bugsynclabs/bugsync/internal/tracker"
)

var (
	configFile  string
	tokenFlag   string
	trackerName string
	verboseFlag bool

	// Signal-aware context for graceful cancellation
	rootCtx    context.Context
	rootCancel context.CancelFunc
)

var rootCmd = &cobra.Command{
	Use:   "bugsync",
	Short: "Synchronize a local bug list with a remote project tracker",
	Long: `bugsync keeps a plain YAML bug list in step with a remote
project tracker. Pull writes the remote issue list to a local file,
you edit the file, and push replays your additions, edits, and
deletions against the remote API.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default: $HOME/.config/bugsync/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&tokenFlag, "token", "", "API token (default: $BUGSYNC_TOKEN or config file)")
	rootCmd.PersistentFlags().StringVar(&trackerName, "tracker", "backlog", "Tracker backend to use")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose output")

	viper.BindPFlag("token", rootCmd.PersistentFlags().Lookup("token"))
	viper.BindPFlag("tracker", rootCmd.PersistentFlags().Lookup("tracker"))

	rootCmd.AddCommand(pullCmd)
	rootCmd.AddCommand(pushCmd)
	rootCmd.AddCommand(trackersCmd)
}

func initConfig() {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home + "/.config/bugsync")
		}
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("BUGSYNC")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verboseFlag {
		fmt.Fprintf(os.Stderr, "using config file %s\n", viper.ConfigFileUsed())
	}
}

// newBackend builds and initializes the selected tracker backend.
func newBackend() (tracker.BugTracker, error) {
	name := viper.GetString("tracker")
	backend, err := tracker.New(name)
	if err != nil {
		return nil, err
	}

	settings := map[string]string{
		"token": viper.GetString("token"),
	}
	if label := viper.GetString("closed-status"); label != "" {
		settings["closed_status"] = label
	}

	if err := backend.Init(settings); err != nil {
		return nil, fmt.Errorf("initializing %s backend: %w", name, err)
	}
	if err := backend.Validate(); err != nil {
		return nil, err
	}
	return backend, nil
}

func verbosef(format string, args ...interface{}) {
	if verboseFlag {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}

func main() {
	rootCtx, rootCancel = signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer rootCancel()

	if err := rootCmd.ExecuteContext(rootCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
