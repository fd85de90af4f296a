package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"readtag/internal/config"
	"readtag/internal/readwise"
	"readtag/internal/repositories"
	"readtag/internal/services"
	"readtag/internal/utils"
	"readtag/internal/validation"
)

var (
	verbose    bool
	tokenFlag  string
	outputFlag string

	cfg         *config.Config
	client      *readwise.Client
	documentSvc services.DocumentService
)

var errNoToken = errors.New("no access token: pass --token or set ACCESS_TOKEN")

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "readtag",
	Short: "Turn #hashtags in Readwise Reader summaries into document tags",
	Long: `readtag reads documents from Readwise Reader, extracts the #hashtags found
in their summaries and writes them back as tags.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}

		level := cfg.Log.Level
		if verbose {
			level = "debug"
		}
		utils.ConfigureLogger(level, cfg.Log.Format, cmd.ErrOrStderr())

		switch outputFlag {
		case outputText, outputJSON, outputYAML:
		default:
			return fmt.Errorf("unknown output format %q (want text, json or yaml)", outputFlag)
		}

		client = readwise.New(readwise.Options{
			BaseURL:    cfg.Readwise.BaseURL,
			Timeout:    cfg.Readwise.Timeout,
			MaxRetries: cfg.Readwise.MaxRetries,
			RetryDelay: cfg.Readwise.RetryDelay,
		})
		documentSvc = services.NewDocumentService(repositories.NewDocumentRepository(client, validation.New()))
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// accessToken prefers --token over ACCESS_TOKEN.
func accessToken() (string, error) {
	token := strings.TrimSpace(tokenFlag)
	if token == "" && cfg != nil {
		token = strings.TrimSpace(cfg.Readwise.AccessToken)
	}
	if token == "" {
		return "", errNoToken
	}
	return token, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&tokenFlag, "token", "", "Readwise access token (defaults to ACCESS_TOKEN)")
	rootCmd.PersistentFlags().StringVarP(&outputFlag, "output", "o", outputText, "Output format: text, json or yaml")
}
