package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/taizguy/zamapedia/internal/page/config"
	"github.com/taizguy/zamapedia/internal/page/domain"
	"github.com/taizguy/zamapedia/internal/page/events"
	"github.com/taizguy/zamapedia/internal/page/extractor"
	"github.com/taizguy/zamapedia/internal/page/fetcher"
	"github.com/taizguy/zamapedia/internal/page/metrics"
	"github.com/taizguy/zamapedia/internal/page/service"
	"github.com/taizguy/zamapedia/pkg/validator"
)

// fetchCmd is the single-invocation shape of the pipeline: run once for one
// URL and print the same JSON envelope the HTTP route returns.
var fetchCmd = &cobra.Command{
	Use:   "fetch <url>",
	Short: "Fetch and extract a single page, printing the JSON result",
	Args:  cobra.ExactArgs(1),
	RunE:  runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	rawURL := args[0]

	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cacheLayer, err := initCache(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}

	pageService := service.NewPageService(
		validator.NewDefaultValidator(),
		cacheLayer,
		fetcher.New(cfg.Fetch.Timeout(), cfg.Fetch.UserAgent),
		extractor.New(),
		nil,
		events.NoopPublisher{},
		metrics.NewInMemoryMetrics(),
		logger,
	)

	resp, err := pageService.FetchPage(context.Background(), rawURL)
	if err != nil {
		printJSON(errorEnvelope(err))
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return err
	}

	printJSON(resp)
	return nil
}

func errorEnvelope(err error) map[string]interface{} {
	var upstream *domain.UpstreamError
	if errors.As(err, &upstream) {
		return map[string]interface{}{
			"ok":         false,
			"status":     upstream.Status,
			"statusText": upstream.StatusText,
		}
	}
	return map[string]interface{}{"ok": false, "error": err.Error()}
}

func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(v)
}
