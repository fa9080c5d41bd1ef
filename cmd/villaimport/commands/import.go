package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/poolvilladirect/villaimport/internal/logger"
	"github.com/poolvilladirect/villaimport/internal/output"
	"github.com/poolvilladirect/villaimport/internal/store"
	"github.com/poolvilladirect/villaimport/pkg/fetcher"
	"github.com/poolvilladirect/villaimport/pkg/importer"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import villa listings from their source URLs",
	Long: `Import fetches each listing URL, extracts the villa record, and
prints it (or writes it to a file).

Examples:
  # Single listing to stdout
  villaimport import -u "https://www.pattayapartypoolvilla.com/v/2564"

  # Batch import to JSONL, persisting to the database
  villaimport import -u URL1 -u URL2 --format jsonl -o out.jsonl --save`,
}

func init() {
	importCmd.RunE = runImport
	rootCmd.AddCommand(importCmd)

	flags := importCmd.Flags()

	flags.StringSliceP("url", "u", nil, "listing URL(s) to import (can be repeated)")

	// Output settings
	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.String("format", "json", "output format: json, jsonl, yaml")

	// Fetch settings
	flags.String("fetch-mode", "static", "fetch mode: static, dynamic")
	flags.Duration("timeout", 30*time.Second, "request timeout")
	flags.String("max-body-size", "5MB", "max response body size (e.g. 5MB, 0=unlimited)")

	// Persistence
	flags.Bool("save", false, "persist imported villas to the database (DATABASE_URL)")
}

func runImport(cmd *cobra.Command, _ []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	urls, _ := cmd.Flags().GetStringSlice("url")
	if len(urls) == 0 {
		return cmd.Help()
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")

	maxBodySizeStr, _ := cmd.Flags().GetString("max-body-size")
	var maxBodySize int
	if strings.TrimSpace(maxBodySizeStr) != "" && maxBodySizeStr != "0" {
		bytes, err := humanize.ParseBytes(maxBodySizeStr)
		if err != nil {
			logError("invalid max-body-size %q: %v", maxBodySizeStr, err)
			return err
		}
		maxBodySize = int(bytes)
	}

	f, err := buildFetcher(timeout, maxBodySize)
	if err != nil {
		return err
	}

	imp := importer.New(
		importer.WithFetcher(f),
		importer.WithTimeout(timeout),
	)
	defer func() { _ = imp.Close() }()

	// Output destination
	out := os.Stdout
	if outputPath, _ := cmd.Flags().GetString("output"); outputPath != "" {
		file, err := os.Create(outputPath)
		if err != nil {
			logError("failed to create output file: %v", err)
			return err
		}
		defer file.Close()
		out = file
	}

	formatStr, _ := cmd.Flags().GetString("format")
	writer, err := output.NewWriter(out, output.Format(formatStr))
	if err != nil {
		logError("%v", err)
		return err
	}

	var villas *store.Store
	if save, _ := cmd.Flags().GetBool("save"); save {
		connStr := viper.GetString("database_url")
		if connStr == "" {
			logError("--save requires DATABASE_URL")
			return errMissingDatabase
		}
		villas, err = store.Open(connStr)
		if err != nil {
			logError("failed to open database: %v", err)
			return err
		}
		defer func() { _ = villas.Close() }()
		if err := villas.Migrate(); err != nil {
			logError("failed to migrate database: %v", err)
			return err
		}
	}

	failed := 0
	for _, u := range urls {
		logInfo("Importing %s", u)
		villa, err := imp.Import(ctx, u)
		if err != nil {
			logError("%s: %v", u, err)
			failed++
			continue
		}

		if err := writer.Write(villa); err != nil {
			logError("failed to write result: %v", err)
			return err
		}

		if villas != nil {
			id, err := villas.CreateVilla(ctx, villa)
			if err != nil {
				logError("failed to store %s: %v", u, err)
				failed++
				continue
			}
			logInfo("Stored villa id=%d", id)
		}
	}

	if err := writer.Flush(); err != nil {
		return err
	}

	if failed > 0 {
		return &importFailures{failed: failed, total: len(urls)}
	}
	return nil
}

var errMissingDatabase = errors.New("DATABASE_URL is not set")

type importFailures struct {
	failed int
	total  int
}

func (e *importFailures) Error() string {
	return fmt.Sprintf("%d of %d imports failed", e.failed, e.total)
}

func buildFetcher(timeout time.Duration, maxBodySize int) (fetcher.Fetcher, error) {
	mode := viper.GetString("fetch_mode")
	if mode == "" {
		mode = "static"
	}
	if flagMode, err := importCmd.Flags().GetString("fetch-mode"); err == nil && importCmd.Flags().Changed("fetch-mode") {
		mode = flagMode
	}

	switch mode {
	case "dynamic":
		return fetcher.NewDynamic(fetcher.DynamicConfig{Timeout: timeout})
	default:
		return fetcher.NewStatic(fetcher.StaticConfig{
			Timeout:     timeout,
			MaxBodySize: maxBodySize,
		}), nil
	}
}
