// Command wafscout checks whether URLs sit behind a Web Application
// Firewall. Targets come from Route53 hosted zones or local lists; each
// URL gets one passive GET, classified against a vendor signature table,
// with results written as CSV/JSON to disk or S3.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/route53"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/wafscout/wafscout/pkg/cloud"
	"github.com/wafscout/wafscout/pkg/config"
	"github.com/wafscout/wafscout/pkg/defaults"
	"github.com/wafscout/wafscout/pkg/dnsintel"
	"github.com/wafscout/wafscout/pkg/input"
	"github.com/wafscout/wafscout/pkg/output"
	"github.com/wafscout/wafscout/pkg/probe"
	"github.com/wafscout/wafscout/pkg/runner"
	"github.com/wafscout/wafscout/pkg/signature"
	"github.com/wafscout/wafscout/pkg/storage"
	"github.com/wafscout/wafscout/pkg/ui"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.ParseFlags()
	if err != nil {
		ui.Errorf("wafscout: %v", err)
		return defaults.ExitUserError
	}
	if cfg.ShowVersion {
		fmt.Println("wafscout " + defaults.Version)
		return defaults.ExitSuccess
	}

	if cfg.NoColor {
		ui.DisableColor()
	} else {
		ui.AutoColor()
	}
	if !cfg.Silent {
		ui.Banner(defaults.Version)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	table, err := loadTable(cfg)
	if err != nil {
		ui.Errorf("wafscout: %v", err)
		return defaults.ExitUserError
	}

	urls, err := collectURLs(ctx, cfg)
	if err != nil {
		ui.Errorf("wafscout: %v", err)
		return defaults.ExitUserError
	}
	urls = input.Cap(urls, cfg.MaxURLs)
	if len(urls) == 0 {
		ui.Errorf("wafscout: no URLs to check")
		return defaults.ExitUserError
	}
	if !cfg.Silent {
		ui.Infof("checking %d URLs (concurrency %d, %g req/s)", len(urls), cfg.Concurrency, cfg.RateLimit)
	}

	prober := probe.New(probe.Config{Timeout: cfg.Timeout})
	var resolver *dnsintel.Resolver
	if cfg.DNSCheck {
		resolver = dnsintel.New(table)
	}
	console := output.NewConsoleWriter(cfg.Silent, cfg.Verbose)

	r := runner.New(runner.Config{
		Concurrency: cfg.Concurrency,
		RateLimit:   cfg.RateLimit,
		MaxURLs:     cfg.MaxURLs,
	}, prober, table, resolver, console)

	rows, stats := r.Run(ctx, urls)

	if err := persist(ctx, cfg, rows); err != nil {
		ui.Errorf("wafscout: %v", err)
		return defaults.ExitInternalError
	}

	if !cfg.Silent {
		ui.PrintSummary(stats.Total, stats.Detected, stats.NotDetected, stats.Errors, stats.Duration)
	}
	return defaults.ExitSuccess
}

func loadTable(cfg *config.Config) (*signature.Table, error) {
	if cfg.SignatureFile == "" {
		return signature.DefaultTable(), nil
	}
	return signature.LoadTable(cfg.SignatureFile)
}

func collectURLs(ctx context.Context, cfg *config.Config) ([]string, error) {
	if cfg.HasLocalTargets() {
		ts := &input.TargetSource{
			URLs:     cfg.TargetURLs,
			ListFile: cfg.ListFile,
		}
		if cfg.StdinInput {
			ts.Stdin = os.Stdin
		}
		return ts.Targets()
	}

	if !cfg.Silent {
		ui.Infof("listing Route53 record sets...")
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	src := cloud.NewRoute53Source(route53.NewFromConfig(awsCfg), cfg.ZoneID, cfg.MaxURLs)
	return src.URLs(ctx)
}

func persist(ctx context.Context, cfg *config.Config, rows []output.Row) error {
	report := output.BuildReport(uuid.NewString(), defaults.Version, rows)
	store := buildStore(ctx, cfg)
	stamp := report.Metadata.Timestamp

	if cfg.OutputFormat == config.FormatCSV || cfg.OutputFormat == config.FormatBoth {
		data, err := output.RenderCSV(rows)
		if err != nil {
			return err
		}
		loc, err := store.Save(ctx, fmt.Sprintf("wafscout_results_%d.csv", stamp), output.ContentTypeCSV, data)
		if err != nil {
			return err
		}
		if !cfg.Silent {
			ui.Infof("CSV results: %s", loc)
		}
	}

	if cfg.OutputFormat == config.FormatJSON || cfg.OutputFormat == config.FormatBoth {
		data, err := output.RenderJSON(report)
		if err != nil {
			return err
		}
		loc, err := store.Save(ctx, fmt.Sprintf("wafscout_results_%d.json", stamp), output.ContentTypeJSON, data)
		if err != nil {
			return err
		}
		if !cfg.Silent {
			ui.Infof("JSON results: %s", loc)
		}
	}
	return nil
}

func buildStore(ctx context.Context, cfg *config.Config) storage.Store {
	local := storage.NewLocalStore(cfg.OutputDir)
	if cfg.LocalStorage || cfg.S3Bucket == "" {
		return local
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		ui.Errorf("wafscout: AWS config unavailable, saving locally: %v", err)
		return local
	}
	return storage.NewS3Store(s3.NewFromConfig(awsCfg), cfg.S3Bucket, local)
}
