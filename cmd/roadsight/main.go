package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/roadsight/roadsight-go/config"
	"github.com/roadsight/roadsight-go/logstore"
	"github.com/roadsight/roadsight-go/models"
	"github.com/roadsight/roadsight-go/roadsight"
)

const usage = `usage: roadsight <command> [flags]

commands:
  search   search footage by text or example image
  videos   list the footage library
  health   probe backend liveness (use --watch to poll)
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	_ = godotenv.Load()

	cfg, err := config.Load(".")
	if err != nil {
		fatal("load config: %v", err)
	}

	store := logstore.New(256)
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.AddHook(logstore.NewHook(store))
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	client, err := roadsight.NewClient(
		roadsight.WithBaseURL(cfg.BackendURL),
		roadsight.WithTimeout(time.Duration(cfg.TimeoutSeconds)*time.Second),
		roadsight.WithRetryPolicy(retryPolicy(cfg)),
		roadsight.WithDemoFallback(cfg.DemoFallback),
		roadsight.WithLogger(log),
	)
	if err != nil {
		fatal("init client: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	switch os.Args[1] {
	case "search":
		err = runSearch(ctx, client, store, os.Args[2:])
	case "videos":
		err = runVideos(ctx, client, os.Args[2:])
	case "health":
		err = runHealth(ctx, client, os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		fatal("%v", err)
	}
}

func retryPolicy(cfg *config.Config) roadsight.RetryPolicy {
	p := roadsight.DefaultRetryPolicy()
	if cfg.MaxAttempts > 0 {
		p.MaxAttempts = cfg.MaxAttempts
	}
	return p
}

func runSearch(ctx context.Context, client *roadsight.Client, store *logstore.Store, args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	query := fs.String("q", "", "natural-language query text")
	imagePath := fs.String("image", "", "path to an example image (PNG/JPEG/WEBP)")
	limit := fs.Int("limit", roadsight.DefaultLimit, "number of results (1-20)")
	threshold := fs.Float64("threshold", roadsight.DefaultThreshold, "minimum similarity score [0,1]")
	timeOfDay := fs.String("time-of-day", "", "filter: day, night, dawn, dusk")
	weather := fs.String("weather", "", "filter: clear, rain, fog, snow, overcast")
	camera := fs.String("camera", "", "filter: front, rear, left, right")
	debug := fs.Bool("debug", false, "dump captured debug log entries after the search")
	if err := fs.Parse(args); err != nil {
		return err
	}

	opts := []roadsight.QueryOption{
		roadsight.WithLimit(*limit),
		roadsight.WithThreshold(*threshold),
		roadsight.WithFilters(models.SearchFilters{
			TimeOfDay: *timeOfDay,
			Weather:   *weather,
			Camera:    *camera,
		}),
	}

	var q *roadsight.Query
	var err error
	switch {
	case *imagePath != "":
		image, readErr := os.ReadFile(*imagePath)
		if readErr != nil {
			return fmt.Errorf("read image: %w", readErr)
		}
		q, err = roadsight.NewImageQuery(image, opts...)
	case *query != "":
		q, err = roadsight.NewTextQuery(*query, opts...)
	default:
		return fmt.Errorf("either -q or -image is required")
	}
	if err != nil {
		return err
	}

	resp, err := client.Search(ctx, q)
	if err != nil {
		return err
	}

	if resp.DemoMode {
		fmt.Fprintf(os.Stderr, "warning: backend unreachable (%v); showing sample data\n", resp.FallbackCause)
	}
	fmt.Printf("%d results (%d found, %s)\n", len(resp.Results), resp.TotalFound, resp.SearchTime)
	for i, r := range resp.Results {
		fmt.Printf("%2d. %.2f %-9s %-32s @ %s\n",
			i+1, r.Similarity, r.ConfidenceLabel, r.VideoFilename, r.FormattedTimestamp)
	}

	if *debug {
		for _, e := range store.Entries() {
			fmt.Fprintf(os.Stderr, "%s [%s] %s %v\n",
				e.Time.Format(time.RFC3339), e.Level, e.Message, e.Fields)
		}
	}
	return nil
}

func runVideos(ctx context.Context, client *roadsight.Client, args []string) error {
	fs := flag.NewFlagSet("videos", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	vids, err := client.ListVideos(ctx)
	if err != nil {
		return err
	}
	for _, v := range vids {
		fmt.Printf("%3d  %-32s %8s  %6d frames  %s\n",
			v.ID, v.Filename, roadsight.FormatTimestamp(v.DurationSeconds), v.FrameCount, v.Status)
	}
	return nil
}

func runHealth(ctx context.Context, client *roadsight.Client, args []string) error {
	fs := flag.NewFlagSet("health", flag.ExitOnError)
	watch := fs.Bool("watch", false, "poll the health endpoint until interrupted")
	interval := fs.Duration("interval", 10*time.Second, "poll interval with --watch")
	if err := fs.Parse(args); err != nil {
		return err
	}

	probe := func() {
		status, err := client.Health(ctx)
		if err != nil {
			fmt.Printf("%s  backend down: %v\n", time.Now().Format(time.TimeOnly), err)
			return
		}
		fmt.Printf("%s  %s (version %s)\n", time.Now().Format(time.TimeOnly), status.Status, status.Version)
	}

	probe()
	if !*watch {
		return nil
	}

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			probe()
		case <-ctx.Done():
			return nil
		}
	}
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "roadsight: "+format+"\n", args...)
	os.Exit(1)
}
