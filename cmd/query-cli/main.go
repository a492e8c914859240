package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/xid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sherrenjie/YourOwnIMDb/internal/catalog"
	"github.com/sherrenjie/YourOwnIMDb/internal/config"
	"github.com/sherrenjie/YourOwnIMDb/internal/dataset"
	"github.com/sherrenjie/YourOwnIMDb/pkg/cache"
	pkgdb "github.com/sherrenjie/YourOwnIMDb/pkg/db"
	"github.com/sherrenjie/YourOwnIMDb/pkg/qerr"
)

func main() {
	_ = godotenv.Load() // best-effort
	cfg := config.FromEnv()

	if cfg.Env == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	log.Logger = log.With().Str("run_id", xid.New().String()).Logger()

	var opts opFlags
	flag.StringVar(&opts.Op, "op", "", "operation to run (see -list)")
	flag.BoolVar(&opts.List, "list", false, "list available operations")
	flag.StringVar(&opts.Name, "name", "", "picture name substring (search-movies)")
	flag.StringVar(&opts.Email, "email", "", "user email (liked-movies)")
	flag.StringVar(&opts.Country, "country", "", "shooting country (by-country)")
	flag.StringVar(&opts.Zip, "zip", "", "shooting zip code (directors-by-zip)")
	flag.StringVar(&opts.K, "k", "", "award count threshold (awards-above)")
	flag.StringVar(&opts.BoxOfficeMin, "box-office-min", "", "minimum box office (producers)")
	flag.StringVar(&opts.BudgetMax, "budget-max", "", "maximum budget (producers)")
	flag.StringVar(&opts.Rating, "rating", "", "rating threshold (multi-role)")
	flag.StringVar(&opts.MinLikes, "min-likes", "", "like count threshold (liked-by-young)")
	flag.StringVar(&opts.MaxAge, "max-age", "", "user age bound (liked-by-young)")
	flag.Usage = usage
	flag.Parse()

	if opts.List {
		printOps()
		return
	}
	if opts.Op == "" {
		usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pkgdb.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect failed")
	}
	store := dataset.NewPostgres(pool)
	defer store.Close()

	var c cache.Cache
	if cfg.ValkeyAddr != "" {
		vc, err := cache.NewValkey(cfg.ValkeyAddr, cfg.ValkeyPassword)
		if err != nil {
			log.Error().Err(err).Msg("valkey connect failed, using in-memory cache")
			c = cache.NewInMemory()
		} else {
			c = vc
		}
	} else {
		c = cache.NewInMemory()
	}

	key := opts.cacheKey()
	if cached, ok := c.Get(ctx, key); ok {
		log.Debug().Str("op", opts.Op).Msg("cache hit")
		fmt.Print(cached)
		return
	}

	started := time.Now()
	tbl, err := dispatch(ctx, catalog.New(store), opts)
	if err != nil {
		exitErr(err)
	}
	log.Info().Str("op", opts.Op).Int("rows", len(tbl.Rows)).Dur("duration", time.Since(started)).Msg("query")

	out := tbl.String()
	_ = c.Set(ctx, key, out, cfg.ResultCacheTTL)
	fmt.Print(out)
}

func exitErr(err error) {
	switch {
	case qerr.Is(err, qerr.CodeInvalidParameter):
		fmt.Fprintln(os.Stderr, "invalid parameter:", err)
		os.Exit(2)
	case qerr.Is(err, qerr.CodeDataUnavailable):
		log.Error().Err(err).Msg("store unavailable")
		os.Exit(1)
	default:
		var qe *qerr.Error
		if errors.As(err, &qe) {
			log.Error().Str("code", qe.Code).Err(err).Msg("operation failed")
		} else {
			log.Error().Err(err).Msg("operation failed")
		}
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s -op <operation> [flags]\n\n", os.Args[0])
	fmt.Fprintln(os.Stderr, "Runs one analytical query against the film database and prints a table.")
	fmt.Fprintln(os.Stderr, "Flags:")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  %s -op search-movies -name matrix\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "  %s -op awards-above -k 2\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "  %s -op top-thrillers-boston\n", os.Args[0])
}
