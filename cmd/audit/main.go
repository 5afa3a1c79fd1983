package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/basewrapped/audit-engine/internal/adapters/cache"
	"github.com/basewrapped/audit-engine/internal/adapters/chain"
	"github.com/basewrapped/audit-engine/internal/adapters/narrative"
	"github.com/basewrapped/audit-engine/internal/adapters/rank"
	"github.com/basewrapped/audit-engine/internal/config"
	"github.com/basewrapped/audit-engine/internal/core/domain"
	"github.com/basewrapped/audit-engine/internal/core/service"
	"github.com/basewrapped/audit-engine/pkg/version"
)

func main() {
	_ = godotenv.Load()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		walletsFlag = flag.String("wallets", "", "comma-separated wallet addresses to audit")
		pnlPath     = flag.String("pnl", "", "path to a JSON file with the precomputed PnL data")
		chainFlag   = flag.String("chain", "base", "transfer source chain: base or solana")
		userFlag    = flag.String("user", "", "display name for the narrative")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println(version.GetVersionString())
		return
	}

	if *walletsFlag == "" {
		log.Fatal().Msg("usage: audit -wallets 0xabc...[,0xdef...] [-pnl pnl.json] [-chain base|solana]")
	}
	wallets := strings.Split(*walletsFlag, ",")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("configuration error")
	}

	var source domain.TransferSource
	switch *chainFlag {
	case "solana", "sol":
		source = chain.NewHeliusService(cfg.HeliusAPIKey, cfg.HeliusBaseURL)
	default:
		source = chain.NewBasescanService(cfg.ExplorerAPIKey, cfg.ExplorerBaseURL)
	}

	opts := []service.Option{}

	if cfg.RedisAddr != "" {
		redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, transfer caching disabled")
		} else {
			defer redisCache.Close()
			opts = append(opts, service.WithCache(redisCache))
		}
	}

	if cfg.RankingBaseURL != "" {
		opts = append(opts, service.WithRankingProvider(rank.NewHTTPService(cfg.RankingBaseURL)))
	}

	if cfg.OpenAIKey != "" {
		generator, err := narrative.NewOpenAIGenerator(&narrative.OpenAIConfig{
			APIKey: cfg.OpenAIKey,
			Model:  cfg.OpenAIModel,
		})
		if err != nil {
			log.Warn().Err(err).Msg("narrative generation disabled")
		} else {
			opts = append(opts, service.WithComposer(service.NewComposer(generator)))
		}
	}

	var pnl *domain.PnLData
	if *pnlPath != "" {
		raw, err := os.ReadFile(*pnlPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", *pnlPath).Msg("reading PnL data")
		}
		pnl = &domain.PnLData{}
		if err := json.Unmarshal(raw, pnl); err != nil {
			log.Fatal().Err(err).Str("path", *pnlPath).Msg("parsing PnL data")
		}
	}

	engine := service.NewEngine(source, opts...)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	report := engine.RunAudit(ctx, wallets, pnl, *userFlag)

	out, _ := json.MarshalIndent(report, "", "  ")
	fmt.Println(string(out))
}
