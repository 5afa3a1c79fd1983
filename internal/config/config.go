package config

import (
	"fmt"
	"os"
)

// Config holds application-level configuration loaded from environment
// variables. Only a transfer source is mandatory; every other collaborator
// degrades to its fallback when left unset.
type Config struct {
	// Explorer-family EVM source (Basescan/Etherscan/Blockscout).
	ExplorerAPIKey  string
	ExplorerBaseURL string

	// Helius Solana source.
	HeliusAPIKey  string
	HeliusBaseURL string

	// Ranking backend; empty disables it (neutral ranking fallback).
	RankingBaseURL string

	// OpenAI narrative generation; empty disables it (rule-based fallback).
	OpenAIKey   string
	OpenAIModel string

	// Redis transfer cache; empty disables it (no-op cache).
	RedisAddr     string
	RedisPassword string
}

// Load reads configuration from the environment. At least one transfer
// source must be configured.
func Load() (*Config, error) {
	cfg := &Config{
		ExplorerAPIKey:  os.Getenv("EXPLORER_API_KEY"),
		ExplorerBaseURL: os.Getenv("EXPLORER_BASE_URL"),
		HeliusAPIKey:    os.Getenv("HELIUS_API_KEY"),
		HeliusBaseURL:   os.Getenv("HELIUS_BASE_URL"),
		RankingBaseURL:  os.Getenv("RANKING_BASE_URL"),
		OpenAIKey:       os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:     os.Getenv("OPENAI_MODEL"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
	}

	if cfg.ExplorerBaseURL == "" && cfg.ExplorerAPIKey != "" {
		cfg.ExplorerBaseURL = "https://api.basescan.org"
	}
	if cfg.HeliusBaseURL == "" && cfg.HeliusAPIKey != "" {
		cfg.HeliusBaseURL = "https://api-mainnet.helius-rpc.com"
	}

	if cfg.ExplorerBaseURL == "" && cfg.HeliusAPIKey == "" {
		return nil, fmt.Errorf("a transfer source is required: set EXPLORER_API_KEY (or EXPLORER_BASE_URL) or HELIUS_API_KEY")
	}

	return cfg, nil
}
