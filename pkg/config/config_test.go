package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Success(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "prod" {
		t.Fatalf("expected App.Env to be prod, got %q", cfg.App.Env)
	}

	if !cfg.Docstore.IsNotion() {
		t.Fatalf("expected default docstore backend notion, got %q", cfg.Docstore.Backend)
	}

	if cfg.Notion.Version != "2022-06-28" {
		t.Fatalf("unexpected notion version %q", cfg.Notion.Version)
	}

	if cfg.Locale.Timezone != "America/Sao_Paulo" {
		t.Fatalf("unexpected default timezone %q", cfg.Locale.Timezone)
	}

	if cfg.Collections.StockID != "stock-col" {
		t.Fatalf("unexpected stock collection id %q", cfg.Collections.StockID)
	}

	if got := cfg.Dashboard.CacheTTL; got != time.Minute {
		t.Fatalf("expected dashboard cache ttl 60s, got %v", got)
	}

	if cfg.Redis.Enabled() {
		t.Fatalf("redis should be disabled without url or addr")
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv("PRINTFLOW_APP_ENV"); err != nil {
		t.Fatalf("failed to unset PRINTFLOW_APP_ENV: %v", err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected missing required env to return an error")
	}
}

func TestLoad_InvalidBackend(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv("PRINTFLOW_DOCSTORE_BACKEND", "dynamo")

	if _, err := Load(); err == nil {
		t.Fatal("expected unknown docstore backend to return an error")
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv("PRINTFLOW_APP_ENV", "prod")
	t.Setenv("PRINTFLOW_APP_PORT", "8081")
	t.Setenv("PRINTFLOW_NOTION_API_KEY", "secret_abc")
	t.Setenv("PRINTFLOW_DB_PRODUCT_ID", "product-col")
	t.Setenv("PRINTFLOW_DB_ORDER_ID", "order-col")
	t.Setenv("PRINTFLOW_DB_STOCK_ID", "stock-col")
	t.Setenv("PRINTFLOW_DB_STOCK_MOVEMENT_ID", "movement-col")
	os.Unsetenv("PRINTFLOW_REDIS_URL")
	os.Unsetenv("PRINTFLOW_REDIS_ADDR")
	os.Unsetenv("PRINTFLOW_DOCSTORE_BACKEND")
}

func TestAppConfigEnvHelpers(t *testing.T) {
	devConfig := AppConfig{Env: "DEV"}
	if !devConfig.IsDev() {
		t.Fatalf("expected IsDev true for %q", devConfig.Env)
	}
	if devConfig.IsProd() {
		t.Fatalf("expected IsProd false for %q", devConfig.Env)
	}

	prodConfig := AppConfig{Env: "prod"}
	if !prodConfig.IsProd() {
		t.Fatalf("expected IsProd true for %q", prodConfig.Env)
	}
	if prodConfig.IsDev() {
		t.Fatalf("expected IsDev false for %q", prodConfig.Env)
	}
}
