package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_DRIVER", "IMPORT_BATCH_SIZE", "DEFAULT_PER_PAGE", "MAX_UPLOAD_MB", "CORS_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" || cfg.DBDriver != "sqlite" {
		t.Errorf("unexpected defaults port=%s driver=%s", cfg.Port, cfg.DBDriver)
	}
	if cfg.ImportBatchSize != 1000 || cfg.DefaultPerPage != 5 {
		t.Errorf("unexpected batch/page defaults %d/%d", cfg.ImportBatchSize, cfg.DefaultPerPage)
	}
	if cfg.MaxUploadBytes != 10<<20 {
		t.Errorf("expected 10 MiB upload limit, got %d", cfg.MaxUploadBytes)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Errorf("unexpected CORS origins %v", cfg.CORSOrigins)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("IMPORT_BATCH_SIZE", "250")
	t.Setenv("DEFAULT_PER_PAGE", "-3")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DBDriver != "postgres" {
		t.Errorf("expected lower-cased driver, got %q", cfg.DBDriver)
	}
	if cfg.ImportBatchSize != 250 {
		t.Errorf("expected batch size 250, got %d", cfg.ImportBatchSize)
	}
	if cfg.DefaultPerPage != 5 {
		t.Errorf("expected invalid per page to fall back to 5, got %d", cfg.DefaultPerPage)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://b.test" {
		t.Errorf("unexpected CORS origins %v", cfg.CORSOrigins)
	}
}
