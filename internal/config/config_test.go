package config

import (
	"bytes"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ADMIN_USERNAME", "")
	t.Setenv("ADMIN_PASSWORD", "")
	t.Setenv("STORAGE_TYPE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "8081" {
		t.Errorf("Expected Port=8081, got %s", cfg.Port)
	}
	if cfg.Session.CookieName != "admin_session" {
		t.Errorf("Expected cookie name admin_session, got %s", cfg.Session.CookieName)
	}
	if cfg.Session.MaxAge != 24*time.Hour {
		t.Errorf("Expected session max age 24h, got %v", cfg.Session.MaxAge)
	}
	if cfg.Supabase.OrdersTable != "orders" {
		t.Errorf("Expected orders table 'orders', got %s", cfg.Supabase.OrdersTable)
	}
	if cfg.Supabase.UpstreamTimeout != 0 {
		t.Errorf("Expected no upstream timeout by default, got %v", cfg.Supabase.UpstreamTimeout)
	}
	if cfg.Storage.ProductImageBucket != "product-images" || cfg.Storage.PageImageBucket != "page-images" {
		t.Errorf("Unexpected bucket defaults: %+v", cfg.Storage)
	}
}

func TestLoadMissingSecretsIsNotFatal(t *testing.T) {
	t.Setenv("ADMIN_USERNAME", "")
	t.Setenv("ADMIN_PASSWORD", "")
	t.Setenv("SUPABASE_URL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load should not fail on missing secrets: %v", err)
	}
	if cfg.Admin.Configured() {
		t.Error("Admin credentials should not be reported as configured")
	}
	if cfg.Supabase.Configured() {
		t.Error("Supabase should not be reported as configured")
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("ADMIN_USERNAME", "owner")
	t.Setenv("ADMIN_PASSWORD", "s3cret")
	t.Setenv("SUPABASE_URL", "https://project.supabase.co")
	t.Setenv("SUPABASE_SERVICE_KEY", "service")
	t.Setenv("SUPABASE_ANON_KEY", "anon")
	t.Setenv("UPSTREAM_TIMEOUT_SECONDS", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !cfg.Admin.Configured() {
		t.Error("Admin credentials should be configured")
	}
	if !cfg.Supabase.Configured() {
		t.Error("Supabase should be configured")
	}
	if cfg.Supabase.AnonKey != "anon" {
		t.Errorf("Expected anon key 'anon', got %q", cfg.Supabase.AnonKey)
	}
	if cfg.Supabase.UpstreamTimeout != 5*time.Second {
		t.Errorf("Expected 5s timeout, got %v", cfg.Supabase.UpstreamTimeout)
	}
}

func TestNewLogger(t *testing.T) {
	t.Run("ParsesLevel", func(t *testing.T) {
		logger := newLogger(&Config{LogLevel: "debug"}, &bytes.Buffer{})
		if logger.GetLevel() != logrus.DebugLevel {
			t.Errorf("Expected debug level, got %v", logger.GetLevel())
		}
	})

	t.Run("FallsBackToInfo", func(t *testing.T) {
		logger := newLogger(&Config{LogLevel: "chatty"}, &bytes.Buffer{})
		if logger.GetLevel() != logrus.InfoLevel {
			t.Errorf("Expected info level, got %v", logger.GetLevel())
		}
	})

	t.Run("ProductionUsesJSON", func(t *testing.T) {
		var buf bytes.Buffer
		logger := newLogger(&Config{Environment: "production", LogLevel: "info"}, &buf)
		logger.WithField("path", "/admin").Info("hello")
		if !bytes.HasPrefix(buf.Bytes(), []byte("{")) {
			t.Errorf("Expected JSON output, got %q", buf.String())
		}
	})
}

func TestDetectRuntime(t *testing.T) {
	t.Setenv("AWS_LAMBDA_FUNCTION_NAME", "")
	t.Setenv("STAGE", "")
	if rt := DetectRuntime(); rt.IsLambda() || rt.Mode() != ModeServer {
		t.Errorf("Expected server mode, got %+v", rt)
	}

	t.Setenv("AWS_LAMBDA_FUNCTION_NAME", "storefront-orders")
	t.Setenv("AWS_REGION", "eu-west-1")
	rt := DetectRuntime()
	if !rt.IsLambda() || rt.Mode() != ModeServerless {
		t.Errorf("Expected serverless mode, got %+v", rt)
	}
	if rt.Region != "eu-west-1" {
		t.Errorf("Expected region eu-west-1, got %s", rt.Region)
	}
	if !IsServerlessMode() || GetDeploymentMode() != ModeServerless {
		t.Error("Package helpers should agree with DetectRuntime")
	}
}

func TestAdaptForRuntime(t *testing.T) {
	lambda := Runtime{FunctionName: "storefront-images", Region: "eu-west-1", Stage: "prod"}

	tests := []struct {
		name        string
		runtime     Runtime
		storage     StorageConfig
		wantType    string
		wantRegion  string
		wantEnviron string
	}{
		{
			name:        "server mode is untouched",
			runtime:     Runtime{Stage: "prod"},
			storage:     StorageConfig{Type: "local", S3Region: "us-east-1"},
			wantType:    "local",
			wantRegion:  "us-east-1",
			wantEnviron: "development",
		},
		{
			name:        "local becomes supabase without s3 credentials",
			runtime:     lambda,
			storage:     StorageConfig{Type: "local", S3Region: "us-east-1"},
			wantType:    "supabase",
			wantRegion:  "eu-west-1",
			wantEnviron: "production",
		},
		{
			name:        "local becomes s3 with credentials",
			runtime:     lambda,
			storage:     StorageConfig{Type: "local", S3Region: "us-east-1", S3AccessKey: "AKIA"},
			wantType:    "s3",
			wantRegion:  "eu-west-1",
			wantEnviron: "production",
		},
		{
			name:        "explicit region is kept",
			runtime:     lambda,
			storage:     StorageConfig{Type: "s3", S3Region: "ap-southeast-2"},
			wantType:    "s3",
			wantRegion:  "ap-southeast-2",
			wantEnviron: "production",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := AdaptForRuntime(&Config{Environment: "development", Storage: tt.storage}, tt.runtime)
			if cfg.Storage.Type != tt.wantType {
				t.Errorf("Expected storage type %s, got %s", tt.wantType, cfg.Storage.Type)
			}
			if cfg.Storage.S3Region != tt.wantRegion {
				t.Errorf("Expected region %s, got %s", tt.wantRegion, cfg.Storage.S3Region)
			}
			if cfg.Environment != tt.wantEnviron {
				t.Errorf("Expected environment %s, got %s", tt.wantEnviron, cfg.Environment)
			}
		})
	}
}
