package config

import (
	"github.com/spf13/viper"
)

// Deployment modes reported in logs and /health
const (
	ModeServerless = "serverless"
	ModeServer     = "server"
)

// Runtime describes the process environment the handlers run in
type Runtime struct {
	FunctionName string
	Region       string
	Stage        string
}

// DetectRuntime reads the Lambda environment variables
func DetectRuntime() Runtime {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("STAGE", "dev")

	return Runtime{
		FunctionName: v.GetString("AWS_LAMBDA_FUNCTION_NAME"),
		Region:       v.GetString("AWS_REGION"),
		Stage:        v.GetString("STAGE"),
	}
}

// IsLambda reports whether the process is a Lambda function
func (r Runtime) IsLambda() bool {
	return r.FunctionName != ""
}

// Mode returns ModeServerless or ModeServer
func (r Runtime) Mode() string {
	if r.IsLambda() {
		return ModeServerless
	}
	return ModeServer
}

// IsServerlessMode returns true if running in serverless mode
func IsServerlessMode() bool {
	return DetectRuntime().IsLambda()
}

// GetDeploymentMode returns the current deployment mode
func GetDeploymentMode() string {
	return DetectRuntime().Mode()
}

// AdaptForRuntime adjusts cfg for a Lambda deployment. Functions have no
// persistent disk, so local image storage is swapped for a hosted backend:
// S3 when S3 credentials are present, Supabase Storage otherwise.
func AdaptForRuntime(cfg *Config, rt Runtime) *Config {
	if !rt.IsLambda() {
		return cfg
	}

	if cfg.Storage.Type == "local" {
		if cfg.Storage.S3AccessKey != "" {
			cfg.Storage.Type = "s3"
		} else {
			cfg.Storage.Type = "supabase"
		}
	}

	if rt.Region != "" && cfg.Storage.S3Region == "us-east-1" {
		cfg.Storage.S3Region = rt.Region
	}

	if cfg.Environment == "development" && rt.Stage == "prod" {
		cfg.Environment = "production"
	}

	return cfg
}

// GetOptimizedConfig returns configuration optimized for the current deployment mode
func GetOptimizedConfig() (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	return AdaptForRuntime(cfg, DetectRuntime()), nil
}
