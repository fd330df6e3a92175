package r2

import (
	"errors"
	"strings"
	"testing"
)

// clearEnv masks any R2_* variables present in the test environment so
// fallback behavior is deterministic.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, v := range []string{
		EnvAccessKeyID,
		EnvSecretAccessKey,
		EnvUploadPath,
		EnvEndpoint,
		EnvBucketName,
		EnvDomain,
	} {
		t.Setenv(v, "")
	}
}

func fullConfig() Config {
	return Config{
		AccessKeyID:     "key-id",
		SecretAccessKey: "secret",
		Endpoint:        "https://account.r2.cloudflarestorage.com",
		BucketName:      "generated-images",
		Domain:          "cdn.example.com",
		UploadPath:      "outputs",
	}
}

func TestResolveCredentials_ExplicitConfig(t *testing.T) {
	clearEnv(t)

	creds, err := resolveCredentials(fullConfig())
	if err != nil {
		t.Fatalf("resolveCredentials failed: %v", err)
	}

	if creds.AccessKeyID != "key-id" || creds.BucketName != "generated-images" {
		t.Errorf("Unexpected credentials: %+v", creds)
	}
	if creds.UploadPath != "outputs" {
		t.Errorf("Expected upload path 'outputs', got %q", creds.UploadPath)
	}
}

func TestResolveCredentials_EnvironmentFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvAccessKeyID, "env-key")
	t.Setenv(EnvSecretAccessKey, "env-secret")
	t.Setenv(EnvEndpoint, "https://account.r2.cloudflarestorage.com")
	t.Setenv(EnvBucketName, "env-bucket")
	t.Setenv(EnvDomain, "cdn.example.com")

	creds, err := resolveCredentials(Config{})
	if err != nil {
		t.Fatalf("resolveCredentials failed: %v", err)
	}

	if creds.AccessKeyID != "env-key" || creds.BucketName != "env-bucket" {
		t.Errorf("Expected environment fallbacks, got %+v", creds)
	}
	if creds.UploadPath != DefaultUploadPath {
		t.Errorf("Expected default upload path %q, got %q", DefaultUploadPath, creds.UploadPath)
	}
}

func TestResolveCredentials_ConfigWinsOverEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvBucketName, "env-bucket")

	cfg := fullConfig()
	creds, err := resolveCredentials(cfg)
	if err != nil {
		t.Fatalf("resolveCredentials failed: %v", err)
	}

	if creds.BucketName != "generated-images" {
		t.Errorf("Explicit config must win over environment, got %q", creds.BucketName)
	}
}

func TestResolveCredentials_TrimsUploadPath(t *testing.T) {
	clearEnv(t)

	cfg := fullConfig()
	cfg.UploadPath = "/nested/path/"
	creds, err := resolveCredentials(cfg)
	if err != nil {
		t.Fatalf("resolveCredentials failed: %v", err)
	}

	if creds.UploadPath != "nested/path" {
		t.Errorf("Expected trimmed upload path, got %q", creds.UploadPath)
	}
}

func TestResolveCredentials_MissingFields(t *testing.T) {
	clearEnv(t)

	_, err := resolveCredentials(Config{BucketName: "only-bucket"})
	if err == nil {
		t.Fatal("Expected error for missing credentials")
	}

	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Expected ConfigurationError, got %T", err)
	}

	for _, field := range []string{"access_key_id", "secret_access_key", "endpoint", "domain"} {
		if !strings.Contains(cfgErr.Reason, field) {
			t.Errorf("Expected missing field %q to be named, got: %s", field, cfgErr.Reason)
		}
	}
	if strings.Contains(cfgErr.Reason, "bucket_name") {
		t.Errorf("bucket_name was provided and must not be reported missing: %s", cfgErr.Reason)
	}
}
