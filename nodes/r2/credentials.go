package r2

import (
	"fmt"
	"os"
	"strings"
)

// Environment variable fallbacks for credential fields. Explicit node
// configuration always wins; the environment fills the gaps.
const (
	EnvAccessKeyID     = "R2_ACCESS_KEY_ID"
	EnvSecretAccessKey = "R2_SECRET_ACCESS_KEY"
	EnvUploadPath      = "R2_UPLOAD_PATH"
	EnvEndpoint        = "R2_ENDPOINT"
	EnvBucketName      = "R2_BUCKET_NAME"
	EnvDomain          = "R2_DOMAIN"
)

// DefaultUploadPath is used when neither configuration nor environment
// provides one.
const DefaultUploadPath = "assets"

// Credentials is the fully resolved bucket access configuration for a
// single invocation. Immutable once resolved.
type Credentials struct {
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string
	BucketName      string
	Domain          string
	UploadPath      string
}

// resolveCredentials layers explicit config over environment fallbacks
// and verifies all required fields are present. It never touches the
// network, so a failure here guarantees zero outbound calls.
func resolveCredentials(cfg Config) (Credentials, error) {
	creds := Credentials{
		AccessKeyID:     fallback(cfg.AccessKeyID, EnvAccessKeyID),
		SecretAccessKey: fallback(cfg.SecretAccessKey, EnvSecretAccessKey),
		Endpoint:        fallback(cfg.Endpoint, EnvEndpoint),
		BucketName:      fallback(cfg.BucketName, EnvBucketName),
		Domain:          fallback(cfg.Domain, EnvDomain),
		UploadPath:      fallback(cfg.UploadPath, EnvUploadPath),
	}

	if creds.UploadPath == "" {
		creds.UploadPath = DefaultUploadPath
	}
	creds.UploadPath = strings.Trim(creds.UploadPath, "/")

	var missing []string
	for _, field := range []struct {
		name  string
		value string
	}{
		{"access_key_id", creds.AccessKeyID},
		{"secret_access_key", creds.SecretAccessKey},
		{"endpoint", creds.Endpoint},
		{"bucket_name", creds.BucketName},
		{"domain", creds.Domain},
	} {
		if field.value == "" {
			missing = append(missing, field.name)
		}
	}

	if len(missing) > 0 {
		return Credentials{}, &ConfigurationError{
			Reason: fmt.Sprintf("missing required settings (config or environment): %s",
				strings.Join(missing, ", ")),
		}
	}

	return creds, nil
}

func fallback(explicit, envVar string) string {
	if explicit != "" {
		return explicit
	}
	return os.Getenv(envVar)
}
