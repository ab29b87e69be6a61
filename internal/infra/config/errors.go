// Where: internal/infra/config/errors.go
// What: Sentinel errors for configuration loading.
// Why: Commands match missing env with errors.Is.
package config

import "errors"

// ErrMissingEnv reports unset required environment variables.
var ErrMissingEnv = errors.New("missing required environment variables")

var errSettingsPathRequired = errors.New("settings path is required")
