package config

import (
	"fmt"
	"net/url"
)

// ValidationError represents a single validation issue with a config.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var recognizedLogFormats = map[string]bool{
	"tint": true,
	"json": true,
	"text": true,
}

// Validate checks a Config for structural errors. It returns a slice of
// all validation errors found (empty if valid). Existence of the manifest
// and spec files is deliberately not checked here: the subprocess each is
// passed to surfaces that at run time.
func Validate(cfg *Config) []ValidationError {
	var errs []ValidationError
	b := cfg.Build

	required := []struct {
		field string
		value string
	}{
		{"build.toolchain", b.Toolchain},
		{"build.installer", b.Installer},
		{"build.packager", b.Packager},
		{"build.manifest", b.Manifest},
		{"build.spec", b.Spec},
		{"build.build_dir", b.BuildDir},
		{"build.dist_dir", b.DistDir},
	}
	for _, r := range required {
		if r.value == "" {
			errs = append(errs, ValidationError{Field: r.field, Message: "is required"})
		}
	}

	if b.BuildDir != "" && b.BuildDir == b.DistDir {
		errs = append(errs, ValidationError{
			Field:   "build.dist_dir",
			Message: "must differ from build.build_dir",
		})
	}

	if b.MirrorURL != "" {
		u, err := url.Parse(b.MirrorURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, ValidationError{
				Field:   "build.mirror_url",
				Message: fmt.Sprintf("not a valid URL: %q", b.MirrorURL),
			})
		}
	}

	if cfg.Log.Format != "" && !recognizedLogFormats[cfg.Log.Format] {
		errs = append(errs, ValidationError{
			Field:   "log.format",
			Message: fmt.Sprintf("unknown format %q (expected tint, json or text)", cfg.Log.Format),
		})
	}

	return errs
}
