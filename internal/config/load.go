package config

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/magiconair/properties"

	"github.com/conn-castle/gradle-wrapper/internal/messages"
)

// ErrInvalidConfig wraps every failure to locate, read, or validate wrapper configuration.
// Callers can use errors.Is(err, ErrInvalidConfig) to tell config problems from
// network, archive, or launch failures.
var ErrInvalidConfig = errors.New("invalid wrapper configuration")

// Config is the parsed content of gradle-wrapper.properties.
type Config struct {
	// Source is the file the configuration was read from.
	Source           string
	DistributionURL  string
	DistributionBase string
	DistributionPath string
	ZipStoreBase     string
	ZipStorePath     string
	// NetworkTimeout bounds the distribution download; zero means no timeout.
	NetworkTimeout time.Duration
}

// ArchiveName returns the last path segment of the distribution URL.
func (c *Config) ArchiveName() string {
	return archiveNameFromURL(c.DistributionURL)
}

// Load reads gradle-wrapper.properties from wrapperDir and validates it.
func Load(sys System, wrapperDir string) (*Config, error) {
	if sys == nil {
		return nil, fmt.Errorf(messages.ConfigSystemRequired)
	}
	source := PropertiesPath(wrapperDir)
	data, err := sys.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("%w: "+messages.ConfigReadPropertiesFmt, ErrInvalidConfig, source, err)
	}
	return Parse(data, source)
}

// Parse decodes properties content and applies the wrapper defaults.
// source is used in error messages only.
func Parse(data []byte, source string) (*Config, error) {
	loader := properties.Loader{
		Encoding:         properties.ISO_8859_1,
		DisableExpansion: true,
	}
	props, err := loader.LoadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%w: "+messages.ConfigParsePropertiesFmt, ErrInvalidConfig, source, err)
	}

	rawURL := strings.TrimSpace(props.GetString(KeyDistributionURL, ""))
	if rawURL == "" {
		return nil, fmt.Errorf("%w: "+messages.ConfigMissingDistributionURLFmt, ErrInvalidConfig, PropertiesFileName)
	}
	if err := validateDistributionURL(rawURL); err != nil {
		return nil, err
	}

	timeout, err := parseNetworkTimeout(props.GetString(KeyNetworkTimeout, ""))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Source:           source,
		DistributionURL:  rawURL,
		DistributionBase: valueOr(props, KeyDistributionBase, BaseGradleUserHome),
		DistributionPath: valueOr(props, KeyDistributionPath, DefaultDistributionPath),
		NetworkTimeout:   timeout,
	}
	cfg.ZipStoreBase = valueOr(props, KeyZipStoreBase, cfg.DistributionBase)
	cfg.ZipStorePath = valueOr(props, KeyZipStorePath, cfg.DistributionPath)
	return cfg, nil
}

// valueOr returns the trimmed property value, or def when the key is absent or blank.
func valueOr(props *properties.Properties, key string, def string) string {
	value, ok := props.Get(key)
	if !ok {
		return def
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	return value
}

// validateDistributionURL checks that raw is an absolute URL naming a .zip archive.
func validateDistributionURL(raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: "+messages.ConfigInvalidDistributionURLFmt, ErrInvalidConfig, raw, err)
	}
	if !parsed.IsAbs() {
		return fmt.Errorf("%w: "+messages.ConfigRelativeDistributionURLFmt, ErrInvalidConfig, raw)
	}
	name := archiveNameFromURL(raw)
	if name == "" {
		return fmt.Errorf("%w: "+messages.ConfigMissingArchiveNameFmt, ErrInvalidConfig, raw)
	}
	if !strings.HasSuffix(name, archiveExtension) || name == archiveExtension {
		return fmt.Errorf("%w: "+messages.ConfigUnsupportedArchiveFmt, ErrInvalidConfig, raw)
	}
	return nil
}

// archiveNameFromURL returns everything after the last '/' of the URL path.
// Query strings and fragments are not part of the name.
func archiveNameFromURL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	p := parsed.Path
	if p == "" {
		p = parsed.Opaque
	}
	if p == "" || strings.HasSuffix(p, "/") {
		return ""
	}
	return path.Base(p)
}

// parseNetworkTimeout converts a millisecond property into a duration.
func parseNetworkTimeout(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || ms < 0 {
		return 0, fmt.Errorf("%w: "+messages.ConfigInvalidNetworkTimeoutFmt, ErrInvalidConfig, raw)
	}
	return time.Duration(ms) * time.Millisecond, nil
}
