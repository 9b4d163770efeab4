package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// validLogLevels lists the accepted log level strings.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks that all configuration values are within acceptable
// ranges and returns the first error encountered, or nil if valid.
func Validate(cfg Config) error {
	if cfg.ChainSpec == "" {
		return ErrEmptyChainSpec
	}

	if !common.IsHexAddress(cfg.TokenContract) {
		return fmt.Errorf("%w: %q", ErrInvalidToken, cfg.TokenContract)
	}

	if err := validateURL(cfg.SubgraphURL); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSubgraphURL, err)
	}

	if err := validateURL(cfg.RPCURL); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRPCURL, err)
	}

	if cfg.N <= 0 {
		return ErrInvalidN
	}

	if !validLogLevels[strings.ToLower(cfg.LogLevel)] {
		return ErrInvalidLogLevel
	}

	return nil
}

// validateURL checks that raw is an absolute http(s) URL.
func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme %q is not http(s)", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}
