// Package config loads the load balancer's YAML configuration.
package config

import (
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

var defaultConfig = Config{
	ListenAddr:  ":4000",
	MetricsAddr: ":9090",
	DialTimeout: 3 * time.Second,
}

// Config describes where the load balancer listens and which upstream hosts
// it spreads connections over.
type Config struct {
	// TCP address to accept client connections on
	// Default is `:4000`
	ListenAddr string `yaml:"listen_addr,omitempty"`

	// Address to serve prometheus metrics on; empty disables metrics
	// Default is `:9090`
	MetricsAddr string `yaml:"metrics_addr,omitempty"`

	// Maximum time spent dialing an upstream
	// Default is `3s`
	DialTimeout time.Duration `yaml:"dial_timeout,omitempty"`

	// Whether to print debug logs
	LogDebug bool `yaml:"log_debug,omitempty"`

	// Upstream `host:port` addresses
	UpstreamAddrs []string `yaml:"upstreams"`

	// Catches all undefined fields
	XXX map[string]interface{} `yaml:",inline"`
}

// UnmarshalYAML implements the yaml.Unmarshaler interface.
func (c *Config) UnmarshalYAML(unmarshal func(interface{}) error) error {
	*c = defaultConfig

	// set c to the defaults and then overwrite it with the input.
	type plain Config
	if err := unmarshal((*plain)(c)); err != nil {
		return err
	}

	if len(c.ListenAddr) == 0 {
		return fmt.Errorf("field `listen_addr` must not be empty")
	}
	if c.DialTimeout <= 0 {
		return fmt.Errorf("field `dial_timeout` must be positive, got %s", c.DialTimeout)
	}
	if len(c.UpstreamAddrs) == 0 {
		return fmt.Errorf("field `upstreams` must contain at least 1 address")
	}
	for _, addr := range c.UpstreamAddrs {
		if _, _, err := net.SplitHostPort(addr); err != nil {
			return fmt.Errorf("invalid address %q in `upstreams`: %w", addr, err)
		}
	}

	return checkOverflow(c.XXX, "config")
}

// Upstreams resolves the configured upstream addresses.
func (c *Config) Upstreams() ([]*net.TCPAddr, error) {
	addrs := make([]*net.TCPAddr, 0, len(c.UpstreamAddrs))
	for _, a := range c.UpstreamAddrs {
		addr, err := net.ResolveTCPAddr("tcp", a)
		if err != nil {
			return nil, fmt.Errorf("cannot resolve upstream %q: %w", a, err)
		}
		addrs = append(addrs, addr)
	}
	return addrs, nil
}

// LoadFile loads and validates configuration from the given file.
func LoadFile(filename string) (*Config, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(content, cfg); err != nil {
		return nil, fmt.Errorf("cannot parse %q: %w", filename, err)
	}
	// UnmarshalYAML is never called for an empty document.
	if len(cfg.UpstreamAddrs) == 0 {
		return nil, fmt.Errorf("cannot parse %q: field `upstreams` must contain at least 1 address", filename)
	}
	return cfg, nil
}

func checkOverflow(m map[string]interface{}, ctx string) error {
	if len(m) > 0 {
		var keys []string
		for k := range m {
			keys = append(keys, k)
		}
		return fmt.Errorf("unknown fields in %s: %s", ctx, strings.Join(keys, ", "))
	}
	return nil
}
