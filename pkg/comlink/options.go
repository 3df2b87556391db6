package comlink

import (
	"fmt"
	"strings"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/samvad-hq/swgoh-comlink-go/pkg/httpclient"
)

const (
	DefaultURL      = "http://localhost:3000"
	DefaultStatsURL = "http://localhost:3223"
	DefaultTimeout  = 30 * time.Second
)

// Config is the client's configuration. It is fixed once New returns.
type Config struct {
	URL         string
	StatsURL    string
	AccessKey   string
	SecretKey   string
	Compression bool
}

// Signed reports whether requests built from this config carry auth headers.
func (c Config) Signed() bool { return c.AccessKey != "" && c.SecretKey != "" }

func defaultConfig() Config {
	return Config{
		URL:         DefaultURL,
		StatsURL:    DefaultStatsURL,
		Compression: true,
	}
}

// Option mutates the Client during New().
type Option func(*Client) error

// WithURL sets the primary service URL.
func WithURL(u string) Option {
	return func(c *Client) error {
		u = strings.TrimRight(strings.TrimSpace(u), "/")
		if u == "" {
			return fmt.Errorf("empty url")
		}
		c.cfg.URL = u
		return nil
	}
}

// WithStatsURL sets the stats service URL.
func WithStatsURL(u string) Option {
	return func(c *Client) error {
		u = strings.TrimRight(strings.TrimSpace(u), "/")
		if u == "" {
			return fmt.Errorf("empty stats url")
		}
		c.cfg.StatsURL = u
		return nil
	}
}

// WithCredentials sets the HMAC key pair. Either key empty disables signing.
func WithCredentials(accessKey, secretKey string) Option {
	return func(c *Client) error {
		c.cfg.AccessKey = accessKey
		c.cfg.SecretKey = secretKey
		return nil
	}
}

// WithCompression toggles compressed responses.
func WithCompression(enabled bool) Option {
	return func(c *Client) error {
		c.cfg.Compression = enabled
		return nil
	}
}

// WithLogger injects a logger; nil keeps the no-op default.
func WithLogger(log Logger) Option {
	return func(c *Client) error {
		if log != nil {
			c.log = log
		}
		return nil
	}
}

// WithClock replaces the clock used for request timestamps.
func WithClock(clk clock.Clock) Option {
	return func(c *Client) error {
		if clk == nil {
			return fmt.Errorf("nil clock")
		}
		c.clock = clk
		return nil
	}
}

// WithHTTPClient injects the transport.
func WithHTTPClient(hc httpclient.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("nil http client")
		}
		c.http = hc
		return nil
	}
}

// WithTimeout builds the default resty transport with the given timeout.
// It is ignored when WithHTTPClient is also supplied.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("timeout must be positive, got %s", d)
		}
		c.timeout = d
		return nil
	}
}
