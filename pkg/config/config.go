package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"sitemap-urls/pkg/httpclient"
	"sitemap-urls/pkg/urls"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// FileName is the config file looked up in the working directory
const FileName = "sitemapurls.yaml"

// DefaultSitemapURL is the product sitemap crawled when nothing else is configured
const DefaultSitemapURL = "https://www.krasanamiru.cz/product-sitemap.xml"

// Config holds every setting of the sitemapurls commands
type Config struct {
	Sitemap SitemapConfig `yaml:"sitemap"`
	HTTP    HTTPConfig    `yaml:"http"`
	Crawl   CrawlConfig   `yaml:"crawl"`
	Logging LoggingConfig `yaml:"logging"`
}

type SitemapConfig struct {
	URL    string `yaml:"url"`
	Output string `yaml:"output"`
}

type HTTPConfig struct {
	Timeout time.Duration `yaml:"timeout"`
	Client  string        `yaml:"client"`
}

type CrawlConfig struct {
	Workers  int    `yaml:"workers"`
	PagesDir string `yaml:"pages_dir"`
	CSV      string `yaml:"csv"`
	Markdown bool   `yaml:"markdown"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file,omitempty"`
}

// Default returns the configuration used when no file, env or flag overrides it
func Default() *Config {
	return &Config{
		Sitemap: SitemapConfig{
			URL:    DefaultSitemapURL,
			Output: urls.DefaultFile,
		},
		HTTP: HTTPConfig{
			Timeout: httpclient.DefaultTimeout,
			Client:  string(httpclient.CloudflareClient),
		},
		Crawl: CrawlConfig{
			Workers:  10,
			PagesDir: "pages",
			CSV:      "df.csv",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load builds the configuration: defaults, then the YAML file at path (if it
// exists), then .env and process environment overrides.
// An empty path means FileName in the working directory.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = FileName
	}
	if err := cfg.loadFile(path); err != nil {
		if !errors.Is(err, ErrConfigNotFound) || explicit {
			return nil, err
		}
	}

	_ = godotenv.Load()
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse YAML from file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	str("SITEMAP_URL", &c.Sitemap.URL)
	str("SITEMAP_OUTPUT", &c.Sitemap.Output)
	str("HTTP_CLIENT", &c.HTTP.Client)
	str("LOG_LEVEL", &c.Logging.Level)
	str("LOG_FILE", &c.Logging.File)
	str("CRAWL_PAGES_DIR", &c.Crawl.PagesDir)
	str("CRAWL_CSV", &c.Crawl.CSV)

	if v, ok := lookup("SITEMAP_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid SITEMAP_TIMEOUT: %w", err)
		}
		c.HTTP.Timeout = d
	}
	if v, ok := lookup("CRAWL_WORKERS"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid CRAWL_WORKERS: %w", err)
		}
		c.Crawl.Workers = n
	}
	return nil
}

// Validate checks the settings shared by all commands
func (c *Config) Validate() error {
	u, err := url.ParseRequestURI(c.Sitemap.URL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("invalid sitemap.url: %q", c.Sitemap.URL)
	}
	if c.Sitemap.Output == "" {
		return fmt.Errorf("sitemap.output must not be empty")
	}
	if c.HTTP.Timeout <= 0 {
		return fmt.Errorf("http.timeout must be positive, got %s", c.HTTP.Timeout)
	}
	if _, err := httpclient.ParseClientType(c.HTTP.Client); err != nil {
		return fmt.Errorf("invalid http.client: %w", err)
	}
	if c.Crawl.Workers <= 0 {
		return fmt.Errorf("crawl.workers must be a positive number")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging.level %q", c.Logging.Level)
	}
	return nil
}
