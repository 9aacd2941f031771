package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Registry  RegistryConfig  `yaml:"registry"`
	Datastore DatastoreConfig `yaml:"datastore"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// RegistryConfig describes the nadlan.gov.il transaction-registry upstream.
// The header bundle is attached to every outbound call and is read-only
// after Load returns.
type RegistryConfig struct {
	BaseURL        string            `yaml:"base_url"`
	Headers        map[string]string `yaml:"headers"`
	TimeoutSeconds int               `yaml:"timeout_seconds"`
	Timeout        time.Duration     `yaml:"-"` // Ignored by YAML parser
	Attempts       int               `yaml:"attempts"`
	BackoffSeconds float64           `yaml:"backoff_seconds"`
	Backoff        time.Duration     `yaml:"-"`
}

// DatastoreConfig describes the data.gov.il CKAN datastore upstream.
type DatastoreConfig struct {
	BaseURL        string        `yaml:"base_url"`
	TimeoutSeconds int           `yaml:"timeout_seconds"`
	Timeout        time.Duration `yaml:"-"`
	Resources      ResourceIDs   `yaml:"resources"`
	Columns        ColumnNames   `yaml:"columns"`
	DealsSort      string        `yaml:"deals_sort"`
}

// ResourceIDs identifies the datastore datasets this service queries.
type ResourceIDs struct {
	Cities  string `yaml:"cities"`
	Streets string `yaml:"streets"`
	Deals   string `yaml:"deals"`
}

// ColumnNames are the exact-match filter columns sent to the datastore.
// These cover outbound filters only; response-side column probing lives in
// the parse package because the datasets disagree on spellings.
type ColumnNames struct {
	CityCode string `yaml:"city_code"`
	CityName string `yaml:"city_name"`
	Street   string `yaml:"street"`
	Rooms    string `yaml:"rooms"`
}

// Default returns the built-in configuration, pointing at the public
// nadlan.gov.il and data.gov.il endpoints. The User-Agent mirrors a desktop
// browser because the registry rejects non-browser clients.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 5000,
		},
		Registry: RegistryConfig{
			BaseURL: "https://www.nadlan.gov.il/Nadlan.REST/Main",
			Headers: map[string]string{
				"Accept":          "application/json, text/plain, */*",
				"Accept-Language": "he-IL,he;q=0.9,en-US;q=0.8",
				"Content-Type":    "application/json;charset=UTF-8",
				"Origin":          "https://www.nadlan.gov.il",
				"Referer":         "https://www.nadlan.gov.il/",
				"User-Agent": "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
					"AppleWebKit/537.36 (KHTML, like Gecko) " +
					"Chrome/120.0.0.0 Safari/537.36",
			},
			TimeoutSeconds: 15,
			Attempts:       3,
			BackoffSeconds: 1.5,
		},
		Datastore: DatastoreConfig{
			BaseURL:        "https://data.gov.il/api/3/action/datastore_search",
			TimeoutSeconds: 10,
			Resources: ResourceIDs{
				Cities:  "b7cf8f14-64a2-4b33-8d4b-edb286fdbd37",
				Streets: "a7296d1a-f6c1-4b8a-b6b8-3f7fcf7e5dfd",
				Deals:   "7b9f9c41-6c9a-4a3f-9b2e-3a2e1f6c0d8a",
			},
			Columns: ColumnNames{
				CityCode: "סמל_ישוב",
				CityName: "שם_ישוב",
				Street:   "שם_רחוב",
				Rooms:    "ASSETROOMNUM",
			},
			DealsSort: "DEALDATETIME desc",
		},
	}
}

// Load reads the configuration file at path over the built-in defaults and
// applies environment overrides. An empty path means defaults only, so the
// service runs with nothing but the PORT variable set.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 5000
	}
	if raw := os.Getenv("PORT"); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil {
			log.Printf("Warning: PORT %q is not a valid port number; keeping %d", raw, cfg.Server.Port)
		} else {
			cfg.Server.Port = port
		}
	}

	if cfg.Registry.TimeoutSeconds <= 0 {
		cfg.Registry.TimeoutSeconds = 15
	}
	cfg.Registry.Timeout = time.Duration(cfg.Registry.TimeoutSeconds) * time.Second

	if cfg.Registry.Attempts <= 0 {
		cfg.Registry.Attempts = 3
	}
	if cfg.Registry.BackoffSeconds <= 0 {
		cfg.Registry.BackoffSeconds = 1.5
	}
	cfg.Registry.Backoff = time.Duration(cfg.Registry.BackoffSeconds * float64(time.Second))

	if cfg.Datastore.TimeoutSeconds <= 0 {
		cfg.Datastore.TimeoutSeconds = 10
	}
	cfg.Datastore.Timeout = time.Duration(cfg.Datastore.TimeoutSeconds) * time.Second

	return cfg, nil
}
