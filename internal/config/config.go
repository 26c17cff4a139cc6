package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file looked up when no path is given.
const DefaultFile = "vpcprov.yaml"

// regionRegex matches IBM Cloud VPC region names such as us-south or eu-de.
var regionRegex = regexp.MustCompile(`^[a-z]{2}-[a-z]+$`)

// Config is the vpcprov runtime configuration.
type Config struct {
	// Region is the VPC region, e.g. us-south.
	Region string `yaml:"region"`
	// Endpoint overrides the regional VPC API endpoint.
	Endpoint string `yaml:"endpoint,omitempty"`
	// AccountID scopes resource group listing. Empty disables resource groups.
	AccountID string `yaml:"account_id,omitempty"`
	// EMS is the name of the management system record provisioning runs against.
	EMS string `yaml:"ems"`

	Inventory InventoryConfig `yaml:"inventory"`
	Log       LogConfig       `yaml:"log"`
	Archive   ArchiveConfig   `yaml:"archive"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// InventoryConfig configures the local inventory database.
type InventoryConfig struct {
	Path  string `yaml:"path"`
	Debug bool   `yaml:"debug,omitempty"`
}

// LogConfig configures the provider log file.
type LogConfig struct {
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	// Verbosity is the logr V-level that is still written, 1 includes payload dumps.
	Verbosity int  `yaml:"verbosity"`
	Stderr    bool `yaml:"stderr,omitempty"`
}

// ArchiveConfig configures archiving of finished task records to Cloud Object Storage.
type ArchiveConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Endpoint string `yaml:"endpoint,omitempty"`
	Region   string `yaml:"region,omitempty"`
	Bucket   string `yaml:"bucket,omitempty"`
	Prefix   string `yaml:"prefix,omitempty"`
}

// MetricsConfig configures the node-exporter textfile the CLI writes on exit.
type MetricsConfig struct {
	Textfile string `yaml:"textfile,omitempty"`
}

// Credentials holds secrets read from the environment.
type Credentials struct {
	APIKey       string
	COSAccessKey string
	COSSecretKey string
}

// LoadCredentials reads credentials from the environment.
//
// Environment Variables:
//   - IBMCLOUD_API_KEY
//   - COS_HMAC_ACCESS_KEY_ID
//   - COS_HMAC_SECRET_ACCESS_KEY
func LoadCredentials() Credentials {
	return Credentials{
		APIKey:       os.Getenv("IBMCLOUD_API_KEY"),
		COSAccessKey: os.Getenv("COS_HMAC_ACCESS_KEY_ID"),
		COSSecretKey: os.Getenv("COS_HMAC_SECRET_ACCESS_KEY"),
	}
}

// LoadFile reads and parses the configuration from a YAML file.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		path = DefaultFile
	}

	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes a YAML document, applies defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Inventory.Path == "" {
		c.Inventory.Path = "vpcprov.db"
	}
	if c.Log.File == "" {
		c.Log.File = "ibm_cloud.log"
	}
	if c.Log.MaxSizeMB == 0 {
		c.Log.MaxSizeMB = 10
	}
	if c.Log.MaxBackups == 0 {
		c.Log.MaxBackups = 5
	}
	if c.Log.MaxAgeDays == 0 {
		c.Log.MaxAgeDays = 30
	}
	if c.Archive.Enabled {
		if c.Archive.Region == "" {
			c.Archive.Region = c.Region
		}
		if c.Archive.Endpoint == "" {
			c.Archive.Endpoint = fmt.Sprintf("https://s3.%s.cloud-object-storage.appdomain.cloud", c.Archive.Region)
		}
		if c.Archive.Prefix == "" {
			c.Archive.Prefix = "tasks/"
		}
	}
}

// Validate checks the configuration for required and well-formed values.
func (c *Config) Validate() error {
	var errs []error

	if !regionRegex.MatchString(c.Region) {
		errs = append(errs, fmt.Errorf("region %q is not a valid VPC region", c.Region))
	}
	if strings.TrimSpace(c.EMS) == "" {
		errs = append(errs, errors.New("ems is required"))
	}
	if c.Endpoint != "" && !strings.HasPrefix(c.Endpoint, "https://") {
		errs = append(errs, fmt.Errorf("endpoint %q must use https", c.Endpoint))
	}
	if c.Log.Verbosity < 0 {
		errs = append(errs, errors.New("log.verbosity must not be negative"))
	}
	if c.Archive.Enabled && c.Archive.Bucket == "" {
		errs = append(errs, errors.New("archive.bucket is required when archive is enabled"))
	}

	return errors.Join(errs...)
}

// VPCEndpoint returns the VPC API endpoint for the configured region.
func (c *Config) VPCEndpoint() string {
	if c.Endpoint != "" {
		return c.Endpoint
	}
	return fmt.Sprintf("https://%s.iaas.cloud.ibm.com/v1", c.Region)
}
