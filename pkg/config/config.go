package config

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "/etc/gatehouse/config"
	ConfigFileName    = "gatehouse.yml"
)

// GatehouseConfig holds all Gatehouse configuration settings
type GatehouseConfig struct {
	// BindAddress is the host:port the HTTP server listens on
	BindAddress string `yaml:"bind_address" json:"bind_address"`

	// TrustedProxies is a list of CIDR ranges for trusted proxies
	TrustedProxies []string `yaml:"trusted_proxies" json:"trusted_proxies"`

	// AccessTokenTTL is the access-token lifetime in seconds
	AccessTokenTTL int `yaml:"access_token_ttl" json:"access_token_ttl"`

	// RefreshTokenTTL is the refresh-token lifetime in seconds
	RefreshTokenTTL int `yaml:"refresh_token_ttl" json:"refresh_token_ttl"`

	// ActivationTokenTTL is the activation-token lifetime in seconds
	ActivationTokenTTL int `yaml:"activation_token_ttl" json:"activation_token_ttl"`

	// ResetTokenTTL is the reset-password-token lifetime in seconds
	ResetTokenTTL int `yaml:"reset_token_ttl" json:"reset_token_ttl"`

	// OTPCodeTTL is the OTP code lifetime in seconds
	OTPCodeTTL int `yaml:"otp_code_ttl" json:"otp_code_ttl"`

	// OTPMinInterval is the minimum spacing between OTP sends in seconds
	OTPMinInterval int `yaml:"otp_min_interval" json:"otp_min_interval"`

	// OTPHourlyLimit caps OTP sends per rolling hour
	OTPHourlyLimit int `yaml:"otp_hourly_limit" json:"otp_hourly_limit"`

	// RoleCacheSize is the size of the in-process role cache
	RoleCacheSize int `yaml:"role_cache_size" json:"role_cache_size"`

	// OutboxSchedule is the dispatcher cron expression
	OutboxSchedule string `yaml:"outbox_schedule" json:"outbox_schedule"`

	// OutboxBatchSize caps outbox entries fetched per dispatch run
	OutboxBatchSize int `yaml:"outbox_batch_size" json:"outbox_batch_size"`

	// OutboxMaxAttempts is the retry budget per outbox entry
	OutboxMaxAttempts int `yaml:"outbox_max_attempts" json:"outbox_max_attempts"`

	// APIListLimitMax is the maximum number of results for listing requests
	APIListLimitMax int `yaml:"api_list_limit_max" json:"api_list_limit_max"`

	// sources tracks where each value came from
	sources map[string]string

	// configFilePath is the path to the config file
	configFilePath string
}

// Attribute represents a configuration attribute with its value and source
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// Global singleton config
var (
	globalConfig *GatehouseConfig
	configMu     sync.RWMutex
)

// Get returns the global configuration, loading it if necessary
func Get() *GatehouseConfig {
	configMu.RLock()
	if globalConfig != nil {
		configMu.RUnlock()
		return globalConfig
	}
	configMu.RUnlock()

	// Load config
	configMu.Lock()
	defer configMu.Unlock()

	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			// Return defaults on error
			globalConfig = newDefault()
		} else {
			globalConfig = cfg
		}
	}
	return globalConfig
}

// Reload reloads the configuration from file and environment
func Reload() error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	configMu.Lock()
	globalConfig = cfg
	configMu.Unlock()
	return nil
}

// newDefault returns a config with default values
func newDefault() *GatehouseConfig {
	return &GatehouseConfig{
		BindAddress:        ":8080",
		TrustedProxies:     []string{},
		AccessTokenTTL:     600,
		RefreshTokenTTL:    604800,
		ActivationTokenTTL: 86400,
		ResetTokenTTL:      900,
		OTPCodeTTL:         600,
		OTPMinInterval:     30,
		OTPHourlyLimit:     5,
		RoleCacheSize:      128,
		OutboxSchedule:     "@every 30s",
		OutboxBatchSize:    100,
		OutboxMaxAttempts:  10,
		APIListLimitMax:    1000,
		sources:            make(map[string]string),
	}
}

// Load loads configuration from file and environment variables
// Environment variables take precedence over file values
func Load() (*GatehouseConfig, error) {
	config := newDefault()

	// Initialize all sources as "default"
	for _, name := range attributeNames() {
		config.sources[name] = "default"
	}

	// Determine config file path
	configPath := os.Getenv("GATEHOUSE_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	config.configFilePath = filepath.Join(configPath, ConfigFileName)

	// Try to load from config file
	if data, err := os.ReadFile(config.configFilePath); err == nil {
		var fileConfig GatehouseConfig
		if err := yaml.Unmarshal(data, &fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", config.configFilePath, err)
		}
		config.applyFileConfig(&fileConfig)
	}

	// Override with environment variables
	config.applyEnvConfig()

	return config, nil
}

func attributeNames() []string {
	return []string{
		"bind_address", "trusted_proxies",
		"access_token_ttl", "refresh_token_ttl",
		"activation_token_ttl", "reset_token_ttl",
		"otp_code_ttl", "otp_min_interval", "otp_hourly_limit",
		"role_cache_size",
		"outbox_schedule", "outbox_batch_size", "outbox_max_attempts",
		"api_list_limit_max",
	}
}

func (c *GatehouseConfig) applyFileConfig(file *GatehouseConfig) {
	if file.BindAddress != "" {
		c.BindAddress = file.BindAddress
		c.sources["bind_address"] = "file"
	}
	if len(file.TrustedProxies) > 0 {
		c.TrustedProxies = file.TrustedProxies
		c.sources["trusted_proxies"] = "file"
	}
	if file.AccessTokenTTL != 0 {
		c.AccessTokenTTL = file.AccessTokenTTL
		c.sources["access_token_ttl"] = "file"
	}
	if file.RefreshTokenTTL != 0 {
		c.RefreshTokenTTL = file.RefreshTokenTTL
		c.sources["refresh_token_ttl"] = "file"
	}
	if file.ActivationTokenTTL != 0 {
		c.ActivationTokenTTL = file.ActivationTokenTTL
		c.sources["activation_token_ttl"] = "file"
	}
	if file.ResetTokenTTL != 0 {
		c.ResetTokenTTL = file.ResetTokenTTL
		c.sources["reset_token_ttl"] = "file"
	}
	if file.OTPCodeTTL != 0 {
		c.OTPCodeTTL = file.OTPCodeTTL
		c.sources["otp_code_ttl"] = "file"
	}
	if file.OTPMinInterval != 0 {
		c.OTPMinInterval = file.OTPMinInterval
		c.sources["otp_min_interval"] = "file"
	}
	if file.OTPHourlyLimit != 0 {
		c.OTPHourlyLimit = file.OTPHourlyLimit
		c.sources["otp_hourly_limit"] = "file"
	}
	if file.RoleCacheSize != 0 {
		c.RoleCacheSize = file.RoleCacheSize
		c.sources["role_cache_size"] = "file"
	}
	if file.OutboxSchedule != "" {
		c.OutboxSchedule = file.OutboxSchedule
		c.sources["outbox_schedule"] = "file"
	}
	if file.OutboxBatchSize != 0 {
		c.OutboxBatchSize = file.OutboxBatchSize
		c.sources["outbox_batch_size"] = "file"
	}
	if file.OutboxMaxAttempts != 0 {
		c.OutboxMaxAttempts = file.OutboxMaxAttempts
		c.sources["outbox_max_attempts"] = "file"
	}
	if file.APIListLimitMax != 0 {
		c.APIListLimitMax = file.APIListLimitMax
		c.sources["api_list_limit_max"] = "file"
	}
}

func (c *GatehouseConfig) applyEnvConfig() {
	if val := os.Getenv("GATEHOUSE_BIND_ADDRESS"); val != "" {
		c.BindAddress = val
		c.sources["bind_address"] = "environment"
	}
	if val := os.Getenv("GATEHOUSE_TRUSTED_PROXIES"); val != "" {
		c.TrustedProxies = splitAndTrim(val)
		c.sources["trusted_proxies"] = "environment"
	}
	c.applyEnvInt("GATEHOUSE_ACCESS_TOKEN_TTL", "access_token_ttl", &c.AccessTokenTTL)
	c.applyEnvInt("GATEHOUSE_REFRESH_TOKEN_TTL", "refresh_token_ttl", &c.RefreshTokenTTL)
	c.applyEnvInt("GATEHOUSE_ACTIVATION_TOKEN_TTL", "activation_token_ttl", &c.ActivationTokenTTL)
	c.applyEnvInt("GATEHOUSE_RESET_TOKEN_TTL", "reset_token_ttl", &c.ResetTokenTTL)
	c.applyEnvInt("GATEHOUSE_OTP_CODE_TTL", "otp_code_ttl", &c.OTPCodeTTL)
	c.applyEnvInt("GATEHOUSE_OTP_MIN_INTERVAL", "otp_min_interval", &c.OTPMinInterval)
	c.applyEnvInt("GATEHOUSE_OTP_HOURLY_LIMIT", "otp_hourly_limit", &c.OTPHourlyLimit)
	c.applyEnvInt("GATEHOUSE_ROLE_CACHE_SIZE", "role_cache_size", &c.RoleCacheSize)
	if val := os.Getenv("GATEHOUSE_OUTBOX_SCHEDULE"); val != "" {
		c.OutboxSchedule = val
		c.sources["outbox_schedule"] = "environment"
	}
	c.applyEnvInt("GATEHOUSE_OUTBOX_BATCH_SIZE", "outbox_batch_size", &c.OutboxBatchSize)
	c.applyEnvInt("GATEHOUSE_OUTBOX_MAX_ATTEMPTS", "outbox_max_attempts", &c.OutboxMaxAttempts)
	c.applyEnvInt("GATEHOUSE_API_LIST_LIMIT_MAX", "api_list_limit_max", &c.APIListLimitMax)
}

func (c *GatehouseConfig) applyEnvInt(envName, attrName string, target *int) {
	if val := os.Getenv(envName); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			*target = i
			c.sources[attrName] = "environment"
		}
	}
}

// ConfigFilePath returns the path to the config file
func (c *GatehouseConfig) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute
func (c *GatehouseConfig) Source(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// AccessTTL returns the access-token lifetime as a duration
func (c *GatehouseConfig) AccessTTL() time.Duration {
	return time.Duration(c.AccessTokenTTL) * time.Second
}

// RefreshTTL returns the refresh-token lifetime as a duration
func (c *GatehouseConfig) RefreshTTL() time.Duration {
	return time.Duration(c.RefreshTokenTTL) * time.Second
}

// ActivationTTL returns the activation-token lifetime as a duration
func (c *GatehouseConfig) ActivationTTL() time.Duration {
	return time.Duration(c.ActivationTokenTTL) * time.Second
}

// ResetTTL returns the reset-token lifetime as a duration
func (c *GatehouseConfig) ResetTTL() time.Duration {
	return time.Duration(c.ResetTokenTTL) * time.Second
}

// OTPTTL returns the OTP code lifetime as a duration
func (c *GatehouseConfig) OTPTTL() time.Duration {
	return time.Duration(c.OTPCodeTTL) * time.Second
}

// OTPInterval returns the minimum OTP spacing as a duration
func (c *GatehouseConfig) OTPInterval() time.Duration {
	return time.Duration(c.OTPMinInterval) * time.Second
}

// IsTrustedProxy checks if an IP is from a trusted proxy
func (c *GatehouseConfig) IsTrustedProxy(ip string) bool {
	if len(c.TrustedProxies) == 0 {
		return false
	}

	parsedIP := net.ParseIP(ip)
	if parsedIP == nil {
		return false
	}

	for _, cidr := range c.TrustedProxies {
		_, network, err := net.ParseCIDR(cidr)
		if err != nil {
			// Try as plain IP
			if net.ParseIP(cidr) != nil && cidr == ip {
				return true
			}
			continue
		}
		if network.Contains(parsedIP) {
			return true
		}
	}
	return false
}

// Validate validates the configuration
func (c *GatehouseConfig) Validate() error {
	// Validate trusted proxies are valid CIDR ranges
	for _, cidr := range c.TrustedProxies {
		if _, _, err := net.ParseCIDR(cidr); err != nil {
			if net.ParseIP(cidr) == nil {
				return fmt.Errorf("invalid trusted_proxies value: %s", cidr)
			}
		}
	}

	if c.AccessTokenTTL >= c.RefreshTokenTTL {
		return fmt.Errorf("access_token_ttl (%d) must be shorter than refresh_token_ttl (%d)", c.AccessTokenTTL, c.RefreshTokenTTL)
	}
	if c.OTPHourlyLimit < 1 {
		return fmt.Errorf("otp_hourly_limit must be at least 1")
	}
	if c.OTPMinInterval < 0 {
		return fmt.Errorf("otp_min_interval must not be negative")
	}

	return nil
}

// Attributes returns all configuration attributes with their values and sources
func (c *GatehouseConfig) Attributes() []Attribute {
	return []Attribute{
		{Name: "bind_address", Value: c.BindAddress, Source: c.Source("bind_address")},
		{Name: "trusted_proxies", Value: strings.Join(c.TrustedProxies, ","), Source: c.Source("trusted_proxies")},
		{Name: "access_token_ttl", Value: strconv.Itoa(c.AccessTokenTTL), Source: c.Source("access_token_ttl")},
		{Name: "refresh_token_ttl", Value: strconv.Itoa(c.RefreshTokenTTL), Source: c.Source("refresh_token_ttl")},
		{Name: "activation_token_ttl", Value: strconv.Itoa(c.ActivationTokenTTL), Source: c.Source("activation_token_ttl")},
		{Name: "reset_token_ttl", Value: strconv.Itoa(c.ResetTokenTTL), Source: c.Source("reset_token_ttl")},
		{Name: "otp_code_ttl", Value: strconv.Itoa(c.OTPCodeTTL), Source: c.Source("otp_code_ttl")},
		{Name: "otp_min_interval", Value: strconv.Itoa(c.OTPMinInterval), Source: c.Source("otp_min_interval")},
		{Name: "otp_hourly_limit", Value: strconv.Itoa(c.OTPHourlyLimit), Source: c.Source("otp_hourly_limit")},
		{Name: "role_cache_size", Value: strconv.Itoa(c.RoleCacheSize), Source: c.Source("role_cache_size")},
		{Name: "outbox_schedule", Value: c.OutboxSchedule, Source: c.Source("outbox_schedule")},
		{Name: "outbox_batch_size", Value: strconv.Itoa(c.OutboxBatchSize), Source: c.Source("outbox_batch_size")},
		{Name: "outbox_max_attempts", Value: strconv.Itoa(c.OutboxMaxAttempts), Source: c.Source("outbox_max_attempts")},
		{Name: "api_list_limit_max", Value: strconv.Itoa(c.APIListLimitMax), Source: c.Source("api_list_limit_max")},
	}
}

// FormatText returns a text representation of the configuration
func (c *GatehouseConfig) FormatText() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Config file: %s\n\n", c.configFilePath))
	sb.WriteString(fmt.Sprintf("%-40s %-30s %s\n", "NAME", "VALUE", "SOURCE"))
	sb.WriteString(fmt.Sprintf("%-40s %-30s %s\n", "----", "-----", "------"))

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		sb.WriteString(fmt.Sprintf("%-40s %-30s %s\n", attr.Name, value, attr.Source))
	}
	return sb.String()
}

// FormatJSON returns a JSON representation of the configuration
func (c *GatehouseConfig) FormatJSON() (string, error) {
	result := map[string]interface{}{
		"config_file": c.configFilePath,
		"attributes":  c.Attributes(),
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
