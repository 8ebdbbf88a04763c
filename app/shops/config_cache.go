package shops

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// ConfigCache loads and caches shop configurations from a directory
// of YAML files, one file per shop.
type ConfigCache struct {
	shopsDir string
	cache    map[string]*Config
	mu       sync.RWMutex
}

func NewConfigCache(shopsDir string) *ConfigCache {
	return &ConfigCache{
		shopsDir: shopsDir,
		cache:    make(map[string]*Config),
	}
}

func (cc *ConfigCache) Run() error {
	if _, err := os.Stat(cc.shopsDir); os.IsNotExist(err) {
		return nil
	}

	files, err := filepath.Glob(filepath.Join(cc.shopsDir, "*.yml"))
	if err != nil {
		return fmt.Errorf("failed to find YML files: %w", err)
	}

	for _, file := range files {
		shopName := strings.TrimSuffix(filepath.Base(file), ".yml")

		config, err := cc.LoadConfig(shopName)
		if err != nil {
			return fmt.Errorf("error loading %s: %w", file, err)
		}

		slog.Debug("Shop configuration loaded", "shop", shopName,
			"enabled", config.Settings.Enabled, "listings_file", config.Shop.ListingsFile)
	}

	return nil
}

func (cc *ConfigCache) LoadConfig(shopName string) (*Config, error) {
	configFile := filepath.Join(cc.shopsDir, shopName+".yml")

	config, err := cc.parseConfig(configFile)
	if err != nil {
		return nil, err
	}

	config.Name = shopName

	if err := cc.validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configFile, err)
	}

	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.cache[config.Name] = config

	return config, nil
}

func (cc *ConfigCache) GetConfig(shopName string) (*Config, error) {
	cc.mu.RLock()
	defer cc.mu.RUnlock()

	config, ok := cc.cache[shopName]
	if !ok {
		return nil, fmt.Errorf("shop config with name '%s' not found", shopName)
	}

	return config, nil
}

// GetConfigs returns all cached configurations ordered by shop name,
// so collection cycles enumerate shops deterministically.
func (cc *ConfigCache) GetConfigs() []*Config {
	cc.mu.RLock()
	defer cc.mu.RUnlock()

	configs := make([]*Config, 0, len(cc.cache))
	for _, config := range cc.cache {
		configs = append(configs, config)
	}

	sort.Slice(configs, func(i, j int) bool {
		return configs[i].Name < configs[j].Name
	})

	return configs
}

// GetEnabledConfigs returns the enabled configurations ordered by shop
// name.
func (cc *ConfigCache) GetEnabledConfigs() []*Config {
	configs := cc.GetConfigs()

	enabled := make([]*Config, 0, len(configs))
	for _, config := range configs {
		if config.Settings.Enabled {
			enabled = append(enabled, config)
		}
	}

	return enabled
}

func (cc *ConfigCache) GetConfigCount() int {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	return len(cc.cache)
}

func (cc *ConfigCache) parseConfig(configFile string) (*Config, error) {
	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return &config, nil
}

func (cc *ConfigCache) validateConfig(config *Config) error {
	if config.Shop.Name == "" {
		return fmt.Errorf("shop name is required")
	}
	if config.Shop.ListingsFile == "" {
		return fmt.Errorf("listings file is required")
	}
	if config.Shop.Currency != "" && config.Shop.Currency != "VND" {
		return fmt.Errorf("unsupported currency '%s'", config.Shop.Currency)
	}
	return nil
}
