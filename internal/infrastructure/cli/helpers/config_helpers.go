package helpers

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/baseconv/internal/app"
	configapp "github.com/doeshing/baseconv/internal/application/config"
	"github.com/doeshing/baseconv/internal/domain"
	configinfra "github.com/doeshing/baseconv/internal/infrastructure/config"
)

// GetConfigLoader extracts the config loader from container with error handling
func GetConfigLoader(container *app.Container) (*configinfra.FileLoader, error) {
	if container.ConfigLoader == nil {
		return nil, fmt.Errorf("config loader unavailable")
	}
	return container.ConfigLoader, nil
}

// SaveConfigWithValidation validates cfg, backs up the current file and
// writes cfg in its place.
func SaveConfigWithValidation(container *app.Container, cfg domain.Config) error {
	loader, err := GetConfigLoader(container)
	if err != nil {
		return err
	}
	if err := configapp.Validate(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	if _, err := os.Stat(loader.Path()); err == nil {
		if _, err := loader.Backup(); err != nil {
			return fmt.Errorf("failed to create configuration backup: %w", err)
		}
	}
	if err := loader.Save(cfg); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	return nil
}

// ConfigValue looks up a dotted key such as "preferences.font_size" using
// the names from config.yaml.
func ConfigValue(cfg domain.Config, key string) (interface{}, error) {
	tree, err := configTree(cfg)
	if err != nil {
		return nil, err
	}
	value, ok := TraverseNestedMap(tree, splitKey(key))
	if !ok {
		return nil, fmt.Errorf("key %s not found in configuration", key)
	}
	return value, nil
}

// WithConfigValue returns a copy of cfg with the dotted key set to raw,
// which is parsed as YAML ("true", "16", "Large"). The result is not
// validated; SaveConfigWithValidation does that.
func WithConfigValue(cfg domain.Config, key, raw string) (domain.Config, error) {
	tree, err := configTree(cfg)
	if err != nil {
		return domain.Config{}, err
	}
	value, err := ParseYAMLValue(raw)
	if err != nil {
		return domain.Config{}, err
	}
	if !SetNestedMapValue(tree, splitKey(key), value) {
		return domain.Config{}, fmt.Errorf("unknown configuration key %s", key)
	}
	data, err := yaml.Marshal(tree)
	if err != nil {
		return domain.Config{}, fmt.Errorf("encode configuration: %w", err)
	}
	var updated domain.Config
	if err := yaml.Unmarshal(data, &updated); err != nil {
		return domain.Config{}, fmt.Errorf("%s: %w", key, err)
	}
	return updated, nil
}

// configTree round-trips cfg through YAML so keys match the file.
func configTree(cfg domain.Config) (map[string]interface{}, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encode configuration: %w", err)
	}
	var tree map[string]interface{}
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("decode configuration: %w", err)
	}
	return tree, nil
}

func splitKey(key string) []string {
	return strings.Split(strings.TrimSpace(key), ".")
}

// ParseYAMLValue parses a string value as YAML, falling back to literal string
func ParseYAMLValue(input string) (interface{}, error) {
	var parsed interface{}
	if err := yaml.Unmarshal([]byte(input), &parsed); err != nil {
		return input, nil
	}
	return parsed, nil
}

// SetNestedMapValue sets the leaf named by keyPath. Every section on the way
// must already exist, so a misspelt section is reported rather than created.
func SetNestedMapValue(root map[string]interface{}, keyPath []string, value interface{}) bool {
	if len(keyPath) == 0 {
		return false
	}

	current := root
	for _, key := range keyPath[:len(keyPath)-1] {
		child, isMap := current[key].(map[string]interface{})
		if !isMap {
			return false
		}
		current = child
	}

	leaf := keyPath[len(keyPath)-1]
	if _, exists := current[leaf]; !exists {
		return false
	}
	current[leaf] = value
	return true
}

// TraverseNestedMap retrieves a value from a nested map using a key path
// Returns the value and true if found, nil and false otherwise
func TraverseNestedMap(data interface{}, keyPath []string) (interface{}, bool) {
	if len(keyPath) == 0 {
		return data, true
	}

	switch node := data.(type) {
	case map[string]interface{}:
		next, exists := node[keyPath[0]]
		if !exists {
			return nil, false
		}
		return TraverseNestedMap(next, keyPath[1:])
	default:
		return nil, false
	}
}
