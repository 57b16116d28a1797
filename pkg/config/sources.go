package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// ConfigSource represents a source of configuration values
type ConfigSource interface {
	GetString(key string) (string, bool)
	GetInt(key string) (int, bool)
}

// EnvSource implements ConfigSource for environment variables
type EnvSource struct{}

func (e *EnvSource) GetString(key string) (string, bool) {
	value := os.Getenv(key)
	return value, value != ""
}

func (e *EnvSource) GetInt(key string) (int, bool) {
	value := os.Getenv(key)
	if value == "" {
		return 0, false
	}
	if i, err := strconv.Atoi(value); err == nil {
		return i, true
	}
	return 0, false
}

// FlagSource implements ConfigSource for command-line flags
type FlagSource struct {
	values map[string]interface{}
}

func NewFlagSource() *FlagSource {
	return &FlagSource{values: make(map[string]interface{})}
}

func (f *FlagSource) Set(key string, value interface{}) {
	f.values[key] = value
}

func (f *FlagSource) GetString(key string) (string, bool) {
	if value, exists := f.values[key]; exists {
		if str, ok := value.(string); ok && str != "" {
			return str, true
		}
	}
	return "", false
}

func (f *FlagSource) GetInt(key string) (int, bool) {
	if value, exists := f.values[key]; exists {
		if i, ok := value.(int); ok {
			return i, true
		}
	}
	return 0, false
}

// FileSource implements ConfigSource for a YAML config file. Keys are looked up
// case-insensitively, so RECONNECT_CAP_FACTOR matches reconnect_cap_factor.
type FileSource struct {
	v *viper.Viper
}

// NewFileSource reads path. The file must exist.
func NewFileSource(path string) (*FileSource, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if filepath.Ext(path) == "" {
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}
	return &FileSource{v: v}, nil
}

func (f *FileSource) GetString(key string) (string, bool) {
	if !f.v.IsSet(key) {
		return "", false
	}
	str, err := cast.ToStringE(f.v.Get(key))
	if err != nil || str == "" {
		return "", false
	}
	return str, true
}

func (f *FileSource) GetInt(key string) (int, bool) {
	if !f.v.IsSet(key) {
		return 0, false
	}
	i, err := cast.ToIntE(f.v.Get(key))
	if err != nil {
		return 0, false
	}
	return i, true
}
