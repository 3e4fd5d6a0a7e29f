package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/flatshare/internal/paths"
	"github.com/mesh-intelligence/flatshare/pkg/types"
)

// Config keys.
const (
	cfgKeyBackend    = "backend"
	cfgKeyDataDir    = "data_dir"
	cfgKeyQueueSize  = "queue_size"
	cfgKeyListenAddr = "listen_addr"
)

const defaultListenAddr = "127.0.0.1:8080"

// configFile is the structure written to config.yaml by init.
type configFile struct {
	Backend    string `yaml:"backend"`
	DataDir    string `yaml:"data_dir,omitempty"`
	QueueSize  int    `yaml:"queue_size"`
	ListenAddr string `yaml:"listen_addr"`
}

// settings is the resolved runtime configuration.
type settings struct {
	ConfigDir  string
	DataDir    string
	ListenAddr string
	Remote     types.Config
}

// loadConfig reads config.yaml from configDir. A missing file is not an
// error; defaults apply.
func loadConfig(configDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendSQLite)
	v.SetDefault(cfgKeyQueueSize, types.DefaultQueueSize)
	v.SetDefault(cfgKeyListenAddr, defaultListenAddr)
	v.SetConfigFile(paths.ConfigFile(configDir))
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// resolveSettings applies the directory precedence rules and reads the
// config file.
func resolveSettings() (settings, error) {
	configDir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return settings{}, sysErrorf("resolve config dir: %w", err)
	}
	v, err := loadConfig(configDir)
	if err != nil {
		return settings{}, sysErrorf("load config: %w", err)
	}
	dataDir, err := paths.ResolveDataDir(flags.dataDir, v.GetString(cfgKeyDataDir))
	if err != nil {
		return settings{}, sysErrorf("resolve data dir: %w", err)
	}

	s := settings{
		ConfigDir:  configDir,
		DataDir:    dataDir,
		ListenAddr: v.GetString(cfgKeyListenAddr),
		Remote: types.Config{
			Backend:   v.GetString(cfgKeyBackend),
			DataDir:   dataDir,
			QueueSize: v.GetInt(cfgKeyQueueSize),
		},
	}
	if err := s.Remote.Validate(); err != nil {
		return settings{}, fmt.Errorf("invalid config %s: %w", paths.ConfigFile(configDir), err)
	}
	return s, nil
}

// writeConfigIfMissing creates config.yaml with default values. An existing
// file is left alone.
func writeConfigIfMissing(path, dataDir string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	cfg := configFile{
		Backend:    types.BackendSQLite,
		DataDir:    dataDir,
		QueueSize:  types.DefaultQueueSize,
		ListenAddr: defaultListenAddr,
	}
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, err
	}
	return true, os.WriteFile(path, data, 0o644)
}
