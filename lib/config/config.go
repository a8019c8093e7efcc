// Package config loads the settings an ntcpd binary needs: where to
// listen, where the local and known-peer identity files live, and how
// long a handshake phase may take. It mirrors the viper/yaml loading
// pattern a full go-i2p router uses for its much larger configuration
// surface, scoped down to what NTCP1 alone needs.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/go-i2p/logger"
	"github.com/go-i2p/ntcp1/lib/util"
	"github.com/spf13/viper"
)

var (
	CfgFile string
	log     = logger.GetGoI2PLogger()
)

const ntcpBaseDir = ".ntcp1"

// Config is the resolved set of settings ntcpd runs with.
type Config struct {
	// ListenAddress is the host:port the acceptor binds, e.g. ":12345".
	ListenAddress string

	// IdentityPath is the file holding the local router's private DH
	// key, private DSA key, and published RouterIdentity.
	IdentityPath string

	// PeersPath is the file holding known peer RouterIdentity/address
	// fixtures the connector dials and the acceptor authenticates
	// inbound callers against.
	PeersPath string

	// PhaseTimeout bounds how long a single handshake phase read may
	// take before the session is abandoned.
	PhaseTimeout time.Duration
}

// InitConfig loads configuration from CfgFile if set, or from
// $HOME/.ntcp1/config.yaml otherwise, creating the latter with
// defaults if it does not exist.
func InitConfig() *Config {
	if CfgFile != "" {
		viper.SetConfigFile(CfgFile)
	} else {
		viper.AddConfigPath(buildDirPath())
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	setDefaults()
	handleConfigFile()

	return &Config{
		ListenAddress: viper.GetString("listen_address"),
		IdentityPath:  viper.GetString("identity_path"),
		PeersPath:     viper.GetString("peers_path"),
		PhaseTimeout:  viper.GetDuration("phase_timeout"),
	}
}

func setDefaults() {
	dir := buildDirPath()
	viper.SetDefault("listen_address", ":12345")
	viper.SetDefault("identity_path", filepath.Join(dir, "identity.yaml"))
	viper.SetDefault("peers_path", filepath.Join(dir, "peers.yaml"))
	viper.SetDefault("phase_timeout", 10*time.Second)
}

func handleConfigFile() {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if CfgFile != "" {
				log.Fatalf("config file %s not found: %s", CfgFile, err)
			}
			createDefaultConfig(buildDirPath())
		} else {
			log.Fatalf("error reading config file: %s", err)
		}
	} else {
		log.Debugf("using config file: %s", viper.ConfigFileUsed())
	}
}

func createDefaultConfig(dir string) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		log.Fatalf("failed to create config directory %s: %s", dir, err)
	}
	defaultConfigFile := filepath.Join(dir, "config.yaml")
	if err := viper.SafeWriteConfigAs(defaultConfigFile); err != nil {
		log.WithError(err).Warn("failed to write default config file")
		return
	}
	log.Debugf("created default configuration at: %s", defaultConfigFile)
}

func buildDirPath() string {
	return filepath.Join(util.UserHome(), ntcpBaseDir)
}
