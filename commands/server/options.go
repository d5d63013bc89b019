/*
Package server provides the commands of the swap daemon: writing the
application state into a tendermint genesis file, validating it, and
serving the application over the ABCI socket protocol.
*/
package server

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/iov-one/swap/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// Flag names, also used as configuration file keys.
const (
	FlagHome     = "home"
	FlagLogLevel = "log_level"
	FlagBind     = "bind"
	FlagDebug    = "debug"
	FlagMetrics  = "metrics"
	FlagForce    = "force"
)

// ConfigName is the name of the configuration file in the home directory,
// without extension.
const ConfigName = "swapd"

// Options are passed to the application generator.
type Options struct {
	// Home is where the application keeps its data. Empty means memory
	// only.
	Home   string
	Logger log.Logger
	// Debug returns full error information to the clients.
	Debug bool
	// Registerer collects the application metrics.
	Registerer prometheus.Registerer
}

// AppGenerator lets us lazily initialize app, using home dir
// and logger potentially initialized with other flags
type AppGenerator func(*Options) (abci.Application, error)

// LoadConfig returns the configuration of a command. Values are read from
// the command line flags, SWAPD_ prefixed environment variables and the
// swapd.toml file in the home directory, in that order of precedence.
func LoadConfig(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix("SWAPD")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "flags: %s", err)
	}

	v.SetConfigName(ConfigName)
	v.AddConfigPath(v.GetString(FlagHome))
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Wrapf(errors.ErrInvalidInput, "config file: %s", err)
		}
	}
	return v, nil
}

// NewLogger returns the tendermint logger writing to stdout, filtered by
// the configured level.
func NewLogger(conf *viper.Viper) (log.Logger, error) {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout)).With("module", ConfigName)
	level := conf.GetString(FlagLogLevel)
	if level == "" {
		return logger, nil
	}
	opt, err := log.AllowLevel(level)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "log level: %s", err)
	}
	return log.NewFilter(logger, opt), nil
}

// DefaultHome returns the default home directory of the daemon.
func DefaultHome() string {
	return filepath.Join(os.ExpandEnv("$HOME"), ".swapd")
}

// AddPersistentFlags registers the flags shared by all commands.
func AddPersistentFlags(root *cobra.Command) {
	root.PersistentFlags().String(FlagHome, DefaultHome(), "directory to store files under")
	root.PersistentFlags().String(FlagLogLevel, "info", "log level: debug, info, error or none")
}
