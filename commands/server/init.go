package server

import (
	"encoding/json"
	"io/ioutil"
	"path/filepath"

	"github.com/iov-one/swap"
	"github.com/iov-one/swap/errors"
	"github.com/iov-one/swap/store"
	"github.com/spf13/cobra"
)

// GenOptions can parse command-line and flag to
// generate default app_state for the genesis file.
// This is application-specific
type GenOptions func(args []string) (json.RawMessage, error)

// InitCmd returns the command that writes the application state into the
// genesis file created by "tendermint init" in the same home directory.
func InitCmd(gen GenOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [args...]",
		Short: "Initialize app_state in the genesis file",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := LoadConfig(cmd)
			if err != nil {
				return err
			}
			logger, err := NewLogger(conf)
			if err != nil {
				return err
			}

			options, err := gen(args)
			if err != nil {
				return err
			}
			genFile := GenesisFile(conf.GetString(FlagHome))
			if err := addGenesisOptions(genFile, options, conf.GetBool(FlagForce)); err != nil {
				return err
			}
			logger.Info("app_state written", "path", genFile)
			return nil
		},
	}
	cmd.Flags().Bool(FlagForce, false, "overwrite an existing app_state")
	return cmd
}

// GenesisFile returns the location of the tendermint genesis file for
// given home directory.
func GenesisFile(home string) string {
	return filepath.Join(home, "config", "genesis.json")
}

// GenesisDoc involves some tendermint-specific structures we don't
// want to parse, so we just grab it into a raw object format,
// so we can add one line.
type GenesisDoc map[string]json.RawMessage

func addGenesisOptions(filename string, options json.RawMessage, force bool) error {
	bz, err := ioutil.ReadFile(filename)
	if err != nil {
		return errors.Wrapf(errors.ErrNotFound, "genesis file, run tendermint init first: %s", err)
	}

	var doc GenesisDoc
	if err := json.Unmarshal(bz, &doc); err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "genesis file: %s", err)
	}

	if prev := doc["app_state"]; !force && len(prev) > 0 && string(prev) != "null" {
		return errors.Wrap(errors.ErrDuplicate, "app_state already set, use --force to overwrite")
	}
	doc["app_state"] = options

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "genesis file: %s", err)
	}
	return ioutil.WriteFile(filename, out, 0600)
}

// ValidateCmd returns the command that checks that the app_state of
// genesis files can be loaded by the application.
func ValidateCmd(ini swap.Initializer) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [genesis files...]",
		Short: "Validate app_state of genesis files",
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := args
			if len(paths) == 0 {
				conf, err := LoadConfig(cmd)
				if err != nil {
					return err
				}
				paths = []string{GenesisFile(conf.GetString(FlagHome))}
			}
			return ValidateGenesis(ini, paths)
		},
	}
}

// ValidateGenesis loads the app_state of every file into a throwaway
// store using ini.
func ValidateGenesis(ini swap.Initializer, genesisPaths []string) error {
	for _, path := range genesisPaths {
		if err := validateGenesis(ini, path); err != nil {
			return errors.Wrap(err, path)
		}
	}
	return nil
}

func validateGenesis(ini swap.Initializer, genesisPath string) error {
	b, err := ioutil.ReadFile(genesisPath)
	if err != nil {
		return errors.Wrapf(errors.ErrNotFound, "cannot read genesis file: %s", err)
	}

	var genesis struct {
		State swap.Options `json:"app_state"`
	}
	if err := json.Unmarshal(b, &genesis); err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "cannot JSON deserialize genesis: %s", err)
	}

	// Use in memory store because we want to discard the result.
	db := store.MemStore()
	if err := ini.FromGenesis(genesis.State, db); err != nil {
		return errors.Wrap(err, "cannot initialize from genesis")
	}
	return nil
}
