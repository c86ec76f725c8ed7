package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/leaf/internal/api"
	"github.com/jackzampolin/leaf/internal/config"
	"github.com/jackzampolin/leaf/internal/home"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the local configuration",
	Long: `Manage the Leaf configuration file.

The config file is looked up from --config, then ./config.yaml, then
~/.leaf/config.yaml. Environment variables (LEAF_VIEWPORT_WIDTH, ...)
override file values.

Examples:
  leaf config init              # Write defaults to ~/.leaf/config.yaml
  leaf config list              # Show effective values
  leaf config list --prefix render.`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := home.New(homeDir)
		if err != nil {
			return err
		}
		if err := h.EnsureExists(); err != nil {
			return err
		}

		path := cfgFile
		if path == "" {
			path = h.ConfigPath()
		}
		if _, err := os.Stat(path); err == nil && !configForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		if err := config.WriteDefault(path); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
		return nil
	},
}

// ConfigValue is one effective setting.
type ConfigValue struct {
	Key         string `json:"key" yaml:"key"`
	Value       any    `json:"value" yaml:"value"`
	Default     any    `json:"default" yaml:"default"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

var configPrefix string

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List effective settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := home.New(homeDir)
		if err != nil {
			return err
		}
		cm, err := loadConfig(h)
		if err != nil {
			return err
		}

		var out []ConfigValue
		for _, e := range config.DefaultEntries() {
			if !strings.HasPrefix(e.Key, configPrefix) {
				continue
			}
			v, err := cm.Value(e.Key)
			if err != nil {
				return err
			}
			out = append(out, ConfigValue{Key: e.Key, Value: v, Default: e.Value, Description: e.Description})
		}
		return api.Output(out)
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite an existing config file")
	configListCmd.Flags().StringVar(&configPrefix, "prefix", "", "filter by key prefix (e.g., 'viewport.')")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)
	rootCmd.AddCommand(configCmd)
}
