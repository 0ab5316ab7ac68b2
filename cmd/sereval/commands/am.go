package commands

import (
	"encoding/json"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vijay120/duckling-1/am"
)

// AmCmd manages harness configuration
var AmCmd = &cobra.Command{
	Use:   "am",
	Short: "Manage harness configuration",
	Long: `Display and manage harness configuration.

Configuration sources (in order of precedence):
1. Environment variables (SEREVAL_* prefix)
2. Project config (./sereval.toml or ./config.toml)
3. User config (~/.sereval/config.toml)
4. System config (/etc/sereval/config.toml)
5. Default values

Examples:
  sereval am show                 # Show current configuration
  sereval am show --format json   # Show configuration in JSON format
  sereval am get duckling.endpoint
  sereval am init                 # Write a default sereval.toml`,
}

var amShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  "Display the current configuration merged from all sources",
	RunE:  runAmShow,
}

var amGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a specific configuration value",
	Long:  "Get a specific configuration value using dot notation (e.g., duckling.endpoint, fetch.workers)",
	Args:  cobra.ExactArgs(1),
	RunE:  runAmGet,
}

var amInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a default configuration file",
	Long:  "Write a configuration file populated with defaults. Refuses to overwrite an existing file.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAmInit,
}

var configFormat string

func init() {
	amShowCmd.Flags().StringVar(&configFormat, "format", "toml", "Output format: toml, json, yaml")

	AmCmd.AddCommand(amShowCmd)
	AmCmd.AddCommand(amGetCmd)
	AmCmd.AddCommand(amInitCmd)
}

func runAmShow(cmd *cobra.Command, args []string) error {
	cfg, err := am.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	var data []byte
	switch configFormat {
	case "json":
		data, err = json.MarshalIndent(cfg, "", "  ")
	case "yaml":
		data, err = yaml.Marshal(cfg)
	case "toml":
		data, err = toml.Marshal(cfg)
	default:
		return fmt.Errorf("unknown format %q (expected toml, json, or yaml)", configFormat)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config to %s: %w", configFormat, err)
	}

	fmt.Println(string(data))
	return nil
}

func runAmGet(cmd *cobra.Command, args []string) error {
	value := am.GetString(args[0])
	if value == "" {
		return fmt.Errorf("no value for key %q", args[0])
	}
	fmt.Println(value)
	return nil
}

func runAmInit(cmd *cobra.Command, args []string) error {
	path := "sereval.toml"
	if len(args) == 1 {
		path = args[0]
	}

	if err := am.WriteConfig(am.DefaultConfig(), path); err != nil {
		return err
	}
	fmt.Printf("Wrote default config to %s\n", path)
	return nil
}
