package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/todocurses/internal/clierr"
	"github.com/twiced-technology-gmbh/todocurses/internal/config"
	"github.com/twiced-technology-gmbh/todocurses/internal/output"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify configuration",
	Long:  `View the effective configuration, get a specific key, or set a writable value.`,
	Args:  exactArgs(0),
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Get a configuration value",
	Args:  exactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Set a configuration value",
	Args:  exactArgs(2), //nolint:mnd // key and value
	RunE:  runConfigSet,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	Args:  exactArgs(0),
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file location",
	Args:  exactArgs(0),
	RunE:  runConfigPath,
}

func init() {
	configInitCmd.Flags().Bool("force", false, "overwrite an existing config file")
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

// configAccessor describes how to get and set a config key.
type configAccessor struct {
	get func(*config.Config) any
	set func(*config.Config, string) error
}

func configAccessors() map[string]configAccessor {
	accessors := map[string]configAccessor{
		"version": {
			get: func(c *config.Config) any { return c.Version },
		},
		"archive_file": {
			get: func(c *config.Config) any { return c.ArchiveFile },
			set: func(c *config.Config, v string) error { c.ArchiveFile = v; return nil },
		},
		"bell": {
			get: func(c *config.Config) any { return c.Bell },
			set: func(c *config.Config, v string) error { return setBool(&c.Bell, "bell", v) },
		},
		"page_size": {
			get: func(c *config.Config) any { return c.PageSizeOrDefault() },
			set: func(c *config.Config, v string) error {
				n, err := strconv.Atoi(v)
				if err != nil {
					return clierr.Newf(clierr.InvalidInput, "invalid page_size %q: must be an integer", v)
				}
				c.PageSize = n
				return nil // validation handles range check
			},
		},
		"log_file": {
			get: func(c *config.Config) any { return c.LogFile },
			set: func(c *config.Config, v string) error { c.LogFile = v; return nil },
		},
		"watch": {
			get: func(c *config.Config) any { return c.Watch },
			set: func(c *config.Config, v string) error { return setBool(&c.Watch, "watch", v) },
		},
	}
	addKeyAccessors(accessors)
	return accessors
}

// addKeyAccessors exposes each binding as keys.<action>, set from a
// comma-separated list.
func addKeyAccessors(accessors map[string]configAccessor) {
	for _, action := range config.Actions {
		accessors["keys."+action] = configAccessor{
			get: func(c *config.Config) any { return c.KeysFor(action) },
			set: func(c *config.Config, v string) error {
				keys := splitKeys(v)
				if len(keys) == 0 {
					return clierr.Newf(clierr.InvalidInput, "keys.%s needs at least one key", action)
				}
				if c.Keys == nil {
					c.Keys = make(map[string][]string)
				}
				c.Keys[action] = keys
				return nil
			},
		}
	}
}

// splitKeys splits a comma-separated key list. "space" stands for the
// space bar, which can't be written inside the list otherwise.
func splitKeys(v string) []string {
	var keys []string
	for _, k := range strings.Split(v, ",") {
		k = strings.TrimSpace(k)
		switch k {
		case "":
			continue
		case "space":
			k = " "
		}
		keys = append(keys, k)
	}
	return keys
}

func setBool(dst *bool, name, v string) error {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return clierr.Newf(clierr.InvalidInput, "invalid %s %q: must be true or false", name, v)
	}
	*dst = b
	return nil
}

// allConfigKeys returns config keys in display order.
func allConfigKeys() []string {
	keys := []string{"version", "archive_file", "bell", "page_size", "log_file", "watch"}
	for _, action := range config.Actions {
		keys = append(keys, "keys."+action)
	}
	return keys
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	accessors := configAccessors()
	w := cmd.OutOrStdout()

	if outputFormat() == output.FormatJSON {
		m := make(map[string]any, len(accessors))
		for _, key := range allConfigKeys() {
			m[key] = accessors[key].get(cfg)
		}
		return output.JSON(w, m)
	}

	for _, key := range allConfigKeys() {
		fmt.Fprintf(w, "%-22s %v\n", key, formatConfigValue(accessors[key].get(cfg)))
	}
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	key := args[0]
	acc, ok := configAccessors()[key]
	if !ok {
		return clierr.Newf(clierr.InvalidInput, "unknown config key %q", key)
	}

	val := acc.get(cfg)
	if outputFormat() == output.FormatJSON {
		return output.JSON(cmd.OutOrStdout(), val)
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatConfigValue(val))
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfigFile()
	if err != nil {
		return err
	}

	key, value := args[0], args[1]
	acc, ok := configAccessors()[key]
	if !ok {
		return clierr.Newf(clierr.InvalidInput, "unknown config key %q", key)
	}
	if acc.set == nil {
		return clierr.Newf(clierr.InvalidInput, "config key %q is read-only", key)
	}

	if err := acc.set(cfg, value); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return clierr.Wrap(clierr.InvalidConfig, err, "rejected %s", key)
	}
	if err := cfg.Save(); err != nil {
		return clierr.IO("writing config", cfg.Path(), err)
	}

	w := cmd.OutOrStdout()
	if outputFormat() == output.FormatJSON {
		return output.JSON(w, map[string]any{"key": key, "value": acc.get(cfg)})
	}
	output.Messagef(w, "Set %s = %v", key, formatConfigValue(acc.get(cfg)))
	return nil
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	path, err := configPath()
	if err != nil {
		return err
	}

	force, _ := cmd.Flags().GetBool("force")
	if _, err := os.Stat(path); err == nil && !force {
		return clierr.Newf(clierr.InvalidInput, "config already exists at %s (use --force to overwrite)", path).
			WithDetails(map[string]any{"path": path})
	}

	cfg := config.NewDefault()
	cfg.SetPath(path)
	cfg.Keys = make(map[string][]string, len(config.DefaultKeys))
	for action, keys := range config.DefaultKeys {
		cfg.Keys[action] = append([]string(nil), keys...)
	}
	if err := cfg.Save(); err != nil {
		return clierr.IO("writing config", path, err)
	}

	w := cmd.OutOrStdout()
	if outputFormat() == output.FormatJSON {
		return output.JSON(w, map[string]any{"path": path})
	}
	output.Messagef(w, "Wrote %s", path)
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	path, err := configPath()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

func formatConfigValue(val any) string {
	switch v := val.(type) {
	case []string:
		return strings.Join(quoteSpace(v), ", ")
	default:
		return fmt.Sprintf("%v", v)
	}
}

func quoteSpace(keys []string) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		if k == " " {
			k = "space"
		}
		out[i] = k
	}
	return out
}
