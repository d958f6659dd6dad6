package cli

import (
	"fmt"
	"os"
	"strings"

	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
)

// defaultConfigFile is picked up from the working directory when --config is
// not given.
const defaultConfigFile = "clientgen.yaml"

// GenerateConfig is the merged configuration for one generate run. Values
// layer in order: defaults, config file, changed CLI flags.
type GenerateConfig struct {
	Input                string `koanf:"input"`
	ClassName            string `koanf:"class-name"`
	ModuleName           string `koanf:"module-name"`
	Lang                 string `koanf:"lang"`
	Multiple             bool   `koanf:"multiple"`
	RequestBodyParamName string `koanf:"request-body-param-name"`
	ES6                  bool   `koanf:"es6"`
	Out                  string `koanf:"out"`
	Force                bool   `koanf:"force"`
	DryRun               bool   `koanf:"dry-run"`
	Validate             bool   `koanf:"validate"`
	Verbose              bool   `koanf:"verbose"`
}

func loadGenerateConfig(cmd *cobra.Command) (*GenerateConfig, error) {
	k := koanf.New(".")

	configFile, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	configFile = strings.TrimSpace(configFile)
	if configFile == "" {
		if _, serr := os.Stat(defaultConfigFile); serr == nil {
			configFile = defaultConfigFile
		}
	}

	if configFile != "" {
		if err := k.Load(file.Provider(configFile), kyaml.Parser()); err != nil {
			return nil, newUsageError(fmt.Sprintf("read config file %q: %v", configFile, err))
		}
	}

	flagsMap := buildFlagsMap(cmd)
	if len(flagsMap) > 0 {
		if err := k.Load(confmap.Provider(flagsMap, "."), nil); err != nil {
			return nil, fmt.Errorf("loading flags: %w", err)
		}
	}

	var cfg GenerateConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, newUsageError(fmt.Sprintf("unmarshal config: %v", err))
	}

	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// buildFlagsMap collects the flags the user actually set, keyed by config
// path, so flag values override the config file without clobbering it with
// zero values.
func buildFlagsMap(cmd *cobra.Command) map[string]any {
	m := make(map[string]any)

	flagChanged := func(name string) bool {
		return cmd.Flags().Changed(name) || cmd.Root().PersistentFlags().Changed(name)
	}
	getString := func(name string) string {
		if v, err := cmd.Flags().GetString(name); err == nil {
			return v
		}
		return ""
	}
	getBool := func(name string) bool {
		if v, err := cmd.Flags().GetBool(name); err == nil {
			return v
		}
		return false
	}

	for _, name := range []string{"input", "class-name", "module-name", "lang", "request-body-param-name", "out"} {
		if flagChanged(name) {
			m[name] = getString(name)
		}
	}
	for _, name := range []string{"multiple", "es6", "force", "dry-run", "validate", "verbose"} {
		if flagChanged(name) {
			m[name] = getBool(name)
		}
	}
	return m
}

func (c *GenerateConfig) normalize() {
	c.Input = strings.TrimSpace(c.Input)
	c.ClassName = strings.TrimSpace(c.ClassName)
	c.ModuleName = strings.TrimSpace(c.ModuleName)
	c.Lang = strings.ToLower(strings.TrimSpace(c.Lang))
	c.RequestBodyParamName = strings.TrimSpace(c.RequestBodyParamName)
	c.Out = strings.TrimSpace(c.Out)
}

func (c *GenerateConfig) validate() error {
	if c.Input == "" {
		return newUsageError("generate: --input is required (set via flag or config file)")
	}
	if c.ClassName == "" {
		return newUsageError("generate: --class-name is required (set via flag or config file)")
	}

	switch c.Lang {
	case "":
		c.Lang = "typescript"
	case "typescript", "node":
	default:
		return newUsageError(fmt.Sprintf("generate: unsupported --lang %q (allowed: typescript, node)", c.Lang))
	}

	if c.Multiple && c.Out == "" {
		return newUsageError("generate: --out is required with --multiple (per-tag output cannot go to stdout)")
	}
	return nil
}
