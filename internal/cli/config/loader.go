package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/leapstack-labs/monhealth/pkg/core"
	"github.com/leapstack-labs/monhealth/pkg/query"
)

// loggerKey is used to store the logger in context.
type loggerKey struct{}

// envPrefix marks environment variables read as configuration.
const envPrefix = "MONHEALTH_"

// configFileUsed records the file of the last load.
var configFileUsed string

// findConfigFile finds the config file to use.
// Priority: explicit path > monhealth.yaml > monhealth.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{"monhealth.yaml", "monhealth.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

func defaults() map[string]any {
	return map[string]any{
		"database":               DefaultDatabase,
		"driver":                 DefaultDriver,
		"dsn":                    "",
		"output":                 DefaultOutput,
		"verbose":                false,
		"history_file":           "",
		"prompt":                 DefaultPrompt,
		"find.default_sort":      DefaultSort,
		"find.columns":           DefaultColumns,
		"insert.max_name_length": DefaultMaxNameLength,
	}
}

// LoadConfig loads configuration from defaults, file, environment variables
// and flags. Precedence (highest to lowest): flags > env vars > config file
// > defaults. Only flags that were explicitly set take part.
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	configFileUsed = findConfigFile(cfgFile)
	if configFileUsed != "" {
		if err := k.Load(file.Provider(configFileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFileUsed, err)
		}
	}

	// 3. Environment: MONHEALTH_FIND__DEFAULT_SORT -> find.default_sort
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed || f.Name == "config" {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				sortKeysHook,
				fieldsHook,
			),
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	}); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var (
	sortKeysType = reflect.TypeOf([]core.SortKey(nil))
	fieldsType   = reflect.TypeOf([]core.Field(nil))
)

// listString flattens a comma string or a YAML list into "a,b".
func listString(data any) (string, bool) {
	switch v := data.(type) {
	case string:
		return v, true
	case []any:
		parts := make([]string, len(v))
		for i, p := range v {
			parts[i] = fmt.Sprint(p)
		}
		return strings.Join(parts, ","), true
	case []string:
		return strings.Join(v, ","), true
	}
	return "", false
}

// sortKeysHook decodes "date,-time" or [date, -time] into sort keys.
func sortKeysHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != sortKeysType {
		return data, nil
	}
	s, ok := listString(data)
	if !ok {
		return data, nil
	}
	keys, err := query.ParseSort(s)
	if err != nil {
		return nil, fmt.Errorf("find.default_sort: %w", err)
	}
	return keys, nil
}

// fieldsHook decodes "id,name" or [id, name] into fields.
func fieldsHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != fieldsType {
		return data, nil
	}
	s, ok := listString(data)
	if !ok {
		return data, nil
	}
	fields, err := query.ParseFields(s)
	if err != nil {
		return nil, fmt.Errorf("find.columns: %w", err)
	}
	return fields, nil
}

// GetConfigFileUsed returns the path to the config file being used, if any.
func GetConfigFileUsed() string {
	return configFileUsed
}

// LoggerKey returns the context key used for storing the logger.
// This allows the commands package to retrieve the logger from context
// without creating an import cycle with the cli package.
func LoggerKey() any {
	return loggerKey{}
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	// Return discard logger as safe fallback
	return slog.New(slog.DiscardHandler)
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars expands ${VAR} patterns with environment variable values.
// Unknown variables are left as written.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		if val := os.Getenv(match[2 : len(match)-1]); val != "" {
			return val
		}
		return match
	})
}

// configKey is used to store the loaded config in context.
type configKey struct{}

// ConfigKey returns the context key used for storing the config.
func ConfigKey() any {
	return configKey{}
}

// GetConfig retrieves the config from the command context, or a config
// holding the defaults when none was stored.
func GetConfig(ctx context.Context) *Config {
	if c, ok := ctx.Value(configKey{}).(*Config); ok {
		return c
	}
	return Default()
}
