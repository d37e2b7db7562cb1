// Package config resolves the run configuration from command-line flags,
// FILES_TO_PROMPT_* environment variables and an optional config file.
package config

import (
	"errors"
	"fmt"
	"strings"

	"filestoprompt/pkg/combine"
	"filestoprompt/pkg/ignore"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "FILES_TO_PROMPT"

// Keys shared by flags, environment variables and config files.
const (
	KeyExtension      = "extension"
	KeyIgnore         = "ignore"
	KeyOutput         = "output"
	KeyCXML           = "cxml"
	KeyIncludeHidden  = "include-hidden"
	KeyNoGitignore    = "no-gitignore"
	KeyGitignoreScope = "gitignore-scope"
	KeyVerbose        = "verbose"
	KeyConfig         = "config"
)

// ErrInvalidConfig marks configuration that cannot be used.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the resolved configuration of one run.
type Config struct {
	Roots          []string
	Extensions     []string
	IgnoreGlobs    []string
	Output         string // Output file; empty means standard output.
	CXML           bool
	IncludeHidden  bool
	NoGitignore    bool
	GitignoreScope ignore.Scope
	Verbose        bool
	ConfigFile     string // Config file that was read, if any.
}

// RegisterFlags defines every flag Load understands on fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringArrayP(KeyExtension, "e", nil, "only include files ending with this suffix (repeatable)")
	fs.StringArrayP(KeyIgnore, "i", nil, "skip files whose name matches this glob (repeatable)")
	fs.StringP(KeyOutput, "o", "", "write output to this file instead of stdout")
	fs.BoolP(KeyCXML, "c", false, "wrap output in <documents> XML suited for Claude")
	fs.BoolP(KeyIncludeHidden, "H", false, "include files whose name starts with '.'")
	fs.Bool(KeyNoGitignore, false, "do not read or apply .gitignore files")
	fs.String(KeyGitignoreScope, ignore.ScopeGlobal.String(),
		`which .gitignore rules apply to a path: "global" (all loaded so far) or "root" (its own root only)`)
	fs.BoolP(KeyVerbose, "v", false, "log debug information to stderr")
	fs.String(KeyConfig, "", "read defaults from this config file (yaml, toml or json)")
}

// Load resolves the configuration. Explicit flags win over environment
// variables, which win over the config file, which wins over flag defaults.
// No roots means the current directory.
func Load(fs *pflag.FlagSet, args []string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}

	cfgFile := v.GetString(KeyConfig)
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("%w: failed to read config file %s: %v", ErrInvalidConfig, cfgFile, err)
		}
	}

	scope, err := ignore.ParseScope(v.GetString(KeyGitignoreScope))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	roots := args
	if len(roots) == 0 {
		roots = []string{"."}
	}

	return &Config{
		Roots:          roots,
		Extensions:     v.GetStringSlice(KeyExtension),
		IgnoreGlobs:    v.GetStringSlice(KeyIgnore),
		Output:         v.GetString(KeyOutput),
		CXML:           v.GetBool(KeyCXML),
		IncludeHidden:  v.GetBool(KeyIncludeHidden),
		NoGitignore:    v.GetBool(KeyNoGitignore),
		GitignoreScope: scope,
		Verbose:        v.GetBool(KeyVerbose),
		ConfigFile:     cfgFile,
	}, nil
}

// CombineOptions converts the configuration into aggregator options.
func (c *Config) CombineOptions() combine.Options {
	format := combine.FormatPlain
	if c.CXML {
		format = combine.FormatXML
	}
	return combine.Options{
		Selection: combine.SelectionConfig{
			Extensions:    c.Extensions,
			IgnoreGlobs:   c.IgnoreGlobs,
			IncludeHidden: c.IncludeHidden,
			SkipVCSIgnore: c.NoGitignore,
		},
		Format: format,
		Scope:  c.GitignoreScope,
	}
}
