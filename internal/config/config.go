package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sells-group/lca-cli/internal/model"
)

// Config holds the full application configuration.
type Config struct {
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
	Store      StoreConfig      `yaml:"store" mapstructure:"store"`
	Assessment AssessmentConfig `yaml:"assessment" mapstructure:"assessment"`
	Factors    FactorsConfig    `yaml:"factors" mapstructure:"factors"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// StoreConfig configures the factor store backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	MaxConns    int32  `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns    int32  `yaml:"min_conns" mapstructure:"min_conns"`
}

// AssessmentConfig holds run-wide methodology choices.
type AssessmentConfig struct {
	Weighting     string `yaml:"weighting" mapstructure:"weighting"`
	Normalization string `yaml:"normalization" mapstructure:"normalization"`
	ReferenceYear int    `yaml:"reference_year" mapstructure:"reference_year"`
	Concurrency   int    `yaml:"concurrency" mapstructure:"concurrency"`
}

// FactorsConfig points at reference data outside the embedded seeds.
type FactorsConfig struct {
	TablesPath  string   `yaml:"tables_path" mapstructure:"tables_path"`
	ImportPaths []string `yaml:"import_paths" mapstructure:"import_paths"`
	UseStore    bool     `yaml:"use_store" mapstructure:"use_store"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("LCA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "lca.db")
	v.SetDefault("store.max_conns", 10)
	v.SetDefault("store.min_conns", 2)
	v.SetDefault("assessment.weighting", "")
	v.SetDefault("assessment.normalization", "")
	v.SetDefault("assessment.reference_year", 2024)
	v.SetDefault("assessment.concurrency", 4)
	v.SetDefault("factors.tables_path", "")
	v.SetDefault("factors.import_paths", []string{})
	v.SetDefault("factors.use_store", false)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the settings a command depends on. mode is "assess"
// or "store"; every problem is reported in one error.
func (c *Config) Validate(mode string) error {
	var problems []string
	add := func(msg string) { problems = append(problems, msg) }

	switch mode {
	case "assess":
		if c.Assessment.Concurrency < 1 || c.Assessment.Concurrency > 64 {
			add("assessment.concurrency must be between 1 and 64")
		}
		if c.Assessment.ReferenceYear < 1900 {
			add("assessment.reference_year must be >= 1900")
		}
		if w := c.Assessment.Weighting; w != "" {
			if _, err := model.ParseWeightingMethod(w); err != nil {
				add("assessment.weighting: " + err.Error())
			}
		}
		if n := c.Assessment.Normalization; n != "" {
			if _, err := model.ParseNormalizationMethod(n); err != nil {
				add("assessment.normalization: " + err.Error())
			}
		}
		if c.Factors.UseStore {
			problems = append(problems, c.storeProblems()...)
		}
	case "store":
		problems = append(problems, c.storeProblems()...)
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(problems) > 0 {
		return eris.Errorf("config: invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func (c *Config) storeProblems() []string {
	var problems []string
	switch c.Store.Driver {
	case "sqlite", "postgres":
	default:
		problems = append(problems, "store.driver must be sqlite or postgres")
	}
	if c.Store.DatabaseURL == "" {
		problems = append(problems, "store.database_url is required")
	}
	if c.Store.Driver == "postgres" {
		if c.Store.MaxConns < 1 {
			problems = append(problems, "store.max_conns must be > 0")
		}
		if c.Store.MinConns < 0 || c.Store.MinConns > c.Store.MaxConns {
			problems = append(problems, "store.min_conns must be between 0 and store.max_conns")
		}
	}
	return problems
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
