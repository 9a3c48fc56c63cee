package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/spf13/viper"
)

const (
	maxWalkDepth = 25
)

// Config represents the observe configuration from observe.yaml.
type Config struct {
	// Synthetic feature-model experiments
	ExperimentsDir string   `mapstructure:"experiments_dir" json:"experiments_dir"`
	ResultsDir     string   `mapstructure:"results_dir" json:"results_dir"`
	Experiments    []string `mapstructure:"experiments" json:"experiments"`
	Tiers          []int    `mapstructure:"tiers" json:"tiers"`

	// Concurrency bounds the experiments classified in parallel.
	Concurrency int `mapstructure:"concurrency" json:"concurrency"`
	// MaxPartitions bounds each decomposition search; 0 disables the limit.
	MaxPartitions int `mapstructure:"max_partitions" json:"max_partitions"`

	BDD     BDDConfig     `mapstructure:"bdd" json:"bdd"`
	Store   StoreConfig   `mapstructure:"store" json:"store"`
	Metrics MetricsConfig `mapstructure:"metrics" json:"metrics"`
	PIM     PIMConfig     `mapstructure:"pim" json:"pim"`
}

// BDDConfig sizes the decision diagram of each experiment. Both tables
// grow on demand; larger initial sizes avoid early resizing on big models.
type BDDConfig struct {
	NodeSize  int `mapstructure:"node_size" json:"node_size"`
	CacheSize int `mapstructure:"cache_size" json:"cache_size"`
}

// StoreConfig holds result checkpoint settings.
type StoreConfig struct {
	// Path of the SQLite database. Empty disables checkpointing.
	Path string `mapstructure:"path" json:"path"`
}

// MetricsConfig holds metrics export settings.
type MetricsConfig struct {
	// Textfile is written in the Prometheus text format after each run.
	Textfile string `mapstructure:"textfile" json:"textfile"`
}

// PIMConfig holds the performance-influence model evaluation settings.
type PIMConfig struct {
	BaseDir           string       `mapstructure:"base_dir" json:"base_dir"`
	ModelSuffix       string       `mapstructure:"model_suffix" json:"model_suffix"`
	MeasurementSuffix string       `mapstructure:"measurement_suffix" json:"measurement_suffix"`
	Delimiter         string       `mapstructure:"delimiter" json:"delimiter"`
	ModelExclude      []string     `mapstructure:"model_exclude" json:"model_exclude"`
	Examples          []PIMExample `mapstructure:"examples" json:"examples"`
}

// PIMExample names a subject system and the measurement columns that are
// not features.
type PIMExample struct {
	Name    string   `mapstructure:"name" json:"name"`
	Exclude []string `mapstructure:"exclude" json:"exclude"`
}

// LoadConfig discovers and loads configuration with proper precedence:
// flags > env > config file > defaults.
//
// Returns the loaded config, the path to the config file (empty if none found),
// and any error encountered.
func LoadConfig(explicitConfigPath string) (*Config, string, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("OBSERVE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configPath, err := findConfigFile(explicitConfigPath)
	if err != nil {
		return nil, "", err
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, configPath, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, configPath, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, configPath, err
	}

	return &cfg, configPath, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("experiments_dir", "examples")
	v.SetDefault("results_dir", "results")
	v.SetDefault("experiments", []string{
		"RWSPL/llvm/llvmPaper",
		"RWSPL/lrzip/lrzipPaper",
		"PCSimp/E1/Apache_P/Apache_PFW",
		"PCSimp/E1/Curl_MEM/Curl_MEMFW",
		"PCSimp/E1/EMail_P/EMail_PFW",
		"PCSimp/E1/h264_MEM/h264_MEMFW",
		"PCSimp/E1/LinkedList_BS/LinkedList_BSDW",
		"PCSimp/E1/PKJab_BS/PKJab_BSFW",
		"PCSimp/E1/Prevaylar_BS/Prevaylar_BSFW",
		"PCSimp/E1/ZipMe_BS/ZipMe_BSFW",
		"ProVeLines/cfdp/cfdp",
		"ProVeLines/elevator/elevator",
		"ProVeLines/minepump/minepump",
		"Prism/BSN/BSN",
		"Prism/aircraft/aircraft",
	})
	v.SetDefault("tiers", []int{1, 2, 3})
	v.SetDefault("concurrency", 1)
	v.SetDefault("max_partitions", 0)

	v.SetDefault("bdd.node_size", 10000)
	v.SetDefault("bdd.cache_size", 3000)

	v.SetDefault("store.path", "")
	v.SetDefault("metrics.textfile", "")

	v.SetDefault("pim.base_dir", "../PerformanceEvolution_Website/PerformanceEvolution_Data")
	v.SetDefault("pim.model_suffix", "models/models.csv")
	v.SetDefault("pim.measurement_suffix", "measurements.csv")
	v.SetDefault("pim.delimiter", ";")
	v.SetDefault("pim.model_exclude", []string{"revision", "error"})
	v.SetDefault("pim.examples", []map[string]any{
		{"name": "FastDownward", "exclude": []string{"revision", "performance"}},
		{"name": "HSQLDB", "exclude": []string{"revision", "performance", "cpu", "benchmark-energy", "fixed-energy", "benchmark-power", "fixed-power"}},
		{"name": "MariaDB", "exclude": []string{"revision", "performance", "cpu"}},
		{"name": "MySQL", "exclude": []string{"revision", "performance", "cpu"}},
		{"name": "PostgreSQL", "exclude": []string{"revision", "performance", "cpu"}},
		{"name": "OpenVPN", "exclude": []string{"revision", "performance"}},
		{"name": "Opus", "exclude": []string{"revision", "performance"}},
		{"name": "VP8", "exclude": []string{"revision", "performance", "size", "energy", "cpu"}},
		{"name": "z3", "exclude": []string{"revision", "performance", "memory"}},
		{"name": "lrzip", "exclude": []string{"revision", "performance", "size", "cpu"}},
		{"name": "brotli", "exclude": []string{"revision", "performance", "size", "memory", "energy"}},
	})
}

// Validate checks the values that cannot be defaulted sensibly.
func (c *Config) Validate() error {
	for _, t := range c.Tiers {
		if t <= 0 {
			return fmt.Errorf("tiers: arity must be positive, got %d", t)
		}
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative, got %d", c.Concurrency)
	}
	if c.BDD.NodeSize < 0 || c.BDD.CacheSize < 0 {
		return fmt.Errorf("bdd sizes must not be negative, got node_size=%d cache_size=%d", c.BDD.NodeSize, c.BDD.CacheSize)
	}
	if d := c.PIM.Delimiter; utf8.RuneCountInString(d) > 1 && d != `\t` {
		return fmt.Errorf("pim.delimiter must be a single character, got %q", c.PIM.Delimiter)
	}
	return nil
}

// ExperimentPath returns the model base path of an experiment: the path
// without the .fs/.fm extension.
func (c *Config) ExperimentPath(experiment string) string {
	if filepath.IsAbs(experiment) {
		return experiment
	}
	return filepath.Join(c.ExperimentsDir, experiment)
}

// PIMExample returns the configured example with the given name.
func (c *Config) PIMExample(name string) (PIMExample, bool) {
	for _, ex := range c.PIM.Examples {
		if ex.Name == name {
			return ex, true
		}
	}
	return PIMExample{}, false
}

// findConfigFile finds the config file to use.
// If explicitPath is provided, it validates the file exists.
// Otherwise, it walks up from cwd looking for observe.yaml or observe.yml,
// stopping at a .git directory or after maxWalkDepth levels.
func findConfigFile(explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicitPath)
		}
		return explicitPath, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting cwd: %w", err)
	}

	dir := cwd
	for i := 0; i < maxWalkDepth; i++ {
		for _, name := range []string{"observe.yaml", "observe.yml"} {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}

		// Stop at the repository root
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			break
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", nil
}
