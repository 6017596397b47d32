package pagelens

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds tunable analysis settings. The zero value is not usable;
// start from DefaultConfig and override from a YAML file via LoadConfig.
type Config struct {
	// TopKeywords is the number of keywords returned by SEO analysis.
	TopKeywords int

	// SummarySentences is the number of sentences the extractive
	// fallback summary keeps.
	SummarySentences int

	// SummaryMaxChars caps the length of generated summaries.
	SummaryMaxChars int

	// ProviderTimeout bounds each AI provider call.
	ProviderTimeout time.Duration

	// StopWords are excluded from keyword counting.
	StopWords []string

	// Currencies maps currency symbols to ISO-like codes.
	Currencies map[string]string
}

// fileConfig is the YAML shape of a config file. Durations are strings in
// time.ParseDuration format.
type fileConfig struct {
	TopKeywords      int               `yaml:"topKeywords"`
	SummarySentences int               `yaml:"summarySentences"`
	SummaryMaxChars  int               `yaml:"summaryMaxChars"`
	ProviderTimeout  string            `yaml:"providerTimeout"`
	StopWords        []string          `yaml:"stopWords"`
	Currencies       map[string]string `yaml:"currencies"`
}

// DefaultConfig returns the built-in analysis settings.
func DefaultConfig() Config {
	return Config{
		TopKeywords:      10,
		SummarySentences: 3,
		SummaryMaxChars:  800,
		ProviderTimeout:  15 * time.Second,
		StopWords:        defaultStopWords(),
		Currencies:       DefaultCurrencyTable(),
	}
}

// LoadConfig reads YAML configuration from path and merges it over the
// defaults. Zero-valued fields in the file keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, Errorf(EINVALID, "cannot read config %q: %v", path, err)
	}

	var file fileConfig
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return cfg, Errorf(EINVALID, "cannot parse config %q: %v", path, err)
	}

	if file.TopKeywords > 0 {
		cfg.TopKeywords = file.TopKeywords
	}
	if file.SummarySentences > 0 {
		cfg.SummarySentences = file.SummarySentences
	}
	if file.SummaryMaxChars > 0 {
		cfg.SummaryMaxChars = file.SummaryMaxChars
	}
	if file.ProviderTimeout != "" {
		d, err := time.ParseDuration(file.ProviderTimeout)
		if err != nil {
			return cfg, Errorf(EINVALID, "invalid providerTimeout %q: %v", file.ProviderTimeout, err)
		}
		cfg.ProviderTimeout = d
	}
	if len(file.StopWords) > 0 {
		cfg.StopWords = file.StopWords
	}
	if len(file.Currencies) > 0 {
		cfg.Currencies = file.Currencies
	}
	return cfg, nil
}

// StopWordSet returns the stop words as a lookup set.
func (c Config) StopWordSet() map[string]bool {
	set := make(map[string]bool, len(c.StopWords))
	for _, w := range c.StopWords {
		set[w] = true
	}
	return set
}

// CurrencyTable returns the configured symbol-to-code mapping.
func (c Config) CurrencyTable() CurrencyTable {
	return CurrencyTable(c.Currencies)
}

func defaultStopWords() []string {
	return []string{
		"the", "and", "a", "an", "of", "to", "in", "is", "it", "that",
		"this", "for", "on", "with", "as", "are", "was", "were", "be",
		"by", "or", "from", "at", "which", "you", "your", "we", "they",
		"their", "has", "have", "but", "not", "he", "she", "his", "her",
		"its", "will", "can",
	}
}
