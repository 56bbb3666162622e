package config

const (
	defaultStemmer     = "snowball"
	defaultLanguage    = "english"
	defaultTokenOrder  = "first_seen"
	defaultWorkers     = 1
	defaultThreshold   = 0.5
	defaultStrategy    = "greedy"
	defaultHistoryPath = "~/.local/share/sentcluster/history.db"
	defaultHistoryKeep = 200
	defaultLogFormat   = "console"
	defaultLogLevel    = "warn"
	defaultOutput      = "text"
	defaultColor       = "auto"
	defaultConfigPath  = "~/.config/sentcluster/config.toml"
	projectConfigName  = "sentcluster.toml"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Scoring: Scoring{
			Stemmer:    defaultStemmer,
			Language:   defaultLanguage,
			TokenOrder: defaultTokenOrder,
			Workers:    defaultWorkers,
		},
		Clustering: Clustering{
			Threshold: defaultThreshold,
			Strategy:  defaultStrategy,
		},
		Source: Source{
			SkipBlank: true,
		},
		History: History{
			Enabled: true,
			Path:    defaultHistoryPath,
			Keep:    defaultHistoryKeep,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Output: Output{
			Format: defaultOutput,
			Color:  defaultColor,
		},
	}
}
