package app

const (
	configPathLog   = "log"
	configPathRelay = "relay"
)

////

type LogConfig struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

////

type RelayConfig struct {
	Rules []RuleConfig `toml:"rules"`
}

type RuleConfig struct {
	Description  string   `toml:"description"`
	Listen       string   `toml:"listen"`
	Destinations []string `toml:"destinations"`
	Disabled     bool     `toml:"disabled"`
}
