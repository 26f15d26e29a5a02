// internal/workers/command/parse-command/config.go
package parsecommand

const DefaultPrefix = "/"

type Config struct {
	// Prefix marks a command token, e.g. "/" in "/balance" or "!" in "!balance".
	Prefix string
}

func LoadConfig() *Config {
	return &Config{
		Prefix: DefaultPrefix,
	}
}
