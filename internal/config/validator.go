package config

import (
	"net"
	"slices"
)

// MinAPIKeyLength is the shortest API key accepted without a warning
const MinAPIKeyLength = 32

// Placeholder values shipped in .env.example
const (
	ExampleAPIKey     = "generate_with_openssl_rand_hex_32"
	ExampleDBPassword = "change_this_secure_password"
)

// productionEnvironments are the ENVIRONMENT values held to the stricter checks
var productionEnvironments = []string{"prod", "production"}

// Warnings reports settings that are legal but unsafe or probably unintended.
// Load has already rejected anything that cannot run.
func (c *Config) Warnings() []string {
	var warnings []string

	switch {
	case c.APIKey == ExampleAPIKey:
		warnings = append(warnings, "API_KEY appears to be using the example value - generate a secure key with: openssl rand -hex 32")
	case len(c.APIKey) < MinAPIKeyLength:
		warnings = append(warnings, "API_KEY is shorter than 32 characters")
	}

	if c.DatabaseURL == "" && (c.DBPassword == ExampleDBPassword || c.DBPassword == DefaultDBPassword) {
		warnings = append(warnings, "DB_PASSWORD appears to be using a default value - please use a secure password")
	}

	if c.GameTimezone == DefaultGameTimezone {
		warnings = append(warnings, "GAME_TIMEZONE is UTC - streak days roll over at UTC midnight")
	}

	for _, proxy := range c.TrustedProxies {
		if net.ParseIP(proxy) == nil {
			warnings = append(warnings, "TRUSTED_PROXIES entry "+proxy+" is not an IP address and will never match")
		}
	}

	if slices.Contains(productionEnvironments, c.Environment) && !c.AuditEnabled {
		warnings = append(warnings, "AUDIT_ENABLED is false in production - missed streaks will not be reset")
	}

	return warnings
}
