package config

const prodEnv = "production"

// IsProduction reports whether the process runs in production mode. Cookie
// attributes and log output both switch on it.
func (c *Config) IsProduction() bool {
	return c.Env == prodEnv
}
