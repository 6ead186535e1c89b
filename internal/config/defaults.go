package config

// DefaultConfigYAML contains the default configuration file content written
// by `nexbase-diag init`.
const DefaultConfigYAML = `# Nexbase SDK diagnostics configuration
#
# Values not specified here use sensible defaults.

log:
  # debug, info, warn, error
  level: info
  # auto, text, json
  format: auto

diagnostics:
  # Completed outages kept in the disconnect history ring.
  history_capacity: 50
  # Ongoing outages at or past this duration count as long disconnects.
  long_disconnect_threshold: 30s
`

// setDefaults registers default values on the loader's viper instance.
func (l *Loader) setDefaults() {
	l.v.SetDefault("log.level", "info")
	l.v.SetDefault("log.format", "auto")
	l.v.SetDefault("diagnostics.history_capacity", 50)
	l.v.SetDefault("diagnostics.long_disconnect_threshold", "30s")
}
