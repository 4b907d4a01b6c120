// Package config manages user-level settings stored at ~/.lexkit/config.yaml.
// Values resolve from flags, LEXKIT_* environment variables, the settings
// file and built-in defaults, in that order. Known keys are validated on
// write so a bad value never reaches the file.
package config
