// Package config provides configuration structures and utilities for jsondict.
// It defines the generation options for dictionary builds, per-source settings
// loaded from the configuration file, and workbook label overrides.
package config
