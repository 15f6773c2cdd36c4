// Package config resolves prseed's layered configuration.
//
// Precedence, lowest to highest:
//  1. Built-in defaults
//  2. Config file (.prseed.yaml or the -config flag)
//  3. PRSEED_-prefixed environment variables
//  4. Command-line flags
//
// Each key remembers which layer supplied its value, which keeps
// "where did this setting come from" answerable when debugging a run.
package config
