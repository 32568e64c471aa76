// Package config loads application configuration from environment
// variables (prefix CBOA) merged with an optional YAML config file, and
// the externalized data-cleaning policy (exclusion windows plus the
// known-bad record) from exclusions.yaml.
//
// The cleaning policy is deliberately configuration rather than code:
// the curated date ranges are the scientific judgment of the monitoring
// program, and keeping them in a validated YAML file makes the exclusion
// policy auditable and testable independent of the pipeline.
package config
