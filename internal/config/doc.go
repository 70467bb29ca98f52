// Package config loads, normalizes, and validates ndsreport configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// NDSREPORT_OUTPUT_DIR. The Config type names the master roster, the ordered
// period datasets, the input column names, and where the report and logs go.
//
// Always obtain settings through this package so downstream code receives
// absolute paths, labelled periods, and clear validation errors.
package config
