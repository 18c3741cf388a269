// Package config loads, normalizes, and validates reklamefix configuration.
//
// It supplies defaults, expands user paths (including tilde shortcuts), reads
// TOML files, and honours the DOMS_USERNAME and DOMS_PASSWORD environment
// fallbacks so credentials can stay out of the file. The Config type carries
// every knob the CLI needs: the DOMS endpoint and credentials, the identifier
// list, run behaviour, the state directory holding the journal and run lock,
// and logging.
//
// Always obtain settings through this package so downstream code receives
// expanded paths, clamped worker counts, and clear validation errors.
package config
