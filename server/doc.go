/*
Package server wires configuration, the persistent pixel set store, the region cache,
plane extraction, and rendering defaults into a Service used by the command-line tool.

Configuration is read from a TOML file:

	[logging]
	logfile = "/var/log/dvidplane.log"
	max_log_size = 500 # MB
	max_log_age = 30   # days

	[pixels]
	byteorder = "big"  # for pixel sets that don't declare one
	copy_regions = false

	[store]
	path = "dvidplane-db"  # relative to this file

	[cache]
	size = 256  # MB, 0 disables

or a YAML file with the same sections and keys.
*/
package server
