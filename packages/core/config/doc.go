// Package config loads formpost configuration files. A config file
// supplies defaults for the CLI; flags always win over file values.
package config
