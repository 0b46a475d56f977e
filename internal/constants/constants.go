// Package constants provides shared constants used across the application
// to avoid circular dependencies between packages.
package constants

// Application identity
const (
	AppName = "fs-cli"
	// ConfigDirName is the directory holding config.yaml under each search root
	ConfigDirName = "fs-cli"
)

// Output layout for ls
const (
	// KindColumnWidth is the minimum width of the entry type column
	KindColumnWidth = 10
	// SizeColumnWidth is the minimum width of the entry size column
	SizeColumnWidth = 20
)

// Application defaults
const (
	DefaultListPath  = "."
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
	// DefaultWordWrap is the column glamour wraps rendered Markdown at
	DefaultWordWrap = 80
)
