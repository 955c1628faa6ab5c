// Package collabnet derives co-authorship networks from bibliographic export
// files, e.g. Scopus CSV or Web of Science tab-delimited dumps.
package collabnet

const (
	// Version of the tools.
	Version = "0.1.0"
	// AppName names the per user config directory.
	AppName = "collabnet"
)
