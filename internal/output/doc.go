// Package output handles console and log file output for docver commands.
//
// Splog writes bare messages to the terminal and, when a log file is
// configured, timestamped records to a rotating file.
package output
