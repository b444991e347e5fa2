// Package logger records what the shell did with each line as newline
// delimited JSON, and builds reports from a recorded log.
package logger
