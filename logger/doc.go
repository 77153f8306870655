// Package logger provides structured logging for gofetch using zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped loggers carrying structured fields.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.WithComponent("fetch")
//	log.Debug("request dispatched", logger.Fields("method", "GET"))
package logger
