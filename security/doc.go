// Package security holds the TLS settings used by the encrypted transport.
//
//	cfg := security.TLSConfig{
//	    CAFile:     "/path/to/ca.pem",
//	    MinVersion: "1.3",
//	}
//	tlsConfig, err := cfg.ClientConfig()
package security
