// Package cli implements the gofetch command: one request per invocation,
// configured from flags, gofetch.yml and GOFETCH_* environment variables.
//
//	gofetch -i -H 'Accept: application/json' https://api.example.com/items
//
// Failures exit with status 1 and print an error document to stderr:
//
//	{"error": {"code": "TIMEOUT", "message": "Request has timed out after 50ms", ...}}
package cli
