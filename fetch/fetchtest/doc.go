// Package fetchtest runs a gin test server with the routes the fetch tests
// exercise: JSON, binary, text and malformed payloads, echo endpoints for
// request bodies and headers, and a route that never responds.
package fetchtest
