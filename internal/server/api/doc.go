// Package api is the HTTP surface of the development backend. Routes live
// under /api and speak the JSON shapes the CLI expects; failures are
// reported as {"error": "..."} bodies.
package api
