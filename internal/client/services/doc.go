// Package services contains the application flows the CLI runs on top of
// the API client: signing in and out, browsing the catalog, and the staff
// view of all users.
package services
