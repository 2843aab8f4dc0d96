// Package client is the typed REST client of the classifieds backend.
//
// # Overview
//
// Client is the API contract used by the services and the CLI. RESTClient
// implements it over a transport.Transport:
//
//   - reads (Categories, ListByCategory, GetByID, AdminUsers) go through the
//     retrying Send;
//   - mutations (Create, Update, Delete, ModerateDelete, Login, Signup) are
//     sent exactly once, so a lost response never produces a duplicate;
//   - drafts are validated and credentials checked before any network call.
//
// # Error Handling
//
// Conditions are exposed as sentinels and types matched with errors.Is and
// errors.As:
//
//   - ErrValidation / *ValidationError: a draft failed local checks;
//   - ErrUnauthenticated: a mutation was attempted without a credential;
//   - ErrUnavailable / *TransportError: the backend could not be reached;
//   - ErrRejected / *RequestRejectedError: the backend answered with an error,
//     whose message is surfaced verbatim (ErrUnauthorized for 401/403);
//   - ErrNotFound: the listing or category does not exist.
package client
