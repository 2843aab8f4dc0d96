// Package session persists the signed-in identity and its bearer credential.
//
// The two values live under independent keys ("identity" and "credential")
// so either can be read without the other. Store implementations are injected
// into the services that need them; there is no package-level state.
//
// No freshness check is made on the credential. An expired token is only
// discovered when the backend rejects it.
package session
