// Package lifecycle drives listing mutations: it checks the state machine
// and the session's capabilities, asks for confirmation where an action is
// destructive, serializes concurrent submissions of the same action, and
// returns what the backend holds afterwards.
package lifecycle
