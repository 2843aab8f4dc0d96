// Package authz derives what the current session may do with a listing.
//
// The answers are advisory: they decide which actions the client offers.
// The backend enforces the same rules on its own.
package authz

import (
	"strings"

	"github.com/dmitrijs2005/tradeboard/internal/client/models"
)

// Capabilities is a set of permitted actions on one listing.
type Capabilities uint8

const (
	CapEdit Capabilities = 1 << iota
	CapDelete
	CapModerateDelete
)

// None is the empty set.
const None Capabilities = 0

func (c Capabilities) Has(want Capabilities) bool { return c&want == want }

func (c Capabilities) String() string {
	if c == None {
		return "none"
	}
	var parts []string
	if c.Has(CapEdit) {
		parts = append(parts, "edit")
	}
	if c.Has(CapDelete) {
		parts = append(parts, "delete")
	}
	if c.Has(CapModerateDelete) {
		parts = append(parts, "moderate")
	}
	return strings.Join(parts, "|")
}

// Resolve returns the capabilities session holds on listing. A nil session
// holds none, and a redacted listing grants none to anybody.
func Resolve(session *models.Session, listing models.Listing) Capabilities {
	if session == nil || listing.IsRedacted() {
		return None
	}

	var caps Capabilities
	if listing.OwnerUserID == session.User.ID {
		caps |= CapEdit | CapDelete
	}
	if session.User.Role.IsStaff() {
		caps |= CapModerateDelete
	}
	return caps
}

// CanCreate reports whether session may submit a new listing.
func CanCreate(session *models.Session) bool {
	return session != nil && session.Credential != ""
}

// CanAdminister gates the admin view.
func CanAdminister(session *models.Session) bool {
	return session != nil && session.User.Role.IsStaff()
}
