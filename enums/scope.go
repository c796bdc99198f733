package enums

// Scope identifies which storage area currently holds the credential pair.
type Scope string

const (
	ScopeNone    Scope = ""
	ScopeDurable Scope = "durable"
	ScopeSession Scope = "session"
)

// ScopeFor maps the "remember me" flag to the area a login is written to.
func ScopeFor(remember bool) Scope {
	if remember {
		return ScopeDurable
	}
	return ScopeSession
}
