package models

import "github.com/octabyte/saveat-admin/enums"

// Session is the console's authentication state. Token and User are always set and cleared
// together; a half pair counts as logged out.
type Session struct {
	Token     string      `json:"-"`
	User      *User       `json:"user,omitempty"`
	IsLoading bool        `json:"is_loading"`
	Scope     enums.Scope `json:"scope,omitempty"`
}

// IsAuthenticated reports whether both halves of the credential are present.
func (s Session) IsAuthenticated() bool {
	return s.Token != "" && s.User != nil
}

// Role returns the user's role, or the empty role when logged out.
func (s Session) Role() enums.Role {
	if s.User == nil {
		return ""
	}
	return s.User.Role
}
