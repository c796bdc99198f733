package models

import "github.com/octabyte/saveat-admin/enums"

// User is the admin record returned by the backend at login and kept in the credential store.
// Field names match the serialized form the dashboard has always persisted under adminUser.
type User struct {
	ID                string     `json:"id"`
	FirstName         string     `json:"first_name"`
	LastName          string     `json:"last_name"`
	Email             string     `json:"email"`
	Role              enums.Role `json:"role"`
	ProfilePictureURL *string    `json:"profile_picture_url,omitempty"`
	Phone             *string    `json:"phone,omitempty"`
	EmployeeID        *string    `json:"employeeId,omitempty"`
	Country           *string    `json:"country,omitempty"`
	City              *string    `json:"city,omitempty"`
	PostalCode        *string    `json:"postalCode,omitempty"`
	SocialMedia       *string    `json:"socialMedia,omitempty"`
}

// UserPatch is a partial user update. Nil fields are left untouched.
// Role is deliberately absent: it cannot be changed from the console.
type UserPatch struct {
	FirstName         *string `json:"first_name,omitempty"`
	LastName          *string `json:"last_name,omitempty"`
	Email             *string `json:"email,omitempty"`
	ProfilePictureURL *string `json:"profile_picture_url,omitempty"`
	Phone             *string `json:"phone,omitempty"`
	EmployeeID        *string `json:"employeeId,omitempty"`
	Country           *string `json:"country,omitempty"`
	City              *string `json:"city,omitempty"`
	PostalCode        *string `json:"postalCode,omitempty"`
	SocialMedia       *string `json:"socialMedia,omitempty"`
}

// Clone returns a deep copy of u.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.ProfilePictureURL = cloneString(u.ProfilePictureURL)
	c.Phone = cloneString(u.Phone)
	c.EmployeeID = cloneString(u.EmployeeID)
	c.Country = cloneString(u.Country)
	c.City = cloneString(u.City)
	c.PostalCode = cloneString(u.PostalCode)
	c.SocialMedia = cloneString(u.SocialMedia)
	return &c
}

// Merge returns a copy of u with every non-nil field of p applied over it.
func (u User) Merge(p UserPatch) User {
	merged := *u.Clone()
	if p.FirstName != nil {
		merged.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		merged.LastName = *p.LastName
	}
	if p.Email != nil {
		merged.Email = *p.Email
	}
	if p.ProfilePictureURL != nil {
		merged.ProfilePictureURL = cloneString(p.ProfilePictureURL)
	}
	if p.Phone != nil {
		merged.Phone = cloneString(p.Phone)
	}
	if p.EmployeeID != nil {
		merged.EmployeeID = cloneString(p.EmployeeID)
	}
	if p.Country != nil {
		merged.Country = cloneString(p.Country)
	}
	if p.City != nil {
		merged.City = cloneString(p.City)
	}
	if p.PostalCode != nil {
		merged.PostalCode = cloneString(p.PostalCode)
	}
	if p.SocialMedia != nil {
		merged.SocialMedia = cloneString(p.SocialMedia)
	}
	return merged
}

func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
