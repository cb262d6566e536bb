package models

import "strings"

type Relationship string

const (
	RelationshipParent    Relationship = "parent"
	RelationshipCounselor Relationship = "counselor"
	RelationshipFriend    Relationship = "friend"
)

// DefaultRelationships is the set of roles notified when the caller does not
// ask for specific ones. Only the two highest-trust relationship types.
func DefaultRelationships() []Relationship {
	return []Relationship{RelationshipCounselor, RelationshipParent}
}

// ParseRelationships converts a comma-separated list (e.g. "counselor,parent")
// into normalized relationship values. Empty entries are skipped.
func ParseRelationships(s string) []Relationship {
	var roles []Relationship
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		roles = append(roles, Relationship(part))
	}
	return roles
}

type Contact struct {
	ID           string       `json:"id,omitempty"`
	Name         string       `json:"name,omitempty"`
	Email        string       `json:"email,omitempty"`
	Relationship Relationship `json:"relationship"`
	Phone        string       `json:"phone,omitempty"`
}

// Address returns the contact's email with surrounding whitespace removed.
func (c Contact) Address() string {
	return strings.TrimSpace(c.Email)
}

// Eligible reports whether the contact can actually be notified.
func (c Contact) Eligible() bool {
	return c.Address() != ""
}

type User struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email,omitempty"`
	Contacts []Contact `json:"contacts"`
}
