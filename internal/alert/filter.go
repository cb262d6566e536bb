package alert

import (
	"strings"

	"github.com/Hades1710/ThirdWave/internal/models"
)

// FilterContacts returns the contacts eligible for notification: relationship
// in the requested set (case-insensitive) and a non-blank address. Input order
// is preserved and the input slice is never mutated.
func FilterContacts(contacts []models.Contact, roles []models.Relationship) []models.Contact {
	var eligible []models.Contact
	for _, c := range contacts {
		if !c.Eligible() {
			continue
		}
		if matchesRole(c.Relationship, roles) {
			eligible = append(eligible, c)
		}
	}
	return eligible
}

// MissingRoles reports which of the requested roles have no eligible contact
// on file, for diagnostic output ("no counselor contact configured").
func MissingRoles(contacts []models.Contact, roles []models.Relationship) []models.Relationship {
	var missing []models.Relationship
	for _, role := range roles {
		found := false
		for _, c := range contacts {
			if c.Eligible() && strings.EqualFold(string(c.Relationship), string(role)) {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, role)
		}
	}
	return missing
}

func matchesRole(r models.Relationship, roles []models.Relationship) bool {
	for _, role := range roles {
		if strings.EqualFold(string(r), string(role)) {
			return true
		}
	}
	return false
}
