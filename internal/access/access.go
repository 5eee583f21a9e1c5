// Package access evaluates what a principal may do with a list.
// Evaluation is a pure function of the list's owner and share entries;
// no I/O happens here.
package access

import "taskhive-be/internal/entities"

// Capability is a named permission evaluated against a principal and a list.
type Capability int

const (
	// Read allows fetching the list and its tasks.
	Read Capability = iota
	// Edit allows mutating the list title, its tasks, and its shares.
	Edit
	// ManageSharing allows granting and revoking access. In the current
	// policy this is the same as Edit; delete-list and remove-all-access
	// remain owner-only and are enforced at the repository query.
	ManageSharing
)

// CanAccess reports whether the user holds the requested capability on the
// list, given the list's share entries. The owner implicitly holds every
// capability and never appears among the shares.
func CanAccess(userID string, list *entities.List, shares []entities.ShareEntry, cap Capability) bool {
	if list == nil {
		return false
	}
	if userID == list.OwnerID {
		return true
	}

	for _, share := range shares {
		if share.UserID != userID {
			continue
		}
		switch cap {
		case Read:
			return true
		case Edit, ManageSharing:
			return share.Access == entities.AccessEdit
		}
	}
	return false
}
