package access

import (
	"testing"

	"github.com/go-playground/assert/v2"

	"taskhive-be/internal/entities"
)

func TestCanAccess(t *testing.T) {
	list := &entities.List{ID: "l1", Title: "Groceries", OwnerID: "owner"}
	shares := []entities.ShareEntry{
		{ListID: "l1", UserID: "editor", Access: entities.AccessEdit},
		{ListID: "l1", UserID: "viewer", Access: entities.AccessView},
	}

	tests := []struct {
		name   string
		userID string
		cap    Capability
		want   bool
	}{
		{"owner reads", "owner", Read, true},
		{"owner edits", "owner", Edit, true},
		{"owner manages sharing", "owner", ManageSharing, true},
		{"editor reads", "editor", Read, true},
		{"editor edits", "editor", Edit, true},
		{"editor manages sharing", "editor", ManageSharing, true},
		{"viewer reads", "viewer", Read, true},
		{"viewer cannot edit", "viewer", Edit, false},
		{"viewer cannot manage sharing", "viewer", ManageSharing, false},
		{"stranger cannot read", "stranger", Read, false},
		{"stranger cannot edit", "stranger", Edit, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, CanAccess(tt.userID, list, shares, tt.cap), tt.want)
		})
	}
}

func TestCanAccessNilList(t *testing.T) {
	assert.Equal(t, CanAccess("anyone", nil, nil, Read), false)
}

func TestCanAccessNoShares(t *testing.T) {
	list := &entities.List{ID: "l1", OwnerID: "owner"}

	assert.Equal(t, CanAccess("owner", list, nil, Edit), true)
	assert.Equal(t, CanAccess("someone", list, nil, Read), false)
}
