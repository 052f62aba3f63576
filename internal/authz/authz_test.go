package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/emilythestrangee/forum-backend/internal/models"
)

func TestCanEdit(t *testing.T) {
	tests := []struct {
		name    string
		actor   *models.User
		ownerID uint
		want    bool
	}{
		{"owner may edit", &models.User{ID: 7}, 7, true},
		{"admin may edit others", &models.User{ID: 3, IsAdmin: true}, 7, true},
		{"stranger may not edit", &models.User{ID: 3}, 7, false},
		{"nil actor may not edit", nil, 7, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanEdit(tt.actor, tt.ownerID))
		})
	}
}

func TestCanDelete(t *testing.T) {
	assert.True(t, CanDelete(&models.User{ID: 3, IsAdmin: true}))

	// Owners don't get to delete their own content.
	assert.False(t, CanDelete(&models.User{ID: 7}))
	assert.False(t, CanDelete(nil))
}
