package repository

import (
	"errors"
	"testing"

	"videotube/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestMapError(t *testing.T) {
	id := uuid.New()
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", gorm.ErrRecordNotFound, 404},
		{"duplicate", gorm.ErrDuplicatedKey, 409},
		{"app error passes through", models.NewForbiddenError("no"), 403},
		{"anything else", errors.New("boom"), 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, models.StatusFor(mapError(tt.err, "Video", id)))
		})
	}
	assert.NoError(t, mapError(nil, "Video", id))
}
