package shared

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewBaseEntity(t *testing.T) {
	entity := NewBaseEntity()

	assert.NotEqual(t, uuid.Nil, entity.GetID())
	assert.False(t, entity.GetCreatedAt().IsZero())
	assert.Equal(t, entity.GetCreatedAt(), entity.GetUpdatedAt())
}

func TestBaseEntityTouch(t *testing.T) {
	entity := NewBaseEntity()
	created := entity.GetCreatedAt()

	time.Sleep(time.Millisecond)
	entity.Touch()

	assert.True(t, entity.GetUpdatedAt().After(created))
	assert.Equal(t, created, entity.GetCreatedAt())
}
