package layout_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"seatmap/internal/layout"
)

func TestManagerOpenGetClose(t *testing.T) {
	manager := layout.NewManager(testScene(), time.Hour)

	session := manager.Open()
	assert.NotEmpty(t, session.ID())
	assert.Equal(t, 1, manager.Count())

	got, err := manager.Get(session.ID())
	assert.NoError(t, err)
	assert.Same(t, session, got)

	manager.Close(session.ID())
	assert.Equal(t, 0, manager.Count())

	_, err = manager.Get(session.ID())
	assert.Error(t, err)
}

func TestManagerGetUnknown(t *testing.T) {
	manager := layout.NewManager(testScene(), time.Hour)

	_, err := manager.Get("nope")
	assert.Error(t, err)
}

func TestManagerExpiry(t *testing.T) {
	manager := layout.NewManager(testScene(), 10*time.Millisecond)

	session := manager.Open()

	time.Sleep(25 * time.Millisecond)

	_, err := manager.Get(session.ID())
	assert.Error(t, err)
	assert.Equal(t, 0, manager.Count())
}

func TestManagerSweep(t *testing.T) {
	manager := layout.NewManager(testScene(), 10*time.Millisecond)

	manager.Open()
	manager.Open()

	time.Sleep(25 * time.Millisecond)

	fresh := manager.Open()

	assert.Equal(t, 2, manager.Sweep())
	assert.Equal(t, 1, manager.Count())

	_, err := manager.Get(fresh.ID())
	assert.NoError(t, err)
}
