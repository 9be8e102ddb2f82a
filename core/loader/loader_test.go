package loader

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

type stubFeature struct {
	name    string
	enabled bool
	loadErr error
	loaded  bool
}

func (f *stubFeature) Name() string    { return f.name }
func (f *stubFeature) IsEnabled() bool { return f.enabled }
func (f *stubFeature) Load(app fiber.Router) error {
	f.loaded = true
	return f.loadErr
}

func TestLoadAllSkipsDisabled(t *testing.T) {
	m := NewManager()
	on := &stubFeature{name: "on", enabled: true}
	off := &stubFeature{name: "off", enabled: false}
	m.Register(on)
	m.Register(off)

	err := m.LoadAll(fiber.New())
	assert.NoError(t, err)
	assert.True(t, on.loaded)
	assert.False(t, off.loaded)
}

func TestLoadAllAbortsOnFailure(t *testing.T) {
	m := NewManager()
	bad := &stubFeature{name: "bad", enabled: true, loadErr: errors.New("boom")}
	after := &stubFeature{name: "after", enabled: true}
	m.Register(bad)
	m.Register(after)

	err := m.LoadAll(fiber.New())
	assert.ErrorContains(t, err, "loading feature bad")
	assert.False(t, after.loaded)
}
