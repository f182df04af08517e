package framebuffer

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-gl/engine/backend"
	"github.com/Carmen-Shannon/oxy-gl/engine/backend/backendtest"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/texture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTarget(t *testing.T) {
	rec := backendtest.New(64, 64)
	fb := Default(rec)

	assert.True(t, fb.IsDefault())
	assert.Equal(t, uint32(0), fb.ID())
	assert.True(t, fb.Check())
	assert.Zero(t, rec.Count("CheckNamedFramebufferStatus"))
	assert.Zero(t, rec.Count("CreateFramebuffer"))

	tex := texture.RGBA32F(rec, 4, 4)
	assert.PanicsWithError(t, "framebuffer 0: attachment 0x8CE0: cannot attach to the default target", func() {
		fb.Attach(backend.ColorAttachment0, tex, 0)
	})
	assert.Panics(t, func() { fb.Detach(backend.ColorAttachment0) })

	fb.Release()
	assert.Zero(t, rec.Count("DeleteFramebuffer"))
}

func TestDrawBuffersFollowAttachOrder(t *testing.T) {
	rec := backendtest.New(64, 64)
	fb := New(rec)
	a := texture.RGBA32F(rec, 4, 4)
	b := texture.RGBA32F(rec, 4, 4)
	c := texture.RGBA32F(rec, 4, 4)
	depth := texture.Depth32F(rec, 4, 4)

	steps := []struct {
		name   string
		apply  func()
		expect []backend.Enum
	}{
		{"attach 2", func() { fb.Attach(backend.ColorAttachment(2), a, 0) }, []backend.Enum{backend.ColorAttachment(2)}},
		{"attach 0", func() { fb.Attach(backend.ColorAttachment(0), b, 0) }, []backend.Enum{backend.ColorAttachment(2), backend.ColorAttachment(0)}},
		{"attach depth", func() { fb.Attach(backend.DepthAttachment, depth, 0) }, []backend.Enum{backend.ColorAttachment(2), backend.ColorAttachment(0)}},
		{"attach 1", func() { fb.Attach(backend.ColorAttachment(1), c, 0) }, []backend.Enum{backend.ColorAttachment(2), backend.ColorAttachment(0), backend.ColorAttachment(1)}},
		{"reattach 2", func() { fb.Attach(backend.ColorAttachment(2), c, 1) }, []backend.Enum{backend.ColorAttachment(2), backend.ColorAttachment(0), backend.ColorAttachment(1)}},
		{"detach 0", func() { fb.Detach(backend.ColorAttachment(0)) }, []backend.Enum{backend.ColorAttachment(2), backend.ColorAttachment(1)}},
		{"detach 2", func() { fb.Detach(backend.ColorAttachment(2)) }, []backend.Enum{backend.ColorAttachment(1)}},
		{"detach 1", func() { fb.Detach(backend.ColorAttachment(1)) }, []backend.Enum{}},
	}
	for _, step := range steps {
		step.apply()
		assert.Equal(t, step.expect, fb.DrawBuffers(), step.name)

		state, ok := rec.Framebuffer(fb.ID())
		require.True(t, ok)
		assert.Equal(t, step.expect, state.DrawBuffers, step.name)
	}

	tex, ok := fb.Attachment(backend.DepthAttachment)
	require.True(t, ok)
	assert.Equal(t, depth.ID(), tex.ID())
}

func TestDrawBuffersRedeclaredOnEveryChange(t *testing.T) {
	rec := backendtest.New(64, 64)
	fb := New(rec)
	tex := texture.RGBA32F(rec, 4, 4)

	fb.Attach(backend.ColorAttachment0, tex, 0)
	fb.Attach(backend.ColorAttachment(1), tex, 0)
	fb.Detach(backend.ColorAttachment0)
	assert.Equal(t, 3, rec.Count("NamedFramebufferDrawBuffers"))

	fb.Attach(backend.DepthAttachment, texture.Depth32F(rec, 4, 4), 0)
	assert.Equal(t, 3, rec.Count("NamedFramebufferDrawBuffers"))
}

func TestDetachNeverAttached(t *testing.T) {
	rec := backendtest.New(64, 64)
	fb := New(rec)

	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(*AttachmentStateError)
		require.True(t, ok)
		assert.Equal(t, backend.ColorAttachment(3), err.Point)
		assert.Equal(t, fb.ID(), err.Framebuffer)
	}()
	fb.Detach(backend.ColorAttachment(3))
}

func TestCheckAndClear(t *testing.T) {
	rec := backendtest.New(64, 64)
	fb := New(rec, WithTarget(backend.DrawFramebuffer))

	assert.False(t, fb.Check())
	fb.Attach(backend.ColorAttachment0, texture.RGBA32F(rec, 4, 4), 0)
	assert.True(t, fb.Check())

	fb.Bind()
	bound, _, _ := rec.Bound()
	assert.Equal(t, fb.ID(), bound)
	assert.Equal(t, backend.DrawFramebuffer, rec.CallsNamed("BindFramebuffer")[0].Args[0])

	fb.ClearColor([4]float32{1, 0, 0, 1}, 0)
	fb.ClearDepth(1)
	assert.Equal(t, []any{fb.ID(), int32(0), [4]float32{1, 0, 0, 1}}, rec.CallsNamed("ClearNamedFramebufferColor")[0].Args)
	assert.Equal(t, []any{fb.ID(), float32(1)}, rec.CallsNamed("ClearNamedFramebufferDepth")[0].Args)

	fb.DrawInto(backend.None)
	state, _ := rec.Framebuffer(fb.ID())
	assert.Equal(t, []backend.Enum{backend.None}, state.DrawBuffers)

	id := fb.ID()
	fb.Release()
	fb.Release()
	assert.Equal(t, 1, rec.Count("DeleteFramebuffer"))
	assert.False(t, rec.Live(id))
}
