package optpass

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brilopt/internal/ir"
)

type recordingPass struct {
	name string
	log  *[]string
}

func (p *recordingPass) Name() string { return p.name }

func (p *recordingPass) Optimize(m *ir.Module) error {
	*p.log = append(*p.log, p.name)
	return nil
}

func TestManagerRunsPassesInRegistrationOrder(t *testing.T) {
	var log []string
	mgr := NewManager("composite", &recordingPass{name: "first", log: &log}, &recordingPass{name: "second", log: &log})
	mgr.AddPass(&recordingPass{name: "third", log: &log})

	require.NoError(t, mgr.Optimize(&ir.Module{}))
	assert.Equal(t, []string{"first", "second", "third"}, log)
	assert.Equal(t, "composite", mgr.Name())
}

type failingPass struct{}

func (*failingPass) Name() string             { return "failing" }
func (*failingPass) Optimize(*ir.Module) error { return assert.AnError }

func TestManagerStopsAtFirstError(t *testing.T) {
	var log []string
	mgr := NewManager("composite", &failingPass{}, &recordingPass{name: "never", log: &log})
	err := mgr.Optimize(&ir.Module{})
	require.Error(t, err)
	assert.Empty(t, log)
}
