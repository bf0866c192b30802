package tdce

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brilopt/internal/ir"
)

func run(t *testing.T, instrs []ir.Instruction) []ir.Instruction {
	t.Helper()
	fn := &ir.Function{Name: "main", Blocks: []*ir.BasicBlock{{Instructions: instrs}}}
	mod := &ir.Module{Functions: []*ir.Function{fn}}
	require.NoError(t, New().Optimize(mod))
	return mod.Functions[0].Blocks[0].Instructions
}

func TestUnusedDefinitionIsRemoved(t *testing.T) {
	out := run(t, []ir.Instruction{
		&ir.Const{DestName: "unused", Ty: ir.Int, Literal: int64(1)},
		&ir.Const{DestName: "a", Ty: ir.Int, Literal: int64(2)},
		&ir.Print{Arg: "a"},
	})
	require.Len(t, out, 2)
	assert.Equal(t, "a", out[0].(*ir.Const).DestName)
	assert.Equal(t, "print", out[1].Operator())
}

func TestDeadStoreChainCollapsesToLastWrite(t *testing.T) {
	out := run(t, []ir.Instruction{
		&ir.Const{DestName: "x", Ty: ir.Int, Literal: int64(1)},
		&ir.Const{DestName: "x", Ty: ir.Int, Literal: int64(2)},
		&ir.Const{DestName: "x", Ty: ir.Int, Literal: int64(3)},
		&ir.Print{Arg: "x"},
	})
	require.Len(t, out, 2)
	assert.Equal(t, int64(3), out[0].(*ir.Const).Literal)
}

func TestReadBetweenStoresKeepsBothStores(t *testing.T) {
	out := run(t, []ir.Instruction{
		&ir.Const{DestName: "x", Ty: ir.Int, Literal: int64(1)},
		&ir.Print{Arg: "x"},
		&ir.Const{DestName: "x", Ty: ir.Int, Literal: int64(2)},
		&ir.Print{Arg: "x"},
	})
	require.Len(t, out, 4)
}

func TestChainedEliminationConverges(t *testing.T) {
	// "b" is never read, and "a"'s first def (which feeds it) becomes a
	// dead store only once "b" is gone: neither criterion alone clears
	// both, only running them together does.
	out := run(t, []ir.Instruction{
		&ir.Const{DestName: "a", Ty: ir.Int, Literal: int64(1)},
		&ir.Id{DestName: "b", Ty: ir.Int, Src: "a"},
		&ir.Const{DestName: "a", Ty: ir.Int, Literal: int64(2)},
		&ir.Print{Arg: "a"},
	})
	require.Len(t, out, 2)
	assert.Equal(t, int64(2), out[0].(*ir.Const).Literal)
	assert.Equal(t, "print", out[1].Operator())
}

func TestNeverRemovesControlFlowOrPrint(t *testing.T) {
	fn := &ir.Function{Name: "main", Blocks: []*ir.BasicBlock{
		{Instructions: []ir.Instruction{&ir.Jmp{Target: "end"}}},
		{Label: &ir.Label{Name: "end"}, Instructions: []ir.Instruction{&ir.Print{Arg: "x"}}},
	}}
	mod := &ir.Module{Functions: []*ir.Function{fn}}
	require.NoError(t, New().Optimize(mod))
	assert.Len(t, mod.Functions[0].Blocks[0].Instructions, 1)
	assert.Len(t, mod.Functions[0].Blocks[1].Instructions, 1)
}
