package bril2json

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brilopt/internal/ir"
)

func TestParseSurfaceBuildsBlocksAndConstants(t *testing.T) {
	src := `
@main(n: int) {
  a: int = const 4;
  b: int = const 2;
  sum: int = add a, b;
  print sum;
}
`
	program, err := parseSurface("t.bril", src)
	require.NoError(t, err)
	module, err := toModule(program)
	require.NoError(t, err)

	require.Len(t, module.Functions, 1)
	fn := module.Functions[0]
	assert.Equal(t, "main", fn.Name)
	require.Len(t, fn.Args, 1)
	assert.Equal(t, ir.Param{Name: "n", Type: ir.Int}, fn.Args[0])

	require.Len(t, fn.Blocks, 1)
	instrs := fn.Blocks[0].Instructions
	require.Len(t, instrs, 4)
	assert.Equal(t, int64(4), instrs[0].(*ir.Const).Literal)
	assert.Equal(t, "add", instrs[2].Operator())
	assert.Equal(t, "print", instrs[3].Operator())
}

func TestParseSurfaceSplitsBlocksOnLabelsAndJumps(t *testing.T) {
	src := `
@loop() {
  x: int = const 0;
  jmp .top;
.top:
  print x;
}
`
	program, err := parseSurface("t.bril", src)
	require.NoError(t, err)
	module, err := toModule(program)
	require.NoError(t, err)

	blocks := module.Functions[0].Blocks
	require.Len(t, blocks, 2)
	assert.Nil(t, blocks[0].Label)
	require.True(t, blocks[0].Instructions[len(blocks[0].Instructions)-1].IsTerminator())
	require.NotNil(t, blocks[1].Label)
	assert.Equal(t, "top", blocks[1].Label.Name)
}

func TestParseSurfaceRejectsUnknownOperator(t *testing.T) {
	// The grammar accepts any identifier as an operator; an unknown one is
	// rejected when the parsed program is translated into the IR.
	program, err := parseSurface("t.bril", "@main() {\n  x: int = bogus 1;\n}\n")
	if err == nil {
		_, err = toModule(program)
	}
	assert.Error(t, err)
}

func TestToJSONOpensJSONFileDirectly(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"functions":[{"name":"main","instrs":[]}]}`), 0o644))

	r, err := ToJSON(path)
	require.NoError(t, err)
	mod, err := ir.DecodeProgram(r)
	require.NoError(t, err)
	require.Len(t, mod.Functions, 1)
	assert.Equal(t, "main", mod.Functions[0].Name)
}

func TestToJSONFallsBackToSurfaceParserForNonJSONPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.bril")
	require.NoError(t, os.WriteFile(path, []byte("@main() {\n  x: int = const 1;\n  print x;\n}\n"), 0o644))

	r, err := ToJSON(path)
	require.NoError(t, err)
	mod, err := ir.DecodeProgram(r)
	require.NoError(t, err)
	require.Len(t, mod.Functions, 1)
	require.Len(t, mod.Functions[0].Blocks, 1)
	assert.Equal(t, "const", mod.Functions[0].Blocks[0].Instructions[0].Operator())
}

func TestToJSONReportsInputNotFound(t *testing.T) {
	_, err := ToJSON("/nonexistent/path/prog.json")
	require.Error(t, err)
}
