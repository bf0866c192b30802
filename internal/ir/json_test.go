package ir

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeProgramFormsBlocksOnLabelsAndTerminators(t *testing.T) {
	source := `{
		"functions": [
			{
				"name": "main",
				"args": [{"name": "x", "type": "int"}],
				"instrs": [
					{"op": "const", "dest": "a", "type": "int", "value": 1},
					{"op": "br", "args": ["a"], "labels": ["then", "else"]},
					{"label": "then"},
					{"op": "print", "args": ["a"]},
					{"op": "jmp", "labels": ["end"]},
					{"label": "else"},
					{"op": "print", "args": ["x"]},
					{"label": "end"},
					{"op": "id", "dest": "y", "type": "int", "args": ["a"]}
				]
			}
		]
	}`

	mod, err := DecodeProgram(strings.NewReader(source))
	require.NoError(t, err)
	require.Len(t, mod.Functions, 1)

	fn := mod.Functions[0]
	assert.Equal(t, "main", fn.Name)
	require.Len(t, fn.Args, 1)
	assert.Equal(t, Param{Name: "x", Type: Int}, fn.Args[0])

	require.Len(t, fn.Blocks, 4)
	assert.Nil(t, fn.Blocks[0].Label)
	require.Len(t, fn.Blocks[0].Instructions, 2)
	assert.Equal(t, "const", fn.Blocks[0].Instructions[0].Operator())
	assert.Equal(t, "br", fn.Blocks[0].Instructions[1].Operator())
	assert.True(t, fn.Blocks[0].Instructions[1].IsTerminator())

	require.NotNil(t, fn.Blocks[1].Label)
	assert.Equal(t, "then", fn.Blocks[1].Label.Name)

	require.NotNil(t, fn.Blocks[2].Label)
	assert.Equal(t, "else", fn.Blocks[2].Label.Name)

	require.NotNil(t, fn.Blocks[3].Label)
	assert.Equal(t, "end", fn.Blocks[3].Label.Name)
}

func TestDecodeProgramRejectsUnknownOperator(t *testing.T) {
	source := `{"functions": [{"name": "main", "instrs": [{"op": "frobnicate"}]}]}`
	_, err := DecodeProgram(strings.NewReader(source))
	assert.Error(t, err)
}

func TestDecodeEncodeRoundTrip(t *testing.T) {
	source := `{
		"functions": [
			{
				"name": "main",
				"instrs": [
					{"op": "const", "dest": "a", "type": "int", "value": 4},
					{"op": "const", "dest": "b", "type": "int", "value": 2},
					{"op": "add", "dest": "c", "type": "int", "args": ["a", "b"]},
					{"op": "print", "args": ["c"]}
				]
			}
		]
	}`

	mod, err := DecodeProgram(strings.NewReader(source))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, EncodeProgram(&buf, mod))

	again, err := DecodeProgram(&buf)
	require.NoError(t, err)

	require.Len(t, again.Functions, 1)
	fn := again.Functions[0]
	require.Len(t, fn.Blocks, 1)
	require.Len(t, fn.Blocks[0].Instructions, 4)
	add := fn.Blocks[0].Instructions[2].(*Binary)
	assert.Equal(t, "add", add.Op)
	assert.Equal(t, "a", add.Left)
	assert.Equal(t, "b", add.Right)
}

func TestDecodeConstBoolLiteral(t *testing.T) {
	source := `{"functions": [{"name": "main", "instrs": [
		{"op": "const", "dest": "flag", "type": "bool", "value": true}
	]}]}`

	mod, err := DecodeProgram(strings.NewReader(source))
	require.NoError(t, err)
	c := mod.Functions[0].Blocks[0].Instructions[0].(*Const)
	assert.Equal(t, true, c.Literal)
	assert.Equal(t, Bool, c.Ty)
}
