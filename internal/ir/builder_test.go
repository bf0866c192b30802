package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildBinary(t *testing.T) {
	instr := Build("add", "c", Int, []any{"a", "b"})
	bin, ok := instr.(*Binary)
	if assert.True(t, ok) {
		assert.Equal(t, "add", bin.Op)
		assert.Equal(t, "c", bin.DestName)
		assert.Equal(t, "a", bin.Left)
		assert.Equal(t, "b", bin.Right)
	}
}

func TestBuildConstUsesLiteralNotName(t *testing.T) {
	instr := Build("const", "x", Int, []any{int64(7)})
	c, ok := instr.(*Const)
	if assert.True(t, ok) {
		assert.Equal(t, int64(7), c.Literal)
		assert.Empty(t, c.Args())
	}
}

func TestBuildJmpAndBrArePositional(t *testing.T) {
	jmp := Build("jmp", "", "", []any{"end"}).(*Jmp)
	assert.Equal(t, "end", jmp.Target)

	br := Build("br", "", "", []any{"cond", "then", "else"}).(*Br)
	assert.Equal(t, "cond", br.Cond)
	assert.Equal(t, "then", br.LabelT)
	assert.Equal(t, "else", br.LabelF)
}

func TestBuildLabelPanics(t *testing.T) {
	assert.Panics(t, func() {
		Build("label", "l", "", nil)
	})
}

func TestBuildUnknownOperatorPanics(t *testing.T) {
	assert.Panics(t, func() {
		Build("frobnicate", "x", Int, []any{"a"})
	})
}
