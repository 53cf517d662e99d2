package env

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/akashmaji946/verlang/value"
)

func TestDefineAndGet(t *testing.T) {
	e := New()
	e.Define("x", value.Number{Value: 1}, false)
	v, ok := e.Get("x")
	assert.True(t, ok)
	assert.Equal(t, value.Number{Value: 1}, v)
}

func TestGet_UndefinedReturnsFalse(t *testing.T) {
	e := New()
	_, ok := e.Get("nope")
	assert.False(t, ok)
}

func TestChild_LooksUpThroughParent(t *testing.T) {
	parent := New()
	parent.Define("x", value.Number{Value: 1}, false)
	child := parent.Child()
	v, ok := child.Get("x")
	assert.True(t, ok)
	assert.Equal(t, value.Number{Value: 1}, v)
}

func TestAssign_MutatesNearestExistingBinding(t *testing.T) {
	parent := New()
	parent.Define("x", value.Number{Value: 1}, false)
	child := parent.Child()

	err := child.Assign("x", value.Number{Value: 2})
	assert.NoError(t, err)

	v, _ := parent.Get("x")
	assert.Equal(t, value.Number{Value: 2}, v)
	// the binding was mutated in parent's frame, not shadowed in child
	_, definedInChild := child.vars["x"]
	assert.False(t, definedInChild)
}

func TestAssign_UndefinedNameCreatesInCurrentFrameNotGlobal(t *testing.T) {
	global := New()
	child := global.Child()

	err := child.Assign("y", value.Number{Value: 5})
	assert.NoError(t, err)

	_, inGlobal := global.Get("y")
	// Get walks upward only, so global cannot see a binding made in child;
	// also assert the binding lives in child's own frame.
	assert.False(t, inGlobal)
	_, ok := child.vars["y"]
	assert.True(t, ok)
	_, ok = global.vars["y"]
	assert.False(t, ok)
}

func TestAssign_ConstBindingRejectsMutation(t *testing.T) {
	e := New()
	e.Define("x", value.Number{Value: 1}, true)

	err := e.Assign("x", value.Number{Value: 2})
	assert.Error(t, err)

	v, _ := e.Get("x")
	assert.Equal(t, value.Number{Value: 1}, v)
}

func TestIsConst(t *testing.T) {
	e := New()
	e.Define("c", value.Number{Value: 1}, true)
	e.Define("v", value.Number{Value: 1}, false)
	assert.True(t, e.IsConst("c"))
	assert.False(t, e.IsConst("v"))
	assert.False(t, e.IsConst("undefined"))
}

func TestNames_PreservesDefinitionOrder(t *testing.T) {
	e := New()
	e.Define("b", value.Null, false)
	e.Define("a", value.Null, false)
	e.Define("b", value.Number{Value: 1}, false) // redefine, should not move position
	assert.Equal(t, []string{"b", "a"}, e.Names())
}
