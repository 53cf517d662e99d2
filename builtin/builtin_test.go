package builtin

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/akashmaji946/verlang/env"
	"github.com/akashmaji946/verlang/value"
)

// fakeRuntime is a minimal Runtime for exercising builtins in isolation,
// without pulling in the full evaluator.
type fakeRuntime struct {
	out   bytes.Buffer
	input string
}

func (f *fakeRuntime) Call(fn value.Value, args []value.Value) value.Value {
	native := fn.(*value.Native)
	return native.Fn(args)
}

func (f *fakeRuntime) Input() (string, error) {
	if f.input == "" {
		return "", errors.New("no input")
	}
	return f.input, nil
}

func (f *fakeRuntime) Output() io.Writer {
	return &f.out
}

func TestRegister_BindsEveryBuiltinByName(t *testing.T) {
	g := env.New()
	Register(g, &fakeRuntime{})
	for _, name := range []string{
		"print", "len", "range", "str", "int", "float", "type", "input",
		"map", "filter", "reduce", "sum", "max", "min", "abs",
	} {
		_, ok := g.Get(name)
		assert.True(t, ok, "expected builtin %q to be registered", name)
	}
}

func TestLen_StringListMap(t *testing.T) {
	assert.Equal(t, value.Number{Value: 3}, builtinLen([]value.Value{value.String{Value: "abc"}}))
	assert.Equal(t, value.Number{Value: 2}, builtinLen([]value.Value{value.NewList(value.Null, value.Null)}))

	m := value.NewMap()
	m.Set("a", value.Null)
	m.Set("b", value.Null)
	assert.Equal(t, value.Number{Value: 2}, builtinLen([]value.Value{m}))
}

func TestRange_OneArg(t *testing.T) {
	r := builtinRange([]value.Value{value.Number{Value: 3}}).(*value.List)
	assert.Equal(t, 3, len(r.Elements))
	assert.Equal(t, value.Number{Value: 0}, r.Elements[0])
	assert.Equal(t, value.Number{Value: 2}, r.Elements[2])
}

func TestRange_TwoArgsInferStep(t *testing.T) {
	ascending := builtinRange([]value.Value{value.Number{Value: 1}, value.Number{Value: 4}}).(*value.List)
	assert.Equal(t, 3, len(ascending.Elements))

	descending := builtinRange([]value.Value{value.Number{Value: 4}, value.Number{Value: 1}}).(*value.List)
	assert.Equal(t, []value.Value{
		value.Number{Value: 4}, value.Number{Value: 3}, value.Number{Value: 2},
	}, descending.Elements)
}

func TestRange_ThreeArgsExplicitStep(t *testing.T) {
	r := builtinRange([]value.Value{
		value.Number{Value: 0}, value.Number{Value: 10}, value.Number{Value: 3},
	}).(*value.List)
	assert.Equal(t, []value.Value{
		value.Number{Value: 0}, value.Number{Value: 3}, value.Number{Value: 6}, value.Number{Value: 9},
	}, r.Elements)
}

func TestInt_ParsesOrZero(t *testing.T) {
	assert.Equal(t, value.Number{Value: 42}, builtinInt([]value.Value{value.String{Value: "42"}}))
	assert.Equal(t, value.Number{Value: 0}, builtinInt([]value.Value{value.String{Value: "abc"}}))
}

func TestType_ReportsEachKind(t *testing.T) {
	assert.Equal(t, value.String{Value: "number"}, builtinType([]value.Value{value.Number{Value: 1}}))
	assert.Equal(t, value.String{Value: "nil"}, builtinType([]value.Value{value.Null}))
	assert.Equal(t, value.String{Value: "list"}, builtinType([]value.Value{value.NewList()}))
}

func TestSumMaxMinAbs(t *testing.T) {
	xs := value.NewList(value.Number{Value: 3}, value.Number{Value: -1}, value.Number{Value: 5})
	assert.Equal(t, value.Number{Value: 7}, builtinSum([]value.Value{xs}))
	assert.Equal(t, value.Number{Value: 5}, builtinMax([]value.Value{xs}))
	assert.Equal(t, value.Number{Value: -1}, builtinMin([]value.Value{xs}))
	assert.Equal(t, value.Number{Value: 4}, builtinAbs([]value.Value{value.Number{Value: -4}}))
}

func TestMapFilterReduce(t *testing.T) {
	rt := &fakeRuntime{}
	double := &value.Native{Name: "double", Fn: func(args []value.Value) value.Value {
		return value.Number{Value: value.AsNumber(args[0]) * 2}
	}}
	isEven := &value.Native{Name: "isEven", Fn: func(args []value.Value) value.Value {
		return value.Bool{Value: int64(value.AsNumber(args[0]))%2 == 0}
	}}
	add := &value.Native{Name: "add", Fn: func(args []value.Value) value.Value {
		return value.Number{Value: value.AsNumber(args[0]) + value.AsNumber(args[1])}
	}}

	xs := value.NewList(value.Number{Value: 1}, value.Number{Value: 2}, value.Number{Value: 3})

	mapped := builtinMap(rt)([]value.Value{xs, double}).(*value.List)
	assert.Equal(t, []value.Value{
		value.Number{Value: 2}, value.Number{Value: 4}, value.Number{Value: 6},
	}, mapped.Elements)

	filtered := builtinFilter(rt)([]value.Value{xs, isEven}).(*value.List)
	assert.Equal(t, []value.Value{value.Number{Value: 2}}, filtered.Elements)

	reduced := builtinReduce(rt)([]value.Value{xs, add})
	assert.Equal(t, value.Number{Value: 6}, reduced)

	reducedWithInit := builtinReduce(rt)([]value.Value{xs, add, value.Number{Value: 10}})
	assert.Equal(t, value.Number{Value: 16}, reducedWithInit)
}

func TestPrint_JoinsWithSpacesAndTrailingNewline(t *testing.T) {
	rt := &fakeRuntime{}
	builtinPrint(rt)([]value.Value{value.String{Value: "a"}, value.Number{Value: 1}})
	assert.Equal(t, "a 1\n", rt.out.String())
}
