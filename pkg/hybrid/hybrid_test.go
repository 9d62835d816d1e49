package hybrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/kvptr/pkg/valueptr"
)

func TestZeroValue(t *testing.T) {
	var v Value
	assert.False(t, v.IsTable())
	assert.Equal(t, int64(0), v.AsInt(-1))
	assert.False(t, v.AsBool(true))
	assert.Equal(t, "d", v.AsString("d"))
	assert.Equal(t, "", v.AsString(""))
}

func TestTableIsSequenceAndMapping(t *testing.T) {
	v := NewTable().
		Append(Number(10), Text("x")).
		Set("key", Text("val")).
		Set("n", Number(7))

	item, ok := v.GetIndex(1)
	require.True(t, ok)
	assert.Equal(t, "x", item.AsStr(""))

	child, ok := v.GetKey("n")
	require.True(t, ok)
	assert.Equal(t, int64(7), child.AsInt(0))
	assert.InDelta(t, 7.0, child.AsFloat(0), 1e-9)
	assert.True(t, child.AsBool(false))

	_, ok = v.GetIndex(2)
	assert.False(t, ok)
	_, ok = Number(1).GetKey("key")
	assert.False(t, ok)

	assert.Equal(t, []string{"key", "n"}, v.Keys())
	assert.Equal(t, 2, v.SeqLen())
}

func TestReadsOnMismatchedShapes(t *testing.T) {
	text := Text("12")
	assert.Equal(t, int64(-1), text.AsInt(-1))
	assert.False(t, text.AsBool(false))
	assert.Equal(t, "12", text.AsString("0"))

	tbl := NewTable()
	assert.Equal(t, int64(-1), tbl.AsInt(-1))
	assert.Equal(t, "{}", tbl.AsString("{}"))
}

func TestWrites(t *testing.T) {
	t.Run("only numbers and text are stored", func(t *testing.T) {
		v := Number(3)
		v.PutScalar(valueptr.Bool(true))
		v.PutScalar(valueptr.Float(1.5))
		v.PutScalar(valueptr.Null())
		assert.Equal(t, int64(3), v.AsInt(0))

		v.PutScalar(valueptr.String("s"))
		assert.Equal(t, "s", v.AsStr(""))
	})

	t.Run("pushes share one table", func(t *testing.T) {
		v := Number(1)
		v.PushItem(valueptr.Int(123))
		v.PushItem(valueptr.Int(456))
		v.PushEntry("key", valueptr.String("val"))
		v.PushEntry("abc", valueptr.Int(789))

		require.True(t, v.IsTable())
		assert.Equal(t, 2, v.SeqLen())
		second, _ := v.GetIndex(1)
		assert.Equal(t, int64(456), second.AsInt(0))
		got, _ := v.GetKey("key")
		assert.Equal(t, "val", got.AsStr(""))
	})

	t.Run("unsupported push still converts", func(t *testing.T) {
		v := Text("gone")
		v.PushItem(valueptr.Bool(true))
		assert.True(t, v.IsTable())
		assert.Equal(t, 0, v.SeqLen())
	})
}
