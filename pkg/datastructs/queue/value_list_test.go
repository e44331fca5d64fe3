package queue

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueList_AppendPop(t *testing.T) {
	tests := []struct {
		name  string
		items []int
	}{
		{"single_item", []int{42}},
		{"multiple_items", []int{1, 2, 3, 4, 5}},
		{"zero_values", []int{0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l valueList[int]
			for _, item := range tt.items {
				l.append(item)
			}
			assert.Equal(t, int64(len(tt.items)), l.len())

			for _, want := range tt.items {
				got, err := l.popHead()
				require.NoError(t, err)
				assert.Equal(t, want, got)
			}

			assert.True(t, l.isEmpty())
			assert.Nil(t, l.tail, "tail must be nil when head is nil")
			assert.Equal(t, int64(0), l.len())
		})
	}
}

func TestValueList_PopEmpty(t *testing.T) {
	var l valueList[string]

	v, err := l.popHead()
	assert.True(t, errors.Is(err, ErrEmptyQueue))
	assert.Equal(t, "", v)
	assert.Equal(t, int64(0), l.len())
}

func TestValueList_HeadTailInvariant(t *testing.T) {
	var l valueList[int]

	l.append(1)
	assert.Same(t, l.head, l.tail)

	l.append(2)
	assert.NotSame(t, l.head, l.tail)

	_, _ = l.popHead()
	assert.Same(t, l.head, l.tail)

	_, _ = l.popHead()
	assert.Nil(t, l.head)
	assert.Nil(t, l.tail)

	// refill after drain
	l.append(3)
	got, err := l.popHead()
	require.NoError(t, err)
	assert.Equal(t, 3, got)
}

func TestValueList_PopReleasesValue(t *testing.T) {
	var l valueList[*int]
	v := new(int)
	l.append(v)

	node := l.head
	got, err := l.popHead()
	require.NoError(t, err)
	assert.Same(t, v, got)
	assert.Nil(t, node.value, "popped node must not keep the caller's value")
	assert.Nil(t, node.next)
}

func TestValueList_Reset(t *testing.T) {
	var l valueList[int]
	for i := 0; i < 10; i++ {
		l.append(i)
	}

	assert.Equal(t, 10, l.reset())
	assert.True(t, l.isEmpty())
	assert.Equal(t, int64(0), l.len())
	assert.Equal(t, 0, l.reset())
}
