package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoalesceStr(t *testing.T) {
	assert.Equal(t, "b", CoalesceStr("", "b", "c"))
	assert.Equal(t, "", CoalesceStr("", ""))
}

func TestStrOrEmpty(t *testing.T) {
	s := "plomberie"
	assert.Equal(t, "plomberie", StrOrEmpty(&s))
	assert.Equal(t, "", StrOrEmpty(nil))
}

func TestFloat64FromPtrWithDefault(t *testing.T) {
	v := 1200.5
	assert.Equal(t, 1200.5, Float64FromPtrWithDefault(0, nil, &v))
	assert.Equal(t, 0.0, Float64FromPtrWithDefault(0, nil))
}

func TestValidTaskStatuses(t *testing.T) {
	assert.True(t, ValidTaskStatuses[TaskTodo])
	assert.True(t, ValidTaskStatuses[TaskInProgress])
	assert.True(t, ValidTaskStatuses[TaskDone])
	assert.False(t, ValidTaskStatuses[TaskStatus("skipped")])
}
