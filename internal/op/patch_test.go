package op

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sprintdeck/sprintdeck/pkg/utils"
)

func TestTaskPatchDistinguishesAbsentAndNull(t *testing.T) {
	var patch TaskPatch
	body := `{"title":"New name","deadline":null}`
	require.NoError(t, utils.Json.Unmarshal([]byte(body), &patch))

	assert.True(t, patch.Title.Set)
	assert.True(t, patch.Title.Valid)
	assert.Equal(t, "New name", patch.Title.Value)

	assert.True(t, patch.Deadline.Set)
	assert.False(t, patch.Deadline.Valid)

	assert.False(t, patch.Priority.Set)
	assert.False(t, patch.Tags.Set)
}

func TestTaskPatchTypedFields(t *testing.T) {
	var patch TaskPatch
	body := `{"assignee_id":3,"estimated_hours":2.5,"tags":["a","b"]}`
	require.NoError(t, utils.Json.Unmarshal([]byte(body), &patch))

	require.True(t, patch.AssigneeID.Valid)
	assert.Equal(t, uint(3), patch.AssigneeID.Value)
	require.True(t, patch.EstimatedHours.Valid)
	assert.Equal(t, 2.5, patch.EstimatedHours.Value)
	require.True(t, patch.Tags.Valid)
	assert.Equal(t, []string{"a", "b"}, patch.Tags.Value)
}
