package genlog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchemaDeclaresQueriedColumns(t *testing.T) {
	for _, column := range []string{
		"user_id",
		"prompt",
		"model_used",
		"status",
		"detail",
	} {
		assert.Contains(t, schemaGenerations, column)
	}

	assert.Contains(t, schemaGenerations, "moderation_logs")

	for _, column := range []string{"content", "content_type", "flags", "action"} {
		assert.Contains(t, schemaGenerations, column)
	}
}
