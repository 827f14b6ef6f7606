package usage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// the queries and the bootstrap DDL live in separate constants, so a column
// rename in one without the other would only surface at runtime; keep them
// in sync here
func TestSchemaDeclaresQueriedColumns(t *testing.T) {
	for _, column := range []string{
		"user_id",
		"date",
		"images_generated",
		"prompts_enhanced",
		"updated_at",
	} {
		assert.Contains(t, schemaUserUsage, column)
	}

	// the upsert increments rely on this uniqueness for conflict detection
	assert.Contains(t, schemaUserUsage, "UNIQUE (user_id, date)")
	assert.Contains(t, queryIncrementImages, "ON CONFLICT (user_id, date)")
	assert.Contains(t, queryIncrementEnhancements, "ON CONFLICT (user_id, date)")
}
