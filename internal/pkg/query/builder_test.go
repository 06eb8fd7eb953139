package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_BasicSelect(t *testing.T) {
	stmt := From("price_history").
		Select("history_id", "file_id", "new_price").
		Build()

	assert.Equal(t, "SELECT history_id, file_id, new_price FROM price_history", stmt.SQL)
	assert.Empty(t, stmt.Params)
}

func TestBuilder_SelectAllColumns(t *testing.T) {
	stmt := From("outbox_events").Build()

	assert.Equal(t, "SELECT * FROM outbox_events", stmt.SQL)
	assert.Empty(t, stmt.Params)
}

func TestBuilder_MultipleWhereConditions(t *testing.T) {
	stmt := From("price_history").
		Select("history_id").
		Where(Eq("province", "isabela")).
		Where(Eq("file_id", "rice-january")).
		Where(Eq("product_key", "regular/rmr")).
		Build()

	assert.Equal(t, "SELECT history_id FROM price_history WHERE province = @p0 AND file_id = @p1 AND product_key = @p2", stmt.SQL)
	assert.Equal(t, map[string]interface{}{
		"p0": "isabela",
		"p1": "rice-january",
		"p2": "regular/rmr",
	}, stmt.Params)
}

func TestBuilder_OrderByAndLimit(t *testing.T) {
	stmt := From("outbox_events").
		Select("event_id").
		Where(Eq("status", "pending")).
		OrderBy("created_at", Desc).
		Limit(50).
		Build()

	assert.Equal(t, "SELECT event_id FROM outbox_events WHERE status = @p0 ORDER BY created_at DESC LIMIT @limit", stmt.SQL)
	assert.Equal(t, map[string]interface{}{
		"p0":    "pending",
		"limit": int64(50),
	}, stmt.Params)

	asc := From("outbox_events").Select("event_id").OrderBy("created_at", Asc).Build()
	assert.Equal(t, "SELECT event_id FROM outbox_events ORDER BY created_at ASC", asc.SQL)
}

func TestBuilder_Count(t *testing.T) {
	builder := From("outbox_events").
		Select("event_id", "status").
		Where(Eq("status", "failed")).
		OrderBy("created_at", Desc).
		Limit(50)

	countStmt := builder.Count().Build()
	assert.Equal(t, "SELECT COUNT(*) FROM outbox_events WHERE status = @p0", countStmt.SQL)
	assert.Equal(t, map[string]interface{}{"p0": "failed"}, countStmt.Params)

	// The original builder is unchanged.
	assert.Contains(t, builder.Build().SQL, "LIMIT @limit")
}

func TestBuilder_Immutability(t *testing.T) {
	base := From("outbox_events").Select("event_id")

	stmt1 := base.Where(Eq("status", "pending")).Build()
	stmt2 := base.Where(Eq("event_type", "file.deleted")).Build()

	assert.Contains(t, stmt1.SQL, "status = @p0")
	assert.NotContains(t, stmt1.SQL, "event_type")
	assert.Contains(t, stmt2.SQL, "event_type = @p0")
	assert.NotContains(t, stmt2.SQL, "status")
}

func TestBuilder_NestedGroupsNumberParamsConsecutively(t *testing.T) {
	completed := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	failed := completed.AddDate(0, -2, 0)

	stmt := From("outbox_events").
		Where(AnyOf(
			AllOf(Eq("status", "completed"), Lt("processed_at", completed)),
			AllOf(Eq("status", "failed"), Lt("processed_at", failed)),
		)).
		BuildDelete()

	assert.Equal(t,
		"DELETE FROM outbox_events WHERE ((status = @p0 AND processed_at < @p1) OR (status = @p2 AND processed_at < @p3))",
		stmt.SQL)
	assert.Equal(t, map[string]interface{}{
		"p0": "completed",
		"p1": completed,
		"p2": "failed",
		"p3": failed,
	}, stmt.Params)
}

func TestBuilder_BuildDeleteWithoutConditions(t *testing.T) {
	stmt := From("outbox_events").BuildDelete()
	assert.Equal(t, "DELETE FROM outbox_events WHERE true", stmt.SQL)
	assert.Empty(t, stmt.Params)
}

func TestCondition_EqWithDifferentParamIndex(t *testing.T) {
	sql, params := Eq("province", "quirino").SQL(5)

	assert.Equal(t, "province = @p5", sql)
	assert.Equal(t, map[string]interface{}{"p5": "quirino"}, params)
}

func TestCondition_StartsWith(t *testing.T) {
	stmt := From("outbox_events").
		Select("event_id").
		Where(StartsWith("aggregate_id", "quirino/")).
		Where(Eq("status", "completed")).
		Build()

	assert.Equal(t, "SELECT event_id FROM outbox_events WHERE STARTS_WITH(aggregate_id, @p0) AND status = @p1", stmt.SQL)
	assert.Equal(t, map[string]interface{}{"p0": "quirino/", "p1": "completed"}, stmt.Params)
}

func TestCondition_IsNotNull(t *testing.T) {
	sql, params := IsNotNull("processed_at").SQL(0)

	assert.Equal(t, "processed_at IS NOT NULL", sql)
	assert.Empty(t, params)
}

func TestBuilder_String(t *testing.T) {
	str := From("price_history").Select("history_id").Where(Eq("file_id", "x")).String()
	require.NotEmpty(t, str)
	assert.Contains(t, str, "SQL:")
	assert.Contains(t, str, "Params:")
	assert.Contains(t, str, "price_history")
}
