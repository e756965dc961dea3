package summary

import (
	"database/sql"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/summarypro/summarybot/internal/repository"
)

func msg(thread int64, user, date, text string) repository.StoredMessage {
	m := repository.StoredMessage{
		Username: user,
		Date:     date,
		Content:  text,
	}
	if thread >= 0 {
		m.ThreadID = sql.NullInt64{Int64: thread, Valid: true}
	}
	return m
}

func TestAggregateRendersThreadsByVolume(t *testing.T) {
	messages := []repository.StoredMessage{
		msg(1, "A", "2024-10-01T10:00:01Z", "hi"),
		msg(1, "B", "2024-10-01T10:00:02Z", "yo"),
		msg(2, "C", "2024-10-01T10:00:03Z", "sup"),
	}

	block, err := Aggregate(messages)
	require.NoError(t, err)

	assert.Equal(t, "Thread 1\n  - A: hi\n  - B: yo\n\nThread 2\n  - C: sup\n\n", block)
}

func TestAggregateChronologicalRegardlessOfInputOrder(t *testing.T) {
	// Fetch order is newest-first; the rendered block must still read
	// oldest-first.
	messages := []repository.StoredMessage{
		msg(5, "B", "2024-10-01T12:00:00Z", "second"),
		msg(5, "A", "2024-10-01T11:00:00Z", "first"),
		msg(5, "C", "2024-10-01T13:00:00Z", "third"),
	}

	block, err := Aggregate(messages)
	require.NoError(t, err)

	assert.Equal(t, "Thread 5\n  - A: first\n  - B: second\n  - C: third\n\n", block)
}

func TestAggregatePreservesEveryMessageOnce(t *testing.T) {
	messages := []repository.StoredMessage{
		msg(1, "a", "2024-10-01T10:00:00Z", "m1"),
		msg(2, "b", "2024-10-01T10:01:00Z", "m2"),
		msg(-1, "c", "2024-10-01T10:02:00Z", "m3"),
		msg(1, "d", "2024-10-01T10:03:00Z", "m4"),
		msg(3, "e", "2024-10-01T10:04:00Z", "m5"),
	}

	block, err := Aggregate(messages)
	require.NoError(t, err)

	for _, want := range []string{"m1", "m2", "m3", "m4", "m5"} {
		assert.Equal(t, 1, strings.Count(block, ": "+want+"\n"), "message %s", want)
	}
}

func TestAggregateEqualCountsKeepInputOrder(t *testing.T) {
	messages := []repository.StoredMessage{
		msg(7, "a", "2024-10-01T10:00:00Z", "x"),
		msg(3, "b", "2024-10-01T10:01:00Z", "y"),
	}

	block, err := Aggregate(messages)
	require.NoError(t, err)

	assert.Less(t, strings.Index(block, "Thread 7"), strings.Index(block, "Thread 3"))
}

func TestAggregateGeneralBucket(t *testing.T) {
	messages := []repository.StoredMessage{
		msg(-1, "A", "2024-10-01T10:00:00Z", "general talk"),
	}

	block, err := Aggregate(messages)
	require.NoError(t, err)

	assert.Equal(t, "Thread None\n  - A: general talk\n\n", block)
}

func TestAggregateEmptyInput(t *testing.T) {
	block, err := Aggregate(nil)
	require.NoError(t, err)
	assert.Empty(t, block)
}

func TestAggregateMalformedDateFailsWhole(t *testing.T) {
	messages := []repository.StoredMessage{
		msg(1, "A", "2024-10-01T10:00:00Z", "fine"),
		msg(1, "B", "not-a-date", "broken"),
	}

	_, err := Aggregate(messages)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed date")
}
