package summary

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/summarypro/summarybot/internal/repository"
)

type threadMessage struct {
	at       time.Time
	username string
	text     string
}

// threadGroup is one thread's messages, collected in input order and
// re-sorted to chronological order before rendering.
type threadGroup struct {
	label    string
	messages []threadMessage
}

// Aggregate renders a flat list of stored messages into a single text block
// with one section per thread. Sections are ordered by message count
// descending (ties keep first-encountered order), messages within a section
// are ordered oldest first regardless of input order. Section headers carry
// the raw thread marker ("Thread {id}", "Thread None" for the general
// bucket); name substitution happens downstream.
//
// A message whose date does not parse fails the whole aggregation: a
// malformed archive record is a data integrity problem, not something to
// paper over per group.
func Aggregate(messages []repository.StoredMessage) (string, error) {
	grouped := make(map[string]*threadGroup)
	order := []*threadGroup{}

	for _, msg := range messages {
		at, err := time.Parse(time.RFC3339, msg.Date)
		if err != nil {
			return "", fmt.Errorf("malformed date %q on message %d: %w", msg.Date, msg.MessageID, err)
		}

		label := threadLabel(msg)
		group, ok := grouped[label]
		if !ok {
			group = &threadGroup{label: label}
			grouped[label] = group
			order = append(order, group)
		}
		group.messages = append(group.messages, threadMessage{
			at:       at,
			username: msg.Username,
			text:     msg.Content,
		})
	}

	// Most active thread first; stable so equal counts keep input order.
	sort.SliceStable(order, func(i, j int) bool {
		return len(order[i].messages) > len(order[j].messages)
	})

	var block strings.Builder
	for _, group := range order {
		msgs := group.messages
		sort.SliceStable(msgs, func(i, j int) bool {
			return msgs[i].at.Before(msgs[j].at)
		})

		block.WriteString(group.label)
		block.WriteByte('\n')
		for _, msg := range msgs {
			block.WriteString(fmt.Sprintf("  - %s: %s\n", msg.username, msg.text))
		}
		block.WriteByte('\n')
	}

	return block.String(), nil
}

func threadLabel(msg repository.StoredMessage) string {
	if !msg.ThreadID.Valid {
		return "Thread None"
	}
	return fmt.Sprintf("Thread %d", msg.ThreadID.Int64)
}
