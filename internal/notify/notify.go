package notify

import (
	"fmt"

	"Airflow/internal/calc/summary"
)

// Publisher announces recomputed summaries to outside listeners.
type Publisher interface {
	PublishSummary(sessionID string, s summary.Summary) error
	// ClearSummary removes the last published summary of a deleted session.
	ClearSummary(sessionID string) error
}

type Nop struct{}

func (Nop) PublishSummary(string, summary.Summary) error { return nil }

func (Nop) ClearSummary(string) error { return nil }

func SummaryTopic(sessionID string) string {
	return fmt.Sprintf("airflow/sessions/%s/summary", sessionID)
}
