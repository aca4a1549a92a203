package ranking

import "rankwatch/internal/domain"

const (
	top3Boundary      = 3
	firstPageBoundary = 10
	significantDelta  = 5
)

// Classify maps a ranking transition to an event. Rules are evaluated in a
// fixed priority order and the first match wins, so a jump from 15 to 2 is a
// top-3 entry, not a significant improvement. The boolean is false when the
// transition produces no event.
func Classify(r *domain.Ranking) (domain.RankingEvent, bool) {
	pos := r.Position
	prev := r.PreviousPosition

	// First-ever observation: only entry milestones fire.
	if prev == nil {
		switch {
		case pos == nil:
			return "", false
		case *pos <= top3Boundary:
			return domain.EventTop3, true
		case *pos <= firstPageBoundary:
			return domain.EventFirstPage, true
		default:
			return "", false
		}
	}

	// Keyword vanished from measured results. Only a signal when it was
	// ranking on the first page before.
	if pos == nil {
		if *prev <= firstPageBoundary {
			return domain.EventDroppedOut, true
		}
		return "", false
	}

	switch {
	case *pos <= top3Boundary && *prev > top3Boundary:
		return domain.EventTop3, true
	case *pos <= firstPageBoundary && *prev > firstPageBoundary:
		return domain.EventFirstPage, true
	case *pos > firstPageBoundary && *prev <= firstPageBoundary:
		return domain.EventDroppedOut, true
	}

	delta := *prev - *pos
	if delta >= significantDelta {
		return domain.EventSignificantImprovement, true
	}
	if -delta >= significantDelta {
		return domain.EventSignificantDecline, true
	}

	return "", false
}
