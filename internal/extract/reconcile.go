package extract

import "github.com/alexanderramin/pathguard/internal/domain"

// reconcile compares aggregate roll-ups against summed detail rows per
// title. Detail rows are ground truth, but the detail report is sometimes
// truncated while the roll-up is complete; when an aggregate total exceeds
// the detail sum the difference is emitted as one synthetic Correction
// session so downstream accounting is whole and the adjustment auditable.
func reconcile(sessions []domain.Session) []domain.Session {
	detail := map[string]float64{}
	aggregate := map[string]float64{}
	var order []string

	for _, s := range sessions {
		switch s.Kind {
		case domain.KindDetail:
			if _, seen := detail[s.Title]; !seen {
				if _, seenAgg := aggregate[s.Title]; !seenAgg {
					order = append(order, s.Title)
				}
			}
			detail[s.Title] += s.DurationMinutes
		case domain.KindAggregate:
			if _, seen := aggregate[s.Title]; !seen {
				if _, seenDet := detail[s.Title]; !seenDet {
					order = append(order, s.Title)
				}
			}
			aggregate[s.Title] += s.DurationMinutes
		}
	}

	var corrections []domain.Session
	for _, title := range order {
		agg, ok := aggregate[title]
		if !ok {
			continue
		}
		if delta := agg - detail[title]; delta > 0 {
			corrections = append(corrections, domain.Session{
				Title:           title,
				DurationMinutes: delta,
				Kind:            domain.KindCorrection,
			})
		}
	}
	return corrections
}
