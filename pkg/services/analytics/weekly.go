package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/pm-tools/project-pulse/pkg/models/domain"
)

// ISOWeekOf returns the ISO-8601 week identifier (YYYY-Www) for a date.
// The zero-padded form sorts lexicographically in chronological order.
func ISOWeekOf(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// AggregateWeekly buckets time records by ISO week, splitting totals by
// approval state, and returns the buckets in ascending week order with a
// running cumulative total. Rejected hours count toward the week total but
// toward neither the approved nor the pending subset.
func AggregateWeekly(records []domain.TimeRecord) []domain.WeeklyBucket {
	byWeek := make(map[string]*domain.WeeklyBucket)
	for _, record := range records {
		bucket, ok := byWeek[record.ISOWeek]
		if !ok {
			bucket = &domain.WeeklyBucket{ISOWeek: record.ISOWeek}
			byWeek[record.ISOWeek] = bucket
		}

		bucket.TotalHours += record.Hours
		switch record.State {
		case domain.ApprovalApproved:
			bucket.ApprovedHours += record.Hours
		case domain.ApprovalOpen, domain.ApprovalSubmitted:
			bucket.PendingHours += record.Hours
		}
	}

	weeks := make([]domain.WeeklyBucket, 0, len(byWeek))
	for _, bucket := range byWeek {
		weeks = append(weeks, *bucket)
	}
	sort.Slice(weeks, func(i, j int) bool {
		return weeks[i].ISOWeek < weeks[j].ISOWeek
	})

	cumulative := 0.0
	for i := range weeks {
		cumulative += weeks[i].TotalHours
		weeks[i].CumulativeHours = cumulative
	}
	return weeks
}
