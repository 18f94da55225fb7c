package services

import (
	"math"

	"fairhuur/models"
)

// ComputeStats derives the dashboard figures from the active collection.
// Only strictly positive prices take part in the average.
func (q *QueryEngine) ComputeStats(listings []*models.Listing) models.Stats {
	stats := models.Stats{LiveCount: len(listings)}
	if len(listings) == 0 {
		return stats
	}

	today := ISOString(q.now())

	var total float64
	var priced int
	for _, l := range listings {
		if l == nil {
			continue
		}
		if SameCalendarDay(string(l.PostedAt), today) {
			stats.TodayCount++
		}
		if p, ok := CoerceNumber(l.Price); ok && p > 0 {
			total += p
			priced++
		}
	}

	if priced > 0 {
		avg := int64(math.Floor(total/float64(priced) + 0.5))
		stats.AveragePrice = &avg
	}

	if q.logger != nil {
		q.logger.Debug("[stats] live=%d today=%d priced=%d", stats.LiveCount, stats.TodayCount, priced)
	}
	return stats
}

// AveragePriceText renders the average for display, "-" when there is none.
func AveragePriceText(s models.Stats) string {
	if s.AveragePrice == nil || *s.AveragePrice == 0 {
		return "-"
	}
	return FormatAmount(float64(*s.AveragePrice))
}
