package scheduler

import (
	"math"

	"github.com/harrisonrobin/dayplan/pkg/clock"
	"github.com/harrisonrobin/dayplan/pkg/model"
)

const hoursPerDay = 24

const (
	coverageWeight = 0.4
	balanceWeight  = 0.3
	nonEmptyBonus  = 0.3
)

// CalculateMetrics derives efficiency, coverage and balance for schedule
// against the originally requested tasks. An empty schedule scores zero.
func (s *Scheduler) CalculateMetrics(schedule []model.PlacedTask, tasks []model.Task) model.Metrics {
	if len(schedule) == 0 {
		return model.Metrics{}
	}

	total := 0
	for _, t := range tasks {
		total += t.Duration
	}
	scheduled := 0
	for _, p := range schedule {
		scheduled += p.Duration
	}

	coverage := 0.0
	if total > 0 {
		coverage = float64(scheduled) / float64(total)
	}

	balance := s.balance(schedule, scheduled)

	return model.Metrics{
		Efficiency: coverage*coverageWeight + balance*balanceWeight + nonEmptyBonus,
		Coverage:   coverage,
		Balance:    balance,
	}
}

// balance is an inverse-variance measure of how evenly scheduled minutes
// spread over the hours of the day.
func (s *Scheduler) balance(schedule []model.PlacedTask, scheduled int) float64 {
	hourly := hourlyLoad(schedule)

	workingHours := float64(s.cfg.WorkingHours.Minutes()) / clock.MinutesPerHour
	averageLoad := float64(scheduled) / workingHours
	if averageLoad == 0 || math.IsInf(averageLoad, 0) || math.IsNaN(averageLoad) {
		return 0
	}

	variance := 0.0
	for _, load := range hourly {
		d := load - averageLoad
		variance += d * d
	}
	variance /= hoursPerDay

	return math.Max(0, 1-variance/(averageLoad*averageLoad))
}

// hourlyLoad spreads each task's duration evenly over every hour from its start
// hour to its end hour inclusive. The slice grows past 24 entries if a break
// pushes an end beyond midnight.
func hourlyLoad(schedule []model.PlacedTask) []float64 {
	hourly := make([]float64, hoursPerDay)
	for _, p := range schedule {
		startHour := p.StartTime.Hour()
		endHour := p.EndTime.Hour()
		if startHour < 0 || endHour < startHour {
			continue
		}
		for len(hourly) <= endHour {
			hourly = append(hourly, 0)
		}
		share := float64(p.Duration) / float64(endHour-startHour+1)
		for h := startHour; h <= endHour; h++ {
			hourly[h] += share
		}
	}
	return hourly
}
