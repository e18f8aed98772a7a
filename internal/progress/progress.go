// Package progress computes summary statistics over a user's completed
// study sessions: totals, weekly volume, a four-week series, the daily
// streak, and a per-tag breakdown.
package progress

import (
	"context"
	"sort"
	"time"

	"github.com/example/preplab/internal/dateutil"
	"github.com/example/preplab/pkg/models"
)

// WeeksInSeries is how many weeks the weekly chart covers
const WeeksInSeries = 4

// UntaggedName labels the synthetic bucket for completed sessions with no tag
const UntaggedName = "Untagged"

// TaskSource provides the completed-session history and task counts
type TaskSource interface {
	ListCompletedByUser(ctx context.Context, userID int64) ([]models.Task, error)
	CountByUser(ctx context.Context, userID int64) (int, error)
	CountCompletedByUser(ctx context.Context, userID int64) (int, error)
}

// TagBreakdown is the practice volume attributed to one tag
type TagBreakdown struct {
	Name    string `json:"name"`
	Slug    string `json:"slug"`
	Minutes int    `json:"minutes"`
	Count   int    `json:"count"`
}

// WeekBucket is one entry of the weekly series
type WeekBucket struct {
	Label   string `json:"label"`
	Minutes int    `json:"minutes"`
}

// Stats is the aggregate view shown on the progress and dashboard screens
type Stats struct {
	TotalMinutes        int            `json:"total_minutes"`
	WeekMinutes         int            `json:"week_minutes"`
	LastWeekMinutes     int            `json:"last_week_minutes"`
	WeeklyData          []WeekBucket   `json:"weekly_data"` // Oldest to newest
	ByTag               []TagBreakdown `json:"by_tag"`      // Sorted by minutes, descending
	Streak              int            `json:"streak"`
	CompletedCount      int            `json:"completed_count"`
	TotalTasksCount     int            `json:"total_tasks_count"`
	CompletedTasksCount int            `json:"completed_tasks_count"`
}

// Aggregator computes progress stats from the stored history
type Aggregator struct {
	tasks TaskSource
}

// New creates an aggregator reading from the given source
func New(tasks TaskSource) *Aggregator {
	return &Aggregator{tasks: tasks}
}

// Stats computes the user's progress statistics as of now
func (a *Aggregator) Stats(ctx context.Context, userID int64) (*Stats, error) {
	completed, err := a.tasks.ListCompletedByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	totalTasks, err := a.tasks.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	completedTasks, err := a.tasks.CountCompletedByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return build(completed, totalTasks, completedTasks, time.Now()), nil
}

// build does the pure aggregation. Durations default the same way the
// planner defaults them (Task.Duration) and days/weeks use the shared
// calendar bucketing, so both components agree on every sum.
func build(completed []models.Task, totalTasks, completedTasks int, now time.Time) *Stats {
	stats := &Stats{
		TotalTasksCount:     totalTasks,
		CompletedTasksCount: completedTasks,
		CompletedCount:      len(completed),
		ByTag:               []TagBreakdown{},
	}

	byTagID := make(map[int64]*TagBreakdown)
	var untagged *TagBreakdown
	completedDates := make(map[string]bool)

	weekStart := dateutil.StartOfWeek(now)
	seriesStart := weekStart.AddDate(0, 0, -7*(WeeksInSeries-1))
	weekly := make([]int, WeeksInSeries)

	for i := range completed {
		task := &completed[i]
		if task.CompletedAt == nil {
			continue
		}
		mins := task.Duration()
		completedAt := *task.CompletedAt

		stats.TotalMinutes += mins
		completedDates[dateutil.DateKey(completedAt)] = true

		if !completedAt.Before(weekStart) {
			stats.WeekMinutes += mins
		} else if !completedAt.Before(weekStart.AddDate(0, 0, -7)) {
			stats.LastWeekMinutes += mins
		}

		if !completedAt.Before(seriesStart) {
			week := dateutil.DaysBetween(seriesStart, completedAt) / 7
			if week >= 0 && week < WeeksInSeries {
				weekly[week] += mins
			}
		}

		if len(task.Tags) == 0 {
			if untagged == nil {
				untagged = &TagBreakdown{Name: UntaggedName, Slug: "untagged"}
			}
			untagged.Minutes += mins
			untagged.Count++
			continue
		}
		for _, tag := range task.Tags {
			entry, ok := byTagID[tag.ID]
			if !ok {
				entry = &TagBreakdown{Name: tag.Name, Slug: tag.Slug}
				byTagID[tag.ID] = entry
			}
			entry.Minutes += mins
			entry.Count++
		}
	}

	for _, entry := range byTagID {
		stats.ByTag = append(stats.ByTag, *entry)
	}
	if untagged != nil {
		stats.ByTag = append(stats.ByTag, *untagged)
	}
	sort.SliceStable(stats.ByTag, func(i, j int) bool {
		if stats.ByTag[i].Minutes != stats.ByTag[j].Minutes {
			return stats.ByTag[i].Minutes > stats.ByTag[j].Minutes
		}
		return stats.ByTag[i].Name < stats.ByTag[j].Name
	})

	labels := weekLabels()
	stats.WeeklyData = make([]WeekBucket, WeeksInSeries)
	for i := 0; i < WeeksInSeries; i++ {
		stats.WeeklyData[i] = WeekBucket{Label: labels[i], Minutes: weekly[i]}
	}

	// Streak counts distinct local completion dates walking backward from
	// today; it breaks on the first day with no completion at all.
	day := dateutil.StartOfDay(now)
	for completedDates[dateutil.DateKey(day)] {
		stats.Streak++
		day = day.AddDate(0, 0, -1)
	}

	return stats
}

// weekLabels returns the series labels oldest to newest
func weekLabels() []string {
	return []string{"3 weeks ago", "2 weeks ago", "Last week", "This week"}
}
