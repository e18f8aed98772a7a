// Package planner produces the suggested daily plan: it ranks a user's tags
// by practice staleness and assembles a bounded suggestion list for a date.
package planner

import (
	"context"
	"sort"
	"time"

	"github.com/example/preplab/internal/dateutil"
	"github.com/example/preplab/pkg/models"
)

const (
	// SuggestedSessions is the maximum number of sessions suggested per day
	SuggestedSessions = 5
	// SuggestedMinutesPerSession is the fixed duration attached to each
	// suggestion; every session gets the same length
	SuggestedMinutesPerSession = 30
	// LookbackDays is the trailing window used to weight recent practice
	LookbackDays = 14
	// DaysIfNeverPracticed is assigned to tags with no completed session
	// ever, so they sort ahead of everything with a real timestamp
	DaysIfNeverPracticed = 999
)

// TagSource lists the tags the ranking runs over
type TagSource interface {
	ListByUser(ctx context.Context, userID int64) ([]models.Tag, error)
}

// TaskSource provides the completed-session history and the target date's
// existing plan
type TaskSource interface {
	ListCompletedByUser(ctx context.Context, userID int64) ([]models.Task, error)
	ListCompletedByUserInRange(ctx context.Context, userID int64, from, to time.Time) ([]models.Task, error)
	ListByUserAndDate(ctx context.Context, userID int64, date time.Time) ([]models.Task, error)
}

// RankedTag is a tag with its computed urgency inputs
type RankedTag struct {
	Tag                    models.Tag
	MinutesInWindow        int
	DaysSinceLastPracticed int
}

// Suggestion is one proposed practice session for the target date
type Suggestion struct {
	TagID            int64  `json:"tag_id"`
	TagName          string `json:"tag_name"`
	TagSlug          string `json:"tag_slug"`
	SuggestedMinutes int    `json:"suggested_minutes"`
}

// Planner computes suggested daily plans from the stored history
type Planner struct {
	tags  TagSource
	tasks TaskSource
}

// New creates a planner reading from the given sources
func New(tags TagSource, tasks TaskSource) *Planner {
	return &Planner{tags: tags, tasks: tasks}
}

// RankTags orders every tag the user owns by practice urgency for the target
// date: most days since last practice first, then fewest minutes practiced in
// the lookback window. Tags never practiced rank ahead of everything else.
func (p *Planner) RankTags(ctx context.Context, userID int64, date time.Time) ([]RankedTag, error) {
	tags, err := p.tags.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	// All completed tasks: "last practiced" must see the full history, so a
	// tag practiced 60 days ago still resolves to a real number.
	allCompleted, err := p.tasks.ListCompletedByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Lookback window only: minutes practiced recently.
	lookbackStart := dateutil.StartOfDay(date).AddDate(0, 0, -LookbackDays)
	inWindow, err := p.tasks.ListCompletedByUserInRange(ctx, userID, lookbackStart, date)
	if err != nil {
		return nil, err
	}

	minutesByTag := make(map[int64]int)
	for _, task := range inWindow {
		mins := task.Duration()
		for _, tag := range task.Tags {
			minutesByTag[tag.ID] += mins
		}
	}

	lastPracticedByTag := make(map[int64]time.Time)
	for _, task := range allCompleted {
		if task.CompletedAt == nil {
			continue
		}
		for _, tag := range task.Tags {
			if last, ok := lastPracticedByTag[tag.ID]; !ok || task.CompletedAt.After(last) {
				lastPracticedByTag[tag.ID] = *task.CompletedAt
			}
		}
	}

	ranked := make([]RankedTag, 0, len(tags))
	for _, tag := range tags {
		days := DaysIfNeverPracticed
		if last, ok := lastPracticedByTag[tag.ID]; ok {
			days = dateutil.DaysBetween(last, date)
		}
		ranked = append(ranked, RankedTag{
			Tag:                    tag,
			MinutesInWindow:        minutesByTag[tag.ID],
			DaysSinceLastPracticed: days,
		})
	}

	// Stale first; among equally stale tags the one with the least recent
	// effort goes first. Stable sort keeps the name ordering from the tag
	// source for full ties, so the ranking is deterministic.
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].DaysSinceLastPracticed != ranked[j].DaysSinceLastPracticed {
			return ranked[i].DaysSinceLastPracticed > ranked[j].DaysSinceLastPracticed
		}
		return ranked[i].MinutesInWindow < ranked[j].MinutesInWindow
	})

	return ranked, nil
}

// SuggestedPlanForDate turns the ranking into at most SuggestedSessions
// suggestions for the date, each with the fixed per-session duration. Tags
// already on a task scheduled for that date are never suggested again.
func (p *Planner) SuggestedPlanForDate(ctx context.Context, userID int64, date time.Time) ([]Suggestion, error) {
	ranked, err := p.RankTags(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	planned, err := p.tasks.ListByUserAndDate(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	alreadyPlanned := make(map[int64]bool)
	for _, task := range planned {
		for _, tag := range task.Tags {
			alreadyPlanned[tag.ID] = true
		}
	}

	suggestions := make([]Suggestion, 0, SuggestedSessions)
	for _, rt := range ranked {
		if alreadyPlanned[rt.Tag.ID] {
			continue
		}
		suggestions = append(suggestions, Suggestion{
			TagID:            rt.Tag.ID,
			TagName:          rt.Tag.Name,
			TagSlug:          rt.Tag.Slug,
			SuggestedMinutes: SuggestedMinutesPerSession,
		})
		if len(suggestions) == SuggestedSessions {
			break
		}
	}

	return suggestions, nil
}
