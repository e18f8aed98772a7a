package planner

import (
	"context"
	"testing"
	"time"

	"github.com/example/preplab/internal/dateutil"
	"github.com/example/preplab/pkg/models"
)

// fakeStore serves tags and tasks from memory, filtering by user the same
// way the repositories do.
type fakeStore struct {
	tags  []models.Tag
	tasks []models.Task
}

func (f *fakeStore) ListByUser(ctx context.Context, userID int64) ([]models.Tag, error) {
	var out []models.Tag
	for _, tag := range f.tags {
		if tag.UserID == userID {
			out = append(out, tag)
		}
	}
	return out, nil
}

func (f *fakeStore) ListCompletedByUser(ctx context.Context, userID int64) ([]models.Task, error) {
	var out []models.Task
	for _, task := range f.tasks {
		if task.UserID == userID && task.CompletedAt != nil {
			out = append(out, task)
		}
	}
	return out, nil
}

func (f *fakeStore) ListCompletedByUserInRange(ctx context.Context, userID int64, from, to time.Time) ([]models.Task, error) {
	var out []models.Task
	for _, task := range f.tasks {
		if task.UserID != userID || task.CompletedAt == nil {
			continue
		}
		at := *task.CompletedAt
		if !at.Before(from) && !at.After(to) {
			out = append(out, task)
		}
	}
	return out, nil
}

func (f *fakeStore) ListByUserAndDate(ctx context.Context, userID int64, date time.Time) ([]models.Task, error) {
	start := dateutil.StartOfDay(date)
	end := start.AddDate(0, 0, 1)
	var out []models.Task
	for _, task := range f.tasks {
		if task.UserID != userID {
			continue
		}
		if !task.ScheduledAt.Before(start) && task.ScheduledAt.Before(end) {
			out = append(out, task)
		}
	}
	return out, nil
}

var testNow = time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

func tag(id, userID int64, name, slug string) models.Tag {
	return models.Tag{ID: id, UserID: userID, Name: name, Slug: slug}
}

func completedTask(userID int64, minutes *int, completedAt time.Time, tags ...models.Tag) models.Task {
	return models.Task{
		UserID:          userID,
		Title:           "practice",
		DurationMinutes: minutes,
		ScheduledAt:     completedAt,
		CompletedAt:     &completedAt,
		Tags:            tags,
	}
}

func minutes(n int) *int { return &n }

func TestRankTagsNeverPracticedFirst(t *testing.T) {
	algorithms := tag(1, 1, "Algorithms", "algorithms")
	sql := tag(2, 1, "SQL", "sql")
	store := &fakeStore{
		tags: []models.Tag{algorithms, sql},
		tasks: []models.Task{
			completedTask(1, minutes(60), testNow.AddDate(0, 0, -2), algorithms),
		},
	}

	ranked, err := New(store, store).RankTags(context.Background(), 1, testNow)
	if err != nil {
		t.Fatalf("rank tags: %v", err)
	}
	if len(ranked) != 2 {
		t.Fatalf("expected 2 ranked tags, got %d", len(ranked))
	}
	if ranked[0].Tag.Slug != "sql" {
		t.Fatalf("expected never-practiced tag first, got %q", ranked[0].Tag.Slug)
	}
	if ranked[0].DaysSinceLastPracticed != DaysIfNeverPracticed {
		t.Fatalf("expected sentinel %d days, got %d", DaysIfNeverPracticed, ranked[0].DaysSinceLastPracticed)
	}
	if ranked[1].DaysSinceLastPracticed != 2 {
		t.Fatalf("expected 2 days since practice, got %d", ranked[1].DaysSinceLastPracticed)
	}
}

func TestRankTagsTieBreakByWindowMinutes(t *testing.T) {
	heavy := tag(1, 1, "Algorithms", "algorithms")
	light := tag(2, 1, "SQL", "sql")
	threeDaysAgo := testNow.AddDate(0, 0, -3)
	store := &fakeStore{
		tags: []models.Tag{heavy, light},
		tasks: []models.Task{
			completedTask(1, minutes(90), threeDaysAgo, heavy),
			completedTask(1, minutes(30), threeDaysAgo, light),
		},
	}

	ranked, err := New(store, store).RankTags(context.Background(), 1, testNow)
	if err != nil {
		t.Fatalf("rank tags: %v", err)
	}
	if ranked[0].Tag.Slug != "sql" {
		t.Fatalf("expected lighter tag to win the tie, got %q", ranked[0].Tag.Slug)
	}
	if ranked[0].MinutesInWindow != 30 || ranked[1].MinutesInWindow != 90 {
		t.Fatalf("unexpected window minutes: %d and %d", ranked[0].MinutesInWindow, ranked[1].MinutesInWindow)
	}
}

func TestRankTagsStaleOutranksRecentEffort(t *testing.T) {
	ml := tag(1, 1, "Machine Learning", "machine-learning")
	sql := tag(2, 1, "SQL", "sql")
	store := &fakeStore{
		tags: []models.Tag{ml, sql},
		tasks: []models.Task{
			// Lots of very recent ML work, one stale SQL session
			completedTask(1, minutes(120), testNow.AddDate(0, 0, -1), ml),
			completedTask(1, minutes(120), testNow.AddDate(0, 0, -2), ml),
			completedTask(1, minutes(30), testNow.AddDate(0, 0, -10), sql),
		},
	}

	ranked, err := New(store, store).RankTags(context.Background(), 1, testNow)
	if err != nil {
		t.Fatalf("rank tags: %v", err)
	}
	if ranked[0].Tag.Slug != "sql" {
		t.Fatalf("expected stale tag first, got %q", ranked[0].Tag.Slug)
	}
	if ranked[0].DaysSinceLastPracticed != 10 {
		t.Fatalf("expected 10 days, got %d", ranked[0].DaysSinceLastPracticed)
	}
}

func TestRankTagsOldPracticeOutsideWindow(t *testing.T) {
	sql := tag(1, 1, "SQL", "sql")
	store := &fakeStore{
		tags: []models.Tag{sql},
		tasks: []models.Task{
			completedTask(1, minutes(45), testNow.AddDate(0, 0, -60), sql),
		},
	}

	ranked, err := New(store, store).RankTags(context.Background(), 1, testNow)
	if err != nil {
		t.Fatalf("rank tags: %v", err)
	}
	// 60 days ago is a real timestamp, not the never-practiced sentinel,
	// but it contributes nothing to the 14-day window.
	if ranked[0].DaysSinceLastPracticed != 60 {
		t.Fatalf("expected 60 days, got %d", ranked[0].DaysSinceLastPracticed)
	}
	if ranked[0].MinutesInWindow != 0 {
		t.Fatalf("expected 0 window minutes, got %d", ranked[0].MinutesInWindow)
	}
}

func TestRankTagsNilDurationCountsDefault(t *testing.T) {
	sql := tag(1, 1, "SQL", "sql")
	store := &fakeStore{
		tags: []models.Tag{sql},
		tasks: []models.Task{
			completedTask(1, nil, testNow.AddDate(0, 0, -1), sql),
			completedTask(1, minutes(45), testNow.AddDate(0, 0, -2), sql),
		},
	}

	ranked, err := New(store, store).RankTags(context.Background(), 1, testNow)
	if err != nil {
		t.Fatalf("rank tags: %v", err)
	}
	want := models.DefaultDurationMinutes + 45
	if ranked[0].MinutesInWindow != want {
		t.Fatalf("expected %d window minutes, got %d", want, ranked[0].MinutesInWindow)
	}
}

func TestRankTagsFullTieKeepsNameOrder(t *testing.T) {
	store := &fakeStore{
		tags: []models.Tag{
			tag(1, 1, "Algorithms", "algorithms"),
			tag(2, 1, "Behavioral", "behavioral"),
			tag(3, 1, "SQL", "sql"),
		},
	}

	ranked, err := New(store, store).RankTags(context.Background(), 1, testNow)
	if err != nil {
		t.Fatalf("rank tags: %v", err)
	}
	got := []string{ranked[0].Tag.Slug, ranked[1].Tag.Slug, ranked[2].Tag.Slug}
	want := []string{"algorithms", "behavioral", "sql"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}

func TestSuggestedPlanCapsSessions(t *testing.T) {
	store := &fakeStore{}
	names := []string{"Algorithms", "Behavioral", "ML", "Python", "SQL", "Statistics", "System Design", "Take-homes"}
	for i, name := range names {
		store.tags = append(store.tags, tag(int64(i+1), 1, name, name))
	}

	suggestions, err := New(store, store).SuggestedPlanForDate(context.Background(), 1, testNow)
	if err != nil {
		t.Fatalf("suggested plan: %v", err)
	}
	if len(suggestions) != SuggestedSessions {
		t.Fatalf("expected %d suggestions, got %d", SuggestedSessions, len(suggestions))
	}
	for _, s := range suggestions {
		if s.SuggestedMinutes != SuggestedMinutesPerSession {
			t.Fatalf("expected %d minutes per session, got %d", SuggestedMinutesPerSession, s.SuggestedMinutes)
		}
	}
}

func TestSuggestedPlanFewerTagsThanCap(t *testing.T) {
	store := &fakeStore{
		tags: []models.Tag{
			tag(1, 1, "Algorithms", "algorithms"),
			tag(2, 1, "SQL", "sql"),
		},
	}

	suggestions, err := New(store, store).SuggestedPlanForDate(context.Background(), 1, testNow)
	if err != nil {
		t.Fatalf("suggested plan: %v", err)
	}
	if len(suggestions) != 2 {
		t.Fatalf("expected 2 suggestions, got %d", len(suggestions))
	}
}

func TestSuggestedPlanExcludesAlreadyPlanned(t *testing.T) {
	sql := tag(1, 1, "SQL", "sql")
	algorithms := tag(2, 1, "Algorithms", "algorithms")
	store := &fakeStore{
		tags: []models.Tag{sql, algorithms},
		tasks: []models.Task{
			// SQL is already on today's plan (not completed)
			{UserID: 1, Title: "SQL practice", ScheduledAt: testNow, Tags: []models.Tag{sql}},
		},
	}

	suggestions, err := New(store, store).SuggestedPlanForDate(context.Background(), 1, testNow)
	if err != nil {
		t.Fatalf("suggested plan: %v", err)
	}
	if len(suggestions) != 1 {
		t.Fatalf("expected 1 suggestion, got %d", len(suggestions))
	}
	if suggestions[0].TagSlug != "algorithms" {
		t.Fatalf("expected the unplanned tag, got %q", suggestions[0].TagSlug)
	}
}

func TestSuggestedPlanNoTags(t *testing.T) {
	store := &fakeStore{}
	suggestions, err := New(store, store).SuggestedPlanForDate(context.Background(), 1, testNow)
	if err != nil {
		t.Fatalf("suggested plan: %v", err)
	}
	if len(suggestions) != 0 {
		t.Fatalf("expected no suggestions, got %d", len(suggestions))
	}
}

func TestRankTagsIgnoresOtherUsers(t *testing.T) {
	mine := tag(1, 1, "SQL", "sql")
	theirs := tag(2, 2, "SQL", "sql")
	store := &fakeStore{
		tags: []models.Tag{mine, theirs},
		tasks: []models.Task{
			// User 2 practiced SQL yesterday; user 1 never did
			completedTask(2, minutes(60), testNow.AddDate(0, 0, -1), theirs),
		},
	}

	ranked, err := New(store, store).RankTags(context.Background(), 1, testNow)
	if err != nil {
		t.Fatalf("rank tags: %v", err)
	}
	if len(ranked) != 1 {
		t.Fatalf("expected 1 tag for user 1, got %d", len(ranked))
	}
	if ranked[0].DaysSinceLastPracticed != DaysIfNeverPracticed {
		t.Fatalf("expected user 1's tag untouched by user 2's history, got %d days", ranked[0].DaysSinceLastPracticed)
	}
	if ranked[0].MinutesInWindow != 0 {
		t.Fatalf("expected 0 window minutes, got %d", ranked[0].MinutesInWindow)
	}
}
