package database

import (
	"context"
	"testing"
	"time"

	"github.com/example/preplab/pkg/models"
)

func TestTagCreateAndLookup(t *testing.T) {
	newTestDB(t)
	user := newTestUser(t, 100)
	repo := NewTagRepository()

	tag := newTestTag(t, user.ID, "System Design", "system-design")
	if tag.ID == 0 {
		t.Fatal("expected tag ID to be set")
	}

	bySlug, err := repo.GetBySlug(context.Background(), user.ID, "system-design")
	if err != nil {
		t.Fatalf("get by slug: %v", err)
	}
	if bySlug == nil || bySlug.ID != tag.ID {
		t.Fatalf("expected the created tag, got %+v", bySlug)
	}

	byID, err := repo.GetByID(context.Background(), user.ID, tag.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if byID == nil || byID.Slug != "system-design" {
		t.Fatalf("expected the created tag, got %+v", byID)
	}

	missing, err := repo.GetBySlug(context.Background(), user.ID, "nope")
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for a missing slug, got %+v", missing)
	}
}

func TestTagListOrderedByName(t *testing.T) {
	newTestDB(t)
	user := newTestUser(t, 100)
	newTestTag(t, user.ID, "SQL", "sql")
	newTestTag(t, user.ID, "Algorithms", "algorithms")
	newTestTag(t, user.ID, "ML", "ml")

	tags, err := NewTagRepository().ListByUser(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("list tags: %v", err)
	}
	want := []string{"Algorithms", "ML", "SQL"}
	if len(tags) != len(want) {
		t.Fatalf("expected %d tags, got %d", len(want), len(tags))
	}
	for i := range want {
		if tags[i].Name != want[i] {
			t.Fatalf("expected order %v, got %q at %d", want, tags[i].Name, i)
		}
	}
}

func TestSeedDefaultsIsIdempotent(t *testing.T) {
	newTestDB(t)
	user := newTestUser(t, 100)
	repo := NewTagRepository()
	defaults := []models.Tag{
		{Name: "SQL", Slug: "sql"},
		{Name: "ML", Slug: "ml"},
		{Name: "Behavioral", Slug: "behavioral"},
	}

	created, err := repo.SeedDefaults(context.Background(), user.ID, defaults)
	if err != nil {
		t.Fatalf("seed defaults: %v", err)
	}
	if created != 3 {
		t.Fatalf("expected 3 created, got %d", created)
	}

	created, err = repo.SeedDefaults(context.Background(), user.ID, defaults)
	if err != nil {
		t.Fatalf("seed defaults again: %v", err)
	}
	if created != 0 {
		t.Fatalf("expected 0 created on rerun, got %d", created)
	}

	tags, err := repo.ListByUser(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("list tags: %v", err)
	}
	if len(tags) != 3 {
		t.Fatalf("expected 3 tags after two seedings, got %d", len(tags))
	}
}

func TestSeedDefaultsKeepsUserRenames(t *testing.T) {
	newTestDB(t)
	user := newTestUser(t, 100)
	repo := NewTagRepository()

	newTestTag(t, user.ID, "My SQL Prep", "sql")
	created, err := repo.SeedDefaults(context.Background(), user.ID, []models.Tag{{Name: "SQL", Slug: "sql"}})
	if err != nil {
		t.Fatalf("seed defaults: %v", err)
	}
	if created != 0 {
		t.Fatalf("expected the existing slug to be skipped, created %d", created)
	}

	tag, err := repo.GetBySlug(context.Background(), user.ID, "sql")
	if err != nil {
		t.Fatalf("get tag: %v", err)
	}
	if tag.Name != "My SQL Prep" {
		t.Fatalf("expected the user's name kept, got %q", tag.Name)
	}
}

func TestTagDeleteRemovesAssociationsButNotTasks(t *testing.T) {
	newTestDB(t)
	user := newTestUser(t, 100)
	tag := newTestTag(t, user.ID, "SQL", "sql")
	task := newTestTask(t, user.ID, "SQL practice", time.Now().UTC(), tag.ID)

	if err := NewTagRepository().Delete(context.Background(), user.ID, tag.ID); err != nil {
		t.Fatalf("delete tag: %v", err)
	}

	got, err := NewTaskRepository().GetByID(context.Background(), user.ID, task.ID)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if got == nil {
		t.Fatal("expected the task to survive the tag deletion")
	}
	if len(got.Tags) != 0 {
		t.Fatalf("expected no tags on the task, got %d", len(got.Tags))
	}
}

func TestTagDeleteRejectsOtherUsers(t *testing.T) {
	newTestDB(t)
	owner := newTestUser(t, 100)
	intruder := newTestUser(t, 200)
	tag := newTestTag(t, owner.ID, "SQL", "sql")

	if err := NewTagRepository().Delete(context.Background(), intruder.ID, tag.ID); err == nil {
		t.Fatal("expected an error deleting another user's tag")
	}

	kept, err := NewTagRepository().GetByID(context.Background(), owner.ID, tag.ID)
	if err != nil {
		t.Fatalf("get tag: %v", err)
	}
	if kept == nil {
		t.Fatal("expected the tag to still exist")
	}
}
