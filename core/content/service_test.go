package content_test

import (
	"context"
	"testing"

	"github.com/playlearnspark/backend/core"
	"github.com/playlearnspark/backend/core/content"
	inmemdb "github.com/playlearnspark/backend/storage/database/inmem"
)

func newTestService(t *testing.T) *content.Service {
	t.Helper()
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("opening db: %v", err)
	}
	return content.NewService(inmemdb.NewLessonRepository(db))
}

func mustCreate(t *testing.T, svc *content.Service, nl content.NewLesson) content.Lesson {
	t.Helper()
	if err := nl.Validate(); err != nil {
		t.Fatalf("validating lesson: %v", err)
	}
	les, err := svc.Create(context.Background(), nl, "editor-1")
	if err != nil {
		t.Fatalf("creating lesson: %v", err)
	}
	return les
}

func TestCreateLesson(t *testing.T) {
	svc := newTestService(t)

	les := mustCreate(t, svc, content.NewLesson{
		Title:  "Counting with Trains",
		Module: "math",
		Body:   "All aboard!\nCount the wagons as they pass.",
	})
	if les.Slug != "counting-with-trains" {
		t.Errorf("Slug = %q; want counting-with-trains", les.Slug)
	}
	if les.Status != content.StatusDraft {
		t.Errorf("Status = %q; new lessons default to draft", les.Status)
	}
	if les.Revision != 1 {
		t.Errorf("Revision = %d; want 1", les.Revision)
	}

	// a second lesson may not take the same slug
	nl := content.NewLesson{Title: "counting with trains", Module: "math", Body: "different"}
	if err := nl.Validate(); err != nil {
		t.Fatalf("validating lesson: %v", err)
	}
	if _, err := svc.Create(context.Background(), nl, "editor-1"); err == nil {
		t.Error("duplicate slug should be rejected")
	} else if _, ok := err.(*core.ValidationError); !ok {
		t.Errorf("expected *core.ValidationError, got %T", err)
	}
}

func TestUpdateLessonRevisions(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	les := mustCreate(t, svc, content.NewLesson{
		Title:  "The Water Cycle",
		Module: "science",
		Body:   "Water goes up.\nWater comes down.",
	})

	// a status flip alone records no new revision
	ul := content.UpdateLesson{Status: content.StatusPublished}
	if err := ul.Validate(les); err != nil {
		t.Fatalf("validating update: %v", err)
	}
	les, err := svc.Update(ctx, les.ID, ul, "editor-2")
	if err != nil {
		t.Fatalf("publishing lesson: %v", err)
	}
	if les.Revision != 1 {
		t.Errorf("Revision = %d after status change; want 1", les.Revision)
	}
	if !les.IsPublished() {
		t.Error("lesson should be published")
	}

	// editing the body does
	ul = content.UpdateLesson{Body: "Water goes up as vapor.\nWater comes down as rain."}
	if err = ul.Validate(les); err != nil {
		t.Fatalf("validating update: %v", err)
	}
	les, err = svc.Update(ctx, les.ID, ul, "editor-2")
	if err != nil {
		t.Fatalf("editing lesson: %v", err)
	}
	if les.Revision != 2 {
		t.Errorf("Revision = %d after body edit; want 2", les.Revision)
	}

	revs, err := svc.Revisions(ctx, les.ID)
	if err != nil {
		t.Fatalf("listing revisions: %v", err)
	}
	if len(revs) != 2 {
		t.Fatalf("revisions = %d; want 2", len(revs))
	}
	if revs[0].Revision != 1 || revs[1].Revision != 2 {
		t.Errorf("revision numbers = %d, %d; want 1, 2", revs[0].Revision, revs[1].Revision)
	}
	if revs[0].CreatedBy != "editor-1" || revs[1].CreatedBy != "editor-2" {
		t.Errorf("revision authors = %q, %q", revs[0].CreatedBy, revs[1].CreatedBy)
	}
}

func TestCompareRevisions(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	les := mustCreate(t, svc, content.NewLesson{
		Title:  "Colors Around Us",
		Module: "art",
		Body:   "Red is warm.\nBlue is cool.\nGreen is calm.",
	})

	ul := content.UpdateLesson{Body: "Red is warm.\nYellow is bright.\nBlue is cool.\nGreen is calm."}
	if err := ul.Validate(les); err != nil {
		t.Fatalf("validating update: %v", err)
	}
	if _, err := svc.Update(ctx, les.ID, ul, "editor-1"); err != nil {
		t.Fatalf("editing lesson: %v", err)
	}

	diff, err := svc.Compare(ctx, les.ID, 1, 0) // 0 = latest
	if err != nil {
		t.Fatalf("comparing revisions: %v", err)
	}
	if diff.From != 1 || diff.To != 2 {
		t.Errorf("compared %d..%d; want 1..2", diff.From, diff.To)
	}
	if diff.Diff.Added != 1 || diff.Diff.Removed != 0 {
		t.Errorf("diff counts +%d -%d; want +1 -0", diff.Diff.Added, diff.Diff.Removed)
	}
	// the unchanged lines after the insertion stay equal
	var inserted bool
	for _, line := range diff.Diff.Lines {
		if line.Op == content.DiffInsert && line.Text == "Yellow is bright." {
			inserted = true
		}
		if line.Op != content.DiffEqual && line.Text == "Blue is cool." {
			t.Errorf("unchanged line reported as %q", line.Op)
		}
	}
	if !inserted {
		t.Error("inserted line not reported")
	}

	// unknown revisions are rejected
	if _, err = svc.Compare(ctx, les.ID, 7, 0); err != content.ErrRevisionNotFound {
		t.Errorf("err = %v; want ErrRevisionNotFound", err)
	}
}
