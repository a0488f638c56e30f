package student_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/playlearnspark/backend/core"
	"github.com/playlearnspark/backend/core/student"
	inmemdb "github.com/playlearnspark/backend/storage/database/inmem"
)

func newTestService(t *testing.T) *student.Service {
	t.Helper()
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("opening db: %v", err)
	}
	return student.NewService(inmemdb.NewStudentRepository(db))
}

func TestCreateCapsProfilesPerParent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for i := 0; i < student.MaxPerParent; i++ {
		ns := student.NewStudent{Name: fmt.Sprintf("Kid %d", i+1), Age: 4, Avatar: "🐸"}
		if _, err := svc.Create(ctx, "parent-1", ns); err != nil {
			t.Fatalf("creating student %d: %v", i+1, err)
		}
	}

	_, err := svc.Create(ctx, "parent-1", student.NewStudent{Name: "One Too Many", Age: 4, Avatar: "🐸"})
	if vErr, ok := err.(*core.ValidationError); !ok || vErr.Err != student.ErrMaxStudents {
		t.Errorf("err = %v; want ErrMaxStudents", err)
	}

	// another parent is unaffected
	if _, err = svc.Create(ctx, "parent-2", student.NewStudent{Name: "Noor", Age: 5, Avatar: "⭐"}); err != nil {
		t.Errorf("creating for another parent: %v", err)
	}
}

func TestGetOwned(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	std, err := svc.Create(ctx, "parent-1", student.NewStudent{Name: "Zoe", Age: 6, Avatar: "🦄"})
	if err != nil {
		t.Fatalf("creating student: %v", err)
	}

	got, err := svc.GetOwned(ctx, "parent-1", std.ID)
	if err != nil {
		t.Fatalf("owner fetch: %v", err)
	}
	if got.ID != std.ID {
		t.Errorf("got %+v; want %+v", got, std)
	}

	// other parents cannot see the profile at all
	if _, err = svc.GetOwned(ctx, "parent-2", std.ID); err != student.ErrNotFound {
		t.Errorf("stranger fetch err = %v; want ErrNotFound", err)
	}
}

func TestUpdate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	ns := student.NewStudent{Name: "Zoe", Age: 6}
	if err := ns.Validate(); err != nil {
		t.Fatalf("validating new student: %v", err)
	}
	std, err := svc.Create(ctx, "parent-1", ns)
	if err != nil {
		t.Fatalf("creating student: %v", err)
	}
	if std.Avatar != "⭐" {
		t.Errorf("Avatar = %q; want the default ⭐", std.Avatar)
	}

	us := student.UpdateStudent{Avatar: "🐙"}
	if err = us.Validate(std); err != nil {
		t.Fatalf("validating update: %v", err)
	}
	got, err := svc.Update(ctx, std.ID, us)
	if err != nil {
		t.Fatalf("updating student: %v", err)
	}
	// untouched fields fall back to their current values
	if got.Name != "Zoe" || got.Age != 6 || got.Avatar != "🐙" {
		t.Errorf("updated student = %+v; want Zoe/6/🐙", got)
	}
}
