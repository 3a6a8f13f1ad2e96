// Package storetest provides a conformance suite for store.Store backends.
package storetest

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jacentio/vitae/resume"
	"github.com/jacentio/vitae/store"
)

// Factory returns an empty backend for one subtest.
type Factory func(t *testing.T) store.Store

// BoundedFactory returns an empty backend holding at most capacity resumes.
type BoundedFactory func(t *testing.T, capacity int) store.Store

// Run exercises the storage contract against backends created by newStore.
func Run(t *testing.T, newStore Factory) {
	tests := []struct {
		name string
		fn   func(t *testing.T, s store.Store)
	}{
		{"SaveLoad", testSaveLoad},
		{"SaveLoadFull", testSaveLoadFull},
		{"SaveDuplicate", testSaveDuplicate},
		{"SaveNil", testSaveNil},
		{"LoadMissing", testLoadMissing},
		{"Update", testUpdate},
		{"UpdateMissing", testUpdateMissing},
		{"Delete", testDelete},
		{"DeleteMissing", testDeleteMissing},
		{"Clear", testClear},
		{"AllSorted", testAllSorted},
		{"AllSortedTieBreak", testAllSortedTieBreak},
		{"AllSortedSnapshot", testAllSortedSnapshot},
		{"CopySemantics", testCopySemantics},
		{"Lifecycle", testLifecycle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fn(t, newStore(t))
		})
	}
}

// RunBounded exercises capacity limits against backends created by newStore.
func RunBounded(t *testing.T, newStore BoundedFactory) {
	t.Run("CapacityScenario", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t, 2)
		a, b, c := MustNew(t, "A", ""), MustNew(t, "B", ""), MustNew(t, "C", "")

		mustSave(t, s, a)
		mustSave(t, s, b)
		if err := s.Save(ctx, c); !errors.Is(err, store.ErrCapacityExceeded) {
			t.Fatalf("expected ErrCapacityExceeded, got %v", err)
		}
		expectSize(t, s, 2)

		if err := s.Delete(ctx, a.ID()); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		mustSave(t, s, c)
		expectSize(t, s, 2)
	})

	t.Run("ExactCapacity", func(t *testing.T) {
		ctx := context.Background()
		const n = 10
		s := newStore(t, n)
		ids := make([]string, 0, n)
		for i := 0; i < n; i++ {
			r := MustNew(t, fmt.Sprintf("User %02d", i), "")
			mustSave(t, s, r)
			ids = append(ids, r.ID())
		}
		if err := s.Save(ctx, MustNew(t, "Overflow", "")); !errors.Is(err, store.ErrCapacityExceeded) {
			t.Fatalf("expected ErrCapacityExceeded on save %d, got %v", n+1, err)
		}

		// churn while staying at capacity
		for i := 0; i < n; i += 2 {
			if err := s.Delete(ctx, ids[i]); err != nil {
				t.Fatalf("Delete failed: %v", err)
			}
			mustSave(t, s, MustNew(t, fmt.Sprintf("Refill %02d", i), ""))
		}
		expectSize(t, s, n)
		if err := s.Save(ctx, MustNew(t, "Overflow", "")); !errors.Is(err, store.ErrCapacityExceeded) {
			t.Fatalf("expected ErrCapacityExceeded after churn, got %v", err)
		}
	})

	t.Run("DuplicateBeatsCapacity", func(t *testing.T) {
		s := newStore(t, 1)
		a := MustNew(t, "A", "")
		mustSave(t, s, a)
		if err := s.Save(context.Background(), a); !errors.Is(err, store.ErrDuplicateID) {
			t.Errorf("expected ErrDuplicateID when full, got %v", err)
		}
	})

	t.Run("UpdateWhenFull", func(t *testing.T) {
		s := newStore(t, 1)
		a := MustNew(t, "A", "")
		mustSave(t, s, a)
		if err := a.SetFullName("A2"); err != nil {
			t.Fatal(err)
		}
		if err := s.Update(context.Background(), a); err != nil {
			t.Errorf("expected Update to succeed at capacity, got %v", err)
		}
	})
}

// MustNew builds a resume or fails the test.
func MustNew(t *testing.T, name, location string) *resume.Resume {
	t.Helper()
	r, err := resume.New(name, location)
	if err != nil {
		t.Fatalf("resume.New(%q) failed: %v", name, err)
	}
	return r
}

// MustNewWithID builds a resume with a fixed id or fails the test.
func MustNewWithID(t *testing.T, id, name string) *resume.Resume {
	t.Helper()
	r, err := resume.NewWithID(id, name, "")
	if err != nil {
		t.Fatalf("resume.NewWithID(%q) failed: %v", id, err)
	}
	return r
}

// Full returns a resume with every kind of field populated.
func Full(t *testing.T) *resume.Resume {
	t.Helper()
	r := MustNew(t, "Иван Иванов", "Москва")
	r.AddContact(resume.Mail, "ivan@example.com")
	r.AddContact(resume.Phone, "+7-495-123-4567")
	r.AddContact(resume.Skype, "ivan.skype")
	if err := r.AddTextSection(resume.Objective, "Lead developer"); err != nil {
		t.Fatal(err)
	}
	if err := r.AddTextSection(resume.Achievement, "one", "two", "three"); err != nil {
		t.Fatal(err)
	}
	org := resume.NewOrganization("Test Company", "http://test.com",
		resume.NewPeriod(2020, time.January, 2023, time.December, "Senior Developer", "Development work"),
		resume.NewPeriod(2024, time.January, 0, 0, "Lead", ""))
	if err := r.AddOrganizationSection(resume.Experience, org); err != nil {
		t.Fatal(err)
	}
	if err := r.AddSection(resume.Education, resume.EmptySection(resume.Education)); err != nil {
		t.Fatal(err)
	}
	return r
}

func mustSave(t *testing.T, s store.Store, r *resume.Resume) {
	t.Helper()
	if err := s.Save(context.Background(), r); err != nil {
		t.Fatalf("Save(%s) failed: %v", r.FullName(), err)
	}
}

func expectSize(t *testing.T, s store.Store, want int) {
	t.Helper()
	got, err := s.Size(context.Background())
	if err != nil {
		t.Fatalf("Size failed: %v", err)
	}
	if got != want {
		t.Errorf("expected size %d, got %d", want, got)
	}
}

func sortedNames(t *testing.T, s store.Store) []string {
	t.Helper()
	list, err := s.AllSorted(context.Background())
	if err != nil {
		t.Fatalf("AllSorted failed: %v", err)
	}
	names := make([]string, len(list))
	for i, r := range list {
		names[i] = r.FullName()
	}
	return names
}

func testSaveLoad(t *testing.T, s store.Store) {
	r := MustNew(t, "Bob Smith", "NYC")
	mustSave(t, s, r)

	got, err := s.Load(context.Background(), r.ID())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.FullName() != "Bob Smith" {
		t.Errorf("expected fullName 'Bob Smith', got %q", got.FullName())
	}
	if got.Location() != "NYC" {
		t.Errorf("expected location 'NYC', got %q", got.Location())
	}
	if !got.Equal(r) {
		t.Errorf("expected loaded resume equal to saved\nwant %v\ngot  %v", r, got)
	}
	expectSize(t, s, 1)
}

func testSaveLoadFull(t *testing.T, s store.Store) {
	r := Full(t)
	mustSave(t, s, r)

	got, err := s.Load(context.Background(), r.ID())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !got.Equal(r) {
		t.Errorf("expected every field preserved\nwant %v\ngot  %v", r, got)
	}
}

func testSaveDuplicate(t *testing.T, s store.Store) {
	r := MustNew(t, "Alice", "")
	mustSave(t, s, r)

	dup := MustNewWithID(t, r.ID(), "Someone Else")
	if err := s.Save(context.Background(), dup); !errors.Is(err, store.ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
	expectSize(t, s, 1)

	got, err := s.Load(context.Background(), r.ID())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.FullName() != "Alice" {
		t.Errorf("expected original kept, got %q", got.FullName())
	}
}

func testSaveNil(t *testing.T, s store.Store) {
	ctx := context.Background()
	if err := s.Save(ctx, nil); !errors.Is(err, store.ErrNilResume) {
		t.Errorf("Save: expected ErrNilResume, got %v", err)
	}
	if err := s.Update(ctx, nil); !errors.Is(err, store.ErrNilResume) {
		t.Errorf("Update: expected ErrNilResume, got %v", err)
	}
	expectSize(t, s, 0)
}

func testLoadMissing(t *testing.T, s store.Store) {
	if _, err := s.Load(context.Background(), "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func testUpdate(t *testing.T, s store.Store) {
	ctx := context.Background()
	r := MustNew(t, "Alice", "Paris")
	r.AddContact(resume.Mail, "alice@example.com")
	r.AddContact(resume.Phone, "+1-555-0100")
	mustSave(t, s, r)

	r.AddContact(resume.Mail, "new@example.com")
	r.RemoveContact(resume.Phone)
	if err := r.SetFullName("Alicia"); err != nil {
		t.Fatal(err)
	}
	if err := s.Update(ctx, r); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, err := s.Load(ctx, r.ID())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !got.Equal(r) {
		t.Errorf("expected updated resume\nwant %v\ngot  %v", r, got)
	}
	if v, _ := got.Contact(resume.Mail); v != "new@example.com" {
		t.Errorf("expected MAIL 'new@example.com', got %q", v)
	}
	if _, ok := got.Contact(resume.Phone); ok {
		t.Error("expected PHONE removed")
	}
	expectSize(t, s, 1)
}

func testUpdateMissing(t *testing.T, s store.Store) {
	r := MustNew(t, "Ghost", "")
	if err := s.Update(context.Background(), r); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	expectSize(t, s, 0)
}

func testDelete(t *testing.T, s store.Store) {
	ctx := context.Background()
	a, b, c := MustNew(t, "A", ""), MustNew(t, "B", ""), MustNew(t, "C", "")
	mustSave(t, s, a)
	mustSave(t, s, b)
	mustSave(t, s, c)

	if err := s.Delete(ctx, a.ID()); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	expectSize(t, s, 2)
	if _, err := s.Load(ctx, a.ID()); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	for _, r := range []*resume.Resume{b, c} {
		if _, err := s.Load(ctx, r.ID()); err != nil {
			t.Errorf("expected %s to survive delete of A, got %v", r.FullName(), err)
		}
	}
	if got := sortedNames(t, s); len(got) != 2 || got[0] != "B" || got[1] != "C" {
		t.Errorf("expected [B C], got %v", got)
	}
}

func testDeleteMissing(t *testing.T, s store.Store) {
	mustSave(t, s, MustNew(t, "A", ""))
	if err := s.Delete(context.Background(), "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	expectSize(t, s, 1)
}

func testClear(t *testing.T, s store.Store) {
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		mustSave(t, s, MustNew(t, fmt.Sprintf("User %d", i), ""))
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	expectSize(t, s, 0)
	if got := sortedNames(t, s); len(got) != 0 {
		t.Errorf("expected empty listing, got %v", got)
	}
	if err := s.Clear(ctx); err != nil {
		t.Errorf("expected Clear on empty store to succeed, got %v", err)
	}
	mustSave(t, s, MustNew(t, "After", ""))
	expectSize(t, s, 1)
}

func testAllSorted(t *testing.T, s store.Store) {
	mustSave(t, s, MustNew(t, "Boris", ""))
	mustSave(t, s, MustNew(t, "Alice", ""))

	got := sortedNames(t, s)
	if len(got) != 2 || got[0] != "Alice" || got[1] != "Boris" {
		t.Errorf("expected [Alice Boris], got %v", got)
	}
}

func testAllSortedTieBreak(t *testing.T, s store.Store) {
	for _, id := range []string{"c", "a", "b"} {
		mustSave(t, s, MustNewWithID(t, id, "Same Name"))
	}
	mustSave(t, s, MustNewWithID(t, "z", "Aaron"))

	list, err := s.AllSorted(context.Background())
	if err != nil {
		t.Fatalf("AllSorted failed: %v", err)
	}
	want := []string{"z", "a", "b", "c"}
	if len(list) != len(want) {
		t.Fatalf("expected %d resumes, got %d", len(want), len(list))
	}
	for i, r := range list {
		if r.ID() != want[i] {
			t.Errorf("position %d: expected id %q, got %q", i, want[i], r.ID())
		}
	}
}

func testAllSortedSnapshot(t *testing.T, s store.Store) {
	ctx := context.Background()
	a := MustNew(t, "Alice", "")
	mustSave(t, s, a)

	snapshot, err := s.AllSorted(ctx)
	if err != nil {
		t.Fatalf("AllSorted failed: %v", err)
	}
	mustSave(t, s, MustNew(t, "Boris", ""))
	if err := s.Delete(ctx, a.ID()); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if len(snapshot) != 1 || snapshot[0].FullName() != "Alice" {
		t.Errorf("expected snapshot unaffected by later writes, got %v", snapshot)
	}
	if got := sortedNames(t, s); len(got) != 1 || got[0] != "Boris" {
		t.Errorf("expected [Boris] on a fresh call, got %v", got)
	}
}

func testCopySemantics(t *testing.T, s store.Store) {
	ctx := context.Background()
	r := MustNew(t, "Alice", "")
	mustSave(t, s, r)

	// mutating the caller's copy must not reach the backend
	r.AddContact(resume.Mail, "leak@example.com")
	got, err := s.Load(ctx, r.ID())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if _, ok := got.Contact(resume.Mail); ok {
		t.Error("expected stored resume isolated from caller mutations")
	}

	// nor must mutating a loaded copy
	if err := got.SetFullName("Mallory"); err != nil {
		t.Fatal(err)
	}
	again, err := s.Load(ctx, r.ID())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if again.FullName() != "Alice" {
		t.Errorf("expected 'Alice', got %q", again.FullName())
	}
}

func testLifecycle(t *testing.T, s store.Store) {
	ctx := context.Background()
	r := MustNew(t, "Cycle", "")

	if err := s.Update(ctx, r); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("absent: expected Update ErrNotFound, got %v", err)
	}
	if err := s.Delete(ctx, r.ID()); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("absent: expected Delete ErrNotFound, got %v", err)
	}
	mustSave(t, s, r)
	if err := s.Save(ctx, r); !errors.Is(err, store.ErrDuplicateID) {
		t.Fatalf("stored: expected Save ErrDuplicateID, got %v", err)
	}
	if err := s.Update(ctx, r); err != nil {
		t.Fatalf("stored: Update failed: %v", err)
	}
	if err := s.Delete(ctx, r.ID()); err != nil {
		t.Fatalf("stored: Delete failed: %v", err)
	}
	mustSave(t, s, r)
	expectSize(t, s, 1)
}
