package history

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "runs", "history.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndList(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	base := time.UnixMilli(1_700_000_000_000)

	runs := []Run{
		{Sample: "leaf", Stage: StageGraph, Nodes: 12, Edges: 11, CreatedAt: base},
		{Sample: "leaf", Stage: StageVectorize, Curves: 3, Intersections: 2, CreatedAt: base.Add(time.Second)},
	}
	for _, r := range runs {
		if _, err := s.Record(ctx, r); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	got, err := s.List(ctx, 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("List() returned %d runs, want 2", len(got))
	}
	if got[0].Stage != StageVectorize || got[0].Curves != 3 || got[0].Intersections != 2 {
		t.Errorf("newest run = %+v, want vectorize with 3 curves", got[0])
	}
	if got[1].Nodes != 12 || got[1].Edges != 11 {
		t.Errorf("oldest run = %+v, want 12 nodes 11 edges", got[1])
	}
	if got[0].Session != s.Session() {
		t.Errorf("Session = %v, want %v", got[0].Session, s.Session())
	}
	if !got[1].CreatedAt.Equal(base) {
		t.Errorf("CreatedAt = %v, want %v", got[1].CreatedAt, base)
	}
}

func TestListLimit(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if _, err := s.Record(ctx, Run{Sample: "s", Stage: StageUpload}); err != nil {
			t.Fatal(err)
		}
	}
	got, err := s.List(ctx, 2)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("List(2) returned %d runs, want 2", len(got))
	}
}

func TestReopenKeepsRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Record(ctx, Run{Sample: "a", Stage: StageExport}); err != nil {
		t.Fatal(err)
	}
	first := s.Session()
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if s.Session() == first {
		t.Error("reopened store reused the session id")
	}
	got, err := s.List(ctx, 0)
	if err != nil || len(got) != 1 {
		t.Fatalf("List() = %d runs, %v, want 1, nil", len(got), err)
	}
	if got[0].Session != first {
		t.Errorf("Session = %v, want %v", got[0].Session, first)
	}
}

func TestClear(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	_, _ = s.Record(ctx, Run{Sample: "a", Stage: StageGraph})
	_, _ = s.Record(ctx, Run{Sample: "b", Stage: StageGraph})

	n, err := s.Clear(ctx)
	if err != nil || n != 2 {
		t.Errorf("Clear() = %d, %v, want 2, nil", n, err)
	}
	got, _ := s.List(ctx, 0)
	if len(got) != 0 {
		t.Errorf("List() after Clear = %d runs, want 0", len(got))
	}
}

func TestClosed(t *testing.T) {
	s, err := Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if _, err := s.Record(context.Background(), Run{}); !errors.Is(err, ErrClosed) {
		t.Errorf("Record() after Close error = %v, want ErrClosed", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}
