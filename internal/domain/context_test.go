package domain

import "testing"

func ids(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestBuildWorkContext(t *testing.T) {
	items := []Item{
		{ID: "FEAT-001", Title: "Login page", Status: StatusInProgress, Priority: PriorityMedium},
		{ID: "BUG-001", Title: "Crash on save", Status: StatusReview, Priority: PriorityLow},
		{ID: "BUG-002", Title: "Data loss", Status: StatusBacklog, Priority: PriorityCritical},
		{ID: "TASK-001", Title: "Docs", Status: StatusTodo, Priority: PriorityHigh, Labels: []string{"auth"}},
		{ID: "TASK-002", Title: "Cleanup", Status: StatusTodo, Priority: PriorityLow},
		{ID: "TASK-003", Title: "Shipped", Status: StatusDone, Priority: PriorityCritical},
	}

	t.Run("with backlog", func(t *testing.T) {
		ctx := BuildWorkContext(items, true, nil)
		assertIDs(t, "in progress", ids(ctx.InProgress), "FEAT-001")
		assertIDs(t, "review", ids(ctx.InReview), "BUG-001")
		assertIDs(t, "upcoming", ids(ctx.Upcoming), "BUG-002", "TASK-001")
	})

	t.Run("without backlog", func(t *testing.T) {
		ctx := BuildWorkContext(items, false, nil)
		if len(ctx.Upcoming) != 0 {
			t.Errorf("expected no upcoming items, got %v", ids(ctx.Upcoming))
		}
	})

	t.Run("keywords", func(t *testing.T) {
		ctx := BuildWorkContext(items, true, []string{"LOGIN", "auth"})
		assertIDs(t, "in progress", ids(ctx.InProgress), "FEAT-001")
		assertIDs(t, "upcoming", ids(ctx.Upcoming), "TASK-001")
		if len(ctx.InReview) != 0 {
			t.Errorf("expected no review items, got %v", ids(ctx.InReview))
		}
	})

	t.Run("duplicate ids are reported once", func(t *testing.T) {
		dup := append(items, Item{ID: "FEAT-001", Title: "Login copy", Status: StatusInProgress})
		ctx := BuildWorkContext(dup, true, nil)
		assertIDs(t, "in progress", ids(ctx.InProgress), "FEAT-001")
	})

	t.Run("empty", func(t *testing.T) {
		if !BuildWorkContext(nil, true, nil).Empty() {
			t.Error("expected empty context")
		}
	})
}

func assertIDs(t *testing.T, label string, got []string, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: got %v, want %v", label, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("%s[%d]: got %s, want %s", label, i, got[i], want[i])
		}
	}
}
