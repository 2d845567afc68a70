package worker

import (
	"context"
	"testing"
	"time"

	"daytrack/internal/amqp"
	"daytrack/internal/core"
	"daytrack/internal/services"
	"daytrack/internal/store/memory"
)

func TestHandleSyncMessageRepairsReport(t *testing.T) {
	st := memory.NewStore()
	ctx := context.Background()
	day := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	// Records exist but the day was never rolled up, as after a failed
	// inline sync.
	st.CreateTask(ctx, core.Task{
		ID: "t1", UserKey: "alice@example.com", Title: "left behind",
		Completed: true, Date: day, CreatedAt: time.Now(),
	})

	w := NewResyncWorker(services.NewRollupService(st, nil, time.UTC), nil)

	msg := amqp.NewReportSyncMessage("alice@example.com", day)
	if err := w.HandleSyncMessage(ctx, msg); err != nil {
		t.Fatalf("HandleSyncMessage: %v", err)
	}

	rep, err := st.GetDailyReport(ctx, "alice@example.com", core.DayWindow(day, time.UTC))
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	if rep.TasksCreated != 1 || rep.TasksCompleted != 1 {
		t.Errorf("report = %d/%d, want 1/1", rep.TasksCreated, rep.TasksCompleted)
	}
	if rep.ProductivityRating != 5 {
		t.Errorf("rating = %v, want 5", rep.ProductivityRating)
	}
}

func TestHandleSyncMessageIsIdempotent(t *testing.T) {
	st := memory.NewStore()
	ctx := context.Background()
	day := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	st.CreateTask(ctx, core.Task{
		ID: "t1", UserKey: "alice@example.com", Title: "once",
		Date: day, CreatedAt: time.Now(),
	})

	w := NewResyncWorker(services.NewRollupService(st, nil, time.UTC), nil)
	msg := amqp.NewReportSyncMessage("alice@example.com", day)

	for i := 0; i < 3; i++ {
		if err := w.HandleSyncMessage(ctx, msg); err != nil {
			t.Fatalf("replay %d: %v", i, err)
		}
	}

	if n := st.ReportCount("alice@example.com"); n != 1 {
		t.Errorf("report rows = %d, want 1 after replays", n)
	}
}
