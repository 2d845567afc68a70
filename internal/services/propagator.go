package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"daytrack/internal/core"
	"daytrack/internal/store"
)

// Propagator carries a user's task list forward into a newly requested
// empty day. Reading a day with no tasks clones the full task list of the
// most recent prior active day, not merely yesterday's, as fresh
// incomplete tasks dated to the requested day.
type Propagator struct {
	store  store.RecordStore
	rollup *RollupService
	loc    *time.Location
	now    func() time.Time
}

func NewPropagator(st store.RecordStore, rollup *RollupService, loc *time.Location, now func() time.Time) *Propagator {
	if now == nil {
		now = time.Now
	}
	return &Propagator{
		store:  st,
		rollup: rollup,
		loc:    loc,
		now:    now,
	}
}

// EnsureDay returns the user's tasks for the day containing date, in
// descending creation order, materializing the day first when it is
// empty. A second call for the same day short-circuits on the first
// query and never clones again.
//
// Two concurrent calls for the same empty day can both pass the empty
// check and both clone; the duplicate carry-forward is an accepted race,
// coordinated no further than the store's own guarantees.
func (p *Propagator) EnsureDay(ctx context.Context, email string, date time.Time) ([]core.Task, error) {
	userKey := core.NormalizeUserKey(email)
	if userKey == "" {
		return nil, core.ErrEmptyUserKey
	}

	win := core.DayWindow(date, p.loc)

	tasks, err := p.store.TasksInRange(ctx, userKey, win)
	if err != nil {
		return nil, fmt.Errorf("load day tasks: %w", err)
	}
	if len(tasks) > 0 {
		return tasks, nil
	}

	// The day is empty: locate the most recent task dated strictly before
	// this day's window. No prior task means nothing to carry forward.
	last, err := p.store.LatestTaskBefore(ctx, userKey, win.Start)
	if errors.Is(err, core.ErrNotFound) {
		return []core.Task{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("locate prior active day: %w", err)
	}

	// The template set is the full task list of that prior day.
	prevWin := core.DayWindow(last.Date, p.loc)
	templates, err := p.store.TasksInRange(ctx, userKey, prevWin)
	if err != nil {
		return nil, fmt.Errorf("load template tasks: %w", err)
	}

	now := p.now()
	clones := make([]core.Task, 0, len(templates))
	for _, tpl := range templates {
		clones = append(clones, core.Task{
			ID:        uuid.NewString(),
			UserKey:   tpl.UserKey,
			Title:     tpl.Title,
			Completed: false,
			Date:      win.Start,
			CreatedAt: now,
		})
	}

	// A prior task exists but its window came back empty. Should not
	// happen; treated as an empty day without a sync.
	if len(clones) == 0 {
		return []core.Task{}, nil
	}

	if err := p.store.InsertTasks(ctx, clones); err != nil {
		return nil, fmt.Errorf("insert cloned tasks: %w", err)
	}

	slog.InfoContext(ctx, "Propagated tasks into empty day",
		"user", userKey,
		"from", prevWin.Start.Format("2006-01-02"),
		"to", win.Start.Format("2006-01-02"),
		"count", len(clones))

	// Clones are committed at this point; a sync failure leaves the day's
	// report stale until the next mutation repairs it.
	if _, err := p.rollup.SyncDay(ctx, userKey, win.Start); err != nil {
		return nil, fmt.Errorf("sync propagated day: %w", err)
	}

	tasks, err = p.store.TasksInRange(ctx, userKey, win)
	if err != nil {
		return nil, fmt.Errorf("reload day tasks: %w", err)
	}
	return tasks, nil
}
