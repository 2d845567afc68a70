// Package memory provides an in-process RecordStore backend. It mirrors
// the SQLite backend's ordering and upsert semantics and is used for
// local runs and as the engine test fixture.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"daytrack/internal/core"
)

type reportKey struct {
	userKey string
	date    int64
}

type Store struct {
	mu       sync.Mutex
	seq      int64
	tasks    map[string]core.Task
	taskSeq  map[string]int64
	expenses map[string]core.Expense
	expSeq   map[string]int64
	reports  map[reportKey]core.DailyReport
	users    map[string]core.User
}

func NewStore() *Store {
	return &Store{
		tasks:    make(map[string]core.Task),
		taskSeq:  make(map[string]int64),
		expenses: make(map[string]core.Expense),
		expSeq:   make(map[string]int64),
		reports:  make(map[reportKey]core.DailyReport),
		users:    make(map[string]core.User),
	}
}

func (s *Store) Close() error { return nil }

func (s *Store) CreateTask(_ context.Context, t core.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.tasks[t.ID] = t
	s.taskSeq[t.ID] = s.seq
	return nil
}

func (s *Store) GetTask(_ context.Context, id string) (core.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok {
		return core.Task{}, fmt.Errorf("task %s: %w", id, core.ErrNotFound)
	}
	return t, nil
}

func (s *Store) UpdateTask(_ context.Context, t core.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.tasks[t.ID]
	if !ok {
		return fmt.Errorf("task %s: %w", t.ID, core.ErrNotFound)
	}
	old.Title = t.Title
	old.Completed = t.Completed
	s.tasks[t.ID] = old
	return nil
}

func (s *Store) DeleteTask(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[id]; !ok {
		return fmt.Errorf("task %s: %w", id, core.ErrNotFound)
	}
	delete(s.tasks, id)
	delete(s.taskSeq, id)
	return nil
}

func (s *Store) TasksInRange(_ context.Context, userKey string, r core.DateRange) ([]core.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []core.Task
	for _, t := range s.tasks {
		if t.UserKey == userKey && r.Contains(t.Date) {
			out = append(out, t)
		}
	}
	s.sortByCreationDesc(out)
	return out, nil
}

func (s *Store) InsertTasks(_ context.Context, tasks []core.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range tasks {
		s.seq++
		s.tasks[t.ID] = t
		s.taskSeq[t.ID] = s.seq
	}
	return nil
}

func (s *Store) LatestTaskBefore(_ context.Context, userKey string, before time.Time) (core.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var latest core.Task
	found := false
	for _, t := range s.tasks {
		if t.UserKey != userKey || !t.Date.Before(before) {
			continue
		}
		if !found || t.Date.After(latest.Date) {
			latest = t
			found = true
		}
	}
	if !found {
		return core.Task{}, fmt.Errorf("no task before %s for %s: %w",
			before.Format("2006-01-02"), userKey, core.ErrNotFound)
	}
	return latest, nil
}

func (s *Store) CreateExpense(_ context.Context, e core.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.expenses[e.ID] = e
	s.expSeq[e.ID] = s.seq
	return nil
}

func (s *Store) GetExpense(_ context.Context, id string) (core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.expenses[id]
	if !ok {
		return core.Expense{}, fmt.Errorf("expense %s: %w", id, core.ErrNotFound)
	}
	return e, nil
}

func (s *Store) UpdateExpense(_ context.Context, e core.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.expenses[e.ID]
	if !ok {
		return fmt.Errorf("expense %s: %w", e.ID, core.ErrNotFound)
	}
	old.Amount = e.Amount
	old.Description = e.Description
	s.expenses[e.ID] = old
	return nil
}

func (s *Store) DeleteExpense(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.expenses[id]; !ok {
		return fmt.Errorf("expense %s: %w", id, core.ErrNotFound)
	}
	delete(s.expenses, id)
	delete(s.expSeq, id)
	return nil
}

func (s *Store) ExpensesInRange(_ context.Context, userKey string, r core.DateRange) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []core.Expense
	for _, e := range s.expenses {
		if e.UserKey == userKey && r.Contains(e.Date) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return s.expSeq[out[i].ID] > s.expSeq[out[j].ID]
	})
	return out, nil
}

func (s *Store) UpsertDailyReport(_ context.Context, rep core.DailyReport) (core.DailyReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := reportKey{userKey: rep.UserKey, date: rep.Date.UnixMilli()}
	if existing, ok := s.reports[key]; ok {
		rep.CreatedAt = existing.CreatedAt
	} else {
		rep.CreatedAt = time.Now()
	}
	s.reports[key] = rep
	return rep, nil
}

func (s *Store) GetDailyReport(_ context.Context, userKey string, r core.DateRange) (core.DailyReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rep := range s.reports {
		if rep.UserKey == userKey && r.Contains(rep.Date) {
			return rep, nil
		}
	}
	return core.DailyReport{}, fmt.Errorf("report for %s: %w", userKey, core.ErrNotFound)
}

func (s *Store) ReportsInRange(_ context.Context, userKey string, r core.DateRange) ([]core.DailyReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []core.DailyReport
	for _, rep := range s.reports {
		if rep.UserKey == userKey && r.Contains(rep.Date) {
			out = append(out, rep)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (s *Store) UpsertUser(_ context.Context, u core.User) (core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.users[u.Email]; ok {
		u.CreatedAt = existing.CreatedAt
	} else {
		u.CreatedAt = time.Now()
	}
	s.users[u.Email] = u
	return u, nil
}

// ReportCount reports how many daily report rows exist for a user. Test
// helper for the one-row-per-day invariant.
func (s *Store) ReportCount(userKey string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, rep := range s.reports {
		if rep.UserKey == userKey {
			n++
		}
	}
	return n
}

// sortByCreationDesc orders newest first, insertion order breaking ties,
// matching the SQLite backend's ORDER BY created_at DESC, rowid DESC.
func (s *Store) sortByCreationDesc(tasks []core.Task) {
	sort.Slice(tasks, func(i, j int) bool {
		if !tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
		}
		return s.taskSeq[tasks[i].ID] > s.taskSeq[tasks[j].ID]
	})
}
