package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/MrJamesThe3rd/placebi/internal/metrics"
)

// ErrNoState is returned by a Repository that has never stored a snapshot.
var ErrNoState = errors.New("no saved state")

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=ledger
type Repository interface {
	LoadState(ctx context.Context) ([]byte, error)
	SaveState(ctx context.Context, blob []byte) error
}

// Service owns the application state. Every mutation is written through the
// Repository before the call returns; reads always see the last committed state.
type Service struct {
	repo Repository
	now  func() time.Time

	mu    sync.RWMutex
	state State
}

type Option func(*Service)

// WithClock replaces time.Now as the source of UpdatedAt timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo: repo,
		now:  time.Now,
	}
	s.state.Reset()

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Load replaces the in-memory state with the stored snapshot. A missing snapshot
// leaves the empty state in place. On a read or decode failure the state is
// reset to empty and the error is returned for the caller to report.
func (s *Service) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Reset()

	blob, err := s.repo.LoadState(ctx)
	if err != nil {
		if errors.Is(err, ErrNoState) {
			return nil
		}

		return fmt.Errorf("loading state: %w", err)
	}

	st, err := DecodeState(blob)
	if err != nil {
		return err
	}

	s.state = st

	return nil
}

// Save writes the current state through the Repository.
func (s *Service) Save(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.saveLocked(ctx, "save")
}

func (s *Service) saveLocked(ctx context.Context, op string) error {
	blob, err := EncodeState(s.state)
	if err == nil {
		err = s.repo.SaveState(ctx, blob)
	}

	metrics.ObservePersist(op, err)

	if err != nil {
		slog.Error("failed to persist state", "op", op, "error", err)
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}

	return nil
}

// mutate applies fn under the write lock and persists when fn reports a change.
func (s *Service) mutate(ctx context.Context, op string, fn func(st *State) bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !fn(&s.state) {
		return nil
	}

	return s.saveLocked(ctx, op)
}

func (s *Service) SetRestaurant(ctx context.Context, r Restaurant) error {
	return s.mutate(ctx, "set_restaurant", func(st *State) bool {
		st.SetRestaurant(r)
		return true
	})
}

func (s *Service) AddRevenue(ctx context.Context, r DailyRevenue) error {
	return s.mutate(ctx, "add_revenue", func(st *State) bool {
		st.AddRevenue(r)
		return true
	})
}

func (s *Service) AddExpense(ctx context.Context, e DailyExpense) error {
	return s.mutate(ctx, "add_expense", func(st *State) bool {
		st.AddExpense(e)
		return true
	})
}

// UpdateRevenue merges patch into the revenue with the given id. Unknown ids are ignored.
func (s *Service) UpdateRevenue(ctx context.Context, id string, patch RevenuePatch) error {
	return s.mutate(ctx, "update_revenue", func(st *State) bool {
		return st.UpdateRevenue(id, patch, s.now())
	})
}

// UpdateExpense merges patch into the expense with the given id. Unknown ids are ignored.
func (s *Service) UpdateExpense(ctx context.Context, id string, patch ExpensePatch) error {
	return s.mutate(ctx, "update_expense", func(st *State) bool {
		return st.UpdateExpense(id, patch, s.now())
	})
}

func (s *Service) DeleteRevenue(ctx context.Context, id string) error {
	return s.mutate(ctx, "delete_revenue", func(st *State) bool {
		return st.DeleteRevenue(id)
	})
}

func (s *Service) DeleteExpense(ctx context.Context, id string) error {
	return s.mutate(ctx, "delete_expense", func(st *State) bool {
		return st.DeleteExpense(id)
	})
}

// Reset clears the profile and the whole history.
func (s *Service) Reset(ctx context.Context) error {
	return s.mutate(ctx, "reset", func(st *State) bool {
		st.Reset()
		return true
	})
}

// Snapshot returns a deep copy of the current state.
func (s *Service) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state.Clone()
}

// Restaurant returns the profile and whether setup has been done.
func (s *Service) Restaurant() (Restaurant, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state.Restaurant == nil {
		return Restaurant{}, false
	}

	return *s.state.Restaurant, true
}

func (s *Service) Revenue(id string) (DailyRevenue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := slices.IndexFunc(s.state.Revenues, func(r DailyRevenue) bool { return r.ID == id })
	if i < 0 {
		return DailyRevenue{}, ErrNotFound
	}

	return s.state.Revenues[i].clone(), nil
}

func (s *Service) Expense(id string) (DailyExpense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := slices.IndexFunc(s.state.Expenses, func(e DailyExpense) bool { return e.ID == id })
	if i < 0 {
		return DailyExpense{}, ErrNotFound
	}

	return s.state.Expenses[i].clone(), nil
}

func (s *Service) RevenuesBetween(start, end time.Time) []DailyRevenue {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state.RevenuesBetween(start, end)
}

func (s *Service) ExpensesBetween(start, end time.Time) []DailyExpense {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state.ExpensesBetween(start, end)
}
