// Package store owns the client's in-memory collections and applies every
// mutation optimistically: the local change lands synchronously, the remote
// write confirms it in the background, and a failed write rolls the local
// change back. The UI never waits on the network and never permanently
// diverges from a rejected write.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/apto-jkhatri/it-asset-management-app/internal/models"
)

// Remote is the slice of the API client the store mutates through.
type Remote interface {
	Assets(ctx context.Context) ([]models.Asset, error)
	SaveAsset(ctx context.Context, a models.Asset) error
	DeleteAsset(ctx context.Context, id string) error
	Employees(ctx context.Context) ([]models.Employee, error)
	SaveEmployee(ctx context.Context, e models.Employee) error
	DeleteEmployee(ctx context.Context, id string) error
	Assignments(ctx context.Context) ([]models.Assignment, error)
	SaveAssignment(ctx context.Context, a models.Assignment) error
	MaintenanceLogs(ctx context.Context) ([]models.MaintenanceLog, error)
	SaveMaintenanceLog(ctx context.Context, m models.MaintenanceLog) error
	Requests(ctx context.Context) ([]models.AssetRequest, error)
	SaveRequest(ctx context.Context, r models.AssetRequest) error
}

// IdentitySource reports who is logged in; requests are stamped with it.
type IdentitySource interface {
	CurrentUser() *models.AuthProfile
}

// Store holds the five collections. All reads go through cloning accessors;
// only mutators and the poller's Replace* calls touch the slices.
type Store struct {
	remote   Remote
	identity IdentitySource
	log      zerolog.Logger
	now      func() time.Time

	mu          sync.RWMutex
	assets      []models.Asset
	employees   []models.Employee
	assignments []models.Assignment
	maintenance []models.MaintenanceLog
	requests    []models.AssetRequest

	wg sync.WaitGroup
}

func New(remote Remote, identity IdentitySource, log zerolog.Logger) *Store {
	return &Store{
		remote:   remote,
		identity: identity,
		log:      log,
		now:      time.Now,
	}
}

// confirm runs the remote write (and its rollback on failure) off the caller's
// goroutine, so mutators return as soon as the local apply is done.
func (s *Store) confirm(fn func()) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		fn()
	}()
}

// Wait blocks until all in-flight remote confirmations have settled.
func (s *Store) Wait() { s.wg.Wait() }

func (s *Store) today() string { return s.now().Format("2006-01-02") }

// --- snapshot accessors ---

func (s *Store) Assets() []models.Asset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.assets)
}

func (s *Store) Employees() []models.Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.employees)
}

func (s *Store) Assignments() []models.Assignment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.assignments)
}

func (s *Store) MaintenanceLogs() []models.MaintenanceLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.maintenance)
}

func (s *Store) Requests() []models.AssetRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.requests)
}

// --- wholesale replacement (poller) ---

func (s *Store) ReplaceAssets(items []models.Asset) {
	s.mu.Lock()
	s.assets = cloneSlice(items)
	s.mu.Unlock()
}

func (s *Store) ReplaceEmployees(items []models.Employee) {
	s.mu.Lock()
	s.employees = cloneSlice(items)
	s.mu.Unlock()
}

func (s *Store) ReplaceAssignments(items []models.Assignment) {
	s.mu.Lock()
	s.assignments = cloneSlice(items)
	s.mu.Unlock()
}

func (s *Store) ReplaceMaintenanceLogs(items []models.MaintenanceLog) {
	s.mu.Lock()
	s.maintenance = cloneSlice(items)
	s.mu.Unlock()
}

func (s *Store) ReplaceRequests(items []models.AssetRequest) {
	s.mu.Lock()
	s.requests = cloneSlice(items)
	s.mu.Unlock()
}

// Clear drops all five collections. Called on session teardown.
func (s *Store) Clear() {
	s.mu.Lock()
	s.assets = nil
	s.employees = nil
	s.assignments = nil
	s.maintenance = nil
	s.requests = nil
	s.mu.Unlock()
}

func cloneSlice[T any](items []T) []T {
	if len(items) == 0 {
		return nil
	}
	dup := make([]T, len(items))
	copy(dup, items)
	return dup
}
