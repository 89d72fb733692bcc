package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/apto-jkhatri/it-asset-management-app/internal/models"
)

// Every mutator follows the same contract: apply the change to the in-memory
// collection synchronously, then confirm it remotely in the background. A
// rejected remote write restores exactly the value captured before the apply.
// Composite operations (assign, return, approve, complete) issue independent
// sub-mutations with independent rollbacks; there is no multi-entity
// transaction, so a partial failure can leave one side persisted.

// --- assets ---

func (s *Store) AddAsset(ctx context.Context, a models.Asset) {
	s.mu.Lock()
	s.assets = append([]models.Asset{a}, s.assets...)
	s.mu.Unlock()

	s.confirm(func() {
		if err := s.remote.SaveAsset(ctx, a); err != nil {
			s.log.Error().Err(err).Str("asset", a.ID).Msg("save asset failed, rolling back")
			s.mu.Lock()
			s.assets = removeByID(s.assets, a.ID, assetKey)
			s.mu.Unlock()
		}
	})
}

func (s *Store) UpdateAsset(ctx context.Context, a models.Asset) {
	s.mu.Lock()
	orig, ok := findByID(s.assets, a.ID, assetKey)
	s.assets = replaceByID(s.assets, a, assetKey)
	s.mu.Unlock()

	s.confirm(func() {
		if err := s.remote.SaveAsset(ctx, a); err != nil {
			s.log.Error().Err(err).Str("asset", a.ID).Msg("update asset failed, rolling back")
			if ok {
				s.mu.Lock()
				s.assets = replaceByID(s.assets, orig, assetKey)
				s.mu.Unlock()
			}
		}
	})
}

func (s *Store) DeleteAsset(ctx context.Context, id string) {
	s.mu.Lock()
	orig, ok := findByID(s.assets, id, assetKey)
	s.assets = removeByID(s.assets, id, assetKey)
	s.mu.Unlock()

	s.confirm(func() {
		if err := s.remote.DeleteAsset(ctx, id); err != nil {
			s.log.Error().Err(err).Str("asset", id).Msg("delete asset failed, rolling back")
			if ok {
				// Re-insert at the end; original position is not preserved.
				s.mu.Lock()
				s.assets = append(s.assets, orig)
				s.mu.Unlock()
			}
		}
	})
}

// --- employees ---

func (s *Store) AddEmployee(ctx context.Context, e models.Employee) {
	s.mu.Lock()
	s.employees = append(s.employees, e)
	s.mu.Unlock()

	s.confirm(func() {
		if err := s.remote.SaveEmployee(ctx, e); err != nil {
			s.log.Error().Err(err).Str("employee", e.ID).Msg("save employee failed, rolling back")
			s.mu.Lock()
			s.employees = removeByID(s.employees, e.ID, employeeKey)
			s.mu.Unlock()
		}
	})
}

func (s *Store) DeleteEmployee(ctx context.Context, id string) {
	s.mu.Lock()
	orig, ok := findByID(s.employees, id, employeeKey)
	s.employees = removeByID(s.employees, id, employeeKey)
	s.mu.Unlock()

	s.confirm(func() {
		if err := s.remote.DeleteEmployee(ctx, id); err != nil {
			s.log.Error().Err(err).Str("employee", id).Msg("delete employee failed, rolling back")
			if ok {
				s.mu.Lock()
				s.employees = append(s.employees, orig)
				s.mu.Unlock()
			}
		}
	})
}

// --- assignments ---

// AssignAsset creates an assignment and flips the asset to Assigned in one
// logical action. The two remote writes confirm and roll back independently.
func (s *Store) AssignAsset(ctx context.Context, assetID, employeeID, expectedReturn string) {
	asg := models.Assignment{
		ID:                 uuid.NewString(),
		AssetID:            assetID,
		EmployeeID:         employeeID,
		BorrowDate:         s.today(),
		ExpectedReturnDate: expectedReturn,
		IsActive:           true,
	}

	s.mu.Lock()
	origAsset, hasAsset := findByID(s.assets, assetID, assetKey)
	s.assignments = append([]models.Assignment{asg}, s.assignments...)
	updated := origAsset
	if hasAsset {
		updated.Status = models.StatusAssigned
		updated.AssignedTo = employeeID
		s.assets = replaceByID(s.assets, updated, assetKey)
	}
	s.mu.Unlock()

	s.confirm(func() {
		if err := s.remote.SaveAssignment(ctx, asg); err != nil {
			s.log.Error().Err(err).Str("assignment", asg.ID).Msg("save assignment failed, rolling back")
			s.mu.Lock()
			s.assignments = removeByID(s.assignments, asg.ID, assignmentKey)
			s.mu.Unlock()
		}
	})
	if hasAsset {
		s.confirm(func() {
			if err := s.remote.SaveAsset(ctx, updated); err != nil {
				s.log.Error().Err(err).Str("asset", assetID).Msg("assign asset status update failed, rolling back")
				s.mu.Lock()
				s.assets = replaceByID(s.assets, origAsset, assetKey)
				s.mu.Unlock()
			}
		})
	}
}

// ReturnAsset closes the active assignment and frees the asset.
func (s *Store) ReturnAsset(ctx context.Context, assetID, notes string) {
	today := s.today()

	s.mu.Lock()
	origAsset, hasAsset := findByID(s.assets, assetID, assetKey)
	var origAsg models.Assignment
	hasAsg := false
	for _, a := range s.assignments {
		if a.AssetID == assetID && a.IsActive {
			origAsg = a
			hasAsg = true
			break
		}
	}

	var retAsg models.Assignment
	if hasAsg {
		retAsg = origAsg
		retAsg.IsActive = false
		retAsg.ReturnedDate = today
		retAsg.Notes = notes
		s.assignments = replaceByID(s.assignments, retAsg, assignmentKey)
	}
	freed := origAsset
	if hasAsset {
		freed.Status = models.StatusAvailable
		freed.AssignedTo = ""
		s.assets = replaceByID(s.assets, freed, assetKey)
	}
	s.mu.Unlock()

	if hasAsg {
		s.confirm(func() {
			if err := s.remote.SaveAssignment(ctx, retAsg); err != nil {
				s.log.Error().Err(err).Str("assignment", retAsg.ID).Msg("return assignment failed, rolling back")
				s.mu.Lock()
				s.assignments = replaceByID(s.assignments, origAsg, assignmentKey)
				s.mu.Unlock()
			}
		})
	}
	if hasAsset {
		s.confirm(func() {
			if err := s.remote.SaveAsset(ctx, freed); err != nil {
				s.log.Error().Err(err).Str("asset", assetID).Msg("return asset status update failed, rolling back")
				s.mu.Lock()
				s.assets = replaceByID(s.assets, origAsset, assetKey)
				s.mu.Unlock()
			}
		})
	}
}

// --- maintenance ---

// AddMaintenanceLog records the log and forces the asset into repair.
func (s *Store) AddMaintenanceLog(ctx context.Context, m models.MaintenanceLog) {
	s.mu.Lock()
	origAsset, hasAsset := findByID(s.assets, m.AssetID, assetKey)
	s.maintenance = append([]models.MaintenanceLog{m}, s.maintenance...)
	inRepair := origAsset
	if hasAsset {
		inRepair.Status = models.StatusInRepair
		s.assets = replaceByID(s.assets, inRepair, assetKey)
	}
	s.mu.Unlock()

	s.confirm(func() {
		if err := s.remote.SaveMaintenanceLog(ctx, m); err != nil {
			s.log.Error().Err(err).Str("maintenance", m.ID).Msg("save maintenance failed, rolling back")
			s.mu.Lock()
			s.maintenance = removeByID(s.maintenance, m.ID, maintenanceKey)
			s.mu.Unlock()
		}
	})
	if hasAsset {
		s.confirm(func() {
			if err := s.remote.SaveAsset(ctx, inRepair); err != nil {
				s.log.Error().Err(err).Str("asset", m.AssetID).Msg("maintenance asset status update failed, rolling back")
				s.mu.Lock()
				s.assets = replaceByID(s.assets, origAsset, assetKey)
				s.mu.Unlock()
			}
		})
	}
}

// UpdateMaintenanceLog flips the log's status. Completing it restores the
// asset to Assigned when somebody still holds it, otherwise Available.
func (s *Store) UpdateMaintenanceLog(ctx context.Context, id string, status models.MaintenanceStatus) {
	s.mu.Lock()
	origLog, okLog := findByID(s.maintenance, id, maintenanceKey)
	if !okLog {
		s.mu.Unlock()
		return
	}
	updatedLog := origLog
	updatedLog.Status = status
	s.maintenance = replaceByID(s.maintenance, updatedLog, maintenanceKey)

	origAsset, hasAsset := findByID(s.assets, origLog.AssetID, assetKey)
	restored := origAsset
	applyAsset := status == models.MaintenanceCompleted && hasAsset
	if applyAsset {
		if origAsset.AssignedTo != "" {
			restored.Status = models.StatusAssigned
		} else {
			restored.Status = models.StatusAvailable
		}
		s.assets = replaceByID(s.assets, restored, assetKey)
	}
	s.mu.Unlock()

	s.confirm(func() {
		if err := s.remote.SaveMaintenanceLog(ctx, updatedLog); err != nil {
			s.log.Error().Err(err).Str("maintenance", id).Msg("update maintenance failed, rolling back")
			s.mu.Lock()
			s.maintenance = replaceByID(s.maintenance, origLog, maintenanceKey)
			s.mu.Unlock()
		}
	})
	if applyAsset {
		s.confirm(func() {
			if err := s.remote.SaveAsset(ctx, restored); err != nil {
				s.log.Error().Err(err).Str("asset", origLog.AssetID).Msg("maintenance completion asset update failed, rolling back")
				s.mu.Lock()
				s.assets = replaceByID(s.assets, origAsset, assetKey)
				s.mu.Unlock()
			}
		})
	}
}

// --- requests ---

// CreateRequest stamps the ticket with the requesting identity before it
// becomes visible.
func (s *Store) CreateRequest(ctx context.Context, r models.AssetRequest) {
	if u := s.identity.CurrentUser(); u != nil {
		r.UserID = u.ID
		r.UserName = u.Name
		r.UserEmail = u.Email
		if u.EmployeeID != "" {
			r.EmployeeID = u.EmployeeID
		}
	}
	if r.EmployeeID == "" {
		r.EmployeeID = "EMP-UNKNOWN"
	}

	s.mu.Lock()
	s.requests = append([]models.AssetRequest{r}, s.requests...)
	s.mu.Unlock()

	s.confirm(func() {
		if err := s.remote.SaveRequest(ctx, r); err != nil {
			s.log.Error().Err(err).Str("request", r.ID).Msg("create request failed, rolling back")
			s.mu.Lock()
			s.requests = removeByID(s.requests, r.ID, requestKey)
			s.mu.Unlock()
		}
	})
}

func (s *Store) UpdateRequest(ctx context.Context, r models.AssetRequest) {
	s.mu.Lock()
	orig, ok := findByID(s.requests, r.ID, requestKey)
	s.requests = replaceByID(s.requests, r, requestKey)
	s.mu.Unlock()

	s.confirm(func() {
		if err := s.remote.SaveRequest(ctx, r); err != nil {
			s.log.Error().Err(err).Str("request", r.ID).Msg("update request failed, rolling back")
			if ok {
				s.mu.Lock()
				s.requests = replaceByID(s.requests, orig, requestKey)
				s.mu.Unlock()
			}
		}
	})
}

// ApproveRequest marks the ticket approved and hands the chosen asset to the
// requesting employee. Three remote writes, each with its own rollback.
func (s *Store) ApproveRequest(ctx context.Context, requestID, assetID string) {
	s.mu.Lock()
	orig, ok := findByID(s.requests, requestID, requestKey)
	if !ok {
		s.mu.Unlock()
		return
	}
	approved := orig
	approved.Status = models.RequestApproved
	s.requests = replaceByID(s.requests, approved, requestKey)
	s.mu.Unlock()

	s.AssignAsset(ctx, assetID, orig.EmployeeID, "")

	s.confirm(func() {
		if err := s.remote.SaveRequest(ctx, approved); err != nil {
			s.log.Error().Err(err).Str("request", requestID).Msg("approve request failed, rolling back")
			s.mu.Lock()
			s.requests = replaceByID(s.requests, orig, requestKey)
			s.mu.Unlock()
		}
	})
}

func (s *Store) RejectRequest(ctx context.Context, id string) {
	s.setRequestStatus(ctx, id, models.RequestRejected)
}

func (s *Store) CloseRequest(ctx context.Context, id string) {
	s.setRequestStatus(ctx, id, models.RequestClosed)
}

func (s *Store) setRequestStatus(ctx context.Context, id string, status models.RequestStatus) {
	s.mu.Lock()
	orig, ok := findByID(s.requests, id, requestKey)
	if !ok {
		s.mu.Unlock()
		return
	}
	updated := orig
	updated.Status = status
	s.requests = replaceByID(s.requests, updated, requestKey)
	s.mu.Unlock()

	s.confirm(func() {
		if err := s.remote.SaveRequest(ctx, updated); err != nil {
			s.log.Error().Err(err).Str("request", id).Str("status", string(status)).Msg("request status update failed, rolling back")
			s.mu.Lock()
			s.requests = replaceByID(s.requests, orig, requestKey)
			s.mu.Unlock()
		}
	})
}

// --- collection helpers ---

func assetKey(a models.Asset) string { return a.ID }
func employeeKey(e models.Employee) string { return e.ID }
func assignmentKey(a models.Assignment) string { return a.ID }
func maintenanceKey(m models.MaintenanceLog) string { return m.ID }
func requestKey(r models.AssetRequest) string { return r.ID }

func findByID[T any](items []T, id string, idOf func(T) string) (T, bool) {
	for _, it := range items {
		if idOf(it) == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

func replaceByID[T any](items []T, v T, idOf func(T) string) []T {
	id := idOf(v)
	out := make([]T, len(items))
	for i, it := range items {
		if idOf(it) == id {
			out[i] = v
		} else {
			out[i] = it
		}
	}
	return out
}

func removeByID[T any](items []T, id string, idOf func(T) string) []T {
	out := items[:0:0]
	for _, it := range items {
		if idOf(it) != id {
			out = append(out, it)
		}
	}
	return out
}
