package store

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/apto-jkhatri/it-asset-management-app/internal/models"
)

// fakeRemote records writes and fails the ones the test arms. When gate is
// set, every write blocks until the channel is closed, which lets tests
// observe the local state while the confirmation is still in flight.
type fakeRemote struct {
	mu sync.Mutex

	failSaveAsset       error
	failDeleteAsset     error
	failSaveEmployee    error
	failDeleteEmployee  error
	failSaveAssignment  error
	failSaveMaintenance error
	failSaveRequest     error

	savedAssets      []models.Asset
	savedAssignments []models.Assignment
	savedLogs        []models.MaintenanceLog
	savedRequests    []models.AssetRequest

	// gate blocks every write; assetGate and assignmentGate block only their
	// own method, which lets a test force one confirmation to finish first.
	gate           chan struct{}
	assetGate      chan struct{}
	assignmentGate chan struct{}
}

func (f *fakeRemote) hold() {
	if f.gate != nil {
		<-f.gate
	}
}

func (f *fakeRemote) assetSaves() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.savedAssets)
}

func (f *fakeRemote) assignmentSaves() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.savedAssignments)
}

func (f *fakeRemote) Assets(ctx context.Context) ([]models.Asset, error) { return nil, nil }

func (f *fakeRemote) SaveAsset(ctx context.Context, a models.Asset) error {
	f.hold()
	if f.assetGate != nil {
		<-f.assetGate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSaveAsset != nil {
		return f.failSaveAsset
	}
	f.savedAssets = append(f.savedAssets, a)
	return nil
}

func (f *fakeRemote) DeleteAsset(ctx context.Context, id string) error {
	f.hold()
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.failDeleteAsset
}

func (f *fakeRemote) Employees(ctx context.Context) ([]models.Employee, error) { return nil, nil }

func (f *fakeRemote) SaveEmployee(ctx context.Context, e models.Employee) error {
	f.hold()
	return f.failSaveEmployee
}

func (f *fakeRemote) DeleteEmployee(ctx context.Context, id string) error {
	f.hold()
	return f.failDeleteEmployee
}

func (f *fakeRemote) Assignments(ctx context.Context) ([]models.Assignment, error) { return nil, nil }

func (f *fakeRemote) SaveAssignment(ctx context.Context, a models.Assignment) error {
	f.hold()
	if f.assignmentGate != nil {
		<-f.assignmentGate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSaveAssignment != nil {
		return f.failSaveAssignment
	}
	f.savedAssignments = append(f.savedAssignments, a)
	return nil
}

func (f *fakeRemote) MaintenanceLogs(ctx context.Context) ([]models.MaintenanceLog, error) {
	return nil, nil
}

func (f *fakeRemote) SaveMaintenanceLog(ctx context.Context, m models.MaintenanceLog) error {
	f.hold()
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSaveMaintenance != nil {
		return f.failSaveMaintenance
	}
	f.savedLogs = append(f.savedLogs, m)
	return nil
}

func (f *fakeRemote) Requests(ctx context.Context) ([]models.AssetRequest, error) { return nil, nil }

func (f *fakeRemote) SaveRequest(ctx context.Context, r models.AssetRequest) error {
	f.hold()
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSaveRequest != nil {
		return f.failSaveRequest
	}
	f.savedRequests = append(f.savedRequests, r)
	return nil
}

type fakeIdentity struct{ user *models.AuthProfile }

func (f *fakeIdentity) CurrentUser() *models.AuthProfile { return f.user }

func newTestStore(remote Remote, user *models.AuthProfile) *Store {
	s := New(remote, &fakeIdentity{user: user}, zerolog.Nop())
	s.now = func() time.Time { return time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC) }
	return s
}

func laptop() models.Asset {
	return models.Asset{
		ID:        "a1",
		Tag:       "IT-0001",
		Name:      "ThinkPad X1",
		Category:  "Laptop",
		Status:    models.StatusAvailable,
		Condition: models.ConditionGood,
		Location:  "HQ",
	}
}

func TestAddAsset_VisibleBeforeConfirmation(t *testing.T) {
	remote := &fakeRemote{gate: make(chan struct{})}
	s := newTestStore(remote, nil)

	s.AddAsset(context.Background(), laptop())

	got := s.Assets()
	if len(got) != 1 || got[0].ID != "a1" {
		t.Fatalf("Assets() = %#v, want the new asset before the remote write settles", got)
	}

	close(remote.gate)
	s.Wait()
	if len(remote.savedAssets) != 1 {
		t.Fatalf("remote saw %d saves, want 1", len(remote.savedAssets))
	}
}

func TestAddAsset_RollbackOnFailure(t *testing.T) {
	remote := &fakeRemote{failSaveAsset: errors.New("boom")}
	s := newTestStore(remote, nil)

	s.AddAsset(context.Background(), laptop())
	s.Wait()

	if got := s.Assets(); len(got) != 0 {
		t.Fatalf("Assets() = %#v, want empty after rollback", got)
	}
}

func TestUpdateAsset_RollbackRestoresOriginal(t *testing.T) {
	remote := &fakeRemote{failSaveAsset: errors.New("boom")}
	s := newTestStore(remote, nil)

	orig := laptop()
	s.ReplaceAssets([]models.Asset{orig})

	changed := orig
	changed.Name = "Renamed"
	changed.Status = models.StatusLost
	s.UpdateAsset(context.Background(), changed)
	s.Wait()

	got := s.Assets()
	if len(got) != 1 || !reflect.DeepEqual(got[0], orig) {
		t.Fatalf("Assets() = %#v, want exact original %#v restored", got, orig)
	}
}

func TestDeleteAsset_RollbackReinserts(t *testing.T) {
	remote := &fakeRemote{failDeleteAsset: errors.New("boom")}
	s := newTestStore(remote, nil)

	orig := laptop()
	s.ReplaceAssets([]models.Asset{orig})

	s.DeleteAsset(context.Background(), orig.ID)
	if got := s.Assets(); len(got) != 0 {
		t.Fatalf("Assets() = %#v, want empty right after delete", got)
	}
	s.Wait()

	got := s.Assets()
	if len(got) != 1 || !reflect.DeepEqual(got[0], orig) {
		t.Fatalf("Assets() = %#v, want %#v back after rollback", got, orig)
	}
}

func TestAssignAsset_CreatesAssignmentAndFlipsStatus(t *testing.T) {
	remote := &fakeRemote{}
	s := newTestStore(remote, nil)
	s.ReplaceAssets([]models.Asset{laptop()})

	s.AssignAsset(context.Background(), "a1", "e1", "2024-04-01")
	s.Wait()

	asgs := s.Assignments()
	if len(asgs) != 1 {
		t.Fatalf("Assignments() = %#v, want 1", asgs)
	}
	asg := asgs[0]
	if asg.AssetID != "a1" || asg.EmployeeID != "e1" || !asg.IsActive {
		t.Fatalf("assignment = %#v, want active a1/e1", asg)
	}
	if asg.BorrowDate != "2024-03-05" {
		t.Fatalf("BorrowDate = %q, want 2024-03-05", asg.BorrowDate)
	}

	a := s.Assets()[0]
	if a.Status != models.StatusAssigned || a.AssignedTo != "e1" {
		t.Fatalf("asset = %#v, want Assigned to e1", a)
	}
	if len(remote.savedAssignments) != 1 || len(remote.savedAssets) != 1 {
		t.Fatalf("remote writes = %d assignments, %d assets; want 1 and 1",
			len(remote.savedAssignments), len(remote.savedAssets))
	}
}

func TestAssignAsset_PartialFailureRollsBackOnlyThatSide(t *testing.T) {
	remote := &fakeRemote{failSaveAssignment: errors.New("boom")}
	s := newTestStore(remote, nil)
	s.ReplaceAssets([]models.Asset{laptop()})

	s.AssignAsset(context.Background(), "a1", "e1", "")
	s.Wait()

	if got := s.Assignments(); len(got) != 0 {
		t.Fatalf("Assignments() = %#v, want rolled back", got)
	}
	// The asset status update succeeded and stays; the sub-mutations do not
	// share a transaction.
	if a := s.Assets()[0]; a.Status != models.StatusAssigned {
		t.Fatalf("asset status = %q, want Assigned to survive the assignment failure", a.Status)
	}
}

func TestReturnAsset_ClosesAssignmentAndFreesAsset(t *testing.T) {
	remote := &fakeRemote{}
	s := newTestStore(remote, nil)

	a := laptop()
	a.Status = models.StatusAssigned
	a.AssignedTo = "e1"
	s.ReplaceAssets([]models.Asset{a})
	s.ReplaceAssignments([]models.Assignment{{
		ID: "asg1", AssetID: "a1", EmployeeID: "e1", BorrowDate: "2024-02-01", IsActive: true,
	}})

	s.ReturnAsset(context.Background(), "a1", "scratched lid")
	s.Wait()

	asg := s.Assignments()[0]
	if asg.IsActive || asg.ReturnedDate != "2024-03-05" || asg.Notes != "scratched lid" {
		t.Fatalf("assignment = %#v, want closed today with notes", asg)
	}
	got := s.Assets()[0]
	if got.Status != models.StatusAvailable || got.AssignedTo != "" {
		t.Fatalf("asset = %#v, want Available and unassigned", got)
	}
}

func waitUntil(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestReturnAsset_OutcomeHoldsForEitherResolutionOrder(t *testing.T) {
	tests := []struct {
		name           string
		holdAssignment bool
	}{
		{"asset write resolves first", true},
		{"assignment write resolves first", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remote := &fakeRemote{}
			release := make(chan struct{})
			if tt.holdAssignment {
				remote.assignmentGate = release
			} else {
				remote.assetGate = release
			}
			s := newTestStore(remote, nil)

			a := laptop()
			a.Status = models.StatusAssigned
			a.AssignedTo = "e1"
			s.ReplaceAssets([]models.Asset{a})
			s.ReplaceAssignments([]models.Assignment{{
				ID: "asg1", AssetID: "a1", EmployeeID: "e1", BorrowDate: "2024-02-01", IsActive: true,
			}})

			s.ReturnAsset(context.Background(), "a1", "ok")

			// Let the unblocked write finish before releasing the held one,
			// pinning the resolution order.
			if tt.holdAssignment {
				waitUntil(t, func() bool { return remote.assetSaves() == 1 })
			} else {
				waitUntil(t, func() bool { return remote.assignmentSaves() == 1 })
			}
			close(release)
			s.Wait()

			asg := s.Assignments()[0]
			if asg.IsActive || asg.ReturnedDate != "2024-03-05" || asg.Notes != "ok" {
				t.Fatalf("assignment = %#v, want closed regardless of order", asg)
			}
			got := s.Assets()[0]
			if got.Status != models.StatusAvailable || got.AssignedTo != "" {
				t.Fatalf("asset = %#v, want Available regardless of order", got)
			}
		})
	}
}

func TestAddMaintenanceLog_ForcesInRepair(t *testing.T) {
	remote := &fakeRemote{}
	s := newTestStore(remote, nil)
	s.ReplaceAssets([]models.Asset{laptop()})

	s.AddMaintenanceLog(context.Background(), models.MaintenanceLog{
		ID: "m1", AssetID: "a1", Description: "battery swap", Status: models.MaintenanceInProgress,
	})
	s.Wait()

	if got := s.Assets()[0].Status; got != models.StatusInRepair {
		t.Fatalf("asset status = %q, want In Repair", got)
	}
	if len(s.MaintenanceLogs()) != 1 {
		t.Fatalf("MaintenanceLogs() = %#v, want 1", s.MaintenanceLogs())
	}
}

func TestUpdateMaintenanceLog_CompletionRestoresStatus(t *testing.T) {
	tests := []struct {
		name       string
		assignedTo string
		want       models.AssetStatus
	}{
		{"still assigned", "e1", models.StatusAssigned},
		{"unassigned", "", models.StatusAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remote := &fakeRemote{}
			s := newTestStore(remote, nil)

			a := laptop()
			a.Status = models.StatusInRepair
			a.AssignedTo = tt.assignedTo
			s.ReplaceAssets([]models.Asset{a})
			s.ReplaceMaintenanceLogs([]models.MaintenanceLog{{
				ID: "m1", AssetID: "a1", Status: models.MaintenanceInProgress,
			}})

			s.UpdateMaintenanceLog(context.Background(), "m1", models.MaintenanceCompleted)
			s.Wait()

			if got := s.Assets()[0].Status; got != tt.want {
				t.Fatalf("asset status = %q, want %q", got, tt.want)
			}
			if got := s.MaintenanceLogs()[0].Status; got != models.MaintenanceCompleted {
				t.Fatalf("log status = %q, want Completed", got)
			}
		})
	}
}

func TestCreateRequest_StampsIdentity(t *testing.T) {
	remote := &fakeRemote{}
	user := &models.AuthProfile{ID: "u1", Name: "Ann", Email: "ann@example.com", Role: models.RoleUser, EmployeeID: "e9"}
	s := newTestStore(remote, user)

	s.CreateRequest(context.Background(), models.AssetRequest{
		ID: "r1", Category: "Monitor", Reason: "second screen", Status: models.RequestPending,
	})
	s.Wait()

	got := s.Requests()[0]
	if got.UserID != "u1" || got.UserName != "Ann" || got.UserEmail != "ann@example.com" {
		t.Fatalf("request = %#v, want identity stamped", got)
	}
	if got.EmployeeID != "e9" {
		t.Fatalf("EmployeeID = %q, want e9 from the profile", got.EmployeeID)
	}
}

func TestCreateRequest_FallbackEmployeeID(t *testing.T) {
	remote := &fakeRemote{}
	user := &models.AuthProfile{ID: "u1", Name: "Ann", Email: "ann@example.com", Role: models.RoleUser}
	s := newTestStore(remote, user)

	s.CreateRequest(context.Background(), models.AssetRequest{ID: "r1", Category: "Dock"})
	s.Wait()

	if got := s.Requests()[0].EmployeeID; got != "EMP-UNKNOWN" {
		t.Fatalf("EmployeeID = %q, want EMP-UNKNOWN", got)
	}
}

func TestApproveRequest_ApprovesAndAssigns(t *testing.T) {
	remote := &fakeRemote{}
	s := newTestStore(remote, nil)
	s.ReplaceAssets([]models.Asset{laptop()})
	s.ReplaceRequests([]models.AssetRequest{{
		ID: "r1", EmployeeID: "e1", Category: "Laptop", Status: models.RequestPending,
	}})

	s.ApproveRequest(context.Background(), "r1", "a1")
	s.Wait()

	if got := s.Requests()[0].Status; got != models.RequestApproved {
		t.Fatalf("request status = %q, want Approved", got)
	}
	a := s.Assets()[0]
	if a.Status != models.StatusAssigned || a.AssignedTo != "e1" {
		t.Fatalf("asset = %#v, want Assigned to e1", a)
	}
	if len(s.Assignments()) != 1 {
		t.Fatalf("Assignments() = %#v, want 1", s.Assignments())
	}
}

func TestRejectRequest_RollbackOnFailure(t *testing.T) {
	remote := &fakeRemote{failSaveRequest: errors.New("boom")}
	s := newTestStore(remote, nil)
	orig := models.AssetRequest{ID: "r1", EmployeeID: "e1", Status: models.RequestPending}
	s.ReplaceRequests([]models.AssetRequest{orig})

	s.RejectRequest(context.Background(), "r1")
	s.Wait()

	got := s.Requests()[0]
	if !reflect.DeepEqual(got, orig) {
		t.Fatalf("request = %#v, want exact original %#v restored", got, orig)
	}
}

func TestAccessorsReturnClones(t *testing.T) {
	s := newTestStore(&fakeRemote{}, nil)
	s.ReplaceAssets([]models.Asset{laptop()})

	snap := s.Assets()
	snap[0].Name = "mutated"

	if got := s.Assets()[0].Name; got != "ThinkPad X1" {
		t.Fatalf("Assets() name = %q, want clone to shield the store", got)
	}
}

func TestClearDropsEverything(t *testing.T) {
	s := newTestStore(&fakeRemote{}, nil)
	s.ReplaceAssets([]models.Asset{laptop()})
	s.ReplaceEmployees([]models.Employee{{ID: "e1"}})
	s.ReplaceAssignments([]models.Assignment{{ID: "asg1"}})
	s.ReplaceMaintenanceLogs([]models.MaintenanceLog{{ID: "m1"}})
	s.ReplaceRequests([]models.AssetRequest{{ID: "r1"}})

	s.Clear()

	if len(s.Assets())+len(s.Employees())+len(s.Assignments())+len(s.MaintenanceLogs())+len(s.Requests()) != 0 {
		t.Fatal("Clear() left data behind")
	}
}
