package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"repair-system/internal/dto"
	"repair-system/internal/entities"
	"repair-system/pkg/contextkeys"
	apperrors "repair-system/pkg/errors"
	"repair-system/pkg/utils"
)

// fakeTxManager runs the callback without a real transaction; the fakes below
// ignore the tx argument.
type fakeTxManager struct{}

func (f *fakeTxManager) RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return fn(nil)
}

type fakeRequestRepo struct {
	byID map[uint64]*entities.RepairRequest

	nextNumbers []string
	nextErr     error
	numberCalls int

	createErrs []error
	created    []entities.RepairRequest
	updated    []entities.RepairRequest
	nextID     uint64
}

func (f *fakeRequestRepo) List(ctx context.Context, scope sq.Sqlizer, filter utils.RequestFilter) ([]dto.RepairRequestDTO, uint64, error) {
	return nil, 0, nil
}

func (f *fakeRequestRepo) FindByID(ctx context.Context, id uint64) (*entities.RepairRequest, error) {
	req, ok := f.byID[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *req
	return &cp, nil
}

func (f *fakeRequestRepo) FindDTO(ctx context.Context, id uint64) (*dto.RepairRequestDTO, error) {
	req, ok := f.byID[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &dto.RepairRequestDTO{ID: req.ID, RequestNumber: req.RequestNumber, Status: string(req.Status)}, nil
}

func (f *fakeRequestRepo) FindForUpdateInTx(ctx context.Context, tx pgx.Tx, id uint64) (*entities.RepairRequest, error) {
	return f.FindByID(ctx, id)
}

func (f *fakeRequestRepo) NextRequestNumberInTx(ctx context.Context, tx pgx.Tx, year int) (string, error) {
	if f.nextErr != nil {
		return "", f.nextErr
	}
	n := f.nextNumbers[f.numberCalls%len(f.nextNumbers)]
	f.numberCalls++
	return n, nil
}

func (f *fakeRequestRepo) CreateInTx(ctx context.Context, tx pgx.Tx, req *entities.RepairRequest) (uint64, error) {
	if len(f.createErrs) > 0 {
		err := f.createErrs[0]
		f.createErrs = f.createErrs[1:]
		if err != nil {
			return 0, err
		}
	}
	f.nextID++
	stored := *req
	stored.ID = f.nextID
	f.created = append(f.created, stored)
	if f.byID == nil {
		f.byID = map[uint64]*entities.RepairRequest{}
	}
	f.byID[stored.ID] = &stored
	return stored.ID, nil
}

func (f *fakeRequestRepo) UpdateInTx(ctx context.Context, tx pgx.Tx, req *entities.RepairRequest) error {
	f.updated = append(f.updated, *req)
	cp := *req
	f.byID[req.ID] = &cp
	return nil
}

func (f *fakeRequestRepo) IDsByEquipmentInTx(ctx context.Context, tx pgx.Tx, equipmentID uint64) ([]uint64, error) {
	return nil, nil
}

func (f *fakeRequestRepo) DeleteByIDsInTx(ctx context.Context, tx pgx.Tx, ids []uint64) error {
	return nil
}

type fakeHistoryRepo struct {
	entries []entities.RepairHistory
}

func (f *fakeHistoryRepo) CreateInTx(ctx context.Context, tx pgx.Tx, entry *entities.RepairHistory) error {
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeHistoryRepo) ListByRequestID(ctx context.Context, requestID uint64) ([]dto.RepairHistoryDTO, error) {
	return nil, nil
}

func (f *fakeHistoryRepo) DeleteByRequestIDsInTx(ctx context.Context, tx pgx.Tx, requestIDs []uint64) error {
	return nil
}

type fakeUserRepo struct {
	users    map[uint64]*entities.User
	profiles map[uint64]*entities.UserProfile
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uint64) (*entities.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	return nil, apperrors.ErrNotFound
}

func (f *fakeUserRepo) CreateWithProfileInTx(ctx context.Context, tx pgx.Tx, user *entities.User, profile *entities.UserProfile) (uint64, error) {
	return 0, nil
}

func (f *fakeUserRepo) FindProfileByUserID(ctx context.Context, userID uint64) (*entities.UserProfile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return p, nil
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, userID uint64, department, phone *string) error {
	return nil
}

func (f *fakeUserRepo) ListTechnicians(ctx context.Context) ([]dto.TechnicianDTO, error) {
	return nil, nil
}

type fakeEquipmentRepo struct {
	existing map[uint64]bool
}

func (f *fakeEquipmentRepo) List(ctx context.Context, filter utils.EquipmentFilter) ([]dto.EquipmentDTO, uint64, error) {
	return nil, 0, nil
}

func (f *fakeEquipmentRepo) FindByID(ctx context.Context, id uint64) (*dto.EquipmentDTO, error) {
	return nil, apperrors.ErrNotFound
}

func (f *fakeEquipmentRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	return f.existing[id], nil
}

func (f *fakeEquipmentRepo) Create(ctx context.Context, eq *entities.Equipment) (uint64, error) {
	return 0, nil
}

func (f *fakeEquipmentRepo) Update(ctx context.Context, eq *entities.Equipment) error { return nil }

func (f *fakeEquipmentRepo) DeleteInTx(ctx context.Context, tx pgx.Tx, id uint64) error { return nil }

func (f *fakeEquipmentRepo) CountTotalAndActive(ctx context.Context) (uint64, uint64, error) {
	return 0, 0, nil
}

func uniqueViolation() error {
	return fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "repair_requests_request_number_key"})
}

func actorCtx(userID uint64, role entities.Role) context.Context {
	ctx := context.WithValue(context.Background(), contextkeys.UserIDKey, userID)
	if role != "" {
		ctx = context.WithValue(ctx, contextkeys.UserRoleKey, role)
	}
	return ctx
}

func newRequestService(reqRepo *fakeRequestRepo, histRepo *fakeHistoryRepo, userRepo *fakeUserRepo, eqRepo *fakeEquipmentRepo) RepairRequestServiceInterface {
	if userRepo == nil {
		userRepo = &fakeUserRepo{}
	}
	if eqRepo == nil {
		eqRepo = &fakeEquipmentRepo{existing: map[uint64]bool{1: true}}
	}
	return NewRepairRequestService(&fakeTxManager{}, reqRepo, histRepo, userRepo, eqRepo, zap.NewNop())
}

func TestCreateAllocatesNumber(t *testing.T) {
	reqRepo := &fakeRequestRepo{nextNumbers: []string{"REQ2025001"}}
	svc := newRequestService(reqRepo, &fakeHistoryRepo{}, nil, nil)

	res, err := svc.Create(actorCtx(10, entities.RoleUser), dto.CreateRepairRequestDTO{
		EquipmentID: 1,
		Title:       "Broken screen",
		Description: "Display flickers",
	})
	require.NoError(t, err)
	assert.Equal(t, "REQ2025001", res.RequestNumber)

	require.Len(t, reqRepo.created, 1)
	created := reqRepo.created[0]
	assert.Equal(t, entities.StatusPending, created.Status)
	assert.Equal(t, entities.PriorityMedium, created.Priority)
	assert.Equal(t, uint64(10), created.RequesterID)
}

func TestCreateRetriesOnNumberCollision(t *testing.T) {
	reqRepo := &fakeRequestRepo{
		nextNumbers: []string{"REQ2025007", "REQ2025008"},
		createErrs:  []error{uniqueViolation(), nil},
	}
	svc := newRequestService(reqRepo, &fakeHistoryRepo{}, nil, nil)

	res, err := svc.Create(actorCtx(10, entities.RoleUser), dto.CreateRepairRequestDTO{
		EquipmentID: 1,
		Title:       "Broken keyboard",
		Description: "Keys stuck",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, reqRepo.numberCalls)
	assert.Equal(t, "REQ2025008", res.RequestNumber)
}

func TestCreateGivesUpAfterRepeatedCollisions(t *testing.T) {
	reqRepo := &fakeRequestRepo{
		nextNumbers: []string{"REQ2025007"},
		createErrs:  []error{uniqueViolation(), uniqueViolation(), uniqueViolation()},
	}
	svc := newRequestService(reqRepo, &fakeHistoryRepo{}, nil, nil)

	_, err := svc.Create(actorCtx(10, entities.RoleUser), dto.CreateRepairRequestDTO{
		EquipmentID: 1,
		Title:       "Broken mouse",
		Description: "Does not move",
	})
	require.ErrorIs(t, err, apperrors.ErrNumberConflict)
	assert.Equal(t, 3, reqRepo.numberCalls)
}

func TestCreateSequenceExhausted(t *testing.T) {
	reqRepo := &fakeRequestRepo{nextErr: apperrors.ErrSequenceExhausted}
	svc := newRequestService(reqRepo, &fakeHistoryRepo{}, nil, nil)

	_, err := svc.Create(actorCtx(10, entities.RoleUser), dto.CreateRepairRequestDTO{
		EquipmentID: 1,
		Title:       "One too many",
		Description: "Year is full",
	})
	require.ErrorIs(t, err, apperrors.ErrSequenceExhausted)
	assert.Empty(t, reqRepo.created)
}

func TestCreateRejectsUnknownEquipment(t *testing.T) {
	reqRepo := &fakeRequestRepo{nextNumbers: []string{"REQ2025001"}}
	svc := newRequestService(reqRepo, &fakeHistoryRepo{}, nil, &fakeEquipmentRepo{existing: map[uint64]bool{}})

	_, err := svc.Create(actorCtx(10, entities.RoleUser), dto.CreateRepairRequestDTO{
		EquipmentID: 42,
		Title:       "Ghost equipment",
		Description: "Not in inventory",
	})
	require.ErrorIs(t, err, apperrors.ErrValidation)
}

func pendingRequest(id, requesterID uint64) *entities.RepairRequest {
	return &entities.RepairRequest{
		ID:          id,
		RequesterID: requesterID,
		Status:      entities.StatusPending,
		Title:       "Broken screen",
		RequestDate: time.Now(),
	}
}

func TestAssignSetsDateAndAudits(t *testing.T) {
	reqRepo := &fakeRequestRepo{byID: map[uint64]*entities.RepairRequest{1: pendingRequest(1, 10)}}
	histRepo := &fakeHistoryRepo{}
	userRepo := &fakeUserRepo{
		users:    map[uint64]*entities.User{5: {ID: 5, Username: "jdoe", FirstName: "Jane", LastName: "Doe"}},
		profiles: map[uint64]*entities.UserProfile{5: {UserID: 5, Role: entities.RoleTechnician}},
	}
	svc := newRequestService(reqRepo, histRepo, userRepo, nil)

	res, err := svc.Assign(actorCtx(99, entities.RoleAdmin), 1, dto.AssignRepairRequestDTO{TechnicianID: 5})
	require.NoError(t, err)
	assert.Equal(t, string(entities.StatusAssigned), res.Status)

	require.Len(t, reqRepo.updated, 1)
	updated := reqRepo.updated[0]
	require.NotNil(t, updated.AssignedTo)
	assert.Equal(t, uint64(5), *updated.AssignedTo)
	require.NotNil(t, updated.AssignedDate)

	require.Len(t, histRepo.entries, 1)
	entry := histRepo.entries[0]
	assert.Equal(t, entities.StatusAssigned, entry.Status)
	assert.Equal(t, uint64(99), entry.UpdatedBy)
	assert.Equal(t, "Assigned to Jane Doe", entry.Comment)
}

func TestAssignKeepsOriginalAssignedDate(t *testing.T) {
	firstAssigned := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
	req := pendingRequest(1, 10)
	req.Status = entities.StatusAssigned
	req.AssignedDate = &firstAssigned

	reqRepo := &fakeRequestRepo{byID: map[uint64]*entities.RepairRequest{1: req}}
	userRepo := &fakeUserRepo{
		users:    map[uint64]*entities.User{5: {ID: 5, Username: "jdoe"}},
		profiles: map[uint64]*entities.UserProfile{5: {UserID: 5, Role: entities.RoleTechnician}},
	}
	svc := newRequestService(reqRepo, &fakeHistoryRepo{}, userRepo, nil)

	_, err := svc.Assign(actorCtx(99, entities.RoleAdmin), 1, dto.AssignRepairRequestDTO{TechnicianID: 5})
	require.NoError(t, err)

	require.Len(t, reqRepo.updated, 1)
	require.NotNil(t, reqRepo.updated[0].AssignedDate)
	assert.Equal(t, firstAssigned, *reqRepo.updated[0].AssignedDate)
}

func TestAssignRejectsIneligibleUser(t *testing.T) {
	reqRepo := &fakeRequestRepo{byID: map[uint64]*entities.RepairRequest{1: pendingRequest(1, 10)}}
	histRepo := &fakeHistoryRepo{}
	userRepo := &fakeUserRepo{
		users:    map[uint64]*entities.User{5: {ID: 5, Username: "jdoe"}},
		profiles: map[uint64]*entities.UserProfile{5: {UserID: 5, Role: entities.RoleUser}},
	}
	svc := newRequestService(reqRepo, histRepo, userRepo, nil)

	_, err := svc.Assign(actorCtx(99, entities.RoleAdmin), 1, dto.AssignRepairRequestDTO{TechnicianID: 5})
	require.ErrorIs(t, err, apperrors.ErrNotEligible)
	assert.Empty(t, reqRepo.updated)
	assert.Empty(t, histRepo.entries)
}

func TestAssignRejectsUserWithoutProfile(t *testing.T) {
	reqRepo := &fakeRequestRepo{byID: map[uint64]*entities.RepairRequest{1: pendingRequest(1, 10)}}
	userRepo := &fakeUserRepo{
		users: map[uint64]*entities.User{5: {ID: 5, Username: "jdoe"}},
	}
	svc := newRequestService(reqRepo, &fakeHistoryRepo{}, userRepo, nil)

	_, err := svc.Assign(actorCtx(99, entities.RoleAdmin), 1, dto.AssignRepairRequestDTO{TechnicianID: 5})
	require.ErrorIs(t, err, apperrors.ErrProfileNotFound)
}

func TestUpdateStatusRejectsUnknownValueWithoutAudit(t *testing.T) {
	reqRepo := &fakeRequestRepo{byID: map[uint64]*entities.RepairRequest{1: pendingRequest(1, 10)}}
	histRepo := &fakeHistoryRepo{}
	svc := newRequestService(reqRepo, histRepo, nil, nil)

	_, err := svc.UpdateStatus(actorCtx(10, entities.RoleUser), 1, dto.UpdateStatusDTO{Status: "done"})
	require.ErrorIs(t, err, apperrors.ErrInvalidStatus)
	assert.Empty(t, reqRepo.updated)
	assert.Empty(t, histRepo.entries)
}

func TestUpdateStatusAlwaysAudits(t *testing.T) {
	reqRepo := &fakeRequestRepo{byID: map[uint64]*entities.RepairRequest{1: pendingRequest(1, 10)}}
	histRepo := &fakeHistoryRepo{}
	svc := newRequestService(reqRepo, histRepo, nil, nil)

	_, err := svc.UpdateStatus(actorCtx(10, entities.RoleUser), 1, dto.UpdateStatusDTO{Status: "completed"})
	require.NoError(t, err)

	require.Len(t, reqRepo.updated, 1)
	require.NotNil(t, reqRepo.updated[0].CompletedDate)

	require.Len(t, histRepo.entries, 1)
	assert.Equal(t, entities.StatusCompleted, histRepo.entries[0].Status)
	assert.Empty(t, histRepo.entries[0].Comment)
}

func TestUpdateRemarksOnlySkipsAudit(t *testing.T) {
	reqRepo := &fakeRequestRepo{byID: map[uint64]*entities.RepairRequest{1: pendingRequest(1, 10)}}
	histRepo := &fakeHistoryRepo{}
	svc := newRequestService(reqRepo, histRepo, nil, nil)

	payload := dto.UpdateRepairRequestDTO{}
	payload.Remarks.SetValid("ordered a replacement part")

	_, err := svc.Update(actorCtx(10, entities.RoleUser), 1, payload)
	require.NoError(t, err)

	require.Len(t, reqRepo.updated, 1)
	assert.Equal(t, "ordered a replacement part", reqRepo.updated[0].Remarks)
	assert.Empty(t, histRepo.entries, "remark-only edits must not touch the audit trail")
}

func TestUpdateWithCommentAudits(t *testing.T) {
	reqRepo := &fakeRequestRepo{byID: map[uint64]*entities.RepairRequest{1: pendingRequest(1, 10)}}
	histRepo := &fakeHistoryRepo{}
	svc := newRequestService(reqRepo, histRepo, nil, nil)

	payload := dto.UpdateRepairRequestDTO{}
	payload.Comment.SetValid("checked on site")

	_, err := svc.Update(actorCtx(10, entities.RoleUser), 1, payload)
	require.NoError(t, err)

	require.Len(t, histRepo.entries, 1)
	entry := histRepo.entries[0]
	assert.Equal(t, "checked on site", entry.Comment)
	// No status change in the payload: the entry records the current status.
	assert.Equal(t, entities.StatusPending, entry.Status)
}

func TestFindOutOfScopeIsForbidden(t *testing.T) {
	reqRepo := &fakeRequestRepo{byID: map[uint64]*entities.RepairRequest{1: pendingRequest(1, 10)}}
	svc := newRequestService(reqRepo, &fakeHistoryRepo{}, nil, nil)

	_, err := svc.Find(actorCtx(11, entities.RoleUser), 1)
	require.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestFindMissingRequest(t *testing.T) {
	reqRepo := &fakeRequestRepo{byID: map[uint64]*entities.RepairRequest{}}
	svc := newRequestService(reqRepo, &fakeHistoryRepo{}, nil, nil)

	_, err := svc.Find(actorCtx(10, entities.RoleUser), 404)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}
