package services

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"repair-system/internal/dto"
	apperrors "repair-system/pkg/errors"
)

// recording fakes capture the order of destructive calls so the cascade
// sequence can be asserted.
type recordingRequestRepo struct {
	fakeRequestRepo
	calls      *[]string
	requestIDs []uint64
}

func (f *recordingRequestRepo) IDsByEquipmentInTx(ctx context.Context, tx pgx.Tx, equipmentID uint64) ([]uint64, error) {
	*f.calls = append(*f.calls, "list-requests")
	return f.requestIDs, nil
}

func (f *recordingRequestRepo) DeleteByIDsInTx(ctx context.Context, tx pgx.Tx, ids []uint64) error {
	*f.calls = append(*f.calls, "delete-requests")
	return nil
}

type recordingHistoryRepo struct {
	fakeHistoryRepo
	calls      *[]string
	deletedFor []uint64
}

func (f *recordingHistoryRepo) DeleteByRequestIDsInTx(ctx context.Context, tx pgx.Tx, requestIDs []uint64) error {
	*f.calls = append(*f.calls, "delete-histories")
	f.deletedFor = requestIDs
	return nil
}

type recordingEquipmentRepo struct {
	fakeEquipmentRepo
	calls     *[]string
	deleteErr error
}

func (f *recordingEquipmentRepo) DeleteInTx(ctx context.Context, tx pgx.Tx, id uint64) error {
	*f.calls = append(*f.calls, "delete-equipment")
	return f.deleteErr
}

func TestEquipmentDeleteCascadesInOrder(t *testing.T) {
	var calls []string
	reqRepo := &recordingRequestRepo{calls: &calls, requestIDs: []uint64{3, 7}}
	histRepo := &recordingHistoryRepo{calls: &calls}
	eqRepo := &recordingEquipmentRepo{calls: &calls}

	svc := NewEquipmentService(&fakeTxManager{}, eqRepo, reqRepo, histRepo, zap.NewNop())

	require.NoError(t, svc.Delete(context.Background(), 1))

	// Histories go first, then requests, then the equipment row itself.
	assert.Equal(t, []string{"list-requests", "delete-histories", "delete-requests", "delete-equipment"}, calls)
	assert.Equal(t, []uint64{3, 7}, histRepo.deletedFor)
}

func TestEquipmentDeleteMissingEquipment(t *testing.T) {
	var calls []string
	reqRepo := &recordingRequestRepo{calls: &calls}
	histRepo := &recordingHistoryRepo{calls: &calls}
	eqRepo := &recordingEquipmentRepo{calls: &calls, deleteErr: apperrors.ErrNotFound}

	svc := NewEquipmentService(&fakeTxManager{}, eqRepo, reqRepo, histRepo, zap.NewNop())

	err := svc.Delete(context.Background(), 404)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestEquipmentCreateRejectsBadDate(t *testing.T) {
	svc := NewEquipmentService(&fakeTxManager{}, &fakeEquipmentRepo{}, &fakeRequestRepo{}, &fakeHistoryRepo{}, zap.NewNop())

	bad := "03/01/2024"
	_, err := svc.Create(context.Background(), dto.CreateEquipmentDTO{
		EquipmentCode: "PC-0009",
		Name:          "Test PC",
		PurchaseDate:  &bad,
	})
	require.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestEquipmentCreateRejectsBadCondition(t *testing.T) {
	svc := NewEquipmentService(&fakeTxManager{}, &fakeEquipmentRepo{}, &fakeRequestRepo{}, &fakeHistoryRepo{}, zap.NewNop())

	_, err := svc.Create(context.Background(), dto.CreateEquipmentDTO{
		EquipmentCode: "PC-0009",
		Name:          "Test PC",
		Condition:     "broken",
	})
	require.ErrorIs(t, err, apperrors.ErrValidation)
}
