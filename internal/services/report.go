package services

import (
	"context"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"repair-system/internal/authz"
	"repair-system/internal/dto"
	"repair-system/internal/repositories"
	"repair-system/pkg/utils"
)

// exportLimit caps a single export. The scoped list is fetched in one page.
const exportLimit = 100000

type ReportServiceInterface interface {
	RepairRequestsReport(ctx context.Context, filter utils.RequestFilter) ([]dto.RepairRequestDTO, error)
}

// ReportService assembles the actor-scoped repair request list for export.
// The same role scope as the list endpoint applies; an export can never show
// more than the actor could browse.
type ReportService struct {
	requestRepo repositories.RepairRequestRepositoryInterface
	logger      *zap.Logger
}

func NewReportService(requestRepo repositories.RepairRequestRepositoryInterface, logger *zap.Logger) ReportServiceInterface {
	return &ReportService{requestRepo: requestRepo, logger: logger}
}

func (s *ReportService) RepairRequestsReport(ctx context.Context, filter utils.RequestFilter) ([]dto.RepairRequestDTO, error) {
	actorID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	role, hasProfile := utils.GetRoleFromCtx(ctx)

	filter.Limit = exportLimit
	filter.Offset = 0

	requests, _, err := s.requestRepo.List(ctx, authz.RequestScope(role, hasProfile, actorID), filter)
	if err != nil {
		return nil, err
	}

	s.logger.Info("report assembled", zap.Int("rows", len(requests)), zap.Uint64("actor", actorID))
	return requests, nil
}

var reportHeaders = []string{
	"Request Number", "Equipment", "Equipment Code", "Requester", "Title",
	"Priority", "Status", "Assigned To", "Request Date", "Assigned Date",
	"Completed Date", "Estimated Cost", "Actual Cost", "Remarks",
}

// BuildRequestsWorkbook renders the request list into an xlsx workbook.
func BuildRequestsWorkbook(requests []dto.RepairRequestDTO) *excelize.File {
	f := excelize.NewFile()
	sheet := "Repair Requests"
	f.SetSheetName("Sheet1", sheet)
	f.SetSheetRow(sheet, "A1", &reportHeaders)
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		f.SetCellStyle(sheet, "A1", "N1", style)
	}

	for i, req := range requests {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := reportRow(req)
		f.SetSheetRow(sheet, cell, &row)
	}

	f.SetColWidth(sheet, "A", "A", 15)
	f.SetColWidth(sheet, "B", "D", 22)
	f.SetColWidth(sheet, "E", "E", 35)
	f.SetColWidth(sheet, "H", "K", 20)
	f.SetColWidth(sheet, "N", "N", 40)
	return f
}

func reportRow(req dto.RepairRequestDTO) []interface{} {
	var assignedTo, assignedDate, completedDate string
	if req.AssignedTo != nil {
		assignedTo = req.AssignedTo.FullName
	}
	if req.AssignedDate != nil {
		assignedDate = *req.AssignedDate
	}
	if req.CompletedDate != nil {
		completedDate = *req.CompletedDate
	}
	var estimated, actual interface{}
	if req.EstimatedCost != nil {
		estimated = *req.EstimatedCost
	}
	if req.ActualCost != nil {
		actual = *req.ActualCost
	}

	return []interface{}{
		req.RequestNumber, req.EquipmentName, req.EquipmentCode, req.Requester.FullName,
		req.Title, req.Priority, req.Status, assignedTo,
		req.RequestDate, assignedDate, completedDate, estimated, actual, req.Remarks,
	}
}
