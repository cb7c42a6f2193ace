package services

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/dailyudhari/udhari-backend/models"
	"github.com/dailyudhari/udhari-backend/repository"
	"github.com/dailyudhari/udhari-backend/utils"
)

// ExportService generates Excel reports for groups
type ExportService struct {
	groupRepo      *repository.GroupRepository
	expenseRepo    *repository.ExpenseRepository
	settlementRepo *repository.SettlementRepository
}

// NewExportService creates a new export service
func NewExportService(groupRepo *repository.GroupRepository, expenseRepo *repository.ExpenseRepository, settlementRepo *repository.SettlementRepository) *ExportService {
	return &ExportService{
		groupRepo:      groupRepo,
		expenseRepo:    expenseRepo,
		settlementRepo: settlementRepo,
	}
}

// ExportGroupToExcel builds an .xlsx report with a balance summary, the
// expense log and the suggested transfers for a group.
func (s *ExportService) ExportGroupToExcel(groupID, requesterID int64) (*excelize.File, string, error) {
	group, err := s.groupRepo.FindByID(groupID)
	if err != nil {
		return nil, "", utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	if group == nil {
		return nil, "", utils.NewNotFoundError("Group")
	}
	isMember, err := s.groupRepo.IsMember(groupID, requesterID)
	if err != nil {
		return nil, "", utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	if !isMember {
		return nil, "", utils.NewNotFoundError("Group")
	}

	members, err := s.groupRepo.GetMembers(groupID)
	if err != nil {
		return nil, "", utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	expenses, err := s.expenseRepo.ListByGroup(groupID)
	if err != nil {
		return nil, "", utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	splits, err := s.expenseRepo.GroupSplits(groupID)
	if err != nil {
		return nil, "", utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	settlements, err := s.settlementRepo.SettledBetweenMembers(groupID)
	if err != nil {
		return nil, "", utils.NewInternalError(utils.ErrFailedToRetrieve)
	}

	net := computeNetBalances(members, splits, settlements)
	transfers := matchTransfers(members, net)

	f := excelize.NewFile()
	if err := s.createSummarySheet(f, members, net); err != nil {
		return nil, "", utils.NewInternalError("failed to create summary sheet")
	}
	if err := s.createExpenseSheet(f, members, expenses); err != nil {
		return nil, "", utils.NewInternalError("failed to create expense sheet")
	}
	if err := s.createTransferSheet(f, transfers); err != nil {
		return nil, "", utils.NewInternalError("failed to create transfer sheet")
	}
	f.DeleteSheet("Sheet1")

	filename := fmt.Sprintf("%s_Export_%s.xlsx", group.Name, time.Now().Format("2006-01-02"))
	return f, filename, nil
}

// createSummarySheet writes each member's net position within the group
func (s *ExportService) createSummarySheet(f *excelize.File, members []models.GroupMember, net map[int64]float64) error {
	sheetName := "Summary"
	if _, err := f.NewSheet(sheetName); err != nil {
		return err
	}

	headers := []string{"Member", "Net Balance"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return err
		}
	}

	for row, m := range members {
		nameCell, _ := excelize.CoordinatesToCellName(1, row+2)
		balanceCell, _ := excelize.CoordinatesToCellName(2, row+2)
		if err := f.SetCellValue(sheetName, nameCell, m.Name); err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, balanceCell, utils.Round(net[m.ID])); err != nil {
			return err
		}
	}
	return nil
}

// createExpenseSheet writes the group's expense log, oldest first
func (s *ExportService) createExpenseSheet(f *excelize.File, members []models.GroupMember, expenses []models.Expense) error {
	sheetName := "Expenses"
	if _, err := f.NewSheet(sheetName); err != nil {
		return err
	}

	names := make(map[int64]string, len(members))
	for _, m := range members {
		names[m.ID] = m.Name
	}

	headers := []string{"Date", "Description", "Paid By", "Split Type", "Amount"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return err
		}
	}

	for row, e := range expenses {
		values := []interface{}{
			e.CreatedAt.Format("2006-01-02"),
			e.Description,
			names[e.PayerID],
			e.SplitType,
			e.Amount,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return err
			}
		}
	}
	return nil
}

// createTransferSheet writes the simplified transfer suggestions
func (s *ExportService) createTransferSheet(f *excelize.File, transfers []models.Transfer) error {
	sheetName := "Suggested Transfers"
	if _, err := f.NewSheet(sheetName); err != nil {
		return err
	}

	headers := []string{"From", "To", "Amount"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return err
		}
	}

	for row, t := range transfers {
		values := []interface{}{t.From.Name, t.To.Name, t.Amount}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return err
			}
		}
	}
	return nil
}
