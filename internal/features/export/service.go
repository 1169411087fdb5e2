package export

import (
	"context"
	"fmt"
	"time"

	"go-permit/internal/features/permit"

	"github.com/xuri/excelize/v2"
)

type ExportService interface {
	ExportRegister(ctx context.Context, filter permit.ListFilter) ([]byte, string, error)
}

type ExportServiceImpl struct {
	PermitService permit.PermitService
}

func NewExportService(permitService permit.PermitService) ExportService {
	return &ExportServiceImpl{PermitService: permitService}
}

var registerColumns = []string{
	"Permit ID", "Type", "Title", "Requester", "Department",
	"Status", "Current Step", "Approvers", "Created At",
}

// ExportRegister renders the permit register as an xlsx workbook
func (s *ExportServiceImpl) ExportRegister(ctx context.Context, filter permit.ListFilter) ([]byte, string, error) {
	permits, err := s.PermitService.ListPermits(ctx, filter)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Permits"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	for i, col := range registerColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, col)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for rowIdx, p := range permits {
		row := []interface{}{
			p.ID,
			string(p.Type),
			p.Title,
			p.Requester.Name,
			p.Requester.Department,
			string(p.Status),
			currentStepLabel(&p),
			approverSummary(&p),
			p.CreatedAt.Format("2006-01-02 15:04"),
		}
		for colIdx, val := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, val)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("permit-register-%s.xlsx", time.Now().Format("20060102"))
	return buf.Bytes(), filename, nil
}

func currentStepLabel(p *permit.Permit) string {
	if p.Status.Terminal() {
		return "-"
	}
	current := p.CurrentApprover()
	if current == nil {
		return "-"
	}
	return fmt.Sprintf("%d/%d %s", p.CurrentApproverIndex+1, len(p.Approvers), current.Role)
}

func approverSummary(p *permit.Permit) string {
	out := ""
	for i, a := range p.Approvers {
		if i > 0 {
			out += " > "
		}
		out += fmt.Sprintf("%s(%s)", a.Name, a.Status)
	}
	return out
}
