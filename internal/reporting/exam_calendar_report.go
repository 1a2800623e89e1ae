package reporting

import (
	"fmt"

	"github.com/delpresence/backend/internal/examcal"
	"github.com/tealeg/xlsx/v3"
)

// BuildExamCalendarWorkbook renders the "Get calendar for program" rows as
// an .xlsx workbook, grounded on the teacher's attendance report builder
// (same tealeg/xlsx/v3 title-style/header-row/data-row layout).
func BuildExamCalendarWorkbook(entries []examcal.CalendarEntry) (*xlsx.File, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Exam Calendar")
	if err != nil {
		return nil, fmt.Errorf("failed to create exam calendar sheet: %w", err)
	}

	titleRow := sheet.AddRow()
	titleCell := titleRow.AddCell()
	titleCell.Value = "EXAM CALENDAR"
	titleStyle := xlsx.NewStyle()
	titleStyle.Font.Bold = true
	titleStyle.Font.Size = 16
	titleCell.SetStyle(titleStyle)

	sheet.AddRow() // spacing

	headerStyle := xlsx.NewStyle()
	headerStyle.Font.Bold = true

	headerRow := sheet.AddRow()
	for _, h := range []string{"Course", "Groups", "Period", "Evaluation", "Date", "Start", "End", "Room", "Invigilator", "Jury", "Status", "Room conflict", "Rejection reason"} {
		cell := headerRow.AddCell()
		cell.Value = h
		cell.SetStyle(headerStyle)
	}

	for _, e := range entries {
		row := sheet.AddRow()
		row.AddCell().Value = e.CourseName
		row.AddCell().Value = joinGroupNames(e.GroupNames)
		row.AddCell().Value = e.PeriodDisplayName
		row.AddCell().Value = e.EvaluationDisplayName
		row.AddCell().Value = e.Request.ExamDate.Format("2006-01-02")
		row.AddCell().Value = e.Request.StartTime
		row.AddCell().Value = e.Request.EndTime
		row.AddCell().Value = e.RoomName
		row.AddCell().Value = e.InvigilatorName
		row.AddCell().Value = e.JuryName
		row.AddCell().Value = statusLabel(e.Request.Status)
		row.AddCell().Value = conflictLabel(e.RoomConflict)
		if e.Request.RejectionReason != nil {
			row.AddCell().Value = *e.Request.RejectionReason
		} else {
			row.AddCell()
		}
	}

	for col := 1; col <= 13; col++ {
		sheet.SetColWidth(col, col, 18)
	}

	return file, nil
}
