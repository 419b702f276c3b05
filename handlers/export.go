package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"t9w.in/tankmon/config"
	"t9w.in/tankmon/pkg/tank"
)

// ExportWeeklyStats downloads the trailing seven days of daily
// statistics as an xlsx workbook.
func ExportWeeklyStats(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	samples, err := statsWindow(now)
	if err != nil {
		logger.Error("fetch export window", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	stats := tank.DailyStats(samples, now, 7, config.App.DisplayZone)

	f, err := buildStatsWorkbook(stats)
	if err != nil {
		logger.Error("build stats workbook", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to generate export")
		return
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		logger.Error("write stats workbook", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to generate export")
		return
	}

	filename := fmt.Sprintf("weekly_stats_%s.xlsx", now.Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", buffer.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buffer.Bytes())
}

func buildStatsWorkbook(stats []tank.DailyStat) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "Weekly Stats"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"3B82F6"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}

	headers := []string{"Date", "Avg Level (%)", "Max Level (%)", "Min Level (%)", "Consumption (L)", "Readings"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	f.SetCellStyle(sheet, "A1", "F1", headerStyle)

	for row, stat := range stats {
		values := []interface{}{
			stat.Date, stat.AvgLevel, stat.MaxLevel, stat.MinLevel, stat.Consumption, stat.ReadingsCount,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	f.SetColWidth(sheet, "A", "F", 18)
	return f, nil
}
