package controllers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"licensing-system/internal/dto"
	"licensing-system/internal/entities"
	"licensing-system/internal/services"
	"licensing-system/pkg/api"
	"licensing-system/pkg/constants"
	"licensing-system/pkg/utils"
)

const (
	utf8BOM       = "\uFEFF"
	reportTimeout = 30 * time.Second
	feeColumn     = 9
)

type ReportController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
	now           func() time.Time
}

func NewReportController(reportService services.ReportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{reportService: reportService, logger: logger, now: time.Now}
}

type reportBody struct {
	Requests []entities.ReportItem `json:"requests"`
	Count    int                   `json:"count"`
}

func (c *ReportController) Export(ctx echo.Context) error {
	reqCtx, cancel := utils.ContextWithTimeout(ctx, reportTimeout)
	defer cancel()
	actor, err := utils.GetActorFromCtx(reqCtx)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}

	var filter dto.ReportFilterDTO
	if err := bindAndValidate(ctx, &filter); err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	format := dto.ReportFormat(strings.ToLower(filter.Format))
	if format == "" {
		format = dto.ReportFormatJSON
	}
	c.logger.Debug("report export requested", zap.Any("filter", filter))

	items, err := c.reportService.GetReport(reqCtx, actor, filter)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}

	switch format {
	case dto.ReportFormatCSV:
		return c.respondWithCSV(ctx, items)
	case dto.ReportFormatXLSX:
		return c.respondWithXLSX(ctx, items)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Report", reportBody{Requests: items, Count: len(items)})
}

var reportHeaders = []string{
	"رقم المعاملة",
	"نوع الطلب",
	"نوع المنشأة",
	"اسم المنشأة",
	"اسم المالك",
	"هاتف المالك",
	"عنوان المنشأة",
	"المحافظة",
	"الحالة",
	"الرسوم",
	"رقم الترخيص",
	"تاريخ الإنشاء",
}

func rowToSlice(item entities.ReportItem) []string {
	return []string{
		item.RequestNumber,
		constants.Label(constants.RequestTypeLabels, item.Type),
		constants.Label(constants.FacilityTypeLabels, item.FacilityType),
		item.FacilityName,
		item.OwnerName,
		item.OwnerPhone,
		item.FacilityAddress,
		item.ProvinceName,
		constants.Label(constants.StatusLabels, item.Status),
		strconv.FormatInt(item.FeeAmount, 10),
		item.LicenseNumber.String,
		item.CreatedAt.Format("2006-01-02"),
	}
}

func (c *ReportController) attachment(ctx echo.Context, contentType, ext string) {
	fileName := fmt.Sprintf("report-%s.%s", c.now().Format("20060102-150405"), ext)
	ctx.Response().Header().Set(echo.HeaderContentType, contentType)
	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", fileName))
	ctx.Response().WriteHeader(http.StatusOK)
}

// respondWithCSV writes a BOM-prefixed UTF-8 CSV so spreadsheet tools detect the Arabic text.
func (c *ReportController) respondWithCSV(ctx echo.Context, items []entities.ReportItem) error {
	c.attachment(ctx, "text/csv; charset=utf-8", "csv")

	w := ctx.Response().Writer
	if _, err := w.Write([]byte(utf8BOM)); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(reportHeaders); err != nil {
		return err
	}
	for _, item := range items {
		if err := cw.Write(rowToSlice(item)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (c *ReportController) respondWithXLSX(ctx echo.Context, items []entities.ReportItem) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "التقرير"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	if err := f.SetSheetView(sheet, 0, &excelize.ViewOptions{RightToLeft: boolPtr(true)}); err != nil {
		c.logger.Warn("ReportController: failed to set RTL view", zap.Error(err))
	}

	headers := make([]interface{}, len(reportHeaders))
	for i, h := range reportHeaders {
		headers[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}

	for i, item := range items {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := rowToSlice(item)
		row := make([]interface{}, len(values))
		for j, v := range values {
			row[j] = v
		}
		row[feeColumn] = item.FeeAmount
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return api.ErrorResponse(ctx, err, c.logger)
		}
	}
	if err := formatReportSheet(f, sheet); err != nil {
		c.logger.Debug("ReportController: failed to format sheet", zap.Error(err))
	}

	c.attachment(ctx, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "xlsx")
	return f.Write(ctx.Response().Writer)
}

// formatReportSheet bolds the header row and widens the columns. The data is already written.
func formatReportSheet(f *excelize.File, sheet string) error {
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	lastCol, err := excelize.ColumnNumberToName(len(reportHeaders))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", style); err != nil {
		return err
	}
	for _, w := range reportColumnWidths {
		if err := f.SetColWidth(sheet, w.from, w.to, w.width); err != nil {
			return err
		}
	}
	return nil
}

var reportColumnWidths = []struct {
	from, to string
	width    float64
}{
	{"A", "C", 18},
	{"D", "H", 28},
	{"I", "L", 20},
}

func boolPtr(b bool) *bool { return &b }
