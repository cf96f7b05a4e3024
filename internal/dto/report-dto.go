package dto

type ReportFormat string

const (
	ReportFormatJSON ReportFormat = "json"
	ReportFormatCSV  ReportFormat = "csv"
	ReportFormatXLSX ReportFormat = "xlsx"
)

// ReportFilterDTO is bound from the export query string. Dates are YYYY-MM-DD; EndDate is inclusive.
type ReportFilterDTO struct {
	Format       string `query:"format" validate:"omitempty,oneof=json csv xlsx"`
	ProvinceID   int    `query:"provinceId" validate:"omitempty,min=1"`
	Status       string `query:"status" validate:"omitempty,request_status"`
	Type         string `query:"type" validate:"omitempty,request_type"`
	FacilityType string `query:"facilityType" validate:"omitempty,facility_type"`
	StartDate    string `query:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate      string `query:"endDate" validate:"omitempty,datetime=2006-01-02"`
}
