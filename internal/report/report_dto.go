package report

const (
	DatasetEmployees  = "employees"
	DatasetLeaves     = "leaves"
	DatasetAttendance = "attendance"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// RangeQuery bounds the leave and attendance figures. Both ends default
// to the last 30 days ending today.
type RangeQuery struct {
	From string `form:"from" binding:"omitempty,isodate"`
	To   string `form:"to" binding:"omitempty,isodate"`
}

type ExportQuery struct {
	RangeQuery
	Format string `form:"format" binding:"omitempty,oneof=csv xlsx"`
}

type CountItem struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

type SummaryResponse struct {
	From         string           `json:"from"`
	To           string           `json:"to"`
	Headcount    int64            `json:"headcount"`
	ByDepartment []CountItem      `json:"byDepartment"`
	Leaves       map[string]int64 `json:"leaves"`
	Attendance   map[string]int64 `json:"attendance"`
}

// ExportFile is a rendered dataset ready to be sent as an attachment.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}
