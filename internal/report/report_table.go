package report

import (
	"strconv"
	"time"

	"go-hr-admin/internal/attendance"
	"go-hr-admin/internal/domain"
	"go-hr-admin/internal/employee"
	"go-hr-admin/internal/leave"
	"go-hr-admin/internal/shared/apperror"
)

// table is a dataset flattened to strings, the shape both exporters write.
type table struct {
	sheet   string
	headers []string
	rows    [][]string
}

func timestamp(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// textCell neutralises user-entered text that a spreadsheet would otherwise
// evaluate as a formula by prefixing it with a quote.
func textCell(s string) string {
	if s == "" {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + s
	}
	return s
}

func employeesTable(rows []employee.Employee) table {
	t := table{
		sheet:   "Employees",
		headers: []string{"Employee ID", "Name", "Email", "Department", "Role", "Phone", "Contact Number", "Address", "Joined On", "Status"},
	}
	for _, e := range rows {
		t.rows = append(t.rows, []string{
			textCell(e.EmployeeCode),
			textCell(e.Name),
			textCell(e.Email),
			textCell(e.Department),
			domain.RoleName(e.RoleID),
			textCell(e.Phone),
			textCell(e.ContactNumber),
			textCell(e.Address),
			e.JoinedOn.Format(apperror.ISODateLayout),
			e.Status,
		})
	}
	return t
}

func leavesTable(rows []leave.Leave) table {
	t := table{
		sheet:   "Leaves",
		headers: []string{"ID", "Employee ID", "Leave Type", "Start Date", "End Date", "Days", "Reason", "Emergency", "Status", "Remark", "Reviewed By", "Reviewed At"},
	}
	for _, l := range rows {
		t.rows = append(t.rows, []string{
			strconv.FormatUint(l.ID, 10),
			textCell(l.EmployeeCode),
			l.LeaveType,
			l.StartDate.Format(apperror.ISODateLayout),
			l.EndDate.Format(apperror.ISODateLayout),
			strconv.FormatFloat(l.Days, 'f', -1, 64),
			textCell(l.Reason),
			strconv.FormatBool(l.Emergency),
			l.Status,
			textCell(deref(l.Remark)),
			textCell(deref(l.ReviewedBy)),
			timestamp(l.ReviewedAt),
		})
	}
	return t
}

func attendanceTable(rows []attendance.Attendance) table {
	t := table{
		sheet:   "Attendance",
		headers: []string{"Employee ID", "Date", "Clock In", "Clock Out", "Status", "Notes"},
	}
	for _, a := range rows {
		in := a.ClockIn
		t.rows = append(t.rows, []string{
			textCell(a.EmployeeCode),
			a.AttendanceDate.Format(apperror.ISODateLayout),
			timestamp(&in),
			timestamp(a.ClockOut),
			a.Status,
			textCell(a.Notes),
		})
	}
	return t
}
