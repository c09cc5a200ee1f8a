package user

type Permission string

const (
	// Reference data and monthly inputs
	PermissionRecordsView   Permission = "records.view"
	PermissionRecordsManage Permission = "records.manage"
	PermissionRecordsDelete Permission = "records.delete"

	// Payroll
	PermissionPayrollView    Permission = "payroll.view"
	PermissionPayrollManage  Permission = "payroll.manage"
	PermissionPayrollProcess Permission = "payroll.process"
	PermissionPayrollDelete  Permission = "payroll.delete"

	// Reports
	PermissionReportsView   Permission = "reports.view"
	PermissionReportsExport Permission = "reports.export"

	// User Management
	PermissionUserManage Permission = "user.manage"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionRecordsView,
		PermissionRecordsManage,
		PermissionRecordsDelete,
		PermissionPayrollView,
		PermissionPayrollManage,
		PermissionPayrollProcess,
		PermissionPayrollDelete,
		PermissionReportsView,
		PermissionReportsExport,
		PermissionUserManage,
	},
	RoleHR: {
		// HR maintains data and runs payroll but cannot delete
		PermissionRecordsView,
		PermissionRecordsManage,
		PermissionPayrollView,
		PermissionPayrollManage,
		PermissionPayrollProcess,
		PermissionReportsView,
		PermissionReportsExport,
	},
	RoleUser: {
		PermissionRecordsView,
		PermissionPayrollView,
		PermissionReportsView,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}
	return false
}
