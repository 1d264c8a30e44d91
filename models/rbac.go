package models

type RbacFunc func(userID string, role UserRole, path string) bool

type Module string

const (
	EmployeesModule      Module = "EMPLOYEES"
	AuthorizationsModule Module = "AUTHORIZATIONS"
	LicensesModule       Module = "LICENSES"
	SwapRequestsModule   Module = "SWAP_REQUESTS"
	OffersModule         Module = "OFFERS"
	SanctionsModule      Module = "SANCTIONS"
)

type Permission string

const (
	CreatePermission Permission = "CREATE"
	EditPermission   Permission = "EDIT"
	ViewPermission   Permission = "VIEW"
	ManagePermission Permission = "MANAGE"
	FlowPermission   Permission = "FLOW"
	FilesPermission  Permission = "FILES"
)
