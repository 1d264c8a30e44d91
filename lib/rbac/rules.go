package rbac

import (
	"workshift-backend/models"
)

var (
	AdminRoleSet            = []models.UserRole{models.AdminRole}
	ChiefAdminRoleSet       = []models.UserRole{models.ChiefRole, models.AdminRole}
	SupervisorChiefAdminSet = []models.UserRole{models.SupervisorRole, models.ChiefRole, models.AdminRole}
	AllRoles                = []models.UserRole{models.InspectorRole, models.SupervisorRole, models.ChiefRole, models.AdminRole}
)

func (i *impl) initRules() {
	i.employees()
	i.authorizations()
	i.licenses()
	i.swapRequests()
	i.offers()
	i.sanctions()
}

// register las reglas son estaticas: un patron mal escrito es un error de programacion
func (i *impl) register(module models.Module, permission models.Permission, roles []models.UserRole, swaggerPattern string, handler models.RbacFunc) {
	if err := i.addRule(module, permission, roles, swaggerPattern, handler); err != nil {
		panic(err.Error())
	}
}

func (i *impl) employees() {
	// VIEW
	i.register(models.EmployeesModule, models.ViewPermission, SupervisorChiefAdminSet, "/api/v1/employees [get]", nil)
	i.register(models.EmployeesModule, models.ViewPermission, AllRoles, "/api/v1/employees/{id} [get]",
		SelfOrRolesFunc("/api/v1/employees", SupervisorChiefAdminSet))
	// MANAGE
	i.register(models.EmployeesModule, models.ManagePermission, AdminRoleSet, "/api/v1/employees [post]", nil)
	i.register(models.EmployeesModule, models.ManagePermission, AdminRoleSet, "/api/v1/employees/{id} [put]", nil)
	i.register(models.EmployeesModule, models.ManagePermission, AdminRoleSet, "/api/v1/employees/{id}/active [put]", nil)
	// EDIT solo la propia contraseña, salvo admin
	i.register(models.EmployeesModule, models.EditPermission, AllRoles, "/api/v1/employees/{id}/password [put]",
		SelfOrRolesFunc("/api/v1/employees", AdminRoleSet))
}

func (i *impl) authorizations() {
	// VIEW
	i.register(models.AuthorizationsModule, models.ViewPermission, SupervisorChiefAdminSet, "/api/v1/authorizations [get]", nil)
	i.register(models.AuthorizationsModule, models.ViewPermission, AllRoles, "/api/v1/authorizations/{id} [get]", nil)
	i.register(models.AuthorizationsModule, models.ViewPermission, AllRoles, "/api/v1/authorizations/{id}/history [get]", nil)
	i.register(models.AuthorizationsModule, models.ViewPermission, AllRoles, "/api/v1/authorizations/{id}/pdf [get]", nil)
	// CREATE
	i.register(models.AuthorizationsModule, models.CreatePermission, AllRoles, "/api/v1/authorizations [post]", nil)
	// FLOW
	i.register(models.AuthorizationsModule, models.FlowPermission, ChiefAdminRoleSet, "/api/v1/authorizations/{id}/approve [put]", nil)
	i.register(models.AuthorizationsModule, models.FlowPermission, ChiefAdminRoleSet, "/api/v1/authorizations/{id}/reject [put]", nil)
}

func (i *impl) licenses() {
	// VIEW
	i.register(models.LicensesModule, models.ViewPermission, AllRoles, "/api/v1/licenses [get]", nil)
	i.register(models.LicensesModule, models.ViewPermission, AllRoles, "/api/v1/licenses/{id} [get]", nil)
	i.register(models.LicensesModule, models.ViewPermission, SupervisorChiefAdminSet, "/api/v1/licenses/by_date [get]", nil)
	i.register(models.LicensesModule, models.ViewPermission, SupervisorChiefAdminSet, "/api/v1/licenses/by_date/xlsx [get]", nil)
	// CREATE/EDIT
	i.register(models.LicensesModule, models.CreatePermission, AllRoles, "/api/v1/licenses [post]", nil)
	i.register(models.LicensesModule, models.EditPermission, AllRoles, "/api/v1/licenses/{id} [put]", nil)
	i.register(models.LicensesModule, models.EditPermission, AllRoles, "/api/v1/licenses/{id} [delete]", nil)
	// FILES
	i.register(models.LicensesModule, models.FilesPermission, AllRoles, "/api/v1/licenses/{id}/document [put]", nil)
	i.register(models.LicensesModule, models.FilesPermission, AllRoles, "/api/v1/licenses/{id}/document [get]", nil)
}

func (i *impl) swapRequests() {
	i.register(models.SwapRequestsModule, models.ViewPermission, AllRoles, "/api/v1/swap_requests [get]", nil)
	i.register(models.SwapRequestsModule, models.ViewPermission, AllRoles, "/api/v1/swap_requests/{id} [get]", nil)
	i.register(models.SwapRequestsModule, models.CreatePermission, AllRoles, "/api/v1/swap_requests [post]", nil)
	i.register(models.SwapRequestsModule, models.EditPermission, AllRoles, "/api/v1/swap_requests/{id} [patch]", nil)
	i.register(models.SwapRequestsModule, models.EditPermission, AllRoles, "/api/v1/swap_requests/{id}/status [put]", nil)
	i.register(models.SwapRequestsModule, models.EditPermission, AllRoles, "/api/v1/swap_requests/{id} [delete]", nil)
}

func (i *impl) offers() {
	i.register(models.OffersModule, models.ViewPermission, AllRoles, "/api/v1/offers [get]", nil)
	i.register(models.OffersModule, models.ViewPermission, AllRoles, "/api/v1/offers/mine [get]", nil)
	i.register(models.OffersModule, models.ViewPermission, AllRoles, "/api/v1/offers/{id} [get]", nil)
	i.register(models.OffersModule, models.CreatePermission, AllRoles, "/api/v1/offers [post]", nil)
	i.register(models.OffersModule, models.EditPermission, AllRoles, "/api/v1/offers/{id} [put]", nil)
	i.register(models.OffersModule, models.EditPermission, AllRoles, "/api/v1/offers/{id}/publish [put]", nil)
	i.register(models.OffersModule, models.EditPermission, AllRoles, "/api/v1/offers/{id} [delete]", nil)
	i.register(models.OffersModule, models.FlowPermission, AllRoles, "/api/v1/offers/{id}/take [put]", nil)
}

func (i *impl) sanctions() {
	// VIEW
	i.register(models.SanctionsModule, models.ViewPermission, SupervisorChiefAdminSet, "/api/v1/sanctions [get]", nil)
	i.register(models.SanctionsModule, models.ViewPermission, AllRoles, "/api/v1/sanctions/employee/{id} [get]",
		SelfOrRolesFunc("/api/v1/sanctions/employee", SupervisorChiefAdminSet))
	// MANAGE
	i.register(models.SanctionsModule, models.CreatePermission, ChiefAdminRoleSet, "/api/v1/sanctions [post]", nil)
	i.register(models.SanctionsModule, models.ManagePermission, AdminRoleSet, "/api/v1/sanctions/{id}/annul [put]", nil)
}
