package models

type UserRole string

const (
	InspectorRole  UserRole = "INSPECTOR"
	SupervisorRole UserRole = "SUPERVISOR"
	ChiefRole      UserRole = "JEFE"
	AdminRole      UserRole = "ADMIN"
)

var roleHumanName = map[UserRole]string{
	InspectorRole:  "Inspector",
	SupervisorRole: "Supervisor",
	ChiefRole:      "Jefe",
	AdminRole:      "Administrador",
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

func (r UserRole) IsValid() bool {
	_, ok := roleHumanName[r]
	return ok
}

// CanResolveAuthorizations jefes y administradores aprueban/rechazan autorizaciones
func (r UserRole) CanResolveAuthorizations() bool {
	return r == ChiefRole || r == AdminRole
}

// CanViewOthers supervisores, jefes y administradores ven registros de otros empleados
func (r UserRole) CanViewOthers() bool {
	return r == SupervisorRole || r == ChiefRole || r == AdminRole
}

func (r UserRole) IsAdmin() bool {
	return r == AdminRole
}

const SystemUser = "Sistema"
