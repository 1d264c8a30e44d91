package authapimodels

type JWTResponse struct {
	Token string `json:"token"`
}

type Identity struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Role       string `json:"role"`
}
