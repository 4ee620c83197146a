package models

// StaffRole is the job a staff member holds.
type StaffRole string

const (
	RoleDelivery     StaffRole = "Delivery"
	RoleCounterSales StaffRole = "Counter Sales"
	RoleProduction   StaffRole = "Production"
	RoleManager      StaffRole = "Manager"
)

func (r StaffRole) Valid() bool {
	switch r {
	case RoleDelivery, RoleCounterSales, RoleProduction, RoleManager:
		return true
	}
	return false
}

// Staff is a member of staff. Password is compared as a plain value at login.
type Staff struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Role     StaffRole `json:"role"`
	Password string    `json:"password"`
	Salary   *float64  `json:"salary,omitempty"`
}

// PublicStaff is the staff view handed to HTTP clients.
type PublicStaff struct {
	ID     string    `json:"id"`
	Name   string    `json:"name"`
	Role   StaffRole `json:"role,omitempty"`
	Salary *float64  `json:"salary,omitempty"`
}

// Public drops the password.
func (s Staff) Public() PublicStaff {
	return PublicStaff{ID: s.ID, Name: s.Name, Role: s.Role, Salary: s.Salary}
}

// NewStaff is the input of an add-staff request.
type NewStaff struct {
	Name     string    `json:"name"`
	Role     StaffRole `json:"role"`
	Password string    `json:"password"`
	Salary   *float64  `json:"salary,omitempty"`
}
