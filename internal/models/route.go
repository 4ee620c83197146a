package models

type DeliveryRoute struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	StaffID string `json:"staffId"`
	Zone    string `json:"zone"`
	Photo   string `json:"photo,omitempty"`
}

type NewRoute struct {
	Name    string `json:"name"`
	StaffID string `json:"staffId"`
	Zone    string `json:"zone"`
	Photo   string `json:"photo,omitempty"`
}
