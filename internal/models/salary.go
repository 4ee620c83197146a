package models

// SalaryRecord is one payment. Several payments for the same staff and month are allowed.
type SalaryRecord struct {
	ID          string  `json:"id"`
	StaffID     string  `json:"staffId"`
	Amount      float64 `json:"amount"`
	PaymentDate string  `json:"paymentDate"`
	ForMonth    string  `json:"forMonth"`
}

type NewSalaryPayment struct {
	StaffID  string  `json:"staffId"`
	Amount   float64 `json:"amount"`
	ForMonth string  `json:"forMonth"`
}
