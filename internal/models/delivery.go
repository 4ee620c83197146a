package models

// DeliveryStatus moves from Pending to either Delivered or Returned, never back.
type DeliveryStatus string

const (
	DeliveryPending   DeliveryStatus = "Pending"
	DeliveryDelivered DeliveryStatus = "Delivered"
	DeliveryReturned  DeliveryStatus = "Returned"
)

func (s DeliveryStatus) Valid() bool {
	switch s {
	case DeliveryPending, DeliveryDelivered, DeliveryReturned:
		return true
	}
	return false
}

// Delivery is a customer drop assigned to one staff member.
type Delivery struct {
	ID           string         `json:"id"`
	CustomerName string         `json:"customerName"`
	Address      string         `json:"address"`
	Status       DeliveryStatus `json:"status"`
	AssignedTo   string         `json:"assignedTo"`
	Reason       string         `json:"reason,omitempty"`
	Photo        string         `json:"photo,omitempty"`
}

// OwnerID returns the staff id the delivery is assigned to.
func (d *Delivery) OwnerID() string {
	return d.AssignedTo
}

// DeliveryStats counts deliveries per status.
type DeliveryStats struct {
	Delivered int `json:"delivered"`
	Pending   int `json:"pending"`
	Returned  int `json:"returned"`
}
