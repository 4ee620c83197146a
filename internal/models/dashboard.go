package models

// DailyRecord is one day of sales and delivery figures shown on the dashboard.
type DailyRecord struct {
	Date              string  `json:"date"`
	TotalSales        float64 `json:"totalSales"`
	CounterSales      float64 `json:"counterSales"`
	DeliverySales     float64 `json:"deliverySales"`
	ProductsDelivered int     `json:"productsDelivered"`
	ProductsPending   int     `json:"productsPending"`
	ProductsReturned  int     `json:"productsReturned"`
}
