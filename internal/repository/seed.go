package repository

import (
	"math/rand/v2"
	"time"

	"github.com/diewo77/go-dairy/internal/models"
)

type catalogEntry struct {
	id   string
	name string
	unit models.Unit
	kind models.ProductType
}

var catalog = []catalogEntry{
	{"cow-milk", "Cow Milk", models.UnitLitre, models.TypeCowMilk},
	{"buffalo-milk", "Buffalo Milk", models.UnitLitre, models.TypeBuffaloMilk},
	{"curd", "Curd (Dahi)", models.UnitKilo, models.TypeDairyProduct},
	{"buttermilk", "Butter Milk (Chaach)", models.UnitLitre, models.TypeDairyProduct},
	{"buffalo-ghee", "Buffalo Ghee", models.UnitKilo, models.TypeDairyProduct},
	{"cow-ghee", "Cow Ghee", models.UnitKilo, models.TypeDairyProduct},
	{"paneer", "Paneer", models.UnitKilo, models.TypeDairyProduct},
	{"butter", "Butter (Desi Makhan)", models.UnitKilo, models.TypeDairyProduct},
	{"mustard-oil", "Farm Mustard Oil", models.UnitLitre, models.TypeOther},
	{"mawa", "Mawa", models.UnitKilo, models.TypeDairyProduct},
	{"lassi", "Lassi", models.UnitLitre, models.TypeDairyProduct},
}

// seedProducts builds the catalog with 20 to 519 litres or 20 to 119 of anything else in stock.
func seedProducts(rnd *rand.Rand) []models.Product {
	products := make([]models.Product, 0, len(catalog))
	for _, c := range catalog {
		limit := 100
		if c.unit == models.UnitLitre {
			limit = 500
		}
		products = append(products, models.Product{
			ID:    c.id,
			Name:  c.name,
			Unit:  c.unit,
			Type:  c.kind,
			Stock: rnd.IntN(limit) + 20,
		})
	}
	return products
}

func salary(v float64) *float64 { return &v }

func seedStaff() []models.Staff {
	return []models.Staff{
		{ID: "S001", Name: "Ramesh Kumar", Role: models.RoleDelivery, Password: "password1", Salary: salary(15000)},
		{ID: "S002", Name: "Sita Devi", Role: models.RoleCounterSales, Password: "password2", Salary: salary(12000)},
		{ID: "S003", Name: "Mohan Singh", Role: models.RoleProduction, Password: "password3", Salary: salary(18000)},
		{ID: "S004", Name: "Geeta Sharma", Role: models.RoleManager, Password: "password4", Salary: salary(25000)},
		{ID: "S005", Name: "Arjun Reddy", Role: models.RoleDelivery, Password: "password5", Salary: salary(15500)},
	}
}

// seedDeliveries assigns the sample drops to the first two delivery staff.
func seedDeliveries(staff []models.Staff) []models.Delivery {
	first, second := "S001", "S005"
	var drivers []string
	for _, s := range staff {
		if s.Role == models.RoleDelivery {
			drivers = append(drivers, s.ID)
		}
	}
	if len(drivers) > 0 {
		first = drivers[0]
	}
	if len(drivers) > 1 {
		second = drivers[1]
	}
	return []models.Delivery{
		{ID: "D001", CustomerName: "Anjali Verma", Address: "123, Green Park, Delhi", Status: models.DeliveryDelivered, AssignedTo: first},
		{ID: "D002", CustomerName: "Raj Malhotra", Address: "456, Civil Lines, Noida", Status: models.DeliveryPending, AssignedTo: second},
		{ID: "D003", CustomerName: "Priya Singh", Address: "789, MG Road, Gurgaon", Status: models.DeliveryPending, AssignedTo: first},
		{
			ID: "D004", CustomerName: "Amit Patel", Address: "101, Sector 15, Faridabad",
			Status: models.DeliveryReturned, Reason: "Customer not available",
			Photo:      "https://via.placeholder.com/150/FF0000/FFFFFF?text=Door+Closed",
			AssignedTo: second,
		},
	}
}

// seedDailyRecords generates a year of sample figures ending on today.
func seedDailyRecords(rnd *rand.Rand, today time.Time) []models.DailyRecord {
	records := make([]models.DailyRecord, 0, 366)
	for i := 365; i >= 0; i-- {
		counter := float64(rnd.IntN(5000) + 2000)
		delivery := float64(rnd.IntN(8000) + 4000)
		records = append(records, models.DailyRecord{
			Date:              models.Day(today.AddDate(0, 0, -i)),
			TotalSales:        counter + delivery,
			CounterSales:      counter,
			DeliverySales:     delivery,
			ProductsDelivered: rnd.IntN(50) + 20,
			ProductsPending:   rnd.IntN(10) + 2,
			ProductsReturned:  rnd.IntN(5),
		})
	}
	return records
}

func seedInvoices(today time.Time) []models.Invoice {
	return []models.Invoice{{
		ID:           "I001",
		CustomerName: "Walk-in",
		Date:         models.Day(today),
		Items:        []models.InvoiceItem{{ProductID: "cow-milk", Quantity: 2, Price: 50}},
		Total:        100,
		SubmittedBy:  "S002",
	}}
}

func seedConversionLogs(today time.Time) []models.ConversionLog {
	return []models.ConversionLog{{
		ID:           "C001",
		Date:         models.Day(today),
		FromProduct:  models.TypeCowMilk,
		FromQuantity: 50,
		ToProduct:    "Paneer",
		ToQuantity:   10,
		StaffID:      "S003",
	}}
}

func seedRoutes() []models.DeliveryRoute {
	return []models.DeliveryRoute{
		{ID: "R001", Name: "South Delhi Route", StaffID: "S001", Zone: "Green Park, Hauz Khas, Saket"},
		{ID: "R002", Name: "Gurgaon Route", StaffID: "S005", Zone: "MG Road, Cyber City"},
	}
}

func seedSalaryRecords(today time.Time) []models.SalaryRecord {
	return []models.SalaryRecord{
		{ID: "SR001", StaffID: "S001", Amount: 15000, PaymentDate: models.Day(today), ForMonth: "2024-07"},
	}
}
