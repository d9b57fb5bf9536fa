package testkit

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"math/rand"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"
)

// SuperstoreGeneratorConfig configures the retail order generator
type SuperstoreGeneratorConfig struct {
	OrderCount  int       `json:"order_count"`
	MissingRate float64   `json:"missing_rate"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Seed        int64     `json:"seed"`
}

// DefaultSuperstoreConfig returns defaults for sample data generation
func DefaultSuperstoreConfig() SuperstoreGeneratorConfig {
	return SuperstoreGeneratorConfig{
		OrderCount:  500,
		MissingRate: 0,
		StartDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		Seed:        42,
	}
}

// SuperstoreHeader is the column order of generated files
var SuperstoreHeader = []string{
	"Order ID", "Order Date", "Region", "Category", "Sub-Category", "Sales", "Quantity", "Discount", "Profit",
}

var catalog = map[string][]string{
	"Furniture":       {"Bookcases", "Chairs", "Furnishings", "Tables"},
	"Office Supplies": {"Appliances", "Art", "Binders", "Envelopes", "Fasteners", "Labels", "Paper", "Storage", "Supplies"},
	"Technology":      {"Accessories", "Copiers", "Machines", "Phones"},
}

var categories = []string{"Furniture", "Office Supplies", "Technology"}

var regions = []string{"Central", "East", "South", "West"}

// base unit price per category, scaled per order
var unitPrice = map[string]float64{
	"Furniture":       180,
	"Office Supplies": 25,
	"Technology":      240,
}

// Order is one generated row
type Order struct {
	ID          string
	Date        time.Time
	Region      string
	Category    string
	SubCategory string
	Sales       float64
	Quantity    int
	Discount    float64
	Profit      float64
	// MissingSales marks a row whose Sales cell is written blank
	MissingSales bool
}

// SuperstoreGenerator generates Superstore-style order rows
type SuperstoreGenerator struct {
	config SuperstoreGeneratorConfig
	rng    *rand.Rand
}

// NewSuperstoreGenerator creates a seeded generator
func NewSuperstoreGenerator(config SuperstoreGeneratorConfig) *SuperstoreGenerator {
	return &SuperstoreGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// GenerateOrders returns config.OrderCount orders; the same seed yields the same rows
func (g *SuperstoreGenerator) GenerateOrders() []Order {
	orders := make([]Order, 0, g.config.OrderCount)
	for i := 0; i < g.config.OrderCount; i++ {
		orders = append(orders, g.order(i))
	}
	return orders
}

func (g *SuperstoreGenerator) order(i int) Order {
	category := categories[g.rng.Intn(len(categories))]
	subs := catalog[category]
	sub := subs[g.rng.Intn(len(subs))]

	quantity := g.rng.Intn(9) + 1
	discount := []float64{0, 0, 0, 0.1, 0.2}[g.rng.Intn(5)]
	price := unitPrice[category] * (0.5 + g.rng.Float64())
	sales := round2(price * float64(quantity) * (1 - discount))
	// margins shrink with discount, sometimes negative
	margin := 0.25 - discount*1.5 + g.rng.NormFloat64()*0.05
	profit := round2(sales * margin)

	return Order{
		ID:           fmt.Sprintf("ORD-%05d", i+1),
		Date:         g.randomDate(),
		Region:       regions[g.rng.Intn(len(regions))],
		Category:     category,
		SubCategory:  sub,
		Sales:        sales,
		Quantity:     quantity,
		Discount:     discount,
		Profit:       profit,
		MissingSales: g.config.MissingRate > 0 && g.rng.Float64() < g.config.MissingRate,
	}
}

func (g *SuperstoreGenerator) randomDate() time.Time {
	days := int(g.config.EndDate.Sub(g.config.StartDate).Hours() / 24)
	if days <= 0 {
		return g.config.StartDate
	}
	return g.config.StartDate.AddDate(0, 0, g.rng.Intn(days+1))
}

// Record formats the order in SuperstoreHeader order
func (o Order) Record() []string {
	sales := strconv.FormatFloat(o.Sales, 'f', 2, 64)
	if o.MissingSales {
		sales = ""
	}
	return []string{
		o.ID,
		o.Date.Format("2006-01-02"),
		o.Region,
		o.Category,
		o.SubCategory,
		sales,
		strconv.Itoa(o.Quantity),
		strconv.FormatFloat(o.Discount, 'f', 2, 64),
		strconv.FormatFloat(o.Profit, 'f', 2, 64),
	}
}

// SalesBy sums present Sales per value of the key function
func SalesBy(orders []Order, key func(Order) string) map[string]float64 {
	sums := make(map[string]float64)
	for _, o := range orders {
		if o.MissingSales {
			continue
		}
		sums[key(o)] += o.Sales
	}
	return sums
}

// TotalSales sums every present Sales value
func TotalSales(orders []Order) float64 {
	total := 0.0
	for _, o := range orders {
		if !o.MissingSales {
			total += o.Sales
		}
	}
	return total
}

// WriteCSV writes the header and every order as comma separated text
func WriteCSV(w io.Writer, orders []Order) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(SuperstoreHeader); err != nil {
		return err
	}
	for _, o := range orders {
		if err := cw.Write(o.Record()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes the orders to the first sheet of a new workbook
func WriteXLSX(w io.Writer, orders []Order) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	header := make([]interface{}, len(SuperstoreHeader))
	for i, h := range SuperstoreHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, o := range orders {
		var sales interface{} = o.Sales
		if o.MissingSales {
			sales = nil
		}
		row := []interface{}{
			o.ID, o.Date.Format("2006-01-02"), o.Region, o.Category, o.SubCategory,
			sales, o.Quantity, o.Discount, o.Profit,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	_, err := f.WriteTo(w)
	return err
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
