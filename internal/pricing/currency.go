package pricing

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	DefaultInstallments          = 6
	DefaultFreeShippingThreshold = 50000
	LowStockThreshold            = 5
)

var printer = message.NewPrinter(language.MustParse("es-AR"))

// FormatCurrency renders an amount in Argentine pesos without decimals,
// using es-AR digit grouping.
func FormatCurrency(amount float64) string {
	return "$" + printer.Sprintf("%d", int64(math.Round(amount)))
}

type Discount struct {
	HasDiscount bool     `json:"has_discount"`
	Price       float64  `json:"price"`
	OldPrice    *float64 `json:"old_price"`
	Percentage  int      `json:"percentage"`
	Savings     float64  `json:"savings"`
}

// CalculateDiscount reports a discount only when oldPrice is set and
// greater than price.
func CalculateDiscount(price float64, oldPrice *float64) Discount {
	if oldPrice == nil || *oldPrice <= price {
		return Discount{Price: price}
	}
	old := *oldPrice
	return Discount{
		HasDiscount: true,
		Price:       price,
		OldPrice:    &old,
		Percentage:  int(math.Round((old - price) / old * 100)),
		Savings:     old - price,
	}
}

type Installments struct {
	Count       int     `json:"count"`
	Amount      float64 `json:"amount"`
	Formatted   string  `json:"formatted"`
	Total       float64 `json:"total"`
	Description string  `json:"description"`
}

// CalculateInstallments splits amount into n interest-free installments,
// rounding each one up to a whole peso. n <= 0 uses DefaultInstallments.
func CalculateInstallments(amount float64, n int) Installments {
	if n <= 0 {
		n = DefaultInstallments
	}
	each := math.Ceil(amount / float64(n))
	formatted := FormatCurrency(each)
	return Installments{
		Count:       n,
		Amount:      each,
		Formatted:   formatted,
		Total:       each * float64(n),
		Description: fmt.Sprintf("%d cuotas sin interés de %s", n, formatted),
	}
}

type Shipping struct {
	Free      bool    `json:"free"`
	Threshold float64 `json:"threshold"`
	Missing   float64 `json:"missing"`
	Label     string  `json:"label"`
}

// ShippingQuote is free at or above threshold. Below it the cost is
// settled at checkout, so only the missing amount is reported.
func ShippingQuote(total, threshold float64) Shipping {
	if threshold <= 0 {
		threshold = DefaultFreeShippingThreshold
	}
	if total >= threshold {
		return Shipping{Free: true, Threshold: threshold, Label: "GRATIS"}
	}
	return Shipping{
		Threshold: threshold,
		Missing:   threshold - total,
		Label:     "Calculá en checkout",
	}
}

type Stock struct {
	Available bool   `json:"available"`
	Low       bool   `json:"low"`
	Text      string `json:"text"`
}

func StockStatus(stock int) Stock {
	switch {
	case stock <= 0:
		return Stock{Text: "Sin stock"}
	case stock <= LowStockThreshold:
		return Stock{Available: true, Low: true, Text: fmt.Sprintf("Últimas %d unidades", stock)}
	default:
		return Stock{Available: true, Text: "En stock"}
	}
}
