package models

// Sale is one row of the seller's ledger as returned by GET /api/sales.
type Sale struct {
	Buyer  string  `json:"buyer"`
	Prompt string  `json:"prompt"`
	Price  float64 `json:"price"`
	Date   string  `json:"date"`
}

// SalesSummary aggregates a sales list for the dashboard view.
type SalesSummary struct {
	TotalSold    int
	UniqueBuyers int
	TotalEarned  float64
}

// Summarize computes the dashboard aggregates over sales.
func Summarize(sales []Sale) SalesSummary {
	buyers := make(map[string]struct{}, len(sales))
	s := SalesSummary{TotalSold: len(sales)}
	for _, sale := range sales {
		buyers[sale.Buyer] = struct{}{}
		s.TotalEarned += sale.Price
	}
	s.UniqueBuyers = len(buyers)
	return s
}
