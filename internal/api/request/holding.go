package request

// AddHoldingRequest carries the fields of the add-holding form and of the
// POST /api/v1/holdings body. Quantity and price arrive as strings and are
// parsed as exact decimals during validation.
type AddHoldingRequest struct {
	Code     string `json:"code"`
	Date     string `json:"date"`
	Quantity string `json:"quantity"`
	Price    string `json:"price"`
}
