package tefas

// Response is the raw BindHistoryInfo payload. TEFAS serves a DataTables
// style envelope around the per-day fund rows.
type Response struct {
	Draw            int          `json:"draw"`
	RecordsTotal    int          `json:"recordsTotal"`
	RecordsFiltered int          `json:"recordsFiltered"`
	Data            []HistoryRow `json:"data"`
}

// HistoryRow is one published price point for a fund. Date is an epoch
// timestamp in milliseconds, serialized as a string.
type HistoryRow struct {
	Date  string  `json:"TARIH"`
	Code  string  `json:"FONKODU"`
	Title string  `json:"FONUNVAN"`
	Price float64 `json:"FIYAT"`
}
