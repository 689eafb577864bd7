package models

// QuotaRecord is the per client daily counter of place details requests.
type QuotaRecord struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}
