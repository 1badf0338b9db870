package models

import "time"

// ColumnRoles maps each logical role to the header that fills it.
// An empty string means the role was not resolved.
type ColumnRoles struct {
	Date    string `json:"date,omitempty"`
	Product string `json:"product,omitempty"`
	Amount  string `json:"amount,omitempty"`
}

func (r ColumnRoles) HasDate() bool { return r.Date != "" }

type Statistics struct {
	Total   float64 `json:"total"`
	Average float64 `json:"average"`
	Highest float64 `json:"highest"`
	Lowest  float64 `json:"lowest"`
	Count   int     `json:"count"`
}

type ProductTotal struct {
	Product string  `json:"product"`
	Total   float64 `json:"total_sales"`
}

type DailyTotal struct {
	Day   time.Time `json:"day"`
	Total float64   `json:"total_sales"`
}

// Analysis is everything derived from one sales table.
type Analysis struct {
	Records     int            `json:"records"`
	Columns     []string       `json:"columns"`
	Roles       ColumnRoles    `json:"roles"`
	Statistics  Statistics     `json:"statistics"`
	Products    []ProductTotal `json:"products"`
	TopProducts []ProductTotal `json:"top_products"`
	DailySales  []DailyTotal   `json:"daily_sales,omitempty"`
}
