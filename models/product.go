package models

type Product struct {
    ID        int     `json:"id"`
    Title     string  `json:"title"`
    SizeLabel string  `json:"size"`
    UnitPrice float64 `json:"price"`
    ImageRef  string  `json:"image"`
}
