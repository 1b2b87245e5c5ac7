package handlers

import (
    "encoding/json"
    "net/http"

    "cacamba-payment-api/catalog"
)

type ProductHandler struct{}

func NewProductHandler() *ProductHandler {
    return &ProductHandler{}
}

func (h *ProductHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(catalog.List())
}
