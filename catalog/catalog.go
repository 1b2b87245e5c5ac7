package catalog

import (
    "cacamba-payment-api/models"
)

// Catálogo fixo de seis tamanhos de caçamba. Imutável em tempo de execução;
// preços em reais.
var products = []models.Product{
    {ID: 1, Title: "CAÇAMBA DE 3M³", SizeLabel: "3m³", UnitPrice: 260.00, ImageRef: "cacamba-3m.avif"},
    {ID: 2, Title: "CAÇAMBA DE 4M³", SizeLabel: "4m³", UnitPrice: 290.00, ImageRef: "cacamba-4m-real.jpg"},
    {ID: 3, Title: "CAÇAMBA DE 5M³", SizeLabel: "5m³", UnitPrice: 340.00, ImageRef: "cacamba-5m-real.webp"},
    {ID: 4, Title: "CAÇAMBA DE 7M³", SizeLabel: "7m³", UnitPrice: 380.00, ImageRef: "cacamba-7m-real.jpg"},
    {ID: 5, Title: "CAÇAMBA DE 10M³", SizeLabel: "10m³", UnitPrice: 460.00, ImageRef: "cacamba-10m-real.webp"},
    {ID: 6, Title: "CAÇAMBA DE 26M³", SizeLabel: "26m³", UnitPrice: 900.00, ImageRef: "cacamba-26m.avif"},
}

const (
    // MaxQuantity vale para todos os tamanhos exceto o maior.
    MaxQuantity = 3

    // largestSizeID só pode ser pedido em unidade única.
    largestSizeID = 6
)

// List retorna o catálogo na ordem de exibição.
func List() []models.Product {
    out := make([]models.Product, len(products))
    copy(out, products)
    return out
}

// ByID busca um produto pelo identificador.
func ByID(id int) (models.Product, bool) {
    for _, p := range products {
        if p.ID == id {
            return p, true
        }
    }
    return models.Product{}, false
}

// QuantityAllowed valida a quantidade pedida para o produto: 1 a 3 em
// geral, fixa em 1 para a caçamba de 26m³.
func QuantityAllowed(p models.Product, quantity int) bool {
    if p.ID == largestSizeID {
        return quantity == 1
    }
    return quantity >= 1 && quantity <= MaxQuantity
}
