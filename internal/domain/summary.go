package domain

// OrderTotals agrega a coleção inteira de pedidos.
type OrderTotals struct {
	NumOrders  int64   `json:"numOrders" bson:"numOrders"`
	TotalSales float64 `json:"totalSales" bson:"totalSales"`
}

// DailySales é um ponto da série diária (data UTC no formato AAAA-MM-DD).
type DailySales struct {
	Date       string  `json:"date" bson:"_id"`
	OrderCount int64   `json:"orderCount" bson:"orderCount"`
	SalesSum   float64 `json:"salesSum" bson:"salesSum"`
}

// CategoryCount é a contagem de produtos por categoria.
type CategoryCount struct {
	Category string `json:"category" bson:"_id"`
	Count    int64  `json:"count" bson:"count"`
}

// Summary é o painel administrativo de vendas.
type Summary struct {
	NumOrders         int64           `json:"numOrders"`
	TotalSales        float64         `json:"totalSales"`
	NumCustomers      int64           `json:"numCustomers"`
	DailyOrders       []DailySales    `json:"dailyOrders"`
	ProductCategories []CategoryCount `json:"productCategories"`
}
