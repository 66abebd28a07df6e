package model

type SupplierRef struct {
	ID           int64   `db:"id" json:"id"`
	Name         string  `db:"name" json:"name"`
	ContactEmail *string `db:"contact_email" json:"contact_email"`
}

type LowStockAlert struct {
	ProductID         int64        `db:"product_id" json:"product_id"`
	ProductName       string       `db:"product_name" json:"product_name"`
	SKU               string       `db:"sku" json:"sku"`
	WarehouseID       int64        `db:"warehouse_id" json:"warehouse_id"`
	WarehouseName     string       `db:"warehouse_name" json:"warehouse_name"`
	CurrentStock      int          `db:"current_stock" json:"current_stock"`
	Threshold         int          `db:"threshold" json:"threshold"`
	DaysUntilStockout int          `db:"-" json:"days_until_stockout"`
	Supplier          *SupplierRef `db:"-" json:"supplier"`
}

type LowStockReport struct {
	Alerts      []LowStockAlert `json:"alerts"`
	TotalAlerts int             `json:"total_alerts"`
}
