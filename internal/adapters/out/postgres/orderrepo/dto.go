// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// It converts cleaned orders into rows of the "orders" warehouse table.
package orderrepo

import (
	"time"

	"orderstats/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents one row of the orders table.
// OrderID is not unique: the same source order may arrive in several landing files,
// each load is kept and identified by ImportID.
type OrderDTO struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	ImportID    uuid.UUID `gorm:"type:uuid;not null;index"`
	OrderID     *int64
	CustomerID  *int64
	ProductID   int64           `gorm:"not null"`
	Region      *string         `gorm:"index"`
	OrderDate   time.Time       `gorm:"type:date;not null"`
	OrderAmount decimal.Decimal `gorm:"type:numeric;not null"`
	Quantity    int             `gorm:"not null"`
	OrderValue  decimal.Decimal `gorm:"type:numeric;not null"`
}

// TableName specifies the database table name for order rows.
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts a cleaned order to its row. An empty region is stored as NULL
// so that it is never grouped as a region of its own.
func fromDomain(importID uuid.UUID, o *order.Order) OrderDTO {
	var region *string
	if r := o.Region(); r != "" {
		region = &r
	}

	return OrderDTO{
		ImportID:    importID,
		OrderID:     o.OrderID(),
		CustomerID:  o.CustomerID(),
		ProductID:   o.ProductID(),
		Region:      region,
		OrderDate:   o.OrderDate(),
		OrderAmount: o.Amount(),
		Quantity:    o.Quantity(),
		OrderValue:  o.Value(),
	}
}

// toDomain rebuilds the cleaned order from a stored row.
func toDomain(dto OrderDTO) (*order.Order, error) {
	var region string
	if dto.Region != nil {
		region = *dto.Region
	}

	return order.NewOrder(order.Params{
		OrderID:    dto.OrderID,
		CustomerID: dto.CustomerID,
		ProductID:  dto.ProductID,
		Region:     region,
		OrderDate:  dto.OrderDate,
		Amount:     dto.OrderAmount,
		Quantity:   dto.Quantity,
	})
}
