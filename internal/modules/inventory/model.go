package inventory

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound   = errors.New("inventory item not found")
	ErrValidation = errors.New("invalid inventory item")
)

// Unit is the measure an item is stocked in.
type Unit string

const (
	UnitKilogram Unit = "kg"
	UnitLitre    Unit = "L"
	UnitPieces   Unit = "pieces"
	UnitBottles  Unit = "bottles"
	UnitGram     Unit = "g"
)

var units = map[Unit]bool{UnitKilogram: true, UnitLitre: true, UnitPieces: true, UnitBottles: true, UnitGram: true}

// StockStatus is derived from stock and threshold, never stored.
type StockStatus string

const (
	InStock    StockStatus = "IN_STOCK"
	LowStock   StockStatus = "LOW_STOCK"
	OutOfStock StockStatus = "OUT_OF_STOCK"
)

// DeriveStatus returns OutOfStock at or below zero, LowStock at or below the
// threshold, InStock otherwise.
func DeriveStatus(stock, threshold float64) StockStatus {
	switch {
	case stock <= 0:
		return OutOfStock
	case stock <= threshold:
		return LowStock
	default:
		return InStock
	}
}

func ParseStockStatus(s string) (StockStatus, error) {
	st := StockStatus(strings.ToUpper(strings.TrimSpace(s)))
	switch st {
	case InStock, LowStock, OutOfStock:
		return st, nil
	}
	return "", fmt.Errorf("%w: unknown stock status %q", ErrValidation, s)
}

// Item is a stocked ingredient or supply.
type Item struct {
	ID                string      `json:"id"`
	Name              string      `json:"name"`
	Stock             float64     `json:"stock"`
	Unit              Unit        `json:"unit"`
	LowStockThreshold float64     `json:"low_stock_threshold"`
	Status            StockStatus `json:"status"`
}

func (i *Item) clone() *Item {
	c := *i
	c.Status = DeriveStatus(c.Stock, c.LowStockThreshold)
	return &c
}

// ItemRequest holds the editable fields of an item.
type ItemRequest struct {
	Name              string  `json:"name"`
	Stock             float64 `json:"stock"`
	Unit              Unit    `json:"unit"`
	LowStockThreshold float64 `json:"low_stock_threshold"`
}

func (req ItemRequest) validate() error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if !units[req.Unit] {
		return fmt.Errorf("%w: unknown unit %q", ErrValidation, req.Unit)
	}
	if req.Stock < 0 {
		return fmt.Errorf("%w: stock cannot be negative", ErrValidation)
	}
	if req.LowStockThreshold < 0 {
		return fmt.Errorf("%w: low_stock_threshold cannot be negative", ErrValidation)
	}
	return nil
}

// RestockRequest adds Quantity to an item's stock.
type RestockRequest struct {
	Quantity float64 `json:"quantity"`
}

// ChartEntry is one bar of the stock level chart.
type ChartEntry struct {
	Name      string      `json:"name"`
	Stock     float64     `json:"stock"`
	Threshold float64     `json:"threshold"`
	Unit      Unit        `json:"unit"`
	Status    StockStatus `json:"status"`
}
