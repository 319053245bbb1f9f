package stock

import (
	"bytes"
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailbook/backend/internal/domain/inventory"
	"github.com/retailbook/backend/internal/domain/trade"
)

// Direction tells Apply whether deltas add stock or take it back out.
type Direction int

const (
	// Forward applies the deltas as written: purchases and manufactures in,
	// sales out after negation by the caller's delta sign.
	Forward Direction = 1
	// Reverse negates every delta. Used when a transaction is deleted or its
	// items are replaced on update.
	Reverse Direction = -1
)

// Delta is one product quantity movement extracted from a transaction line.
// Quantity is positive for stock-in lines and negative for stock-out lines.
type Delta struct {
	ProductID uuid.UUID
	Quantity  int
}

// Apply moves every delta through its product and brand aggregates inside
// the caller's transaction. Products are locked in ascending ID order, each
// product strictly before its brand, so concurrent writers queue instead of
// deadlocking. The monetary movement is quantity times the product's current
// selling price, read under the lock.
//
// Any unknown product or brand aborts before writes reach the database; the
// surrounding transaction rolls the rest back.
func Apply(ctx context.Context, repos Repositories, deltas []Delta, dir Direction) error {
	merged := mergeDeltas(deltas)
	if len(merged) == 0 {
		return nil
	}

	brands := make(map[uuid.UUID]*inventory.Brand)
	products := make([]*inventory.Product, 0, len(merged))

	for _, d := range merged {
		product, err := repos.ProductRepo().FindByIDForUpdate(ctx, d.ProductID)
		if err != nil {
			return err
		}

		brand, ok := brands[product.BrandID]
		if !ok {
			brand, err = repos.BrandRepo().FindByIDForUpdate(ctx, product.BrandID)
			if err != nil {
				return err
			}
			brands[product.BrandID] = brand
		}

		qty := int(dir) * d.Quantity
		value := product.SellingPrice.Mul(decimal.NewFromInt(int64(qty)))
		product.ApplyDelta(qty, value)
		brand.ApplyDelta(qty, value)
		products = append(products, product)
	}

	for _, p := range products {
		if err := repos.ProductRepo().Save(ctx, p); err != nil {
			return err
		}
	}
	for _, b := range brands {
		if err := repos.BrandRepo().Save(ctx, b); err != nil {
			return err
		}
	}
	return nil
}

// mergeDeltas folds repeated product IDs into one movement each and returns
// them sorted by product ID. One lock per product, taken in a stable order.
func mergeDeltas(deltas []Delta) []Delta {
	byProduct := make(map[uuid.UUID]int, len(deltas))
	for _, d := range deltas {
		byProduct[d.ProductID] += d.Quantity
	}
	merged := make([]Delta, 0, len(byProduct))
	for id, qty := range byProduct {
		if qty == 0 {
			continue
		}
		merged = append(merged, Delta{ProductID: id, Quantity: qty})
	}
	sort.Slice(merged, func(i, j int) bool {
		return bytes.Compare(merged[i].ProductID[:], merged[j].ProductID[:]) < 0
	})
	return merged
}

// PurchaseDeltas extracts stock-in deltas from purchase lines.
func PurchaseDeltas(items []trade.Purchase) []Delta {
	deltas := make([]Delta, 0, len(items))
	for _, it := range items {
		deltas = append(deltas, Delta{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return deltas
}

// SaleDeltas extracts stock-out deltas from sale lines.
func SaleDeltas(items []trade.Sale) []Delta {
	deltas := make([]Delta, 0, len(items))
	for _, it := range items {
		deltas = append(deltas, Delta{ProductID: it.ProductID, Quantity: -it.Quantity})
	}
	return deltas
}

// ManufactureDeltas extracts stock-in deltas from manufacture lines.
func ManufactureDeltas(items []inventory.ManufactureItem) []Delta {
	deltas := make([]Delta, 0, len(items))
	for _, it := range items {
		deltas = append(deltas, Delta{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return deltas
}
