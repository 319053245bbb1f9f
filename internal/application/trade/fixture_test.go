package trade

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/retailbook/backend/internal/application/stock"
	"github.com/retailbook/backend/internal/domain/inventory"
	"github.com/retailbook/backend/internal/domain/ledger"
	"github.com/retailbook/backend/internal/domain/shared"
	"github.com/retailbook/backend/internal/domain/trade"
)

// In-memory repositories backing a NoOpTransactionScope. They cover exactly
// what the services exercise; list methods the tests never reach return empty.

type memProductRepo struct {
	products map[uuid.UUID]*inventory.Product
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{products: make(map[uuid.UUID]*inventory.Product)}
}

func (r *memProductRepo) add(p *inventory.Product) {
	r.products[p.ID] = p
}

func (r *memProductRepo) get(id uuid.UUID) (*inventory.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.Product, error) {
	return r.get(id)
}

func (r *memProductRepo) FindByIDForUpdate(_ context.Context, id uuid.UUID) (*inventory.Product, error) {
	return r.get(id)
}

func (r *memProductRepo) FindByUID(_ context.Context, _ uuid.UUID, branchID *uuid.UUID, uid string) (*inventory.Product, error) {
	for _, p := range r.products {
		if p.UID != uid {
			continue
		}
		if branchID != nil && (p.BranchID == nil || *p.BranchID != *branchID) {
			continue
		}
		cp := *p
		return &cp, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memProductRepo) FindAllForEnterprise(_ context.Context, _ uuid.UUID, _ *uuid.UUID, _ shared.Filter) ([]inventory.Product, error) {
	return nil, nil
}

func (r *memProductRepo) FindByBrand(_ context.Context, _ uuid.UUID) ([]inventory.Product, error) {
	return nil, nil
}

func (r *memProductRepo) ExistsByUID(_ context.Context, _ string) (bool, error) {
	return false, nil
}

func (r *memProductRepo) CountForEnterprise(_ context.Context, _ uuid.UUID, _ *uuid.UUID) (int64, error) {
	return int64(len(r.products)), nil
}

func (r *memProductRepo) Save(_ context.Context, p *inventory.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.products, id)
	return nil
}

type memBrandRepo struct {
	brands map[uuid.UUID]*inventory.Brand
}

func newMemBrandRepo() *memBrandRepo {
	return &memBrandRepo{brands: make(map[uuid.UUID]*inventory.Brand)}
}

func (r *memBrandRepo) add(b *inventory.Brand) {
	r.brands[b.ID] = b
}

func (r *memBrandRepo) get(id uuid.UUID) (*inventory.Brand, error) {
	b, ok := r.brands[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *memBrandRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.Brand, error) {
	return r.get(id)
}

func (r *memBrandRepo) FindByIDForUpdate(_ context.Context, id uuid.UUID) (*inventory.Brand, error) {
	return r.get(id)
}

func (r *memBrandRepo) FindByName(_ context.Context, _ uuid.UUID, _ *uuid.UUID, _ string) (*inventory.Brand, error) {
	return nil, shared.ErrNotFound
}

func (r *memBrandRepo) FindAllForEnterprise(_ context.Context, _ uuid.UUID, _ *uuid.UUID) ([]inventory.Brand, error) {
	return nil, nil
}

func (r *memBrandRepo) CountForEnterprise(_ context.Context, _ uuid.UUID, _ *uuid.UUID) (int64, error) {
	return int64(len(r.brands)), nil
}

func (r *memBrandRepo) Save(_ context.Context, b *inventory.Brand) error {
	cp := *b
	r.brands[b.ID] = &cp
	return nil
}

func (r *memBrandRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.brands, id)
	return nil
}

type memPurchaseTxRepo struct {
	txs map[uuid.UUID]*trade.PurchaseTransaction
}

func newMemPurchaseTxRepo() *memPurchaseTxRepo {
	return &memPurchaseTxRepo{txs: make(map[uuid.UUID]*trade.PurchaseTransaction)}
}

func copyPurchaseTx(tx *trade.PurchaseTransaction) *trade.PurchaseTransaction {
	cp := *tx
	cp.Items = append([]trade.Purchase(nil), tx.Items...)
	return &cp
}

func (r *memPurchaseTxRepo) FindByID(_ context.Context, id uuid.UUID) (*trade.PurchaseTransaction, error) {
	tx, ok := r.txs[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return copyPurchaseTx(tx), nil
}

func (r *memPurchaseTxRepo) FindByIDForTenant(ctx context.Context, id, enterpriseID uuid.UUID) (*trade.PurchaseTransaction, error) {
	tx, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tx.EnterpriseID != enterpriseID {
		return nil, shared.ErrNotFound
	}
	return tx, nil
}

func (r *memPurchaseTxRepo) FindAllForEnterprise(_ context.Context, enterpriseID uuid.UUID, _ *uuid.UUID, _ shared.Filter) ([]*trade.PurchaseTransaction, int64, error) {
	var out []*trade.PurchaseTransaction
	for _, tx := range r.txs {
		if tx.EnterpriseID == enterpriseID {
			out = append(out, copyPurchaseTx(tx))
		}
	}
	return out, int64(len(out)), nil
}

func (r *memPurchaseTxRepo) FindItemsByIDs(_ context.Context, ids []uuid.UUID) ([]*trade.Purchase, error) {
	var out []*trade.Purchase
	for _, tx := range r.txs {
		for i := range tx.Items {
			for _, id := range ids {
				if tx.Items[i].ID == id {
					cp := tx.Items[i]
					out = append(out, &cp)
				}
			}
		}
	}
	return out, nil
}

func (r *memPurchaseTxRepo) Save(_ context.Context, tx *trade.PurchaseTransaction) error {
	r.txs[tx.ID] = copyPurchaseTx(tx)
	return nil
}

func (r *memPurchaseTxRepo) SaveItems(_ context.Context, items []*trade.Purchase) error {
	for _, it := range items {
		tx, ok := r.txs[it.TransactionID]
		if !ok {
			return shared.ErrNotFound
		}
		for i := range tx.Items {
			if tx.Items[i].ID == it.ID {
				tx.Items[i] = *it
			}
		}
	}
	return nil
}

func (r *memPurchaseTxRepo) DeleteItems(_ context.Context, transactionID uuid.UUID) error {
	if tx, ok := r.txs[transactionID]; ok {
		tx.Items = nil
	}
	return nil
}

func (r *memPurchaseTxRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.txs, id)
	return nil
}

type memSalesTxRepo struct {
	txs map[uuid.UUID]*trade.SalesTransaction
}

func newMemSalesTxRepo() *memSalesTxRepo {
	return &memSalesTxRepo{txs: make(map[uuid.UUID]*trade.SalesTransaction)}
}

func copySalesTx(tx *trade.SalesTransaction) *trade.SalesTransaction {
	cp := *tx
	cp.Items = append([]trade.Sale(nil), tx.Items...)
	return &cp
}

func (r *memSalesTxRepo) FindByID(_ context.Context, id uuid.UUID) (*trade.SalesTransaction, error) {
	tx, ok := r.txs[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return copySalesTx(tx), nil
}

func (r *memSalesTxRepo) FindByIDForTenant(ctx context.Context, id, enterpriseID uuid.UUID) (*trade.SalesTransaction, error) {
	tx, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tx.EnterpriseID != enterpriseID {
		return nil, shared.ErrNotFound
	}
	return tx, nil
}

func (r *memSalesTxRepo) FindAllForEnterprise(_ context.Context, enterpriseID uuid.UUID, _ *uuid.UUID, _ shared.Filter) ([]*trade.SalesTransaction, int64, error) {
	var out []*trade.SalesTransaction
	for _, tx := range r.txs {
		if tx.EnterpriseID == enterpriseID {
			out = append(out, copySalesTx(tx))
		}
	}
	return out, int64(len(out)), nil
}

func (r *memSalesTxRepo) FindItemsByIDs(_ context.Context, ids []uuid.UUID) ([]*trade.Sale, error) {
	var out []*trade.Sale
	for _, tx := range r.txs {
		for i := range tx.Items {
			for _, id := range ids {
				if tx.Items[i].ID == id {
					cp := tx.Items[i]
					out = append(out, &cp)
				}
			}
		}
	}
	return out, nil
}

func (r *memSalesTxRepo) MaxBillNo(_ context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID) (int, error) {
	max := 0
	for _, tx := range r.txs {
		if tx.EnterpriseID != enterpriseID {
			continue
		}
		if branchID != nil && (tx.BranchID == nil || *tx.BranchID != *branchID) {
			continue
		}
		if tx.BillNo > max {
			max = tx.BillNo
		}
	}
	return max, nil
}

func (r *memSalesTxRepo) Save(_ context.Context, tx *trade.SalesTransaction) error {
	r.txs[tx.ID] = copySalesTx(tx)
	return nil
}

func (r *memSalesTxRepo) SaveItems(_ context.Context, items []*trade.Sale) error {
	for _, it := range items {
		tx, ok := r.txs[it.TransactionID]
		if !ok {
			return shared.ErrNotFound
		}
		for i := range tx.Items {
			if tx.Items[i].ID == it.ID {
				tx.Items[i] = *it
			}
		}
	}
	return nil
}

func (r *memSalesTxRepo) DeleteItems(_ context.Context, transactionID uuid.UUID) error {
	if tx, ok := r.txs[transactionID]; ok {
		tx.Items = nil
	}
	return nil
}

func (r *memSalesTxRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.txs, id)
	return nil
}

type memPurchaseReturnRepo struct {
	returns map[uuid.UUID]*trade.PurchaseReturn
}

func newMemPurchaseReturnRepo() *memPurchaseReturnRepo {
	return &memPurchaseReturnRepo{returns: make(map[uuid.UUID]*trade.PurchaseReturn)}
}

func (r *memPurchaseReturnRepo) FindByID(_ context.Context, id uuid.UUID) (*trade.PurchaseReturn, error) {
	ret, ok := r.returns[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	cp := *ret
	return &cp, nil
}

func (r *memPurchaseReturnRepo) FindAllForEnterprise(_ context.Context, enterpriseID uuid.UUID, _ *uuid.UUID, _, _ *time.Time) ([]*trade.PurchaseReturn, error) {
	var out []*trade.PurchaseReturn
	for _, ret := range r.returns {
		if ret.EnterpriseID == enterpriseID {
			cp := *ret
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memPurchaseReturnRepo) Save(_ context.Context, ret *trade.PurchaseReturn) error {
	cp := *ret
	r.returns[ret.ID] = &cp
	return nil
}

func (r *memPurchaseReturnRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.returns, id)
	return nil
}

type memSalesReturnRepo struct {
	returns map[uuid.UUID]*trade.SalesReturn
}

func newMemSalesReturnRepo() *memSalesReturnRepo {
	return &memSalesReturnRepo{returns: make(map[uuid.UUID]*trade.SalesReturn)}
}

func (r *memSalesReturnRepo) FindByID(_ context.Context, id uuid.UUID) (*trade.SalesReturn, error) {
	ret, ok := r.returns[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	cp := *ret
	return &cp, nil
}

func (r *memSalesReturnRepo) FindAllForEnterprise(_ context.Context, enterpriseID uuid.UUID, _ *uuid.UUID, _, _ *time.Time) ([]*trade.SalesReturn, error) {
	var out []*trade.SalesReturn
	for _, ret := range r.returns {
		if ret.EnterpriseID == enterpriseID {
			cp := *ret
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memSalesReturnRepo) Save(_ context.Context, ret *trade.SalesReturn) error {
	cp := *ret
	r.returns[ret.ID] = &cp
	return nil
}

func (r *memSalesReturnRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.returns, id)
	return nil
}

type memVendorTxRepo struct {
	entries map[uuid.UUID]*ledger.VendorTransaction
}

func newMemVendorTxRepo() *memVendorTxRepo {
	return &memVendorTxRepo{entries: make(map[uuid.UUID]*ledger.VendorTransaction)}
}

func (r *memVendorTxRepo) FindByID(_ context.Context, id uuid.UUID) (*ledger.VendorTransaction, error) {
	e, ok := r.entries[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *memVendorTxRepo) FindForParty(_ context.Context, partyID uuid.UUID, _, _ *time.Time) ([]*ledger.VendorTransaction, error) {
	var out []*ledger.VendorTransaction
	for _, e := range r.entries {
		if e.VendorID == partyID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memVendorTxRepo) SumAmountBefore(_ context.Context, partyID uuid.UUID, before time.Time) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, e := range r.entries {
		if e.VendorID == partyID && e.Date.Before(before) {
			sum = sum.Add(e.Amount)
		}
	}
	return sum, nil
}

func (r *memVendorTxRepo) Save(_ context.Context, e *ledger.VendorTransaction) error {
	cp := *e
	r.entries[e.ID] = &cp
	return nil
}

func (r *memVendorTxRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.entries, id)
	return nil
}

func (r *memVendorTxRepo) FindBySourceTransaction(_ context.Context, purchaseTransactionID uuid.UUID) ([]*ledger.VendorTransaction, error) {
	var out []*ledger.VendorTransaction
	for _, e := range r.entries {
		if e.PurchaseTransactionID != nil && *e.PurchaseTransactionID == purchaseTransactionID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memVendorTxRepo) DeleteBySourceTransaction(_ context.Context, purchaseTransactionID uuid.UUID) error {
	for id, e := range r.entries {
		if e.PurchaseTransactionID != nil && *e.PurchaseTransactionID == purchaseTransactionID {
			delete(r.entries, id)
		}
	}
	return nil
}

type memDebtorTxRepo struct {
	entries map[uuid.UUID]*ledger.DebtorTransaction
}

func newMemDebtorTxRepo() *memDebtorTxRepo {
	return &memDebtorTxRepo{entries: make(map[uuid.UUID]*ledger.DebtorTransaction)}
}

func (r *memDebtorTxRepo) FindByID(_ context.Context, id uuid.UUID) (*ledger.DebtorTransaction, error) {
	e, ok := r.entries[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *memDebtorTxRepo) FindForParty(_ context.Context, partyID uuid.UUID, _, _ *time.Time) ([]*ledger.DebtorTransaction, error) {
	var out []*ledger.DebtorTransaction
	for _, e := range r.entries {
		if e.DebtorID == partyID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memDebtorTxRepo) SumAmountBefore(_ context.Context, partyID uuid.UUID, before time.Time) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, e := range r.entries {
		if e.DebtorID == partyID && e.Date.Before(before) {
			sum = sum.Add(e.Amount)
		}
	}
	return sum, nil
}

func (r *memDebtorTxRepo) Save(_ context.Context, e *ledger.DebtorTransaction) error {
	cp := *e
	r.entries[e.ID] = &cp
	return nil
}

func (r *memDebtorTxRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.entries, id)
	return nil
}

func (r *memDebtorTxRepo) FindBySourceTransaction(_ context.Context, salesTransactionID uuid.UUID) ([]*ledger.DebtorTransaction, error) {
	var out []*ledger.DebtorTransaction
	for _, e := range r.entries {
		if e.SalesTransactionID != nil && *e.SalesTransactionID == salesTransactionID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memDebtorTxRepo) DeleteBySourceTransaction(_ context.Context, salesTransactionID uuid.UUID) error {
	for id, e := range r.entries {
		if e.SalesTransactionID != nil && *e.SalesTransactionID == salesTransactionID {
			delete(r.entries, id)
		}
	}
	return nil
}

func (r *memDebtorTxRepo) SumSettlementsInWindow(_ context.Context, enterpriseID uuid.UUID, _ *uuid.UUID, from, to time.Time) (ledger.SettlementSums, error) {
	sums := ledger.SettlementSums{Total: decimal.Zero, Cash: decimal.Zero}
	for _, e := range r.entries {
		if e.EnterpriseID != enterpriseID || e.Method == shared.PaymentCredit {
			continue
		}
		if e.Date.Before(from) || e.Date.After(to) {
			continue
		}
		sums.Total = sums.Total.Add(e.Amount)
		if e.Method == shared.PaymentCash {
			sums.Cash = sums.Cash.Add(e.Amount)
		}
	}
	return sums, nil
}

// tradeFixture wires every in-memory repository behind one scope, seeded with
// a brand and a couple of products.
type tradeFixture struct {
	enterpriseID uuid.UUID
	scope        stock.TransactionScope
	products     *memProductRepo
	brands       *memBrandRepo
	purchaseTxs  *memPurchaseTxRepo
	salesTxs     *memSalesTxRepo
	purchaseRets *memPurchaseReturnRepo
	salesRets    *memSalesReturnRepo
	vendorTxs    *memVendorTxRepo
	debtorTxs    *memDebtorTxRepo
	brand        *inventory.Brand
}

func newTradeFixture(t *testing.T) *tradeFixture {
	t.Helper()
	f := &tradeFixture{
		enterpriseID: uuid.New(),
		products:     newMemProductRepo(),
		brands:       newMemBrandRepo(),
		purchaseTxs:  newMemPurchaseTxRepo(),
		salesTxs:     newMemSalesTxRepo(),
		purchaseRets: newMemPurchaseReturnRepo(),
		salesRets:    newMemSalesReturnRepo(),
		vendorTxs:    newMemVendorTxRepo(),
		debtorTxs:    newMemDebtorTxRepo(),
	}
	brand, err := inventory.NewBrand(f.enterpriseID, nil, "Gold")
	require.NoError(t, err)
	f.brands.add(brand)
	f.brand = brand
	f.scope = stock.NewNoOpTransactionScope(
		f.products, f.brands, nil,
		f.purchaseTxs, f.salesTxs,
		f.purchaseRets, f.salesRets,
		f.vendorTxs, f.debtorTxs,
	)
	return f
}

func (f *tradeFixture) newProduct(t *testing.T, sellingPrice int64) *inventory.Product {
	t.Helper()
	p, err := inventory.NewProduct(f.enterpriseID, nil, f.brand.ID, "Ring", inventory.GenerateUID(),
		decimal.NewFromInt(sellingPrice/2), decimal.NewFromInt(sellingPrice))
	require.NoError(t, err)
	f.products.add(p)
	return p
}

func (f *tradeFixture) productCount(t *testing.T, id uuid.UUID) int {
	t.Helper()
	p, err := f.products.FindByID(context.Background(), id)
	require.NoError(t, err)
	return p.Count
}

func (f *tradeFixture) productStock(t *testing.T, id uuid.UUID) decimal.Decimal {
	t.Helper()
	p, err := f.products.FindByID(context.Background(), id)
	require.NoError(t, err)
	return p.Stock
}
