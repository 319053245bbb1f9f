package inventory

import (
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailbook/backend/internal/application/stock"
	"github.com/retailbook/backend/internal/domain/inventory"
	"github.com/retailbook/backend/internal/domain/shared"
)

type memProductRepo struct {
	products  map[uuid.UUID]*inventory.Product
	uidTaken  bool
	uidChecks int
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

func (r *memProductRepo) FindByUID(_ context.Context, _ uuid.UUID, _ *uuid.UUID, uid string) (*inventory.Product, error) {
	for _, p := range r.products {
		if p.UID == uid {
			cp := *p
			return &cp, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memProductRepo) FindAllForEnterprise(_ context.Context, enterpriseID uuid.UUID, _ *uuid.UUID, _ shared.Filter) ([]inventory.Product, error) {
	var out []inventory.Product
	for _, p := range r.products {
		if p.EnterpriseID == enterpriseID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *memProductRepo) FindByBrand(_ context.Context, brandID uuid.UUID) ([]inventory.Product, error) {
	var out []inventory.Product
	for _, p := range r.products {
		if p.BrandID == brandID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *memProductRepo) ExistsByUID(_ context.Context, uid string) (bool, error) {
	r.uidChecks++
	if r.uidTaken {
		return true, nil
	}
	for _, p := range r.products {
		if p.UID == uid {
			return true, nil
		}
	}
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

func (r *memBrandRepo) FindByName(_ context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID, name string) (*inventory.Brand, error) {
	for _, b := range r.brands {
		if b.EnterpriseID != enterpriseID || !strings.EqualFold(b.Name, name) {
			continue
		}
		if branchID != nil && (b.BranchID == nil || *b.BranchID != *branchID) {
			continue
		}
		cp := *b
		return &cp, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memBrandRepo) FindAllForEnterprise(_ context.Context, enterpriseID uuid.UUID, branchID *uuid.UUID) ([]inventory.Brand, error) {
	var out []inventory.Brand
	for _, b := range r.brands {
		if b.EnterpriseID != enterpriseID {
			continue
		}
		if branchID != nil && (b.BranchID == nil || *b.BranchID != *branchID) {
			continue
		}
		out = append(out, *b)
	}
	return out, nil
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

type catalogFixture struct {
	enterpriseID uuid.UUID
	products     *memProductRepo
	brands       *memBrandRepo
	scope        stock.TransactionScope
	brand        *inventory.Brand
}

func newCatalogFixture(t *testing.T) *catalogFixture {
	t.Helper()
	f := &catalogFixture{
		enterpriseID: uuid.New(),
		products:     newMemProductRepo(),
		brands:       newMemBrandRepo(),
	}
	brand, err := inventory.NewBrand(f.enterpriseID, nil, "Silver")
	require.NoError(t, err)
	f.brands.add(brand)
	f.brand = brand
	f.scope = stock.NewNoOpTransactionScope(f.products, f.brands, nil, nil, nil, nil, nil, nil, nil)
	return f
}

var uidPattern = regexp.MustCompile(`^[2-9][0-9]{11}$`)

func TestProductService_Create(t *testing.T) {
	f := newCatalogFixture(t)
	svc := NewProductService(f.scope, f.products, f.brands)
	ctx := context.Background()

	t.Run("assigns a generated UID", func(t *testing.T) {
		resp, err := svc.Create(ctx, f.enterpriseID, nil, CreateProductRequest{
			Name:         "Payal",
			BrandID:      f.brand.ID,
			CostPrice:    decimal.NewFromInt(50),
			SellingPrice: decimal.NewFromInt(80),
		})
		require.NoError(t, err)
		assert.Regexp(t, uidPattern, resp.UID)
		assert.Equal(t, 0, resp.Count)
		assert.True(t, resp.Stock.IsZero())
	})

	t.Run("unknown brand is refused", func(t *testing.T) {
		_, err := svc.Create(ctx, f.enterpriseID, nil, CreateProductRequest{
			Name:    "Payal",
			BrandID: uuid.New(),
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("UID generation gives up after bounded retries", func(t *testing.T) {
		f.products.uidTaken = true
		f.products.uidChecks = 0

		_, err := svc.Create(ctx, f.enterpriseID, nil, CreateProductRequest{
			Name:    "Jhumka",
			BrandID: f.brand.ID,
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "UID_EXHAUSTED", domainErr.Code)
		assert.Equal(t, uidAttempts, f.products.uidChecks)
		f.products.uidTaken = false
	})
}

func TestProductService_UpdateSellingPrice(t *testing.T) {
	f := newCatalogFixture(t)
	svc := NewProductService(f.scope, f.products, f.brands)
	ctx := context.Background()

	p, err := inventory.NewProduct(f.enterpriseID, nil, f.brand.ID, "Ring", inventory.GenerateUID(),
		decimal.NewFromInt(60), decimal.NewFromInt(100))
	require.NoError(t, err)
	p.ApplyDelta(4, decimal.NewFromInt(400))
	f.products.add(p)
	f.brand.ApplyDelta(4, decimal.NewFromInt(400))
	f.brands.add(f.brand)

	newPrice := decimal.NewFromInt(150)
	resp, err := svc.Update(ctx, f.enterpriseID, p.ID, UpdateProductRequest{SellingPrice: &newPrice})
	require.NoError(t, err)

	// stock rescaled to count x new price, brand moved by the difference
	assert.Equal(t, "600", resp.Stock.String())
	assert.Equal(t, 4, resp.Count)

	brand, err := f.brands.FindByID(ctx, f.brand.ID)
	require.NoError(t, err)
	assert.Equal(t, "600", brand.Stock.String())
	assert.Equal(t, 4, brand.Count)
}

func TestProductService_MergeProducts(t *testing.T) {
	f := newCatalogFixture(t)
	svc := NewProductService(f.scope, f.products, f.brands)
	ctx := context.Background()

	sourceBranch := uuid.New()
	targetBranch := uuid.New()

	targetBrand, err := inventory.NewBrand(f.enterpriseID, &targetBranch, "Diamond")
	require.NoError(t, err)
	f.brands.add(targetBrand)
	sourceBrand, err := inventory.NewBrand(f.enterpriseID, &sourceBranch, "Diamond")
	require.NoError(t, err)
	f.brands.add(sourceBrand)

	mk := func(branchID *uuid.UUID, brandID uuid.UUID, name string, count int) *inventory.Product {
		p, err := inventory.NewProduct(f.enterpriseID, branchID, brandID, name, inventory.GenerateUID(),
			decimal.NewFromInt(10), decimal.NewFromInt(20))
		require.NoError(t, err)
		p.ApplyDelta(count, decimal.NewFromInt(int64(count)*20))
		f.products.add(p)
		return p
	}
	srcA := mk(&sourceBranch, sourceBrand.ID, "Solitaire", 5)
	mk(&sourceBranch, sourceBrand.ID, "Pendant", 2)
	mk(&targetBranch, targetBrand.ID, "pendant", 1)

	copied, err := svc.MergeProducts(ctx, f.enterpriseID, targetBranch, sourceBranch, targetBrand.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, copied)

	targetProducts, err := f.products.FindByBrand(ctx, targetBrand.ID)
	require.NoError(t, err)
	require.Len(t, targetProducts, 2)

	var dup *inventory.Product
	for i := range targetProducts {
		if targetProducts[i].Name == "Solitaire" {
			dup = &targetProducts[i]
		}
	}
	require.NotNil(t, dup)
	// copies start empty with their own UID
	assert.Equal(t, 0, dup.Count)
	assert.True(t, dup.Stock.IsZero())
	assert.NotEqual(t, srcA.UID, dup.UID)
	assert.Regexp(t, uidPattern, dup.UID)
}

func TestBrandService(t *testing.T) {
	f := newCatalogFixture(t)
	svc := NewBrandService(f.brands, f.products)
	ctx := context.Background()

	t.Run("delete refuses brands still holding products", func(t *testing.T) {
		p, err := inventory.NewProduct(f.enterpriseID, nil, f.brand.ID, "Ring", inventory.GenerateUID(),
			decimal.NewFromInt(10), decimal.NewFromInt(20))
		require.NoError(t, err)
		f.products.add(p)

		err = svc.Delete(ctx, f.enterpriseID, f.brand.ID)
		assert.ErrorIs(t, err, shared.ErrConflict)

		require.NoError(t, f.products.Delete(ctx, p.ID))
		require.NoError(t, svc.Delete(ctx, f.enterpriseID, f.brand.ID))
	})

	t.Run("merge copies only missing names", func(t *testing.T) {
		sourceBranch := uuid.New()
		targetBranch := uuid.New()
		for _, name := range []string{"Gold", "Silver"} {
			b, err := inventory.NewBrand(f.enterpriseID, &sourceBranch, name)
			require.NoError(t, err)
			f.brands.add(b)
		}
		existing, err := inventory.NewBrand(f.enterpriseID, &targetBranch, "gold")
		require.NoError(t, err)
		f.brands.add(existing)

		copied, err := svc.MergeBrands(ctx, f.enterpriseID, targetBranch, sourceBranch)
		require.NoError(t, err)
		assert.Equal(t, 1, copied)

		brands, err := f.brands.FindAllForEnterprise(ctx, f.enterpriseID, &targetBranch)
		require.NoError(t, err)
		assert.Len(t, brands, 2)
	})
}

func TestManufactureService(t *testing.T) {
	f := newCatalogFixture(t)
	manufactures := newMemManufactureRepo()
	scope := stock.NewNoOpTransactionScope(f.products, f.brands, manufactures, nil, nil, nil, nil, nil, nil)
	svc := NewManufactureService(scope, manufactures)
	ctx := context.Background()

	p, err := inventory.NewProduct(f.enterpriseID, nil, f.brand.ID, "Bangle", inventory.GenerateUID(),
		decimal.NewFromInt(40), decimal.NewFromInt(90))
	require.NoError(t, err)
	f.products.add(p)

	q, err := inventory.NewProduct(f.enterpriseID, nil, f.brand.ID, "Chain", inventory.GenerateUID(),
		decimal.NewFromInt(30), decimal.NewFromInt(60))
	require.NoError(t, err)
	f.products.add(q)

	resp, err := svc.Create(ctx, f.enterpriseID, nil, CreateManufactureRequest{
		Date: time.Now(),
		Items: []ManufactureItemInput{
			{ProductID: p.ID, Quantity: 3, UnitPrice: decimal.NewFromInt(40)},
		},
	})
	require.NoError(t, err)

	got, err := f.products.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Count)
	assert.Equal(t, "270", got.Stock.String())

	// rewriting the event reverses the old lines before applying the new ones
	updated, err := svc.Update(ctx, f.enterpriseID, resp.ID, UpdateManufactureRequest{
		Date: time.Now(),
		Items: []ManufactureItemInput{
			{ProductID: p.ID, Quantity: 1, UnitPrice: decimal.NewFromInt(40)},
			{ProductID: q.ID, Quantity: 2, UnitPrice: decimal.NewFromInt(30)},
		},
	})
	require.NoError(t, err)
	require.Len(t, updated.Items, 2)

	got, err = f.products.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Count)
	assert.Equal(t, "90", got.Stock.String())

	gotQ, err := f.products.FindByID(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, gotQ.Count)
	assert.Equal(t, "120", gotQ.Stock.String())

	t.Run("update under a foreign enterprise is refused", func(t *testing.T) {
		_, err := svc.Update(ctx, uuid.New(), resp.ID, UpdateManufactureRequest{
			Date:  time.Now(),
			Items: []ManufactureItemInput{{ProductID: p.ID, Quantity: 1}},
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	require.NoError(t, svc.Delete(ctx, f.enterpriseID, resp.ID))

	got, err = f.products.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Count)
	assert.True(t, got.Stock.IsZero())

	gotQ, err = f.products.FindByID(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, gotQ.Count)
	assert.True(t, gotQ.Stock.IsZero())
}

type memManufactureRepo struct {
	records map[uuid.UUID]*inventory.Manufacture
}

func newMemManufactureRepo() *memManufactureRepo {
	return &memManufactureRepo{records: make(map[uuid.UUID]*inventory.Manufacture)}
}

func (r *memManufactureRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.Manufacture, error) {
	m, ok := r.records[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *memManufactureRepo) FindAllForEnterprise(_ context.Context, enterpriseID uuid.UUID, _ *uuid.UUID, _ shared.Filter) ([]inventory.Manufacture, error) {
	var out []inventory.Manufacture
	for _, m := range r.records {
		if m.EnterpriseID == enterpriseID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *memManufactureRepo) Save(_ context.Context, m *inventory.Manufacture) error {
	cp := *m
	r.records[m.ID] = &cp
	return nil
}

func (r *memManufactureRepo) DeleteItems(_ context.Context, manufactureID uuid.UUID) error {
	if m, ok := r.records[manufactureID]; ok {
		m.Items = nil
	}
	return nil
}

func (r *memManufactureRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.records, id)
	return nil
}

type memIncentiveRepo struct {
	records map[uuid.UUID]*inventory.IncentiveProduct
}

func newMemIncentiveRepo() *memIncentiveRepo {
	return &memIncentiveRepo{records: make(map[uuid.UUID]*inventory.IncentiveProduct)}
}

func (r *memIncentiveRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.IncentiveProduct, error) {
	entry, ok := r.records[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	cp := *entry
	return &cp, nil
}

func (r *memIncentiveRepo) FindAllForEnterprise(_ context.Context, enterpriseID uuid.UUID, _ *uuid.UUID) ([]inventory.IncentiveProduct, error) {
	var out []inventory.IncentiveProduct
	for _, entry := range r.records {
		if entry.EnterpriseID == enterpriseID {
			out = append(out, *entry)
		}
	}
	return out, nil
}

func (r *memIncentiveRepo) Save(_ context.Context, entry *inventory.IncentiveProduct) error {
	cp := *entry
	r.records[entry.ID] = &cp
	return nil
}

func (r *memIncentiveRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.records, id)
	return nil
}

func TestIncentiveService(t *testing.T) {
	enterpriseID := uuid.New()
	svc := NewIncentiveService(newMemIncentiveRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, enterpriseID, nil, CreateIncentiveProductRequest{
		Name: "  Gold sets  ",
		Rate: decimal.NewFromFloat(2.5),
	})
	require.NoError(t, err)
	assert.Equal(t, "Gold sets", created.Name)

	t.Run("negative rate is refused", func(t *testing.T) {
		_, err := svc.Create(ctx, enterpriseID, nil, CreateIncentiveProductRequest{
			Name: "Chains",
			Rate: decimal.NewFromInt(-1),
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_RATE", domainErr.Code)
	})

	t.Run("partial update keeps absent fields", func(t *testing.T) {
		rate := decimal.NewFromInt(3)
		updated, err := svc.Update(ctx, enterpriseID, created.ID, UpdateIncentiveProductRequest{Rate: &rate})
		require.NoError(t, err)
		assert.Equal(t, "Gold sets", updated.Name)
		assert.Equal(t, "3", updated.Rate.String())
	})

	t.Run("foreign enterprise cannot see or edit", func(t *testing.T) {
		_, err := svc.GetByID(ctx, uuid.New(), created.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.ErrorIs(t, svc.Delete(ctx, uuid.New(), created.ID), shared.ErrNotFound)
	})

	require.NoError(t, svc.Delete(ctx, enterpriseID, created.ID))
	entries, err := svc.List(ctx, enterpriseID, nil)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
