package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/ordenes/internal/domain"
)

func seedProducts(t *testing.T, repo domain.ProductRepository, names ...string) []domain.Product {
	t.Helper()

	ctx := context.Background()
	products := make([]domain.Product, 0, len(names))
	for i, name := range names {
		product, err := repo.Add(ctx, domain.Product{
			Name:  name,
			Price: decimal.NewFromInt(int64((i + 1) * 10)),
		})
		if err != nil {
			t.Fatalf("seed product %s: %v", name, err)
		}
		products = append(products, product)
	}
	return products
}

func TestOrderRepositoryIntegration_CreateAndFetch(t *testing.T) {
	store := openStoreForIntegrationTest(t)
	orders := NewOrderRepository(store)
	products := NewProductRepository(store)
	ctx := context.Background()

	seeded := seedProducts(t, products, "A", "B")

	created, err := orders.Add(ctx, domain.Order{
		Customer:  "Pedro",
		CreatedAt: time.Now().UTC(),
		Total:     decimal.NewFromInt(30),
		Lines: []domain.OrderLine{
			{ProductID: seeded[0].ID},
			{ProductID: seeded[1].ID},
			{ProductID: seeded[0].ID},
		},
	})
	if err != nil {
		t.Fatalf("add order: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected assigned id")
	}

	stored, ok, err := orders.GetWithProducts(ctx, created.ID)
	if err != nil {
		t.Fatalf("get with products: %v", err)
	}
	if !ok {
		t.Fatal("expected order to exist")
	}
	if len(stored.Lines) != 3 {
		t.Fatalf("expected 3 lines (duplicates kept), got %d", len(stored.Lines))
	}
	for _, line := range stored.Lines {
		if line.Product == nil {
			t.Fatal("expected eager product snapshot")
		}
	}
}

func TestOrderRepositoryIntegration_UpdateReplacesLines(t *testing.T) {
	store := openStoreForIntegrationTest(t)
	orders := NewOrderRepository(store)
	products := NewProductRepository(store)
	ctx := context.Background()

	seeded := seedProducts(t, products, "A", "B", "C")

	created, err := orders.Add(ctx, domain.Order{
		Customer:  "Ines",
		CreatedAt: time.Now().UTC(),
		Total:     decimal.NewFromInt(60),
		Lines: []domain.OrderLine{
			{ProductID: seeded[0].ID},
			{ProductID: seeded[1].ID},
			{ProductID: seeded[2].ID},
		},
	})
	if err != nil {
		t.Fatalf("add order: %v", err)
	}

	created.Customer = "Ines Maria"
	created.Total = decimal.NewFromInt(10)
	created.Lines = []domain.OrderLine{{ProductID: seeded[0].ID}}
	if err := orders.Update(ctx, created); err != nil {
		t.Fatalf("update order: %v", err)
	}

	stored, ok, err := orders.GetWithProducts(ctx, created.ID)
	if err != nil || !ok {
		t.Fatalf("get after update: ok=%v err=%v", ok, err)
	}
	if stored.Customer != "Ines Maria" {
		t.Fatalf("expected updated customer, got %s", stored.Customer)
	}
	if len(stored.Lines) != 1 {
		t.Fatalf("expected lines replaced wholesale, got %d", len(stored.Lines))
	}
}

func TestOrderRepositoryIntegration_UpdateMissing(t *testing.T) {
	store := openStoreForIntegrationTest(t)
	orders := NewOrderRepository(store)

	err := orders.Update(context.Background(), domain.Order{
		ID:       99999,
		Customer: "Nadie",
		Total:    decimal.Zero,
	})
	if err != domain.ErrOrderNotFound {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestOrderRepositoryIntegration_DeleteCascadesLines(t *testing.T) {
	store := openStoreForIntegrationTest(t)
	orders := NewOrderRepository(store)
	products := NewProductRepository(store)
	ctx := context.Background()

	seeded := seedProducts(t, products, "A")

	created, err := orders.Add(ctx, domain.Order{
		Customer:  "Hugo",
		CreatedAt: time.Now().UTC(),
		Total:     decimal.NewFromInt(10),
		Lines:     []domain.OrderLine{{ProductID: seeded[0].ID}},
	})
	if err != nil {
		t.Fatalf("add order: %v", err)
	}

	if err := orders.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete order: %v", err)
	}

	_, ok, err := orders.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get after delete: %v", err)
	}
	if ok {
		t.Fatal("expected order removed")
	}

	// Линии удалились каскадно, товар снова свободен.
	inUse, err := products.InUse(ctx, seeded[0].ID)
	if err != nil {
		t.Fatalf("in-use after delete: %v", err)
	}
	if inUse {
		t.Fatal("expected product to be unused after order deletion")
	}
}

func TestOrderRepositoryIntegration_ListPage(t *testing.T) {
	store := openStoreForIntegrationTest(t)
	orders := NewOrderRepository(store)
	products := NewProductRepository(store)
	ctx := context.Background()

	seeded := seedProducts(t, products, "A")
	for i := 0; i < 7; i++ {
		_, err := orders.Add(ctx, domain.Order{
			Customer:  "Cliente",
			CreatedAt: time.Now().UTC(),
			Total:     decimal.NewFromInt(10),
			Lines:     []domain.OrderLine{{ProductID: seeded[0].ID}},
		})
		if err != nil {
			t.Fatalf("add order: %v", err)
		}
	}

	page, err := orders.ListPage(ctx, domain.PageParams{Page: 2, PageSize: 3}.Normalize())
	if err != nil {
		t.Fatalf("list page: %v", err)
	}
	if page.TotalItems != 7 || page.TotalPages != 3 {
		t.Fatalf("unexpected totals: items=%d pages=%d", page.TotalItems, page.TotalPages)
	}
	if len(page.Items) != 3 {
		t.Fatalf("expected 3 items on page 2, got %d", len(page.Items))
	}
	for i := 1; i < len(page.Items); i++ {
		if page.Items[i-1].ID >= page.Items[i].ID {
			t.Fatal("expected page ordered by id ascending")
		}
	}
}
