package sales_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/taller-erp/internal/application/dto"
	"github.com/jhoicas/taller-erp/internal/application/inventory"
	"github.com/jhoicas/taller-erp/internal/application/sales"
	"github.com/jhoicas/taller-erp/internal/domain"
	"github.com/jhoicas/taller-erp/internal/domain/entity"
)

const (
	testCompanyID  = "11111111-2222-3333-4444-555555555555"
	testUserID     = "worker-admin-1"
	testCustomerID = "customer-1"
)

type saleFixture struct {
	uc          *sales.CreateSaleUseCase
	saleRepo    *memSaleRepo
	movRepo     *memMovementRepo
	productRepo *memProductRepo
	custRepo    *memCustomerRepo
	ledgerRepo  *memLedgerRepo
	txRunner    *fakeSaleTxRunner
	payments    *fakePayments
	idem        *memIdempotency
}

func newSaleFixture(products ...*entity.Product) *saleFixture {
	saleRepo := newMemSaleRepo()
	movRepo := &memMovementRepo{}
	productRepo := newMemProductRepo(products...)
	custRepo := newMemCustomerRepo(&entity.Customer{
		ID:        testCustomerID,
		CompanyID: testCompanyID,
		Name:      "Cliente Prueba",
		Active:    true,
	})
	ledgerRepo := &memLedgerRepo{}
	txRunner := &fakeSaleTxRunner{
		saleRepo:     saleRepo,
		movRepo:      movRepo,
		productRepo:  productRepo,
		customerRepo: custRepo,
		ledgerRepo:   ledgerRepo,
	}
	payments := &fakePayments{}
	idem := newMemIdempotency()
	invUC := inventory.NewAdjustStockUseCase(noTx{}, allowAllGuard{}, productRepo, movRepo)
	uc := sales.NewCreateSaleUseCase(
		txRunner, invUC, allowAllGuard{}, payments, idem,
		saleRepo, productRepo, custRepo,
	)
	return &saleFixture{
		uc: uc, saleRepo: saleRepo, movRepo: movRepo, productRepo: productRepo,
		custRepo: custRepo, ledgerRepo: ledgerRepo, txRunner: txRunner,
		payments: payments, idem: idem,
	}
}

func testProduct(id string, stock int64, price int64) *entity.Product {
	return &entity.Product{
		ID:            id,
		CompanyID:     testCompanyID,
		SKU:           "SKU-" + id,
		Name:          "Producto " + id,
		Price:         decimal.NewFromInt(price),
		StockQuantity: decimal.NewFromInt(stock),
		Active:        true,
	}
}

// TestCreateSale_VentaDiferidaCompleta verifica el flujo completo de una
// orden a crédito: totales exactos, stock descontado por línea, deuda
// acumulada en el cliente y NINGÚN asiento income (nada se cobró).
func TestCreateSale_VentaDiferidaCompleta(t *testing.T) {
	fx := newSaleFixture(
		testProduct("p1", 10, 100),
		testProduct("p2", 5, 200),
	)

	// subtotal = (100*8 - 50) + (200*1) = 950; total = 950 - 100 + 50 + 70 = 970
	sale, err := fx.uc.CreateSale(context.Background(), testCompanyID, testUserID, "", dto.CreateSaleRequest{
		Kind:       entity.SaleKindOrder,
		CustomerID: testCustomerID,
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: decimal.NewFromInt(8), UnitPrice: decimal.NewFromInt(100), LineDiscount: decimal.NewFromInt(50)},
			{ProductID: "p2", Quantity: decimal.NewFromInt(1)},
		},
		PaymentMethod:  entity.PaymentMethodDue,
		DiscountAmount: decimal.NewFromInt(100),
		TaxAmount:      decimal.NewFromInt(50),
		Shipping:       decimal.NewFromInt(70),
	})
	require.NoError(t, err)

	assert.True(t, sale.Subtotal.Equal(decimal.NewFromInt(950)), "subtotal: %s", sale.Subtotal)
	assert.True(t, sale.Total.Equal(decimal.NewFromInt(970)), "total: %s", sale.Total)
	assert.True(t, sale.PaidAmount.IsZero())
	assert.True(t, sale.DueAmount.Equal(sale.Total), "pagado + deuda = total")
	assert.Equal(t, entity.PaymentStatusPending, sale.PaymentStatus)
	assert.Equal(t, entity.SaleStatusConfirmed, sale.Status)

	// Precio de catálogo cuando la línea viene en cero
	assert.True(t, sale.Items[1].UnitPrice.Equal(decimal.NewFromInt(200)))

	// Un movimiento out por línea, referido a la venta
	require.Len(t, fx.movRepo.movements, 2)
	for _, m := range fx.movRepo.movements {
		assert.Equal(t, entity.MovementTypeOut, m.Type)
		assert.Equal(t, sale.ID, m.SaleID)
	}
	p1, _ := fx.productRepo.GetByID(context.Background(), "p1")
	assert.True(t, p1.StockQuantity.Equal(decimal.NewFromInt(2)), "10 - 8 = 2")

	// Cuenta del cliente: deuda y total acumulados
	c, _ := fx.custRepo.GetByID(context.Background(), testCustomerID)
	assert.True(t, c.TotalPurchases.Equal(decimal.NewFromInt(970)))
	assert.True(t, c.DueAmount.Equal(decimal.NewFromInt(970)))
	require.NotNil(t, c.LastPurchaseAt)

	// Diferido: sin cobro y sin asiento income
	assert.Empty(t, fx.payments.charges, "pago diferido no pasa por la pasarela")
	assert.Empty(t, fx.ledgerRepo.entries, "sin pago inmediato no hay asiento income")
}

// TestCreateSale_PagoInmediatoGeneraIncome la venta pagada cobra en la
// pasarela y registra exactamente un asiento income por lo pagado.
func TestCreateSale_PagoInmediatoGeneraIncome(t *testing.T) {
	fx := newSaleFixture(testProduct("p1", 10, 100))

	sale, err := fx.uc.CreateSale(context.Background(), testCompanyID, testUserID, "", dto.CreateSaleRequest{
		Kind:          entity.SaleKindMemo,
		Items:         []dto.SaleItemRequest{{ProductID: "p1", Quantity: decimal.NewFromInt(2)}},
		PaymentMethod: "cash",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.PaymentStatusPaid, sale.PaymentStatus)
	assert.True(t, sale.PaidAmount.Equal(sale.Total))
	assert.True(t, sale.DueAmount.IsZero())
	assert.Equal(t, "pay_test_001", sale.PaymentRef)

	require.Len(t, fx.payments.charges, 1)
	assert.True(t, fx.payments.charges[0].Equal(sale.Total))

	require.Len(t, fx.ledgerRepo.entries, 1)
	entry := fx.ledgerRepo.entries[0]
	assert.Equal(t, entity.LedgerTypeIncome, entry.Type)
	assert.True(t, entry.Amount.Equal(sale.Total))
	assert.Equal(t, entity.LedgerRefSale, entry.ReferenceType)
	assert.Equal(t, sale.ID, entry.ReferenceID)
}

// TestCreateSale_StockInsuficiente la venta se rechaza entera: ninguna
// línea parcial, ningún movimiento, ningún cobro.
func TestCreateSale_StockInsuficiente(t *testing.T) {
	fx := newSaleFixture(testProduct("p1", 3, 100))

	_, err := fx.uc.CreateSale(context.Background(), testCompanyID, testUserID, "", dto.CreateSaleRequest{
		Kind:          entity.SaleKindOrder,
		Items:         []dto.SaleItemRequest{{ProductID: "p1", Quantity: decimal.NewFromInt(5)}},
		PaymentMethod: "cash",
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Empty(t, fx.movRepo.movements)
	assert.Empty(t, fx.payments.charges, "el cobro nunca debe preceder a la validación de stock")
	assert.Empty(t, fx.saleRepo.sales)
}

// TestCreateSale_PagoRechazadoAbortaSinEscrituras un rechazo de la pasarela
// aborta ANTES de tocar stock, cliente o libros.
func TestCreateSale_PagoRechazadoAbortaSinEscrituras(t *testing.T) {
	fx := newSaleFixture(testProduct("p1", 10, 100))
	fx.payments.err = errors.New("card_declined")

	_, err := fx.uc.CreateSale(context.Background(), testCompanyID, testUserID, "", dto.CreateSaleRequest{
		Kind:          entity.SaleKindOrder,
		CustomerID:    testCustomerID,
		Items:         []dto.SaleItemRequest{{ProductID: "p1", Quantity: decimal.NewFromInt(2)}},
		PaymentMethod: "card",
	})
	require.ErrorIs(t, err, domain.ErrPaymentFailed)

	assert.Empty(t, fx.saleRepo.sales)
	assert.Empty(t, fx.movRepo.movements)
	assert.Empty(t, fx.ledgerRepo.entries)
	p1, _ := fx.productRepo.GetByID(context.Background(), "p1")
	assert.True(t, p1.StockQuantity.Equal(decimal.NewFromInt(10)), "stock intacto")
	c, _ := fx.custRepo.GetByID(context.Background(), testCustomerID)
	assert.True(t, c.TotalPurchases.IsZero(), "cuenta del cliente intacta")
}

// TestCreateSale_FalloTrasCobroReportaParcial si la transacción falla
// después de un cobro exitoso, el error expone la referencia del cobro
// para conciliación manual; nunca un fallo silencioso.
func TestCreateSale_FalloTrasCobroReportaParcial(t *testing.T) {
	fx := newSaleFixture(testProduct("p1", 10, 100))
	fx.txRunner.failErr = errors.New("connection reset")

	_, err := fx.uc.CreateSale(context.Background(), testCompanyID, testUserID, "", dto.CreateSaleRequest{
		Kind:          entity.SaleKindOrder,
		Items:         []dto.SaleItemRequest{{ProductID: "p1", Quantity: decimal.NewFromInt(1)}},
		PaymentMethod: "card",
	})
	require.Error(t, err)

	pf, ok := domain.AsPartialFailure(err)
	require.True(t, ok, "el fallo post-cobro debe ser PartialFailureError, fue: %v", err)
	assert.Equal(t, "pay_test_001", pf.ChargeRef)
	assert.Contains(t, pf.Completed, "charge")
	require.Len(t, fx.payments.charges, 1, "el cobro sí ocurrió")
}

// TestCreateSale_ColisionDeConsecutivoReintenta una colisión del número
// consecutivo no es error terminal: se regenera y reintenta.
func TestCreateSale_ColisionDeConsecutivoReintenta(t *testing.T) {
	fx := newSaleFixture(testProduct("p1", 10, 100))

	// Primera venta ocupa el consecutivo 0001 del día
	first, err := fx.uc.CreateSale(context.Background(), testCompanyID, testUserID, "", dto.CreateSaleRequest{
		Kind:          entity.SaleKindOrder,
		Items:         []dto.SaleItemRequest{{ProductID: "p1", Quantity: decimal.NewFromInt(1)}},
		PaymentMethod: "cash",
	})
	require.NoError(t, err)

	// Sabotaje: borrar la venta del mapa pero dejar su número reservado,
	// así CountByCompany vuelve a proponer el mismo consecutivo
	delete(fx.saleRepo.sales, first.ID)

	second, err := fx.uc.CreateSale(context.Background(), testCompanyID, testUserID, "", dto.CreateSaleRequest{
		Kind:          entity.SaleKindOrder,
		Items:         []dto.SaleItemRequest{{ProductID: "p1", Quantity: decimal.NewFromInt(1)}},
		PaymentMethod: "cash",
	})
	require.NoError(t, err, "la colisión debe resolverse con reintento")
	assert.NotEqual(t, first.Number, second.Number)
}

// TestCreateSale_ReintentoIdempotente la misma clave de idempotencia
// devuelve la venta original sin crear otra ni volver a cobrar.
func TestCreateSale_ReintentoIdempotente(t *testing.T) {
	fx := newSaleFixture(testProduct("p1", 10, 100))

	req := dto.CreateSaleRequest{
		Kind:          entity.SaleKindOrder,
		Items:         []dto.SaleItemRequest{{ProductID: "p1", Quantity: decimal.NewFromInt(2)}},
		PaymentMethod: "cash",
	}
	first, err := fx.uc.CreateSale(context.Background(), testCompanyID, testUserID, "idem-key-1", req)
	require.NoError(t, err)

	second, err := fx.uc.CreateSale(context.Background(), testCompanyID, testUserID, "idem-key-1", req)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "misma clave = misma venta")
	assert.Len(t, fx.saleRepo.sales, 1)
	assert.Len(t, fx.payments.charges, 1, "no se cobra dos veces")
	assert.Len(t, fx.movRepo.movements, 1, "no se descuenta stock dos veces")
}

// TestCreateSale_StoreDeIdempotenciaCaidoNoBloqueaLaVenta si la lectura de
// la clave falla, la venta procede sin deduplicación (la venta vale más que
// la clave); el fallo no se propaga al caller.
func TestCreateSale_StoreDeIdempotenciaCaidoNoBloqueaLaVenta(t *testing.T) {
	fx := newSaleFixture(testProduct("p1", 10, 100))
	fx.idem.getErr = errors.New("redis: connection refused")

	req := dto.CreateSaleRequest{
		Kind:          entity.SaleKindOrder,
		Items:         []dto.SaleItemRequest{{ProductID: "p1", Quantity: decimal.NewFromInt(2)}},
		PaymentMethod: "cash",
	}
	sale, err := fx.uc.CreateSale(context.Background(), testCompanyID, testUserID, "idem-key-1", req)
	require.NoError(t, err, "el store caído no bloquea la creación")
	require.NotNil(t, sale)
	assert.Len(t, fx.saleRepo.sales, 1)
}

// TestCreateSale_MemoRechazaEnvio el memo es un recibo simplificado:
// estructura de envío inválida.
func TestCreateSale_MemoRechazaEnvio(t *testing.T) {
	fx := newSaleFixture(testProduct("p1", 10, 100))

	_, err := fx.uc.CreateSale(context.Background(), testCompanyID, testUserID, "", dto.CreateSaleRequest{
		Kind:          entity.SaleKindMemo,
		Items:         []dto.SaleItemRequest{{ProductID: "p1", Quantity: decimal.NewFromInt(1)}},
		PaymentMethod: "cash",
		Shipping:      decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// TestCreateSale_ProductoDeOtraEmpresa el alcance multi-empresa es
// absoluto: referenciar un producto ajeno es Forbidden.
func TestCreateSale_ProductoDeOtraEmpresa(t *testing.T) {
	ajeno := testProduct("p-ajeno", 10, 100)
	ajeno.CompanyID = "otra-empresa"
	fx := newSaleFixture(ajeno)

	_, err := fx.uc.CreateSale(context.Background(), testCompanyID, testUserID, "", dto.CreateSaleRequest{
		Kind:          entity.SaleKindOrder,
		Items:         []dto.SaleItemRequest{{ProductID: "p-ajeno", Quantity: decimal.NewFromInt(1)}},
		PaymentMethod: "cash",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// TestCreateSale_SinPermiso el guard deniega antes de cualquier lectura cara.
func TestCreateSale_SinPermiso(t *testing.T) {
	fx := newSaleFixture(testProduct("p1", 10, 100))
	uc := sales.NewCreateSaleUseCase(
		fx.txRunner,
		inventory.NewAdjustStockUseCase(noTx{}, denyAllGuard{}, fx.productRepo, fx.movRepo),
		denyAllGuard{}, fx.payments, fx.idem,
		fx.saleRepo, fx.productRepo, fx.custRepo,
	)

	_, err := uc.CreateSale(context.Background(), testCompanyID, testUserID, "", dto.CreateSaleRequest{
		Kind:          entity.SaleKindOrder,
		Items:         []dto.SaleItemRequest{{ProductID: "p1", Quantity: decimal.NewFromInt(1)}},
		PaymentMethod: "cash",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// TestCreateSale_ValidacionesBasicas entradas malformadas → ErrInvalidInput.
func TestCreateSale_ValidacionesBasicas(t *testing.T) {
	fx := newSaleFixture(testProduct("p1", 10, 100))
	cases := map[string]dto.CreateSaleRequest{
		"tipo inválido": {
			Kind:          "quote",
			Items:         []dto.SaleItemRequest{{ProductID: "p1", Quantity: decimal.NewFromInt(1)}},
			PaymentMethod: "cash",
		},
		"sin líneas": {
			Kind:          entity.SaleKindOrder,
			PaymentMethod: "cash",
		},
		"cantidad cero": {
			Kind:          entity.SaleKindOrder,
			Items:         []dto.SaleItemRequest{{ProductID: "p1", Quantity: decimal.Zero}},
			PaymentMethod: "cash",
		},
		"descuento global negativo": {
			Kind:           entity.SaleKindOrder,
			Items:          []dto.SaleItemRequest{{ProductID: "p1", Quantity: decimal.NewFromInt(1)}},
			PaymentMethod:  "cash",
			DiscountAmount: decimal.NewFromInt(-5),
		},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := fx.uc.CreateSale(context.Background(), testCompanyID, testUserID, "", req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}
