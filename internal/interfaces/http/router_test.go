package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/brewery-api/internal/application/batch"
	"github.com/jhoicas/brewery-api/internal/application/billing"
	"github.com/jhoicas/brewery-api/internal/application/dto"
	"github.com/jhoicas/brewery-api/internal/application/inventory"
	"github.com/jhoicas/brewery-api/internal/application/keg"
	"github.com/jhoicas/brewery-api/internal/application/packaging"
	"github.com/jhoicas/brewery-api/internal/infrastructure/memory"
	"github.com/jhoicas/brewery-api/internal/infrastructure/pdf"
	"github.com/jhoicas/brewery-api/internal/infrastructure/xmlconfig"
	apphttp "github.com/jhoicas/brewery-api/internal/interfaces/http"
)

type api struct {
	t     *testing.T
	app   *fiber.App
	token string
}

func newAPI(t *testing.T) *api {
	t.Helper()
	store := memory.NewStore()
	memory.SeedDemo(store, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	volumes, err := xmlconfig.LoadVolumeTable("")
	require.NoError(t, err)

	log := zerolog.Nop()
	repos := store.Repos()
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Batches:    batch.NewUseCase(store, repos, log),
		Packaging:  packaging.NewUseCase(store, repos, volumes, log),
		Inventory:  inventory.NewLedgerUseCase(store, repos, log),
		Kegs:       keg.NewUseCase(store, repos, log),
		Invoices:   billing.NewInvoiceUseCase(store, repos, decimal.NewFromInt(30), log),
		InvoicePDF: billing.NewPDFUseCase(repos.Invoices, repos.Customers, pdf.NewMarotoPDFGenerator("Test Brewing Co.")),
		JWTSecret:  testJWTSecret,
		Log:        log,
	})
	return &api{t: t, app: app, token: bearer(t, "brewer")}
}

func (a *api) do(method, path string, body any) (int, []byte) {
	a.t.Helper()
	var r io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			r = strings.NewReader(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(a.t, err)
			r = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", a.token)
	resp, err := a.app.Test(req, -1)
	require.NoError(a.t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(a.t, err)
	return resp.StatusCode, out
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

func (a *api) createBatch(id, volume string) {
	a.t.Helper()
	status, body := a.do(http.MethodPost, "/api/batches", map[string]any{
		"batchId": id, "productId": "PALE-ALE", "recipeId": "PALE-ALE-STD", "siteId": "SITE-1", "volume": volume,
	})
	require.Equal(a.t, http.StatusCreated, status, string(body))
}

func TestRouter_RequiresToken(t *testing.T) {
	a := newAPI(t)
	a.token = ""
	status, body := a.do(http.MethodGet, "/api/batches/B-1", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

func TestRouter_BatchLifecycle(t *testing.T) {
	a := newAPI(t)
	a.createBatch("B-1", "5.0")

	status, body := a.do(http.MethodPost, "/api/batches", map[string]any{
		"batchId": "B-1", "productId": "PALE-ALE", "recipeId": "PALE-ALE-STD", "siteId": "SITE-1", "volume": "5.0",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "CONFLICT", decode[dto.ErrorResponse](t, body).Code)

	status, body = a.do(http.MethodGet, "/api/batches/B-1", nil)
	require.Equal(t, http.StatusOK, status)
	view := decode[dto.BatchResponse](t, body)
	assert.Equal(t, "In Progress", view.Status)
	assert.Len(t, view.Ingredients, 3)

	status, _ = a.do(http.MethodPost, "/api/batches/B-1/equipment", map[string]any{"stage": "Fermentation", "equipmentId": "FV-1"})
	require.Equal(t, http.StatusOK, status)

	status, body = a.do(http.MethodPost, "/api/batches/B-1/equipment", map[string]any{"stage": "Brewing", "equipmentId": "BT-1"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, decode[dto.ErrorResponse](t, body).Error, "Cannot regress")

	status, _ = a.do(http.MethodGet, "/api/batches/NOPE", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = a.do(http.MethodPost, "/api/batches", "{not json")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestRouter_PatchIngredientsRequiresList(t *testing.T) {
	a := newAPI(t)
	a.createBatch("B-1", "5.0")

	status, body := a.do(http.MethodPost, "/api/batches/B-1/ingredients", map[string]any{
		"itemName": "Cascade Hops", "quantity": "1", "unit": "lbs",
	})
	require.Equal(t, http.StatusOK, status, string(body))
	require.Len(t, decode[dto.BatchResponse](t, body).AdditionalIngredients, 1)

	for _, payload := range []string{
		`{"itemName":"US-05 Yeast","unit":"pkg","excluded":true}`,
		`{}`,
	} {
		status, body = a.do(http.MethodPatch, "/api/batches/B-1/ingredients", payload)
		assert.Equal(t, http.StatusBadRequest, status, payload)
		assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, body).Code)
	}

	status, body = a.do(http.MethodGet, "/api/batches/B-1", nil)
	require.Equal(t, http.StatusOK, status)
	kept := decode[dto.BatchResponse](t, body).AdditionalIngredients
	require.Len(t, kept, 1)
	assert.Equal(t, "Cascade Hops", kept[0].ItemName)

	status, body = a.do(http.MethodPatch, "/api/batches/B-1/ingredients",
		`{"ingredients":[{"itemName":"US-05 Yeast","unit":"pkg","isRecipe":true,"excluded":true}]}`)
	require.Equal(t, http.StatusOK, status, string(body))
	for _, ing := range decode[dto.IngredientsResponse](t, body).Ingredients {
		assert.NotEqual(t, "US-05 Yeast", ing.ItemName)
	}
}

func TestRouter_PackagePromptThenInvoice(t *testing.T) {
	a := newAPI(t)
	a.createBatch("B-1", "1.0")

	status, body := a.do(http.MethodPost, "/api/batches/B-1/package", map[string]any{
		"packageType": "1/2 Keg", "quantity": 3, "locationId": "LOC-COLD",
	})
	require.Equal(t, http.StatusOK, status, string(body))
	prompt := decode[dto.PackageResponse](t, body)
	assert.Equal(t, "volumeAdjustment", prompt.Prompt)
	require.NotNil(t, prompt.Shortfall)
	assert.True(t, prompt.Shortfall.Equal(decimal.RequireFromString("0.5")))

	status, body = a.do(http.MethodPost, "/api/batches/B-1/package", map[string]any{
		"packageType": "1/2 Keg", "quantity": 2, "locationId": "LOC-COLD", "kegCodes": []string{"K-0001", "K-0002"},
	})
	require.Equal(t, http.StatusOK, status, string(body))
	done := decode[dto.PackageResponse](t, body)
	assert.Equal(t, "Pale Ale 1/2 Keg", done.NewIdentifier)

	status, body = a.do(http.MethodGet, "/api/kegs/K-0001", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Filled", decode[dto.KegResponse](t, body).Status)

	// the seeded draft lists two kegs but no codes
	status, body = a.do(http.MethodPost, "/api/invoices/INV-1001/post", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, decode[dto.ErrorResponse](t, body).Error, "requires exactly 2 keg codes")

	status, _ = a.do(http.MethodGet, "/api/invoices/INV-1001/pdf", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = a.do(http.MethodPatch, "/api/invoices/INV-1001", map[string]any{
		"items": []map[string]any{{
			"identifier": "Pale Ale 1/2 Keg", "quantity": "2", "price": "150.00",
			"hasKegDeposit": true, "kegCodes": []string{"K-0001", "K-0002"},
		}},
	})
	require.Equal(t, http.StatusOK, status, string(body))

	status, body = a.do(http.MethodPost, "/api/invoices/INV-1001/post", nil)
	require.Equal(t, http.StatusOK, status, string(body))
	posted := decode[dto.InvoiceResponse](t, body)
	assert.Equal(t, "Posted", posted.Status)
	assert.True(t, posted.Total.Equal(decimal.NewFromInt(360)))

	status, body = a.do(http.MethodGet, "/api/inventory/Pale%20Ale%201%2F2%20Keg", nil)
	require.Equal(t, http.StatusOK, status)
	rows := decode[[]dto.InventoryItemResponse](t, body)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Quantity.IsZero())

	status, body = a.do(http.MethodGet, "/api/kegs/K-0002/transactions", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]dto.KegTransactionResponse](t, body), 2)

	req := httptest.NewRequest(http.MethodGet, "/api/invoices/INV-1001/pdf", nil)
	req.Header.Set("Authorization", a.token)
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	raw, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}

func TestRouter_InventoryReceiveAndLoss(t *testing.T) {
	a := newAPI(t)
	record := map[string]any{
		"identifier": "Crystal Malt", "item": "Crystal Malt", "type": "Ingredient",
		"quantity": "50", "unit": "lbs", "cost": "1.20", "receivedDate": "2024-03-01",
		"status": "Received", "siteId": "SITE-1", "locationId": "LOC-DRY",
	}

	status, body := a.do(http.MethodPost, "/api/inventory/receive", record)
	require.Equal(t, http.StatusCreated, status, string(body))
	status, body = a.do(http.MethodPost, "/api/inventory/receive", []any{record, record})
	require.Equal(t, http.StatusCreated, status, string(body))

	status, body = a.do(http.MethodGet, "/api/inventory/Crystal%20Malt", nil)
	require.Equal(t, http.StatusOK, status)
	rows := decode[[]dto.InventoryItemResponse](t, body)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Quantity.Equal(decimal.NewFromInt(150)))

	loss := map[string]any{"identifier": "Crystal Malt", "quantityLost": "5", "reason": "Rodents", "siteId": "SITE-1"}
	status, body = a.do(http.MethodPost, "/api/inventory/loss", loss)
	require.Equal(t, http.StatusCreated, status, string(body))

	loss["quantityLost"] = "0"
	status, _ = a.do(http.MethodPost, "/api/inventory/loss", loss)
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = a.do(http.MethodGet, "/api/inventory/Crystal%20Malt/losses", nil)
	require.Equal(t, http.StatusOK, status)
	losses := decode[[]dto.InventoryLossResponse](t, body)
	require.Len(t, losses, 1)
	assert.Equal(t, testUserID, losses[0].UserID)
}

func TestRouter_Kegs(t *testing.T) {
	a := newAPI(t)

	status, body := a.do(http.MethodPost, "/api/kegs", map[string]any{"code": "K-0100", "packagingType": "1/6 Keg"})
	require.Equal(t, http.StatusCreated, status, string(body))
	assert.Equal(t, "Empty", decode[dto.KegResponse](t, body).Status)

	status, _ = a.do(http.MethodPost, "/api/kegs", map[string]any{"code": "K-0100"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = a.do(http.MethodPatch, "/api/kegs/K-0100", map[string]any{"status": "Broken"})
	require.Equal(t, http.StatusOK, status, string(body))
	assert.Equal(t, "Broken", decode[dto.KegResponse](t, body).Status)

	status, _ = a.do(http.MethodGet, "/api/kegs/K-9999", nil)
	assert.Equal(t, http.StatusNotFound, status)
}
