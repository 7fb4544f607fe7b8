package handler

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	inventoryapp "github.com/shopbooks/backend/internal/application/inventory"
	"github.com/shopbooks/backend/internal/infrastructure/persistence"
	"github.com/shopbooks/backend/internal/infrastructure/persistence/models"
	"github.com/shopbooks/backend/internal/interfaces/http/dto"
	"github.com/shopbooks/backend/internal/interfaces/http/router"
)

func setupInventoryAPI(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.InventoryTransactionModel{},
		&models.ProductModel{},
	))

	service := inventoryapp.NewInventoryService(
		persistence.NewGormInventoryTransactionScope(db),
		persistence.NewGormInventoryTransactionRepository(db),
		persistence.NewGormProductCatalog(db),
	)

	engine := gin.New()
	router.NewRouter(engine).
		Register(NewInventoryHandler(service)).
		Setup()
	return engine, db
}

func seedProduct(t *testing.T, db *gorm.DB, code, name string) uuid.UUID {
	t.Helper()
	model := models.ProductModel{
		Code:          code,
		Name:          name,
		PurchasePrice: decimal.NewFromInt(10),
	}
	model.ID = uuid.New()
	require.NoError(t, db.Create(&model).Error)
	return model.ID
}

func movementBody(productID uuid.UUID, day int, txType, qtyIn, qtyOut, cost string, refID uuid.UUID) gin.H {
	return gin.H{
		"product_id":     productID,
		"date":           time.Date(2025, 6, day, 0, 0, 0, 0, time.UTC),
		"type":           txType,
		"quantity_in":    qtyIn,
		"quantity_out":   qtyOut,
		"cost_price":     cost,
		"reference_type": "purchase_invoice",
		"reference_id":   refID,
	}
}

func TestInventoryAPI_Movements(t *testing.T) {
	engine, db := setupInventoryAPI(t)
	productID := seedProduct(t, db, "RICE-5KG", "Rice 5kg Bag")

	t.Run("record and read stock", func(t *testing.T) {
		w := doJSON(t, engine, http.MethodPost, "/api/v1/inventory/movements",
			movementBody(productID, 1, "PURCHASE", "10", "0", "50", uuid.New()))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		resp := decodeResponse(t, w)
		assert.Equal(t, "PURCHASE", dataField(t, resp, "type"))

		w = doJSON(t, engine, http.MethodPost, "/api/v1/inventory/movements",
			movementBody(productID, 5, "SALES", "0", "4", "0", uuid.New()))
		require.Equal(t, http.StatusCreated, w.Code)

		w = doJSON(t, engine, http.MethodGet, "/api/v1/inventory/products/"+productID.String()+"/stock", nil)
		require.Equal(t, http.StatusOK, w.Code)
		resp = decodeResponse(t, w)
		assert.Equal(t, "6", dataField(t, resp, "stock"))
	})

	t.Run("fetch a movement by id", func(t *testing.T) {
		w := doJSON(t, engine, http.MethodPost, "/api/v1/inventory/movements",
			movementBody(productID, 3, "DAMAGE", "0", "0", "0", uuid.New()))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		resp := decodeResponse(t, w)
		id, ok := dataField(t, resp, "id").(string)
		require.True(t, ok)

		w = doJSON(t, engine, http.MethodGet, "/api/v1/inventory/movements/"+id, nil)
		require.Equal(t, http.StatusOK, w.Code)
		resp = decodeResponse(t, w)
		assert.Equal(t, "DAMAGE", dataField(t, resp, "type"))

		w = doJSON(t, engine, http.MethodGet, "/api/v1/inventory/movements/"+uuid.NewString(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("stock as of a date", func(t *testing.T) {
		w := doJSON(t, engine, http.MethodGet,
			"/api/v1/inventory/products/"+productID.String()+"/stock?as_of=2025-06-01", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "10", dataField(t, decodeResponse(t, w), "stock"))

		w = doJSON(t, engine, http.MethodGet,
			"/api/v1/inventory/products/"+productID.String()+"/stock?as_of=junk", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("deleting an unknown source is not found", func(t *testing.T) {
		path := "/api/v1/inventory/sources/purchase_invoice/" + uuid.NewString() + "/movements"
		w := doJSON(t, engine, http.MethodDelete, path, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("unknown movement type rejected", func(t *testing.T) {
		w := doJSON(t, engine, http.MethodPost, "/api/v1/inventory/movements",
			movementBody(productID, 2, "TELEPORT", "1", "0", "1", uuid.New()))
		require.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeInvalidInput, resp.Error.Code)
	})

	t.Run("batches drain oldest first", func(t *testing.T) {
		w := doJSON(t, engine, http.MethodGet, "/api/v1/inventory/products/"+productID.String()+"/batches", nil)
		require.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		batches, ok := resp.Data.([]any)
		require.True(t, ok)
		require.Len(t, batches, 1)
		batch := batches[0].(map[string]any)
		assert.Equal(t, "6", batch["remaining"])
		assert.Equal(t, "50", batch["cost_price"])
	})

	t.Run("replace source movements", func(t *testing.T) {
		refID := uuid.New()
		w := doJSON(t, engine, http.MethodPost, "/api/v1/inventory/movements",
			movementBody(productID, 10, "PURCHASE", "20", "0", "55", refID))
		require.Equal(t, http.StatusCreated, w.Code)

		path := "/api/v1/inventory/sources/purchase_invoice/" + refID.String() + "/movements"
		w = doJSON(t, engine, http.MethodPut, path, gin.H{
			"movements": []gin.H{
				movementBody(productID, 10, "PURCHASE", "15", "0", "58", refID),
			},
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		resp := decodeResponse(t, w)
		movements, ok := resp.Data.([]any)
		require.True(t, ok)
		require.Len(t, movements, 1)

		w = doJSON(t, engine, http.MethodGet, "/api/v1/inventory/products/"+productID.String()+"/stock", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "21", dataField(t, decodeResponse(t, w), "stock"))

		w = doJSON(t, engine, http.MethodDelete, path, nil)
		require.Equal(t, http.StatusNoContent, w.Code)

		w = doJSON(t, engine, http.MethodGet, "/api/v1/inventory/products/"+productID.String()+"/stock", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "6", dataField(t, decodeResponse(t, w), "stock"))
	})
}

func TestInventoryAPI_StockReport(t *testing.T) {
	engine, db := setupInventoryAPI(t)
	riceID := seedProduct(t, db, "RICE-5KG", "Rice 5kg Bag")
	seedProduct(t, db, "OIL-1L", "Sunflower Oil 1L")

	w := doJSON(t, engine, http.MethodPost, "/api/v1/inventory/movements",
		movementBody(riceID, 1, "PURCHASE", "10", "0", "50", uuid.New()))
	require.Equal(t, http.StatusCreated, w.Code)

	t.Run("mode is required and validated", func(t *testing.T) {
		w := doJSON(t, engine, http.MethodGet, "/api/v1/inventory/stock-report", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = doJSON(t, engine, http.MethodGet, "/api/v1/inventory/stock-report?mode=fifo", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("average mode values every product", func(t *testing.T) {
		w := doJSON(t, engine, http.MethodGet, "/api/v1/inventory/stock-report?mode=AVERAGE", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		resp := decodeResponse(t, w)
		rows, ok := resp.Data.([]any)
		require.True(t, ok)
		require.Len(t, rows, 2)
		require.NotNil(t, resp.Meta)
		assert.Equal(t, int64(2), resp.Meta.Total)

		byCode := map[string]map[string]any{}
		for _, raw := range rows {
			row := raw.(map[string]any)
			byCode[row["product_code"].(string)] = row
		}
		assert.Equal(t, "500", byCode["RICE-5KG"]["stock_value"])
		assert.Equal(t, "0", byCode["OIL-1L"]["stock_value"])
	})

	t.Run("search narrows the report", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/inventory/stock-report?mode=%s&search=oil&search_field=name", "LAST_PURCHASE")
		w := doJSON(t, engine, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		rows, ok := resp.Data.([]any)
		require.True(t, ok)
		require.Len(t, rows, 1)
		assert.Equal(t, "OIL-1L", rows[0].(map[string]any)["product_code"])
	})
}
