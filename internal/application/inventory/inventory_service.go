package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/shopbooks/backend/internal/domain/inventory"
	"github.com/shopbooks/backend/internal/domain/shared"
)

// StockReportCache caches computed stock report pages. Implementations may
// be backed by redis; a nil cache disables caching entirely.
type StockReportCache interface {
	// Get returns the cached page for the key, or nil on a miss
	Get(ctx context.Context, key string) (*shared.Paginated[StockReportRow], error)
	// Set stores a computed page under the key
	Set(ctx context.Context, key string, page *shared.Paginated[StockReportRow]) error
	// Invalidate drops every cached page
	Invalidate(ctx context.Context) error
}

// InventoryService is the inventory valuation engine: it records stock
// movements and derives stock levels, FIFO batches and valuation reports.
type InventoryService struct {
	scope           TransactionScope
	transactionRepo inventory.InventoryTransactionRepository
	catalog         inventory.ProductCatalog
	cache           StockReportCache
	logger          *zap.Logger
}

// NewInventoryService creates a new InventoryService
func NewInventoryService(
	scope TransactionScope,
	transactionRepo inventory.InventoryTransactionRepository,
	catalog inventory.ProductCatalog,
) *InventoryService {
	return &InventoryService{
		scope:           scope,
		transactionRepo: transactionRepo,
		catalog:         catalog,
		logger:          zap.NewNop(),
	}
}

// SetCache enables stock report caching
func (s *InventoryService) SetCache(cache StockReportCache) {
	s.cache = cache
}

// SetLogger sets the service logger
func (s *InventoryService) SetLogger(logger *zap.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

func (s *InventoryService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("stock report cache invalidation failed", zap.Error(err))
	}
}

// resolveBaseUnits converts a movement recorded in an alternate unit into
// base-unit quantities and cost using the product's conversion table. A
// request without a unit passes through untouched.
func (s *InventoryService) resolveBaseUnits(ctx context.Context, req RecordMovementRequest) (RecordMovementRequest, error) {
	if req.Unit == "" {
		return req, nil
	}

	product, err := s.catalog.FindProduct(ctx, req.ProductID)
	if err != nil {
		return req, err
	}
	conversion, ok := product.UnitConversionFor(req.Unit)
	if !ok {
		return req, shared.NewDomainError("INVALID_INPUT",
			"Product "+product.Code+" has no unit named "+req.Unit)
	}

	lineQuantity := req.QuantityIn
	if lineQuantity.IsZero() {
		lineQuantity = req.QuantityOut
	}
	quantity, unitCost := inventory.BaseUnitMovement(lineQuantity, req.LinePrice, req.LineDiscount, conversion)

	if !req.QuantityIn.IsZero() {
		req.QuantityIn = quantity
	} else {
		req.QuantityOut = quantity
	}
	if !req.LinePrice.IsZero() {
		req.CostPrice = unitCost
	}
	req.Unit = ""
	return req, nil
}

// RecordMovement appends one stock movement
func (s *InventoryService) RecordMovement(ctx context.Context, req RecordMovementRequest) (*MovementResponse, error) {
	req, err := s.resolveBaseUnits(ctx, req)
	if err != nil {
		return nil, err
	}

	tx, err := inventory.NewInventoryTransaction(req.ProductID, req.Date,
		inventory.TransactionType(req.Type), req.QuantityIn, req.QuantityOut,
		req.CostPrice, req.ReferenceType, req.ReferenceID)
	if err != nil {
		return nil, err
	}
	if err := s.transactionRepo.SaveAll(ctx, []inventory.InventoryTransaction{*tx}); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx)

	response := ToMovementResponse(tx)
	return &response, nil
}

// ReplaceSourceMovements atomically replaces every movement recorded for a
// source document with a fresh set. Used when purchases, sales or returns
// are edited: the document's old rows are removed and the new ones inserted
// in one transaction.
func (s *InventoryService) ReplaceSourceMovements(ctx context.Context, referenceType string, referenceID uuid.UUID, reqs []RecordMovementRequest) ([]MovementResponse, error) {
	if referenceType == "" || referenceID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Source document reference is required")
	}

	transactions := make([]inventory.InventoryTransaction, 0, len(reqs))
	for _, req := range reqs {
		req, err := s.resolveBaseUnits(ctx, req)
		if err != nil {
			return nil, err
		}
		tx, err := inventory.NewInventoryTransaction(req.ProductID, req.Date,
			inventory.TransactionType(req.Type), req.QuantityIn, req.QuantityOut,
			req.CostPrice, referenceType, referenceID)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, *tx)
	}

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.TransactionRepo().DeleteBySource(ctx, referenceType, referenceID); err != nil {
			return err
		}
		if len(transactions) == 0 {
			return nil
		}
		return repos.TransactionRepo().SaveAll(ctx, transactions)
	})
	if err != nil {
		return nil, err
	}
	s.invalidateCache(ctx)

	responses := make([]MovementResponse, 0, len(transactions))
	for i := range transactions {
		responses = append(responses, ToMovementResponse(&transactions[i]))
	}
	return responses, nil
}

// DeleteSourceMovements removes every movement recorded for a source
// document. A source with no movements is NOT_FOUND rather than a no-op so
// callers deleting a document learn their reference never reached the stock
// ledger.
func (s *InventoryService) DeleteSourceMovements(ctx context.Context, referenceType string, referenceID uuid.UUID) error {
	if referenceType == "" || referenceID == uuid.Nil {
		return shared.NewDomainError("INVALID_INPUT", "Source document reference is required")
	}
	count, err := s.transactionRepo.CountBySource(ctx, referenceType, referenceID)
	if err != nil {
		return err
	}
	if count == 0 {
		return shared.ErrNotFound
	}
	if err := s.transactionRepo.DeleteBySource(ctx, referenceType, referenceID); err != nil {
		return err
	}
	s.invalidateCache(ctx)
	return nil
}

// GetMovement returns one recorded movement by id
func (s *InventoryService) GetMovement(ctx context.Context, id uuid.UUID) (*MovementResponse, error) {
	tx, err := s.transactionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, shared.ErrNotFound
	}
	response := ToMovementResponse(tx)
	return &response, nil
}

// ProductStock derives the current stock level of a product: quantity in
// minus quantity out over every transaction type.
func (s *InventoryService) ProductStock(ctx context.Context, productID uuid.UUID) (decimal.Decimal, error) {
	transactions, err := s.transactionRepo.FindByProduct(ctx, productID)
	if err != nil {
		return decimal.Zero, err
	}
	return inventory.CurrentStock(transactions), nil
}

// ProductStockAsOf derives a product's stock level at the end of a day,
// counting only movements dated up to and including it.
func (s *InventoryService) ProductStockAsOf(ctx context.Context, productID uuid.UUID, asOf time.Time) (decimal.Decimal, error) {
	transactions, err := s.transactionRepo.FindByProductUpTo(ctx, productID, asOf)
	if err != nil {
		return decimal.Zero, err
	}
	return inventory.CurrentStock(transactions), nil
}

// BatchesByProduct derives the remaining FIFO batches of a product
func (s *InventoryService) BatchesByProduct(ctx context.Context, productID uuid.UUID) ([]BatchResponse, error) {
	remaining, _, err := s.remainingBatches(ctx, productID)
	if err != nil {
		return nil, err
	}
	responses := make([]BatchResponse, 0, len(remaining))
	for _, b := range remaining {
		responses = append(responses, ToBatchResponse(b))
	}
	return responses, nil
}

// remainingBatches loads a product's rows and runs FIFO allocation,
// returning the surviving batches and the ordered inbound rows.
func (s *InventoryService) remainingBatches(ctx context.Context, productID uuid.UUID) ([]inventory.Batch, []inventory.InventoryTransaction, error) {
	all, err := s.transactionRepo.FindByProduct(ctx, productID)
	if err != nil {
		return nil, nil, err
	}
	batchRows, err := s.transactionRepo.FindInboundByProduct(ctx, productID)
	if err != nil {
		return nil, nil, err
	}
	return inventory.AllocateFIFO(batchRows, inventory.CurrentStock(all)), batchRows, nil
}

func cacheKey(mode inventory.CostMode, filter StockReportFilter) string {
	return fmt.Sprintf("%s|%s|%s|%d|%d", mode, filter.Search, filter.SearchField, filter.Page, filter.PageSize)
}

// StockReport values the stock of every product in the requested cost
// mode. Search and pagination are applied in memory after computation; the
// finished page is cached until the next inventory write.
func (s *InventoryService) StockReport(ctx context.Context, mode inventory.CostMode, filter StockReportFilter) (*shared.Paginated[StockReportRow], error) {
	if !mode.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown stock report mode: "+mode.String())
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 50
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, cacheKey(mode, filter))
		if err != nil {
			s.logger.Warn("stock report cache read failed", zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	products, err := s.catalog.FindProducts(ctx, shared.Filter{})
	if err != nil {
		return nil, err
	}

	rows := make([]StockReportRow, 0, len(products))
	for i := range products {
		productRows, err := s.productReportRows(ctx, &products[i], mode)
		if err != nil {
			return nil, err
		}
		rows = append(rows, productRows...)
	}

	rows = filterRows(rows, filter)
	page := paginateRows(rows, filter)

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey(mode, filter), &page); err != nil {
			s.logger.Warn("stock report cache write failed", zap.Error(err))
		}
	}
	return &page, nil
}

func (s *InventoryService) productReportRows(ctx context.Context, product *inventory.ProductInfo, mode inventory.CostMode) ([]StockReportRow, error) {
	all, err := s.transactionRepo.FindByProduct(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	batchRows, err := s.transactionRepo.FindInboundByProduct(ctx, product.ID)
	if err != nil {
		return nil, err
	}

	stock := inventory.CurrentStock(all)
	remaining := inventory.AllocateFIFO(batchRows, stock)

	row := StockReportRow{
		ProductID:   product.ID,
		ProductCode: product.Code,
		ProductName: product.Name,
		Quantity:    stock,
	}

	switch mode {
	case inventory.CostModeAverage:
		row.CostPrice = inventory.AverageCost(remaining, batchRows)
	case inventory.CostModeLastPurchase:
		row.CostPrice = inventory.LastPurchaseRate(batchRows)
	case inventory.CostModeBatch:
		if !product.AllowBatches {
			merged := inventory.CollapseBatches(remaining, batchRows)
			row.Quantity = merged.Remaining
			row.CostPrice = merged.CostPrice
			row.StockValue = merged.TotalValue()
			return []StockReportRow{row.rounded()}, nil
		}
		rows := make([]StockReportRow, 0, len(remaining))
		for _, b := range remaining {
			date := b.Date
			rows = append(rows, StockReportRow{
				ProductID:   product.ID,
				ProductCode: product.Code,
				ProductName: product.Name,
				BatchDate:   &date,
				Quantity:    b.Remaining,
				CostPrice:   b.CostPrice,
				StockValue:  b.TotalValue(),
			}.rounded())
		}
		return rows, nil
	}

	row.StockValue = row.Quantity.Mul(row.CostPrice)
	return []StockReportRow{row.rounded()}, nil
}

func filterRows(rows []StockReportRow, filter StockReportFilter) []StockReportRow {
	search := strings.TrimSpace(strings.ToLower(filter.Search))
	if search == "" {
		return rows
	}
	matched := make([]StockReportRow, 0, len(rows))
	for _, row := range rows {
		var haystack string
		switch filter.SearchField {
		case "code":
			haystack = row.ProductCode
		case "name":
			haystack = row.ProductName
		default:
			haystack = row.ProductCode + " " + row.ProductName
		}
		if strings.Contains(strings.ToLower(haystack), search) {
			matched = append(matched, row)
		}
	}
	return matched
}

func paginateRows(rows []StockReportRow, filter StockReportFilter) shared.Paginated[StockReportRow] {
	total := int64(len(rows))
	start := (filter.Page - 1) * filter.PageSize
	if start > len(rows) {
		start = len(rows)
	}
	end := start + filter.PageSize
	if end > len(rows) {
		end = len(rows)
	}
	return shared.NewPaginated(rows[start:end], total, filter.Page, filter.PageSize)
}
