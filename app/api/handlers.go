package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lphan/macwatch/app/catalog"
	"github.com/lphan/macwatch/app/database"
	"github.com/lphan/macwatch/app/exchange"
	"github.com/lphan/macwatch/app/shops"
	"github.com/lphan/macwatch/app/tasks"
)

func NewHandler(configCache *shops.ConfigCache, store *catalog.Store,
	historyRepo database.HistoryRepository, runRepo database.ChangeRunRepository,
	rates *exchange.Provider, scheduler tasks.TaskSchedulerInterface) *Handler {
	return &Handler{
		configCache: configCache,
		store:       store,
		historyRepo: historyRepo,
		runRepo:     runRepo,
		rates:       rates,
		scheduler:   scheduler,
	}
}

// GetPrices serves the curated comparison payload. The response is
// restricted to the whitelist: configurations not currently listed by
// any shop appear with available=false and null price fields.
func (h *Handler) GetPrices(c *gin.Context) {
	rate, source, err := h.rates.Run(c.Request.Context())
	if err != nil {
		slog.Error("No exchange rate available", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error":   "Exchange rate unavailable",
		})
		return
	}

	snapshot, ready := h.store.Get()

	prices := make([]PriceEntry, 0, len(catalog.CuratedComparison))
	for _, entry := range catalog.CuratedComparison {
		price := PriceEntry{
			Model:         entry.Model,
			Configuration: entry.Configuration,
			ID:            entry.ID,
		}

		if ready {
			if listing := snapshot.CheapestCurated(entry.ID); listing != nil {
				breakdown, err := catalog.ComputeBreakdown(listing.VNDPrice, rate)
				if err != nil {
					slog.Error("Price breakdown failed", "id", entry.ID, "error", err)
				} else {
					vnd := listing.VNDPrice
					price.VNDPrice = &vnd
					price.Available = true
					price.Shop = listing.Shop
					price.URL = listing.URL
					price.INRPrice = &breakdown.INRPrice
					price.VATRefund = &breakdown.VATRefund
					price.FinalPrice = &breakdown.FinalPrice
				}
			}
		}

		prices = append(prices, price)
	}

	c.JSON(http.StatusOK, PricesResponse{
		Success:      true,
		Prices:       prices,
		ExchangeRate: rate,
		Timestamp:    time.Now().In(time.Local).Format(time.RFC3339),
		Source:       source,
	})
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	health["loaded_shops"] = h.configCache.GetConfigCount()

	if builtAt, ok := h.store.BuiltAt(); ok {
		health["catalog_built_at"] = builtAt.Format(time.RFC3339)
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"shops":     h.configCache.GetConfigCount(),
	}

	if snapshot, ok := h.store.Get(); ok {
		stats["catalog"] = map[string]interface{}{
			"products":   len(snapshot.Products),
			"listings":   len(snapshot.Raw),
			"built_at":   snapshot.BuiltAt.Format(time.RFC3339),
		}
	}

	if count, err := h.historyRepo.GetCount(); err == nil {
		stats["history_entries"] = count
	}
	if count, err := h.runRepo.GetRunCount(); err == nil {
		stats["change_runs"] = count
	}

	c.JSON(http.StatusOK, stats)
}

// APIGetChanges returns the most recent persisted change report.
func (h *Handler) APIGetChanges(c *gin.Context) {
	run, err := h.runRepo.GetLatestRun()
	if err != nil {
		slog.Error("Database error", "operation", "get_latest_run", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if run == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No change run recorded yet"})
		return
	}

	var report json.RawMessage
	if err := json.Unmarshal([]byte(run.Report), &report); err != nil {
		slog.Error("Stored change report is not valid JSON", "run_id", run.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stored report unreadable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":           run.ID,
		"created_at":   run.CreatedAt.Format(time.RFC3339),
		"drops":        run.Drops,
		"increases":    run.Increases,
		"new_products": run.NewProducts,
		"skipped":      run.Skipped,
		"report":       report,
	})
}

// APIRefresh starts a collection cycle outside the scheduler's ticker.
func (h *Handler) APIRefresh(c *gin.Context) {
	if err := h.scheduler.TriggerCycle(); err != nil {
		slog.Error("Error triggering collection cycle", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to trigger collection cycle",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Collection cycle started",
		"shops":   len(h.configCache.GetEnabledConfigs()),
	})
}
