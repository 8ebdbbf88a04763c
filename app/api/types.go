package api

import (
	"github.com/lphan/macwatch/app/catalog"
	"github.com/lphan/macwatch/app/database"
	"github.com/lphan/macwatch/app/exchange"
	"github.com/lphan/macwatch/app/shops"
	"github.com/lphan/macwatch/app/tasks"
)

type Handler struct {
	configCache *shops.ConfigCache
	store       *catalog.Store
	historyRepo database.HistoryRepository
	runRepo     database.ChangeRunRepository
	rates       *exchange.Provider
	scheduler   tasks.TaskSchedulerInterface
}

// PriceEntry is one curated configuration in the comparison payload.
// Price fields are nil when no shop currently lists the configuration
// with a usable price.
type PriceEntry struct {
	Model         string `json:"model"`
	Configuration string `json:"configuration"`
	ID            string `json:"id"`
	VNDPrice      *int   `json:"vndPrice"`
	Available     bool   `json:"available"`
	Shop          string `json:"shop,omitempty"`
	URL           string `json:"url,omitempty"`
	INRPrice      *int   `json:"inrPrice"`
	VATRefund     *int   `json:"vatRefund"`
	FinalPrice    *int   `json:"finalPrice"`
}

type PricesResponse struct {
	Success      bool         `json:"success"`
	Prices       []PriceEntry `json:"prices"`
	ExchangeRate float64      `json:"exchangeRate"`
	Timestamp    string       `json:"timestamp"`
	Source       string       `json:"source"`
}
