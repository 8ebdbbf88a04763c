package tasks

import (
	"context"
	"log/slog"

	"github.com/lphan/macwatch/app/catalog"
	"github.com/lphan/macwatch/app/shops"
)

// CollectShopTask reads one shop's listing dump and normalizes it.
// A failed shop is reported to the assembler and skipped; one broken
// dump must not abort the cycle.
type CollectShopTask struct {
	Task
	ShopConfig *shops.Config
	assembler  *SnapshotAssembler
}

func NewCollectShopTask(shopConfig *shops.Config, assembler *SnapshotAssembler) *CollectShopTask {
	return &CollectShopTask{
		Task:       NewTask(TaskTypeCollectShop, shopConfig.Name),
		ShopConfig: shopConfig,
		assembler:  assembler,
	}
}

func (t *CollectShopTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		t.assembler.Fail(t.ShopName, ctx.Err())
		return ctx.Err()
	default:
	}

	raw, err := shops.LoadListings(t.ShopConfig)
	if err != nil {
		t.assembler.Fail(t.ShopName, err)
		return nil
	}

	listings := catalog.NormalizeListings(raw)

	priced := 0
	matched := 0
	for _, l := range listings {
		if l.HasPrice {
			priced++
		}
		if l.Spec.IdentityKey != "" {
			matched++
		}
	}

	slog.Debug("Shop collected", "shop", t.ShopName, "listings", len(listings),
		"priced", priced, "matched", matched, "duration", t.GetDuration())

	t.assembler.Add(t.ShopName, listings)
	return nil
}
