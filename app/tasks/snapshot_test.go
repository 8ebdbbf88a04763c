package tasks

import (
	"fmt"
	"testing"
	"time"

	"github.com/lphan/macwatch/app/catalog"
)

func waitForSnapshot(t *testing.T, ch chan []catalog.Listing) []catalog.Listing {
	t.Helper()

	select {
	case listings := <-ch:
		return listings
	case <-time.After(2 * time.Second):
		t.Fatal("Expected snapshot completion, got none")
		return nil
	}
}

func TestSnapshotAssemblerMergesAllShops(t *testing.T) {
	completed := make(chan []catalog.Listing, 1)
	assembler := NewSnapshotAssembler(2, func(listings []catalog.Listing) {
		completed <- listings
	})

	assembler.Add("shopa", []catalog.Listing{
		{Shop: "shopa", RawTitle: "MacBook Air M2"},
		{Shop: "shopa", RawTitle: "MacBook Pro M4"},
	})

	select {
	case <-completed:
		t.Error("Expected completion to wait for all shops")
	case <-time.After(50 * time.Millisecond):
	}

	assembler.Add("shopb", []catalog.Listing{
		{Shop: "shopb", RawTitle: "MacBook Air M3"},
	})

	merged := waitForSnapshot(t, completed)
	if len(merged) != 3 {
		t.Errorf("Expected 3 merged listings, got %d", len(merged))
	}
}

func TestSnapshotAssemblerCompletesWithFailedShop(t *testing.T) {
	completed := make(chan []catalog.Listing, 1)
	assembler := NewSnapshotAssembler(2, func(listings []catalog.Listing) {
		completed <- listings
	})

	assembler.Fail("shopa", fmt.Errorf("listings file missing"))
	assembler.Add("shopb", []catalog.Listing{
		{Shop: "shopb", RawTitle: "MacBook Air M3"},
	})

	merged := waitForSnapshot(t, completed)
	if len(merged) != 1 {
		t.Errorf("Expected 1 listing from the surviving shop, got %d", len(merged))
	}
	if merged[0].Shop != "shopb" {
		t.Errorf("Expected listing from shopb, got %s", merged[0].Shop)
	}
}

func TestSnapshotAssemblerAllShopsFailed(t *testing.T) {
	completed := make(chan []catalog.Listing, 1)
	assembler := NewSnapshotAssembler(2, func(listings []catalog.Listing) {
		completed <- listings
	})

	assembler.Fail("shopa", fmt.Errorf("listings file missing"))
	assembler.Fail("shopb", fmt.Errorf("malformed dump"))

	merged := waitForSnapshot(t, completed)
	if len(merged) != 0 {
		t.Errorf("Expected empty snapshot, got %d listings", len(merged))
	}
}

func TestSnapshotAssemblerFiresOnce(t *testing.T) {
	completed := make(chan []catalog.Listing, 2)
	assembler := NewSnapshotAssembler(1, func(listings []catalog.Listing) {
		completed <- listings
	})

	assembler.Add("shopa", []catalog.Listing{{Shop: "shopa", RawTitle: "MacBook Air M2"}})
	waitForSnapshot(t, completed)

	assembler.Add("shopa", []catalog.Listing{{Shop: "shopa", RawTitle: "MacBook Air M2"}})

	select {
	case <-completed:
		t.Error("Expected no second completion")
	case <-time.After(50 * time.Millisecond):
	}
}
