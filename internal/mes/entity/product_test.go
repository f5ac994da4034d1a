package entity

import "testing"

func TestProductBOMUses(t *testing.T) {
	bom := ProductBOM{
		ProductID: "prd-001",
		Versions: []BOMVersion{
			{Version: "2.0", Nodes: []BOMNode{
				{ItemID: "inv-001"},
				{ItemID: "inv-010", Children: []BOMNode{{ItemID: "inv-003"}}},
			}},
			{Version: "1.0", Nodes: []BOMNode{{ItemID: "inv-020"}}},
		},
	}
	for id, want := range map[string]bool{
		"inv-001": true,
		"inv-003": true,
		"inv-020": true,
		"inv-099": false,
	} {
		if got := bom.Uses(id); got != want {
			t.Errorf("Uses(%s) = %v, want %v", id, got, want)
		}
	}
}

func TestTrendLabelAndReorder(t *testing.T) {
	if TrendLabel(0.1) != TrendUp || TrendLabel(-2) != TrendDown || TrendLabel(0) != TrendFlat {
		t.Error("TrendLabel")
	}
	item := InventoryItem{Available: 10, ReorderPoint: 10}
	if !item.BelowReorderPoint() {
		t.Error("at the reorder point counts as below")
	}
	item.Available = 11
	if item.BelowReorderPoint() {
		t.Error("above the reorder point")
	}
}
