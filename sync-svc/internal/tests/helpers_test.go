package tests

import (
	"testing"

	"overcooked-menusync/sync-svc/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
)

var testScope = domain.Scope{TenantID: "t1", LocationID: "l1"}

func menuItem(id, name string, price float64) domain.MenuItem {
	return domain.MenuItem{
		ID:         id,
		TenantID:   testScope.TenantID,
		LocationID: testScope.LocationID,
		Name:       name,
		Category:   "Mains",
		Price:      price,
		Status:     domain.StatusActive,
	}
}

func inventoryItem(id string, costPerUnit float64) domain.InventoryItem {
	return domain.InventoryItem{
		ID:          id,
		TenantID:    testScope.TenantID,
		LocationID:  testScope.LocationID,
		Name:        "inv-" + id,
		Unit:        "kg",
		CostPerUnit: costPerUnit,
	}
}

func posItem(id, name string) domain.POSItem {
	return domain.POSItem{
		ID:         id,
		TenantID:   testScope.TenantID,
		LocationID: testScope.LocationID,
		Name:       name,
		Available:  true,
	}
}

// counterValue sums the samples of a metric family whose labels include labels.
func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	total := 0.0
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			matched := 0
			for _, label := range metric.GetLabel() {
				if want, ok := labels[label.GetName()]; ok && want == label.GetValue() {
					matched++
				}
			}
			if matched != len(labels) {
				continue
			}
			if metric.GetCounter() != nil {
				total += metric.GetCounter().GetValue()
			} else if metric.GetGauge() != nil {
				total += metric.GetGauge().GetValue()
			}
		}
	}
	return total
}
