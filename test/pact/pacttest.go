//go:build pact
// +build pact

// Package pacttest holds shared names, states and paths for the contract
// tests between the orders API and the services it consumes.
package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ConsumerName        = "marketplace-orders-api"
	CatalogProviderName = "catalog-service"

	StateProductExists  = "product prod-101 exists with stock"
	StateProductMissing = "no product with id prod-404"
	StateProductLow     = "product prod-101 has a single unit left"
)

const (
	ExistingProductID = "prod-101"
	MissingProductID  = "prod-404"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleProductPayload provides stable test data for catalog interactions.
func ExampleProductPayload() map[string]any {
	return map[string]any{
		"id":         ExistingProductID,
		"nombre":     "Mate Imperial",
		"vendedorId": "seller-1",
		"stock":      25,
		"precio":     185000,
		"ventas":     4,
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
