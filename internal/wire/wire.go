// Package wire provides dependency injection for the batchalloc application.
// It creates singleton services with lazy initialization.
package wire

import (
	"io"
	"log"
	"os"
	"sync"

	cliadapter "github.com/example/batchalloc/internal/adapters/cli"
	"github.com/example/batchalloc/internal/adapters/sqlite"
	"github.com/example/batchalloc/internal/app"
	"github.com/example/batchalloc/internal/config"
	"github.com/example/batchalloc/internal/db"
	"github.com/example/batchalloc/internal/ports/primary"
)

var (
	inventoryService  primary.InventoryService
	allocationService primary.AllocationService
	complianceService primary.ComplianceService
	costingService    primary.CostingService
	workflowService   primary.WorkflowService
	appConfig         *config.Config
	once              sync.Once
)

// Config returns the singleton application configuration.
func Config() *config.Config {
	once.Do(initServices)
	return appConfig
}

// InventoryService returns the singleton InventoryService instance.
func InventoryService() primary.InventoryService {
	once.Do(initServices)
	return inventoryService
}

// AllocationService returns the singleton AllocationService instance.
func AllocationService() primary.AllocationService {
	once.Do(initServices)
	return allocationService
}

// ComplianceService returns the singleton ComplianceService instance.
func ComplianceService() primary.ComplianceService {
	once.Do(initServices)
	return complianceService
}

// CostingService returns the singleton CostingService instance.
func CostingService() primary.CostingService {
	once.Do(initServices)
	return costingService
}

// WorkflowService returns the singleton WorkflowService instance.
func WorkflowService() primary.WorkflowService {
	once.Do(initServices)
	return workflowService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("failed to get home directory: %v", err)
	}
	appConfig = config.LoadOrDefault(home)

	// Get database connection
	database, err := db.GetDB()
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Create repository adapters (secondary ports) - sqlite adapters with injected DB
	inventoryRepo := sqlite.NewInventoryRepository(database)
	pricingRepo := sqlite.NewPricingRepository(database)
	specRepo := sqlite.NewSpecRepository(database)
	reportRepo := sqlite.NewReportRepository(database)

	// Create services (primary ports implementation)
	inventoryService = app.NewInventoryService(inventoryRepo)
	allocationService = app.NewAllocationService(inventoryRepo)
	complianceService = app.NewComplianceService(specRepo)
	costingService = app.NewCostingService(pricingRepo, appConfig)
	workflowService = app.NewWorkflowOrchestrator(allocationService, complianceService, costingService, reportRepo, appConfig)
}

// ReportAdapter returns a new ReportAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func ReportAdapter() *cliadapter.ReportAdapter {
	return ReportAdapterWithOutput(os.Stdout)
}

// ReportAdapterWithOutput returns a new ReportAdapter writing to the given output.
// This variant allows testing or alternate output destinations.
func ReportAdapterWithOutput(out io.Writer) *cliadapter.ReportAdapter {
	once.Do(initServices)
	return cliadapter.NewReportAdapter(out)
}
