package http

import (
	"github.com/gofiber/fiber/v2"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Catalog    *CatalogHandler
	Stock      *StockHandler
	Production *ProductionHandler
	JWTSecret  string
}

// Router registra las rutas de la API. Las escrituras de inventario y de
// lotes exigen rol "produccion" (o "admin"); las lecturas, cualquier rol.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Companies (público por ahora; se puede proteger con AuthMiddleware(deps.JWTSecret))
	companies := api.Group("/companies")
	companies.Get("/", deps.Catalog.ListCompanies)
	companies.Post("/", deps.Catalog.CreateCompany)
	companies.Get("/:id", deps.Catalog.GetCompany)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	writer := RequireRole(RoleProduccion)

	// Materials (protegido)
	materials := protected.Group("/materials")
	materials.Post("/", writer, deps.Catalog.CreateMaterial)
	materials.Get("/", deps.Catalog.ListMaterials)
	materials.Get("/:id", deps.Catalog.GetMaterial)

	// Products + BOM (protegido)
	products := protected.Group("/products")
	products.Post("/", writer, deps.Catalog.CreateProduct)
	products.Get("/", deps.Catalog.ListProducts)
	products.Get("/:id", deps.Catalog.GetProduct)
	products.Put("/:id/bom", writer, deps.Production.UpsertBOM)
	products.Get("/:id/bom", deps.Production.GetBOM)

	// Stock: valoración e historial (protegido)
	stock := protected.Group("/stock")
	stock.Post("/initialize", writer, deps.Stock.Initialize)
	stock.Post("/purchases", writer, deps.Stock.RegisterPurchase)
	stock.Post("/consumptions", writer, deps.Stock.RegisterConsumption)
	stock.Post("/adjustments", writer, deps.Stock.RegisterAdjustment)
	stock.Get("/:materialId", deps.Stock.GetStock)
	stock.Get("/:materialId/ledger", deps.Stock.ListLedger)

	// Production lots (protegido)
	lots := protected.Group("/lots")
	lots.Post("/", writer, deps.Production.CreateLot)
	lots.Get("/", deps.Production.ListLots)
	lots.Get("/:id", deps.Production.GetLot)
	lots.Post("/:id/consumptions", writer, deps.Production.ConsumeMaterials)
	lots.Post("/:id/finish", writer, deps.Production.FinishLot)
	lots.Get("/:id/report.pdf", deps.Production.DownloadReport)
}
