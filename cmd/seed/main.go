package main

import (
	"flag"

	"github.com/vitrine-next/internal/config"
	"github.com/vitrine-next/internal/logger"
	"github.com/vitrine-next/internal/models"
	"github.com/vitrine-next/internal/repository"
)

func main() {
	var configFile string
	flag.StringVar(&configFile, "config", "", "配置文件路径")
	flag.Parse()

	cfg, err := config.LoadFrom(configFile)
	logger.Init("debug", logger.Options{})
	stdLog := logger.StdLogger()
	if err != nil {
		stdLog.Fatalf("Failed to load config: %v", err)
	}
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	repo := repository.NewProductRepository(models.DB)
	for _, product := range demoProducts() {
		existing, err := repo.GetBySlug(product.Slug)
		if err != nil {
			stdLog.Printf("Failed to look up product %s: %v", product.Slug, err)
			continue
		}
		if existing != nil {
			stdLog.Printf("Product already exists: %s", product.Slug)
			continue
		}
		p := product
		if err := repo.Create(&p); err != nil {
			stdLog.Printf("Failed to create product %s: %v", product.Slug, err)
			continue
		}
		stdLog.Printf("Created product: %s (id=%d)", p.Slug, p.ID)
	}
	stdLog.Printf("Seed data completed")
}

func apparelSizes(codes ...string) []models.ProductSize {
	names := map[string]string{"XS": "Extra Small", "S": "Small", "M": "Medium", "L": "Large", "XL": "Extra Large"}
	sizes := make([]models.ProductSize, 0, len(codes))
	for i, code := range codes {
		sizes = append(sizes, models.ProductSize{Code: code, Name: names[code], InStock: true, SortOrder: i})
	}
	return sizes
}

func demoProducts() []models.Product {
	return []models.Product{
		{
			Slug:          "linen-camp-shirt",
			Name:          "Linen Camp Shirt",
			Description:   "Relaxed short-sleeve shirt in washed linen.",
			Brand:         "Nordic Thread",
			Category:      "tops",
			Price:         models.NewMoneyFromString("59.00"),
			OriginalPrice: models.NewMoneyFromString("79.00"),
			Images:        models.StringArray{"/images/linen-camp-shirt.jpg"},
			Tags:          models.StringArray{"summer", "linen"},
			Rating:        4.6,
			ReviewCount:   128,
			InStock:       true,
			IsActive:      true,
			SupportsTryOn: true,
			SortOrder:     30,
			Sizes:         apparelSizes("S", "M", "L", "XL"),
			Colors: []models.ProductColor{
				{Code: "sand", Name: "Sand", Hex: "#d8c3a5"},
				{Code: "navy", Name: "Navy", Hex: "#1f2a44", SortOrder: 1},
			},
		},
		{
			Slug:        "merino-crew-sweater",
			Name:        "Merino Crew Sweater",
			Description: "Fine-gauge merino knit with ribbed trims.",
			Brand:       "Nordic Thread",
			Category:    "knitwear",
			Price:       models.NewMoneyFromString("120.00"),
			Images:      models.StringArray{"/images/merino-crew-sweater.jpg"},
			Tags:        models.StringArray{"wool"},
			Rating:      4.8,
			ReviewCount: 64,
			InStock:     true,
			IsActive:    true,
			SortOrder:   20,
			Sizes:       apparelSizes("XS", "S", "M", "L"),
			Colors: []models.ProductColor{
				{Code: "oat", Name: "Oat", Hex: "#e8dcc8"},
				{Code: "charcoal", Name: "Charcoal", Hex: "#36454f", SortOrder: 1},
			},
		},
		{
			Slug:        "selvedge-denim-jacket",
			Name:        "Selvedge Denim Jacket",
			Description: "Rigid selvedge denim, trucker cut.",
			Brand:       "Harbor Works",
			Category:    "outerwear",
			Price:       models.NewMoneyFromString("189.50"),
			Images:      models.StringArray{"/images/selvedge-denim-jacket.jpg"},
			Rating:      4.4,
			ReviewCount: 31,
			InStock:     true,
			IsActive:    true,
			SortOrder:   10,
			Sizes:       apparelSizes("S", "M", "L"),
			Colors: []models.ProductColor{
				{Code: "indigo", Name: "Indigo", Hex: "#3f51b5"},
			},
		},
		{
			Slug:        "canvas-tote",
			Name:        "Canvas Tote",
			Brand:       "Harbor Works",
			Category:    "accessories",
			Price:       models.NewMoneyFromString("24.00"),
			Images:      models.StringArray{"/images/canvas-tote.jpg"},
			Rating:      4.1,
			ReviewCount: 12,
			InStock:     false,
			IsActive:    true,
			Sizes:       []models.ProductSize{{Code: "OS", Name: "One Size", InStock: false}},
			Colors: []models.ProductColor{
				{Code: "natural", Name: "Natural", Hex: "#f3ead7"},
			},
		},
	}
}
