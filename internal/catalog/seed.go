package catalog

import (
	"github.com/jlizarraga/healthybreads-backend/pkg/config"
	"github.com/shopspring/decimal"
)

var defaultProducts = Snapshot{
	{
		ID:          "platano",
		Name:        "Pan de Plátano",
		Description: "Elaborado con plátanos reales para un dulzor natural",
		Price:       decimal.NewFromInt(40),
		Stock:       20,
		Image:       "https://images.unsplash.com/photo-1586444248902-2f64eddc13df?w=400&q=80",
	},
	{
		ID:          "datil",
		Name:        "Pan de Dátil",
		Description: "Enriquecido con dátiles para un impulso de energía natural",
		Price:       decimal.NewFromInt(40),
		Stock:       20,
		Image:       "https://images.unsplash.com/photo-1509440159596-0249088772ff?w=400&q=80",
	},
	{
		ID:          "zanahoria",
		Name:        "Pan de Zanahoria",
		Description: "Repleto de zanahorias para una nutrición adicional",
		Price:       decimal.NewFromInt(40),
		Stock:       20,
		Image:       "https://images.unsplash.com/photo-1589367920969-ab8e050bbb04?w=400&q=80",
	},
}

var devOnlyProducts = Snapshot{
	{
		ID:          "integral",
		Name:        "Pan Integral de Prueba",
		Description: "Producto de prueba, solo visible en entornos de desarrollo",
		Price:       decimal.NewFromInt(35),
		Stock:       99,
		Image:       "https://images.unsplash.com/photo-1549931319-a545dcf3bc73?w=400&q=80",
	},
}

// SeedFor returns the static default catalog for the given app environment.
// Dev environments carry an extra test listing on top of the fixed list.
func SeedFor(appEnv string) Snapshot {
	seed := defaultProducts.Clone()
	if (config.AppConfig{Env: appEnv}).IsDev() {
		seed = append(seed, devOnlyProducts.Clone()...)
	}
	return seed
}
