// seed carga un propietario, su tienda y un catálogo desde CSV usando el backend configurado
// (BACKEND_MODE). Sin archivo usa el catálogo demo.
//
// Uso: go run ./cmd/seed [-email demo@x.co -password secreta -shop "Tienda Demo"] [productos.csv]
//
// Columnas del CSV: sku,name,category,unit_price,stock,reorder_threshold[,location]
// Se acepta UTF-8 o ISO-8859-1 (exportes de hojas de cálculo).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/MultiTienda-api/internal/app"
	"github.com/jhoicas/MultiTienda-api/internal/application/demo"
	"github.com/jhoicas/MultiTienda-api/pkg/config"
	"github.com/jhoicas/MultiTienda-api/pkg/logger"
)

func main() {
	defaults := demo.DefaultOptions()
	email := flag.String("email", defaults.Email, "email del propietario")
	password := flag.String("password", defaults.Password, "password del propietario")
	shopName := flag.String("shop", defaults.ShopName, "nombre de la tienda")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	opts := defaults
	opts.Email, opts.Password, opts.ShopName = *email, *password, *shopName
	if path := flag.Arg(0); path != "" {
		products, err := readProductsCSV(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
			os.Exit(1)
		}
		opts.Products = products
		opts.SalesBySKU = nil
	}

	ctx := context.Background()
	container, err := app.NewContainer(ctx, cfg, log, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Inicializar dependencias: %v\n", err)
		os.Exit(1)
	}
	defer container.Close()

	res, err := container.Seeder().Run(ctx, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Carga: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Tienda %s: %d productos creados, %d omitidos, %d ventas\n",
		res.ShopID, res.ProductsCreated, res.ProductsSkipped, res.SalesRecorded)
}
