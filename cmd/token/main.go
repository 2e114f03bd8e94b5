// token imprime un JWT de operador firmado con JWT_SECRET.
//
// Uso: go run ./cmd/token -subject ana@tienda [-minutes 480]
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/ecommerce-dashboard-api/pkg/config"
	"github.com/jhoicas/ecommerce-dashboard-api/pkg/jwt"
)

func main() {
	subject := flag.String("subject", "", "identificador del operador (obligatorio)")
	minutes := flag.Int("minutes", 0, "vigencia en minutos (por defecto JWT_EXPIRATION_MINUTES)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	if cfg.JWT.Secret == "" {
		fmt.Fprintln(os.Stderr, "JWT_SECRET no está definido: la API está abierta y no necesita token")
		os.Exit(1)
	}
	if *subject == "" {
		flag.Usage()
		os.Exit(2)
	}
	exp := cfg.JWT.Expiration
	if *minutes > 0 {
		exp = *minutes
	}

	tok, err := jwt.Generate(cfg.JWT.Secret, *subject, cfg.JWT.Issuer, exp)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generar token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}
