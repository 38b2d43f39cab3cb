// Command token emite un JWT de operador firmado con JWT_SECRET.
//
//	go run ./cmd/token -user operador-1 -role admin
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/inventario-dashboard/pkg/config"
	"github.com/jhoicas/inventario-dashboard/pkg/jwt"
	"github.com/jhoicas/inventario-dashboard/pkg/logger"
)

func main() {
	user := flag.String("user", "operador", "identificador del operador")
	role := flag.String("role", "admin", "rol del operador (admin para eliminar productos)")
	flag.Parse()

	log := logger.New(logger.Config{Env: "development", Output: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("cargar configuración")
	}
	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET no configurado")
	}

	tok, err := jwt.Generate(cfg.JWT.Secret, *user, *role, cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		log.Fatal().Err(err).Msg("generar token")
	}
	fmt.Println(tok)
}
