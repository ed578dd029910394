package main

import (
	"log"
	"net/http"

	"tonepaper/internal/api"
	"tonepaper/internal/config"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env")
	cfg := config.Load()
	h := api.NewServer(cfg)
	log.Printf("tonepaper api listening on %s default_provider=%q audit=%v", cfg.APIAddr, cfg.DefaultProvider, cfg.PostgresURL != "")
	if err := http.ListenAndServe(cfg.APIAddr, h.Routes()); err != nil {
		log.Fatal(err)
	}
}
