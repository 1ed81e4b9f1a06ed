package main

import (
	"log"
	"net/http"

	"minuteflow/internal/api"
	"minuteflow/internal/config"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env")
	cfg := config.Load()
	h := api.NewServer(cfg)
	log.Printf("minuteflow api listening on %s default_provider=%s", cfg.APIAddr, cfg.DefaultProvider)
	if err := http.ListenAndServe(cfg.APIAddr, h.Routes()); err != nil {
		log.Fatal(err)
	}
}
