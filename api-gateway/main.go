package main

import (
	"log"
	"net/http"

	"overcooked-menusync/api-gateway/internal/gateway"
	"overcooked-menusync/config"

	"github.com/rs/cors"
)

func main() {
	gatewayConfig := gateway.Config{
		SyncSvcURL: config.GetEnv("SYNC_SVC_URL", "http://localhost:8084"),
	}

	gw := gateway.NewGateway(gatewayConfig, &http.Client{})

	r := gw.SetupRoutes()

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})
	handler := c.Handler(r)

	addr := config.GetEnv("GATEWAY_ADDR", ":8080")
	log.Printf("API Gateway starting on %s", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}
