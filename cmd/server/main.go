package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cheflink/backoffice/internal/auth"
	"github.com/cheflink/backoffice/internal/client"
	"github.com/cheflink/backoffice/internal/config"
	"github.com/cheflink/backoffice/internal/mail"
	"github.com/cheflink/backoffice/internal/router"
	"github.com/cheflink/backoffice/internal/screen"
	"github.com/cheflink/backoffice/internal/wizard"
	"github.com/cheflink/backoffice/internal/ws"
)

func main() {
	cfg := config.Load()

	hc := &http.Client{Timeout: cfg.UpstreamTimeout}

	customersClient := client.NewCustomers(cfg.CustomersURL, hc)
	productsClient := client.NewProducts(cfg.ProductsURL, cfg.CategoriesURL, hc)
	categoriesClient := client.NewCategories(cfg.CategoriesURL, hc)
	hallsClient := client.NewHalls(cfg.HallsURL, hc)
	tablesClient := client.NewTables(cfg.TablesURL, hc)
	paymentsClient := client.NewPayments(cfg.PaymentsURL, hc)

	hub := ws.NewHub()
	go hub.Run()

	sessions := wizard.NewManager(tablesClient, cfg.SessionTTL)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sessions.Run(ctx)

	deps := router.Deps{
		Customers:      screen.NewCustomers(customersClient),
		Products:       screen.NewProducts(productsClient),
		Categories:     screen.NewCategories(categoriesClient),
		Halls:          screen.NewHalls(hallsClient),
		Tables:         screen.NewTables(tablesClient),
		Payments:       screen.NewPayments(paymentsClient),
		ProductCatalog: productsClient,
		TablesClient:   tablesClient,
		HallNames:      screen.NewHallNameCache(hallsClient),
		Sessions:       sessions,
		Auth:           auth.NewLoginClient(cfg.AuthURL, hc),
		Mail:           mail.NewSender(cfg.MailURL, hc),
		Hub:            hub,
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router.New(cfg, deps),
	}

	go func() {
		log.Printf("Starting back-office gateway on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("ERROR: shutdown: %v", err)
	}
}
