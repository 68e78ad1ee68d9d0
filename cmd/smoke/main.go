package main

import (
	"context"
	"log"
	"time"

	"causajusta/internal/config"
	"causajusta/internal/upstream"
)

// Checks that the core API is reachable and serving its public endpoints.
// Run before deploys or when diagnosing an outage.
func main() {
	log.Println("Starting smoke check...")

	cfg := config.Load()
	client := upstream.New(cfg.APIBaseURL, cfg.UpstreamTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	failures := 0

	rates, err := client.GetCommissionRates(ctx)
	if err != nil {
		log.Printf("FAIL commission rates: %v", err)
		failures++
	} else {
		log.Printf("OK commission rates: platform=%.4f mercadopago=%.4f",
			rates.PlatformCommission, rates.MercadoPagoFee)
	}

	page, err := client.ListCampaigns(ctx, upstream.ListOptions{Page: 1, PageSize: 5})
	if err != nil {
		log.Printf("FAIL campaign listing: %v", err)
		failures++
	} else {
		log.Printf("OK campaign listing: %d campaigns, %d total", len(page.Items), page.Total)
	}

	stats, err := client.PlatformStats(ctx)
	if err != nil {
		log.Printf("FAIL platform stats: %v", err)
		failures++
	} else {
		log.Printf("OK platform stats: %d campaigns, %d donations", stats.TotalCampaigns, stats.TotalDonations)
	}

	if failures > 0 {
		log.Fatalf("smoke check failed: %d of 3 probes failed against %s", failures, cfg.APIBaseURL)
	}
	log.Printf("smoke check passed against %s", cfg.APIBaseURL)
}
