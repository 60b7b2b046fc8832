package main

import (
	"context"
	"flag"
	"log"
	"time"

	"loteria-engine/internal/app"
	"loteria-engine/internal/browser"
	"loteria-engine/internal/hunt"

	_ "modernc.org/sqlite"
)

// Scrapes the LNB board for the target date's draw. LNB publishes on a
// fixed schedule, so the default budget is a single attempt; raise
// max_attempts in the config to poll instead.
func main() {
	dateFlag := flag.String("date", "", "target draw date (YYYY-MM-DD), default today")
	flag.Parse()

	a, ok, err := app.Bootstrap()
	if err != nil {
		log.Fatalf("[panamahunt] bootstrap: %v", err)
	}
	if !ok {
		log.Println("[panamahunt] another run holds the lock, exiting")
		return
	}
	defer a.Close()

	cfg := a.Cfg
	if !cfg.Sources.Panama.Enabled {
		log.Println("[panamahunt] panama source disabled, nothing to do")
		return
	}

	target, err := a.TargetDate(*dateFlag)
	if err != nil {
		log.Fatalf("[panamahunt] %v", err)
	}

	sess, err := browser.Open()
	if err != nil {
		log.Fatalf("[panamahunt] browser: %v", err)
	}
	defer sess.Close()

	h := &hunt.Hunter{
		Store: a.DB,
		Source: &hunt.PanamaSource{
			URL:     cfg.Sources.Panama.URL,
			Browser: sess,
			Settle:  time.Duration(cfg.Hunt.SettleSeconds) * time.Second,
		},
		MaxAttempts: cfg.Sources.Panama.MaxAttempts,
		RetryDelay:  time.Duration(cfg.Hunt.RetryDelaySeconds) * time.Second,
	}

	out, err := h.Run(context.Background(), target)
	if err != nil {
		log.Fatalf("[panamahunt] %v", err)
	}
	if out == hunt.OutcomeSaved {
		log.Printf("[panamahunt] saved draw for %s", target.Format("2006-01-02"))
		return
	}
	log.Printf("[panamahunt] no draw published for %s", target.Format("2006-01-02"))
}
