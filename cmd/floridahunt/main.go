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

// Hunts the Conectate board for the Florida Noche draw of the target date.
// Publication drifts, so the hunt polls with the full retry budget; both a
// save and an exhausted budget are normal exits, the next cron run picks
// the draw up later.
func main() {
	dateFlag := flag.String("date", "", "target draw date (YYYY-MM-DD), default today")
	flag.Parse()

	a, ok, err := app.Bootstrap()
	if err != nil {
		log.Fatalf("[floridahunt] bootstrap: %v", err)
	}
	if !ok {
		log.Println("[floridahunt] another run holds the lock, exiting")
		return
	}
	defer a.Close()

	cfg := a.Cfg
	if !cfg.Sources.Florida.Enabled {
		log.Println("[floridahunt] florida source disabled, nothing to do")
		return
	}

	target, err := a.TargetDate(*dateFlag)
	if err != nil {
		log.Fatalf("[floridahunt] %v", err)
	}

	sess, err := browser.Open()
	if err != nil {
		log.Fatalf("[floridahunt] browser: %v", err)
	}
	defer sess.Close()

	h := &hunt.Hunter{
		Store: a.DB,
		Source: &hunt.FloridaSource{
			URL:     cfg.Sources.Florida.URL,
			Browser: sess,
			Settle:  time.Duration(cfg.Hunt.SettleSeconds) * time.Second,
		},
		MaxAttempts: cfg.Sources.Florida.MaxAttempts,
		RetryDelay:  time.Duration(cfg.Hunt.RetryDelaySeconds) * time.Second,
	}

	out, err := h.Run(context.Background(), target)
	if err != nil {
		log.Fatalf("[floridahunt] %v", err)
	}
	log.Printf("[floridahunt] done: %s for %s", outcomeLabel(out), target.Format("2006-01-02"))
}

func outcomeLabel(out hunt.Outcome) string {
	if out == hunt.OutcomeSaved {
		return "saved"
	}
	return "exhausted"
}
