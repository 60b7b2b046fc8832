package main

import (
	"context"
	"flag"
	"log"
	"time"

	"loteria-engine/internal/app"
	"loteria-engine/internal/browser"
	"loteria-engine/internal/ocr"
	"loteria-engine/internal/scrape"
	"loteria-engine/internal/scrape/util"
	"loteria-engine/internal/secrets"

	_ "modernc.org/sqlite"
)

// One ingestion pass over the social feed: discover the newest posts,
// OCR them, extract draw records, store, exit. An external scheduler
// (cron, launchd) re-invokes this binary on its own cadence.
func main() {
	dateFlag := flag.String("date", "", "target draw date (YYYY-MM-DD), default today")
	flag.Parse()

	a, ok, err := app.Bootstrap()
	if err != nil {
		log.Fatalf("[engine] bootstrap: %v", err)
	}
	if !ok {
		log.Println("[engine] another run holds the lock, exiting")
		return
	}
	defer a.Close()

	cfg := a.Cfg
	if !cfg.Sources.Instagram.Enabled {
		log.Println("[engine] instagram source disabled, nothing to do")
		return
	}

	target, err := a.TargetDate(*dateFlag)
	if err != nil {
		log.Fatalf("[engine] %v", err)
	}

	key, err := secrets.GetOCRKey(cfg.OCR.KeyringAccount)
	if err != nil {
		log.Fatalf("[engine] ocr key: %v", err)
	}

	sess, err := browser.Open()
	if err != nil {
		log.Fatalf("[engine] browser: %v", err)
	}
	defer sess.Close()

	src := &scrape.InstagramSource{
		ProfileURL: cfg.Sources.Instagram.ProfileURL,
		Browser:    sess,
		MaxPosts:   cfg.Sources.Instagram.MaxPosts,
		Settle:     time.Duration(cfg.Hunt.SettleSeconds) * time.Second,
	}

	proc := &scrape.Processor{
		OCR:     ocr.New(cfg.OCR.Endpoint, key, util.NewHostLimiter(1, 1)),
		Store:   a.DB,
		Options: optionsFrom(cfg),
		Now:     referenceClock(*dateFlag, target, a.Loc),
	}

	ctx := context.Background()
	items, err := src.Discover(ctx)
	if err != nil {
		log.Fatalf("[engine] discover: %v", err)
	}

	failed := 0
	for _, item := range items {
		if err := proc.ProcessCapture(ctx, item); err != nil {
			log.Printf("[engine] %s: %v", item.ExternalID, err)
			failed++
		}
	}
	if failed > 0 {
		log.Fatalf("[engine] pass finished with %d/%d item(s) failed", failed, len(items))
	}
	log.Printf("[engine] pass complete: %d item(s)", len(items))
}
