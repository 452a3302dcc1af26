package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"DragonLens/internal/config"
	"DragonLens/internal/report"
	"DragonLens/internal/schema"
	"DragonLens/internal/selector"
	"DragonLens/internal/store"
	"DragonLens/internal/timeutil"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] DragonLens starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	command := "all"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	// Init store
	reg := schema.DefaultRegistry()
	st, err := store.NewSQLiteStore(cfg.Database.SQLitePath, reg.Schemas())
	if err != nil {
		log.Fatalf("[FATAL] open store: %v", err)
	}

	sel := selector.New(st, reg, cfg.CapTiers())

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = run(ctx, command, cfg, sel)
	cancel()
	st.Close()
	if err != nil {
		log.Fatalf("[FATAL] %s: %v", command, err)
	}
	log.Println("[INFO] DragonLens finished")
}

func run(ctx context.Context, command string, cfg *config.Config, sel *selector.Selector) error {
	start, _ := timeutil.ToDate(cfg.Report.Start)
	var end time.Time
	if cfg.Report.End != "" {
		end, _ = timeutil.ToDate(cfg.Report.End)
	}

	switch command {
	case "players":
		return printPlayers(ctx, sel, cfg, start, end)
	case "success":
		return printSuccess(ctx, sel, cfg, start, end)
	case "cap":
		return printCap(ctx, sel, cfg)
	case "all":
		if err := printPlayers(ctx, sel, cfg, start, end); err != nil {
			return err
		}
		if err := printSuccess(ctx, sel, cfg, start, end); err != nil {
			return err
		}
		return printCap(ctx, sel, cfg)
	default:
		return fmt.Errorf("unknown command %q (players | success | cap | all)", command)
	}
}

func printPlayers(ctx context.Context, sel *selector.Selector, cfg *config.Config, start, end time.Time) error {
	rankings, err := sel.RankPlayers(ctx, start, end, selector.DirectionIn)
	if err != nil {
		return err
	}
	for i, r := range rankings {
		fmt.Println(report.FormatRanking(fmt.Sprintf("榜%d", i+1), r, cfg.Report.TopCount))
	}

	desks, err := sel.TopPlayers(ctx, start, end, cfg.Report.TopCount)
	if err != nil {
		return err
	}
	fmt.Println(report.FormatTopPlayers(start, end, desks))
	return nil
}

func printSuccess(ctx context.Context, sel *selector.Selector, cfg *config.Config, start, end time.Time) error {
	rates, err := sel.PlayerSuccessRate(ctx, start, end, cfg.Report.Horizons, cfg.Report.Players, cfg.Provider)
	if err != nil {
		return err
	}
	fmt.Println(report.FormatSuccessRates(rates))
	return nil
}

func printCap(ctx context.Context, sel *selector.Selector, cfg *config.Config) error {
	var day time.Time
	if cfg.Report.CapDate != "" {
		day, _ = timeutil.ToDate(cfg.Report.CapDate)
	} else {
		latest, err := sel.LatestTradingDay(ctx, selector.DefaultEntityType, "", cfg.Provider)
		if err != nil {
			return err
		}
		if latest.IsZero() {
			log.Printf("[WARN] no %s bars for provider %s, skipping cap buckets", selector.DefaultEntityType, cfg.Provider)
			return nil
		}
		day = latest
	}

	tiers := []struct {
		name string
		fn   func(context.Context, time.Time, string) ([]string, error)
	}{
		{"big", sel.BigCap},
		{"middle", sel.MiddleCap},
		{"small", sel.SmallCap},
		{"mini", sel.MiniCap},
	}
	buckets := make(map[string][]string, len(tiers))
	order := make([]string, 0, len(tiers))
	for _, t := range tiers {
		ids, err := t.fn(ctx, day, cfg.Provider)
		if err != nil {
			return fmt.Errorf("%s cap: %w", t.name, err)
		}
		buckets[t.name] = ids
		order = append(order, t.name)
	}
	fmt.Println(report.FormatCapBuckets(day, sel.Tiers, buckets, order))
	return nil
}
