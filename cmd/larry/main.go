package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ieee-ucf/larry/internal/calendar"
	"github.com/ieee-ucf/larry/internal/commands/admin"
	"github.com/ieee-ucf/larry/internal/commands/club"
	"github.com/ieee-ucf/larry/internal/commands/general"
	"github.com/ieee-ucf/larry/internal/config"
	"github.com/ieee-ucf/larry/internal/core"
	"github.com/ieee-ucf/larry/internal/discord"
	"github.com/ieee-ucf/larry/internal/permission"
	"github.com/ieee-ucf/larry/internal/storage"
	v "github.com/ieee-ucf/larry/internal/version"
)

const (
	permSweepInterval     = 5 * time.Minute
	cooldownSweepInterval = time.Minute
)

func main() {
	log.Printf("[INFO] Starting %s %s (built %s)...", v.AppName, v.Version, v.BuildDate)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("[ERR] ", err)
	}

	store, err := storage.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatal("[ERR] ", err)
	}
	defer store.Close()

	perms := permission.NewResolver(store, cfg.OwnerIDs, cfg.PermissionCacheTTL)
	go permission.RunCacheSweeper(ctx, perms, permSweepInterval)

	embeds := core.Embeds{Color: cfg.Color(), Footer: cfg.EmbedFooter}
	feed := calendar.NewClient(cfg.CalendarURLs)

	registry := core.NewRegistry(func() []core.Command {
		return []core.Command{
			general.NewPing(embeds),
			general.NewUpcoming(embeds, feed),
			club.NewWhois(embeds, store, perms),
			club.NewSponsors(embeds, store),
			admin.NewShutdown(embeds, cancel),
		}
	})
	registry.Load()
	go core.RunCooldownSweeper(ctx, registry, cooldownSweepInterval)

	dispatcher := &core.Dispatcher{
		Registry: registry,
		Perms:    perms,
		Embeds:   embeds,
		History:  store,
	}

	bot := discord.NewBot(cfg, store, registry, dispatcher)

	errCh := make(chan error, 1)
	go func() {
		errCh <- bot.Run(ctx)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.Printf("[INFO] Received signal %s, shutting down...", s)
		cancel()
		<-errCh
	case err := <-errCh:
		if err != nil {
			store.Close()
			log.Fatalf("[ERR] Discord bot error: %v", err)
		}
	}
	log.Println("[DONE] Bye.")
}
