package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/skycast/widget/internal/config"
	"github.com/skycast/widget/internal/domain"
	"github.com/skycast/widget/internal/service"
	"github.com/skycast/widget/internal/widget"
)

func main() {
	cfg := config.Load()

	mode := flag.String("mode", cfg.Fetch.Mode, "Data source: local or direct")
	unitFlag := flag.String("unit", "c", "Temperature unit: c or f")
	city := flag.String("city", "", "Look up one city and exit")
	verbose := flag.Bool("v", false, "Verbose logging")
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	unit, err := domain.ParseUnit(*unitFlag)
	if err != nil {
		log.Fatalf("Invalid -unit: %v", err)
	}

	cfg.Fetch.Mode = *mode
	fetcher, err := service.NewFetcher(cfg.Fetch)
	if err != nil {
		log.Fatalf("Failed to configure data source: %v", err)
	}
	if lb, ok := fetcher.(*service.LocalBackend); ok {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := lb.Health(ctx); err != nil {
			logger.Warn("local backend unreachable", "url", cfg.Fetch.LocalBackendURL, "error", err)
		}
		cancel()
	}

	ctrl := widget.NewController(fetcher, unit, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *city != "" {
		_, err := ctrl.Search(ctx, *city)
		printView(os.Stdout, ctrl.View())
		if err != nil {
			stop()
			os.Exit(1)
		}
		return
	}

	run(ctx, ctrl, os.Stdin, os.Stdout)
}

// run reads commands line by line: a city name searches, ":u" toggles the unit,
// ":r" refreshes and ":q" quits
func run(ctx context.Context, ctrl *widget.Controller, in io.Reader, out io.Writer) {
	fmt.Fprintln(out, "Type a city name (:u unit, :r refresh, :q quit)")
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case ":q":
			return
		case ":u":
			ctrl.ToggleUnit()
		case ":r":
			if _, err := ctrl.Refresh(ctx); errors.Is(err, widget.ErrEmptyQuery) {
				fmt.Fprintln(out, "Nothing to refresh yet")
				continue
			}
		default:
			if _, err := ctrl.Search(ctx, line); errors.Is(err, widget.ErrEmptyQuery) {
				continue
			}
		}
		printView(out, ctrl.View())
	}
}

func printView(out io.Writer, v widget.View) {
	if v.Status != "success" {
		fmt.Fprintln(out, v.Message)
		return
	}
	fmt.Fprintf(out, "%s\n  %s", v.City, v.Temperature)
	if v.Condition != "" {
		fmt.Fprintf(out, ", %s", v.Condition)
	}
	fmt.Fprintf(out, "\n  Humidity %s  Wind %s\n", v.Humidity, v.Wind)
	if v.IconURL != "" {
		fmt.Fprintf(out, "  %s\n", v.IconURL)
	}
}
