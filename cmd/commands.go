package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	"gopkg.in/telebot.v3"

	"employee-app/internal/delivery/menu"
	"employee-app/internal/delivery/telegram"
	"employee-app/internal/export"
	"employee-app/internal/logger"
	"employee-app/pkg/workerpool"
)

type MenuCmd struct{}

func (m *MenuCmd) Run(ctx context.Context, g *Globals) error {
	a, err := startup(ctx, g)
	if err != nil {
		return err
	}
	defer a.Close()
	return runMenu(ctx, a, os.Stdin, os.Stdout)
}

type InitCmd struct{}

func (i *InitCmd) Run(ctx context.Context, g *Globals) error {
	a, err := startup(ctx, g)
	if err != nil {
		return err
	}
	defer a.Close()
	fmt.Println("Schema ready.")
	return nil
}

type ExportCmd struct {
	Out string `short:"o" help:"Path of the workbook to write." default:"employees.xlsx" type:"path"`
}

func (e *ExportCmd) Run(ctx context.Context, g *Globals) error {
	a, err := startup(ctx, g)
	if err != nil {
		return err
	}
	defer a.Close()

	n, err := export.WriteWorkbook(ctx, a.svc, e.Out)
	if err != nil {
		return err
	}
	fmt.Printf("Exported %d employees to %s\n", n, e.Out)
	return nil
}

type TelegramCmd struct {
	Queue int `help:"Outgoing message queue size." default:"64"`
}

func (tc *TelegramCmd) Run(ctx context.Context, g *Globals) error {
	cfg, err := loadConfig(g)
	if err != nil {
		return err
	}
	if err := cfg.Telegram.RequireToken(); err != nil {
		return err
	}

	a, err := openApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	bot, err := telebot.NewBot(telebot.Settings{
		Token:  cfg.Telegram.Token,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		return fmt.Errorf("start bot: %w", err)
	}

	// one worker keeps replies in order
	pool := workerpool.NewWorkerPool(1, tc.Queue)
	transport := telegram.NewTransport(bot, cfg.Telegram, pool)
	transport.Register(bot)

	logger.InfoLog(ctx, "telegram menu started")
	eg, egctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		bot.Start()
		return nil
	})
	eg.Go(func() error {
		defer func() {
			transport.Close()
			pool.Close()
			bot.Stop()
		}()
		return menu.NewController(a.svc, transport).Run(egctx)
	})

	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.InfoLog(context.Background(), "telegram menu stopped")
	return nil
}
