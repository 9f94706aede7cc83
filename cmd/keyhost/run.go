package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/ferrum-editor/ferrum/internal/config"
	"github.com/ferrum-editor/ferrum/internal/keybinding"
	"github.com/ferrum-editor/ferrum/internal/logging"
	"github.com/ferrum-editor/ferrum/internal/terminal"
)

// loadConfig reads the config files and applies flag overrides.
func (c *CLI) loadConfig() (*config.Config, error) {
	paths := append(config.Paths(), c.Config...)
	cfg, err := config.Load(paths...)
	if err != nil {
		return nil, err
	}

	if c.Platform != "" {
		cfg.Platform = c.Platform
	}
	if c.LogLevel != "" {
		cfg.Log.Level = c.LogLevel
	}
	if c.Debug {
		cfg.Log.Level = "debug"
	}
	if c.LogFile != "" {
		cfg.Log.File = c.LogFile
	}
	return cfg, cfg.Validate()
}

// bootstrap builds the logger, the keybinding service and the workspace
// with its commands installed. The returned cleanup closes all of them.
func (c *CLI) bootstrap(stderr bool) (*config.Config, *workspace, func(), error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}

	logger, closeLog, err := logging.New(logging.Config{
		Level:  cfg.Log.Level,
		File:   cfg.Log.File,
		JSON:   cfg.Log.JSON,
		Stderr: stderr,
	})
	if err != nil {
		return nil, nil, nil, err
	}

	svc := keybinding.New(cfg.ServiceConfig(), logger)
	ws := newWorkspace(svc, logger)
	if err := ws.install(cfg.Keybindings); err != nil {
		_ = svc.Close()
		closeLog()
		return nil, nil, nil, err
	}

	cleanup := func() {
		if err := svc.Close(); err != nil {
			logger.Warn("async command failed before shutdown", zap.Error(err))
		}
		closeLog()
	}
	return cfg, ws, cleanup, nil
}

// RunCmd starts the interactive host.
type RunCmd struct{}

// Run opens the terminal and dispatches keys until app.quit or a signal.
func (r *RunCmd) Run(cli *CLI) error {
	cfg, ws, cleanup, err := cli.bootstrap(false)
	if err != nil {
		return err
	}
	defer cleanup()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ws.logger.Info("keyhost started",
		zap.Stringer("platform", cfg.KeyPlatform()),
		zap.Int("commands", ws.cmds.Len()),
		zap.Int("keybindings", ws.svc.Keymap().Len()),
	)
	return run(ctx, cancel, screen, ws)
}

// run wires the workspace to screen and polls until ctx is cancelled.
func run(ctx context.Context, cancel context.CancelFunc, screen tcell.Screen, ws *workspace) error {
	src := terminal.NewSource(screen, ws.logger)
	src.SetFocus(ws.Focus)
	src.SetFallback(ws.typeKey)

	redraw := func() {
		draw(screen, ws.snapshot(), ws.cmds.ByCategory(), ws.cmds.ShortcutDisplay)
	}
	src.SetEventHandler(func(ev tcell.Event) {
		if _, ok := ev.(*tcell.EventResize); ok {
			screen.Sync()
		}
		redraw()
	})
	ws.changed = func() { _ = screen.PostEvent(tcell.NewEventInterrupt(nil)) }
	ws.quit = cancel

	dispose := ws.svc.Setup(src)
	defer dispose()

	redraw()
	if err := src.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// KeysCmd prints every command with its shortcut.
type KeysCmd struct{}

// Run prints the command table for the configured platform.
func (k *KeysCmd) Run(cli *CLI) error {
	cfg, ws, cleanup, err := cli.bootstrap(true)
	if err != nil {
		return err
	}
	defer cleanup()

	fmt.Print(listing(ws.cmds.ByCategory(), ws.cmds.ShortcutDisplay, cfg.KeyPlatform()))
	return nil
}
