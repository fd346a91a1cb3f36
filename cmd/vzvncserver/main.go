// Command vzvncserver exposes a container's text console over RFB (VNC):
// parse flags, build the grid, spawn the PTY program, and run the event
// loop until a shutdown signal arrives.
package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/caddyserver/certmagic"
	"github.com/creack/pty"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
	"golang.ngrok.com/ngrok"
	ngrokconfig "golang.ngrok.com/ngrok/config"

	"github.com/OpenVZ/prl-vzvncserver/pkg/bridge"
	"github.com/OpenVZ/prl-vzvncserver/pkg/config"
	"github.com/OpenVZ/prl-vzvncserver/pkg/console"
	"github.com/OpenVZ/prl-vzvncserver/pkg/inputbridge"
	"github.com/OpenVZ/prl-vzvncserver/pkg/palette"
	"github.com/OpenVZ/prl-vzvncserver/pkg/rfbsurface"
	"github.com/OpenVZ/prl-vzvncserver/pkg/wsbridge"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "vzvncserver",
		Short: "Expose a container's text console over RFB",
	}
	root.AddCommand(newServeCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), version)
			return nil
		},
	}
}

func newServeCmd() *cobra.Command {
	var configPath string
	// The config file path must be known before flags are bound, since it
	// supplies the defaults flag parsing overrides; scan for it ahead of
	// cobra's own flag parse rather than registering --config twice.
	configPath = scanConfigPath(os.Args[1:])
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		cfg = config.Default()
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the console server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), cfg, configPath)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", configPath, "path to a YAML config file")
	config.BindFlags(cmd.Flags(), &cfg)
	return cmd
}

// scanConfigPath looks for "--config VALUE" or "--config=VALUE" in argv
// without disturbing cobra's own flag parsing pass.
func scanConfigPath(argv []string) string {
	for i, a := range argv {
		if a == "--config" && i+1 < len(argv) {
			return argv[i+1]
		}
		if strings.HasPrefix(a, "--config=") {
			return strings.TrimPrefix(a, "--config=")
		}
	}
	return ""
}

func runServe(ctx context.Context, cfg config.Config, configPath string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, level, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	sessionID := uuid.NewString()
	sugar.Infow("starting console session", "session_id", sessionID, "width", cfg.Width, "height", cfg.Height)

	if err := cfg.LoadPassword(int(os.Stdin.Fd())); err != nil {
		return fmt.Errorf("vzvncserver: %w", err)
	}

	grid, err := console.New(cfg.Width, cfg.Height, palette.DefaultFont)
	if err != nil {
		return fmt.Errorf("vzvncserver: %w", err)
	}
	grid.WrapBottomToTop = cfg.WrapBottomToTop
	if cfg.Banner != "" {
		grid.WriteBanner(cfg.Banner)
	}

	ptmx, err := startPTY(cfg)
	if err != nil {
		return fmt.Errorf("vzvncserver: start pty: %w", err)
	}
	defer ptmx.Close()

	input := inputbridge.New(ptmx, grid)
	input.Logf = sugar.Debugf

	pollTimeout, err := time.ParseDuration(cfg.PollTimeout)
	if err != nil {
		pollTimeout = 100 * time.Millisecond
	}

	surface, err := rfbsurface.New(rfbsurface.Config{
		BindAddr:    cfg.RFBBindAddr,
		Title:       cfg.Title,
		PollTimeout: pollTimeout,
		Password:    cfg.Password,
	}, grid, input, sugar.Debugf)
	if err != nil {
		return fmt.Errorf("vzvncserver: %w", err)
	}

	sess := bridge.New(grid, ptmx, surface, sugar)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var stopExtra []func()
	if configPath != "" {
		lastBanner := cfg.Banner
		watcher, err := config.Watch(configPath, func(reloaded config.Config, err error) {
			if err != nil {
				sugar.Warnw("config reload failed, keeping previous values", "error", err)
				return
			}
			if newLevel, lerr := zapLevel(reloaded.LogLevel); lerr == nil {
				level.SetLevel(newLevel)
			}
			if reloaded.Banner != "" && reloaded.Banner != lastBanner {
				sess.WithLock(func() { grid.WriteBanner(reloaded.Banner) })
				lastBanner = reloaded.Banner
			}
			sugar.Infow("config file reloaded", "log_level", reloaded.LogLevel)
		})
		if err != nil {
			sugar.Warnw("config watch failed, continuing without hot reload", "error", err)
		} else {
			stopExtra = append(stopExtra, func() { watcher.Close() })
		}
	}
	if cfg.WebsockifyEnabled {
		var tlsConf *tls.Config
		if cfg.TLSEnabled {
			tlsConf, err = certmagic.TLS([]string{cfg.TLSDomain})
			if err != nil {
				sugar.Warnw("certmagic setup failed, serving websockify without TLS", "error", err)
				tlsConf = nil
			}
		}
		stopFn, err := serveWebsockify(cfg, tlsConf, sugar)
		if err != nil {
			return err
		}
		stopExtra = append(stopExtra, stopFn)
	}
	if cfg.NgrokEnabled {
		stopFn, err := serveNgrokTunnel(ctx, cfg, sugar)
		if err != nil {
			sugar.Warnw("ngrok tunnel failed, continuing without it", "error", err)
		} else {
			stopExtra = append(stopExtra, stopFn)
		}
	}
	defer func() {
		for _, fn := range stopExtra {
			fn()
		}
	}()

	err = sess.Run(ctx)
	sugar.Infow("console session ended", "session_id", sessionID, "error", err)
	return err
}

// startPTY spawns cfg.PTYPath under a freshly allocated PTY, unless
// cfg.PTYFd names an fd already inherited from a container runtime that
// allocated the PTY itself, in which case we attach to it directly.
func startPTY(cfg config.Config) (*os.File, error) {
	if cfg.PTYFd >= 0 {
		return os.NewFile(uintptr(cfg.PTYFd), "pty-fd"), nil
	}
	cmd := ptyCommand(cfg)
	size := ttySizeOrFallback(cfg)
	return pty.StartWithSize(cmd, size)
}

func ptyCommand(cfg config.Config) *exec.Cmd {
	cmd := exec.Command(cfg.PTYPath, cfg.PTYArgv...)
	cmd.Env = append(os.Environ(), "TERM=linux")
	return cmd
}

// ttySizeOrFallback reports the controlling terminal's size via
// golang.org/x/term, falling back to the console's own cell dimensions
// when stdout isn't a TTY (the common case: this process is itself
// launched without one, inside a container supervisor).
func ttySizeOrFallback(cfg config.Config) *pty.Winsize {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			return &pty.Winsize{Cols: uint16(w), Rows: uint16(h)}
		}
	}
	return &pty.Winsize{Cols: uint16(cfg.Width), Rows: uint16(cfg.Height)}
}

// newLogger returns a zap.Logger built around an AtomicLevel the caller can
// adjust afterwards (runServe's config.Watch callback dials the level
// up/down on a config file reload without rebuilding the logger).
func newLogger(levelName string) (*zap.Logger, *zap.AtomicLevel, error) {
	atom := zap.NewAtomicLevel()
	if lvl, err := zapLevel(levelName); err == nil {
		atom.SetLevel(lvl)
	} else {
		atom.SetLevel(zap.InfoLevel)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = atom
	logger, err := cfg.Build()
	return logger, &atom, err
}

func zapLevel(name string) (zapcore.Level, error) {
	var lvl zapcore.Level
	err := lvl.UnmarshalText([]byte(name))
	return lvl, err
}

func serveWebsockify(cfg config.Config, tlsConf *tls.Config, sugar *zap.SugaredLogger) (func(), error) {
	router := mux.NewRouter()
	handler := wsbridge.New(cfg.RFBBindAddr, sugar.Debugf)
	handler.Routes(router)

	ln, err := net.Listen("tcp", cfg.WebsockifyAddr)
	if err != nil {
		return nil, fmt.Errorf("vzvncserver: websockify listen: %w", err)
	}
	if tlsConf != nil {
		ln = tls.NewListener(ln, tlsConf)
	}

	srv := &http.Server{Handler: router}
	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			sugar.Errorw("websockify server failed", "error", err)
		}
	}()
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}, nil
}

func serveNgrokTunnel(ctx context.Context, cfg config.Config, sugar *zap.SugaredLogger) (func(), error) {
	listener, err := ngrok.Listen(ctx,
		ngrokconfig.HTTPEndpoint(),
		ngrok.WithAuthtoken(cfg.NgrokAuthToken),
	)
	if err != nil {
		return nil, err
	}
	sugar.Infow("ngrok tunnel established", "url", listener.URL())

	router := mux.NewRouter()
	handler := wsbridge.New(cfg.RFBBindAddr, sugar.Debugf)
	handler.Routes(router)

	go func() {
		if err := http.Serve(listener, router); err != nil {
			sugar.Debugw("ngrok listener closed", "error", err)
		}
	}()
	return func() { _ = listener.Close() }, nil
}
