package config

import (
	"github.com/spf13/pflag"
)

// BindFlags registers the CLI flag set that overrides a loaded Config.
func BindFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.IntVar(&cfg.Width, "width", cfg.Width, "console width in columns")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "console height in rows")
	fs.StringVar(&cfg.RFBBindAddr, "rfb-bind", cfg.RFBBindAddr, "RFB listen address")
	fs.StringVar(&cfg.PollTimeout, "poll-timeout", cfg.PollTimeout, "RFB event pump poll timeout")
	fs.StringVar(&cfg.PTYPath, "pty-path", cfg.PTYPath, "program to run on the PTY")
	fs.IntVar(&cfg.PTYFd, "pty-fd", cfg.PTYFd, "attach to an inherited PTY master fd instead of spawning pty-path (-1 disables)")
	fs.StringVar(&cfg.Title, "title", cfg.Title, "RFB desktop title")
	fs.StringVar(&cfg.PasswordFile, "password-file", cfg.PasswordFile, "file containing the VNC auth password; prompted interactively if unset and stdin is a TTY")
	fs.StringVar(&cfg.Banner, "banner", cfg.Banner, "line of text painted into the grid before the PTY program's own output")
	fs.BoolVar(&cfg.WrapBottomToTop, "wrap-bottom-to-top", cfg.WrapBottomToTop, "wrap instead of scroll at the bottom of the screen")
	fs.BoolVar(&cfg.TLSEnabled, "tls", cfg.TLSEnabled, "enable automatic TLS via certmagic")
	fs.StringVar(&cfg.TLSDomain, "tls-domain", cfg.TLSDomain, "domain name for certmagic TLS")
	fs.BoolVar(&cfg.NgrokEnabled, "ngrok", cfg.NgrokEnabled, "tunnel the websockify endpoint through ngrok")
	fs.StringVar(&cfg.NgrokAuthToken, "ngrok-auth-token", cfg.NgrokAuthToken, "ngrok auth token")
	fs.BoolVar(&cfg.WebsockifyEnabled, "websockify", cfg.WebsockifyEnabled, "serve a websockify bridge alongside the raw RFB listener")
	fs.StringVar(&cfg.WebsockifyAddr, "websockify-bind", cfg.WebsockifyAddr, "websockify HTTP listen address")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "zap log level: debug, info, warn, error")
}
