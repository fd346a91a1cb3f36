// Package config loads the server's configuration record: grid size, RFB
// and websockify bind parameters, PTY program, auth password, logging.
// Values come from an optional YAML file overridden by CLI flags.
package config

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Config is the operator-facing configuration record.
type Config struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	RFBBindAddr string `yaml:"rfb_bind_addr"`
	PollTimeout string `yaml:"poll_timeout"`

	PTYPath string   `yaml:"pty_path"`
	PTYArgv []string `yaml:"pty_argv"`
	PTYFd   int      `yaml:"pty_fd"`

	Title string `yaml:"title"`

	// PasswordFile, when set, is read verbatim (trailing newline trimmed)
	// as the VNC auth password. Password is the effective value after
	// LoadPassword resolves file/prompt/unset.
	PasswordFile string `yaml:"password_file"`
	Password     string `yaml:"-"`

	Banner string `yaml:"banner"`

	WrapBottomToTop bool `yaml:"wrap_bottom_to_top"`

	TLSEnabled bool   `yaml:"tls_enabled"`
	TLSDomain  string `yaml:"tls_domain"`

	NgrokEnabled    bool   `yaml:"ngrok_enabled"`
	NgrokAuthToken  string `yaml:"ngrok_auth_token"`

	WebsockifyEnabled bool   `yaml:"websockify_enabled"`
	WebsockifyAddr    string `yaml:"websockify_addr"`

	LogLevel string `yaml:"log_level"`
}

// Default returns the standard configuration: an 80x24 grid, RFB on
// :5900, no TLS/tunnel/websockify.
func Default() Config {
	return Config{
		Width:           80,
		Height:          24,
		RFBBindAddr:     ":5900",
		PollTimeout:     "100ms",
		PTYPath:         "/bin/login",
		PTYFd:           -1,
		Title:           "vzvncserver",
		WrapBottomToTop: false,
		LogLevel:        "info",
	}
}

// LoadFile reads and merges a YAML config file on top of Default(). A
// missing file is not an error; callers typically pass an optional
// --config flag.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// LoadPassword resolves the VNC auth password: PasswordFile if set,
// otherwise an interactive term.ReadPassword prompt when stdin is a TTY,
// otherwise no password (auth disabled).
func (c *Config) LoadPassword(stdinFd int) error {
	if c.PasswordFile != "" {
		data, err := os.ReadFile(c.PasswordFile)
		if err != nil {
			return fmt.Errorf("config: read password file %s: %w", c.PasswordFile, err)
		}
		c.Password = strings.TrimRight(string(data), "\r\n")
		return nil
	}
	if !term.IsTerminal(stdinFd) {
		return nil
	}
	fmt.Fprint(os.Stderr, "VNC password (leave blank to disable auth): ")
	pw, err := term.ReadPassword(stdinFd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return fmt.Errorf("config: read password: %w", err)
	}
	c.Password = string(pw)
	return nil
}

// Validate checks the invariants the console engine assumes at
// construction time.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("config: invalid grid size %dx%d", c.Width, c.Height)
	}
	if c.RFBBindAddr == "" {
		return fmt.Errorf("config: rfb_bind_addr is required")
	}
	if c.PTYPath == "" {
		return fmt.Errorf("config: pty_path is required")
	}
	return nil
}
