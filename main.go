package main

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/pkg/errors"
	"golang.org/x/net/proxy"

	"github.com/kova98/hndigest/config"
	"github.com/kova98/hndigest/digest"
	"github.com/kova98/hndigest/models"
	"github.com/kova98/hndigest/notifiers"
	"github.com/kova98/hndigest/sources"
)

// Sender submits one rendered digest email.
type Sender interface {
	Send(mail models.Email) error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	opts := slog.HandlerOptions{Level: cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &opts))
	slog.SetDefault(logger)

	client, err := httpClient(cfg.ProxyURL)
	if err != nil {
		slog.Error("failed to create http client", "error", err)
		os.Exit(1)
	}

	mailer := notifiers.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom, cfg.SMTPPassword)

	if err := run(context.Background(), cfg, logger, client, mailer); err != nil {
		slog.Error("digest run failed", "error", err)
		os.Exit(1)
	}
}

// run executes one digest: fetch ranked stories, truncate, render, send.
// Any stage failure aborts the run before mail is handed to the transport.
func run(ctx context.Context, cfg config.Config, logger *slog.Logger, client *http.Client, sender Sender) error {
	start := time.Now()

	hn := sources.NewHackerNewsClient(logger, client, cfg.HNBaseURL)
	stories, err := hn.TopStories(ctx, cfg.StoryCount)
	if err != nil {
		return errors.Wrap(err, "fetch stories")
	}

	selected := digest.Select(stories, cfg.StoryCount)
	if len(selected) == 0 {
		return errors.New("no stories available for digest")
	}

	mail, err := notifiers.DigestEmail(cfg.RecipientEmail, selected, time.Now())
	if err != nil {
		return errors.Wrap(err, "render digest")
	}

	if err := sender.Send(mail); err != nil {
		return errors.Wrap(err, "send digest")
	}

	logger.Info("digest sent",
		"stories", len(selected),
		"recipient", cfg.RecipientEmail,
		"duration_ms", time.Since(start).Milliseconds())

	return nil
}

func httpClient(proxyURL string) (*http.Client, error) {
	client := &http.Client{Timeout: 10 * time.Second}

	if proxyURL == "" {
		return client, nil
	}

	parsedURL, err := url.Parse(proxyURL)
	if err != nil {
		return nil, err
	}
	if parsedURL.Scheme != "socks5" {
		return client, nil
	}

	// SOCKS5 proxy with authentication
	var auth *proxy.Auth
	if parsedURL.User != nil {
		password, _ := parsedURL.User.Password()
		auth = &proxy.Auth{
			User:     parsedURL.User.Username(),
			Password: password,
		}
	}

	dialer, err := proxy.SOCKS5("tcp", parsedURL.Host, auth, proxy.Direct)
	if err != nil {
		return nil, err
	}

	client.Transport = &http.Transport{
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			return dialer.Dial(network, addr)
		},
	}
	slog.Info("using SOCKS5 proxy", "proxy", parsedURL.Host)

	return client, nil
}
