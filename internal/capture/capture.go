// Copyright 2025 Agentic World, LLC (Sherin Thomas)
//
// This file includes modifications to code originally developed by Adam Tauber,
// licensed under the Apache License, Version 2.0.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package capture drives one headless-browser tab through navigate,
// settle, reveal, and scroll, then reads back the rendered document,
// every network response it issued, and the links it contains.
package capture

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// Config is the browser-rendering configuration for one capture. Every
// option is a named field, mirroring how the teacher's RenderingConfig
// is laid out rather than a generic option map.
type Config struct {
	Timeout           time.Duration
	Wait              string // "networkidle" (default), "load", or "domcontentloaded"
	WaitReady         string // CSS selector chromedp waits for, default "body"
	InitialWait       time.Duration
	ScrollStep        int
	ScrollWait        time.Duration
	FinalWait         time.Duration
	NetworkIdleWait   time.Duration
	ReducedMotion     bool
	Screenshot        bool
	PDF               bool
	UserAgent         string
	Device            string // a deviceProfiles key, e.g. "iphone-x"; empty means no emulation
	ExtraHeaders      map[string]string
	Cookies           []*network.CookieParam
}

// DefaultConfig returns the capture defaults used when a JobConfig
// leaves rendering options unset.
func DefaultConfig() Config {
	return Config{
		Timeout:         30 * time.Second,
		Wait:            "networkidle",
		WaitReady:       "body",
		InitialWait:     500 * time.Millisecond,
		ScrollStep:      300,
		ScrollWait:      120 * time.Millisecond,
		FinalWait:       300 * time.Millisecond,
		NetworkIdleWait: 5 * time.Second,
		ReducedMotion:   true,
	}
}

// Result is everything a capture produced for one URL.
type Result struct {
	FinalURL   string
	Title      string
	HTML       string
	Resources  []Resource
	Links      Links
	Screenshot []byte
	PDF        []byte
}

// Page captures targetURL in a fresh tab derived from browserCtx.
func Page(browserCtx context.Context, targetURL string, cfg Config) (*Result, error) {
	ctx, cancel := chromedp.NewContext(browserCtx)
	defer cancel()
	ctx, cancelTimeout := context.WithTimeout(ctx, cfg.Timeout)
	defer cancelTimeout()

	snif := newSniffer()
	snif.listen(ctx)

	actions := []chromedp.Action{network.Enable()}
	if cfg.Device != "" {
		if d, ok := deviceByName(cfg.Device); ok {
			actions = append(actions, chromedp.Emulate(d))
		}
	}
	if cfg.ReducedMotion {
		actions = append(actions, emulation.SetEmulatedMedia().WithFeatures([]*emulation.MediaFeature{
			{Name: "prefers-reduced-motion", Value: "reduce"},
		}))
	}
	if len(cfg.ExtraHeaders) > 0 {
		headers := make(network.Headers, len(cfg.ExtraHeaders))
		for k, v := range cfg.ExtraHeaders {
			headers[k] = v
		}
		actions = append(actions, network.SetExtraHTTPHeaders(headers))
	}
	if cfg.UserAgent != "" {
		actions = append(actions, emulation.SetUserAgentOverride(cfg.UserAgent))
	}
	if len(cfg.Cookies) > 0 {
		actions = append(actions, network.SetCookies(cfg.Cookies))
	}
	actions = append(actions,
		chromedp.Navigate(targetURL),
		chromedp.WaitReady(waitSelector(cfg), chromedp.ByQuery),
		settleAction(cfg, snif),
		chromedp.Sleep(cfg.InitialWait),
	)

	var htmlContent, title, finalURL string

	for _, script := range revealScripts {
		actions = append(actions, chromedp.Evaluate(script, nil))
	}
	actions = append(actions,
		chromedp.Evaluate(fmt.Sprintf(scrollScript, cfg.ScrollStep, cfg.ScrollWait.Milliseconds()), nil),
		chromedp.Sleep(cfg.ScrollWait),
	)
	for _, script := range revealScripts {
		actions = append(actions, chromedp.Evaluate(script, nil))
	}
	actions = append(actions,
		chromedp.Sleep(minDuration(cfg.NetworkIdleWait, 5*time.Second)),
		chromedp.Evaluate(revealForceVisible, nil),
		chromedp.Sleep(cfg.FinalWait),
		chromedp.OuterHTML("html", &htmlContent),
		chromedp.Title(&title),
		chromedp.Location(&finalURL),
	)

	var screenshot, pdfBytes []byte
	if cfg.Screenshot {
		actions = append(actions, chromedp.FullScreenshot(&screenshot, 90))
	}
	if cfg.PDF {
		actions = append(actions, printToPDF(&pdfBytes))
	}

	if err := chromedp.Run(ctx, actions...); err != nil {
		return nil, fmt.Errorf("capture %s: %w", targetURL, err)
	}

	links := ExtractLinks(htmlContent, finalURL)

	return &Result{
		FinalURL:   finalURL,
		Title:      title,
		HTML:       htmlContent,
		Resources:  snif.Snapshot(),
		Links:      links,
		Screenshot: screenshot,
		PDF:        pdfBytes,
	}, nil
}

func printToPDF(buf *[]byte) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		data, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
		if err != nil {
			return err
		}
		*buf = data
		return nil
	})
}

// settleAction returns the action that decides when navigation has
// "settled," per cfg.Wait: document.readyState for "load" and
// "domcontentloaded", or the sniffer's network-quiescence poll for the
// default "networkidle" strategy.
func settleAction(cfg Config, snif *sniffer) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		switch cfg.Wait {
		case "load":
			return pollReadyState(ctx, "complete")
		case "domcontentloaded":
			return pollReadyState(ctx, "interactive", "complete")
		default: // networkidle
			return snif.waitIdle(ctx, 500*time.Millisecond, minDuration(cfg.NetworkIdleWait, 5*time.Second))
		}
	})
}

// pollReadyState blocks until document.readyState matches one of want, or
// ctx is done.
func pollReadyState(ctx context.Context, want ...string) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		var state string
		if err := chromedp.Evaluate(`document.readyState`, &state).Do(ctx); err == nil {
			for _, w := range want {
				if state == w {
					return nil
				}
			}
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func waitSelector(cfg Config) string {
	if cfg.WaitReady != "" {
		return cfg.WaitReady
	}
	return "body"
}

func minDuration(d, max time.Duration) time.Duration {
	if d <= 0 {
		return max
	}
	if d > max {
		return max
	}
	return d
}
