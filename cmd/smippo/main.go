// Copyright 2025 Agentic World, LLC (Sherin Thomas)
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

// Command smippo drives one mirror run from the command line. The
// interactive wizard and progress renderer are a separate, out-of-repo
// concern; this entrypoint is deliberately thin.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/agentberlin/smippo"
	"github.com/agentberlin/smippo/internal/urlcanon"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "mirror":
		if err := runMirror(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "smippo: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Println("smippo 0.1.0")
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "smippo: unknown command %q\n", os.Args[1])
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("usage: smippo <command> [arguments]")
	fmt.Println()
	fmt.Println("commands:")
	fmt.Println("  mirror   mirror a site to disk")
	fmt.Println("  version  print the version")
	fmt.Println("  help     show this help")
}

func runMirror(args []string) error {
	fs := flag.NewFlagSet("mirror", flag.ExitOnError)
	output := fs.String("output", "./mirror", "output directory")
	depth := fs.Int("depth", 2, "max link-following depth")
	scope := fs.String("scope", "subdomain", "scope: subdomain|domain|tld|all")
	concurrency := fs.Int("concurrency", 8, "worker concurrency")
	maxPages := fs.Int("max-pages", 0, "stop after this many pages (0 = unbounded)")
	maxTime := fs.Duration("max-time", 0, "stop after this long (0 = unbounded)")
	rateLimit := fs.Duration("rate-limit", 0, "delay before each page capture, added to any robots.txt crawl delay")
	ignoreRobots := fs.Bool("ignore-robots", false, "ignore robots.txt")
	update := fs.Bool("update", false, "re-mirror, skipping pages the origin reports unchanged")
	appEngine := fs.Bool("app-engine", false, "route non-browser requests through App Engine's urlfetch service")
	stripScripts := fs.Bool("strip-scripts", false, "remove <script> tags from saved pages")
	userAgent := fs.String("user-agent", "", "override the browser's user agent")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("mirror requires a URL argument")
	}

	job := smippo.NewDefaultJobConfig(fs.Arg(0), *output)
	job.Depth = *depth
	job.Scope = urlcanon.Scope(*scope)
	job.Concurrency = *concurrency
	job.MaxPages = *maxPages
	job.MaxTime = *maxTime
	job.RateLimit = *rateLimit
	job.IgnoreRobots = *ignoreRobots
	job.Update = *update
	job.AppEngine = *appEngine

	browser := smippo.NewDefaultBrowserConfig()
	browser.StripScripts = *stripScripts
	browser.UserAgent = *userAgent

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	crawler, err := smippo.New(smippo.CaptureJob{Job: job, Browser: browser}, nil, nil)
	if err != nil {
		return err
	}

	start := time.Now()
	if err := crawler.Start(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	fmt.Printf("mirrored %s to %s in %s\n", fs.Arg(0), *output, time.Since(start).Round(time.Millisecond))
	return nil
}
