// Nectar is a terminal-oriented web content pipeline: it fetches
// pages, dispatches them to site-specific handlers, and prints them
// as markdown.
package main

import (
	"context"
	"fmt"
	"os"

	"nectar/browser"
	"nectar/config"
)

func main() {
	url := ""
	initConfig := false
	historyMode := false
	recentsMode := false

	for _, arg := range os.Args[1:] {
		switch arg {
		case "-p", "--print":
			// print is the only mode; accepted for muscle memory
		case "--init-config":
			initConfig = true
		case "--history":
			historyMode = true
		case "--recents":
			recentsMode = true
		case "-h", "--help":
			printUsage()
			return
		default:
			if url == "" {
				url = arg
			}
		}
	}

	// Generate default config and exit
	if initConfig {
		fmt.Print(config.DefaultTOML())
		return
	}

	if err := run(url, historyMode, recentsMode); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Nectar - Terminal Web Content Pipeline

Usage: nectar [options] [url]

Options:
  --history [query]  Search visit history (empty query lists everything)
  --recents          List recently visited URLs
  --init-config      Output default config (redirect to ~/.config/nectar/config.toml)
  -h, --help         Show this help

Examples:
  nectar https://example.com            Print page as markdown
  nectar reddit.com/r/golang            Print a subreddit listing
  nectar --history golang              Search history for "golang"
  nectar --init-config > ~/.config/nectar/config.toml

Configuration:
  Config file: ~/.config/nectar/config.toml
  Generate with: nectar --init-config > ~/.config/nectar/config.toml`)
}

func run(url string, historyMode, recentsMode bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	engine, err := browser.New(cfg)
	if err != nil {
		return fmt.Errorf("starting engine: %w", err)
	}
	defer engine.Close()

	if historyMode {
		entries, err := engine.SearchHistory(url, 50)
		if err != nil {
			return err
		}
		for _, e := range entries {
			fmt.Printf("%s  %s  %s\n", e.UpdatedAt.Local().Format("2006-01-02 15:04"), e.URL, e.Title)
		}
		return nil
	}

	if recentsMode {
		for _, v := range engine.RecentVisits() {
			fmt.Printf("%s  %s  %s\n", v.VisitedAt.Local().Format("2006-01-02 15:04"), v.URL, v.Title)
		}
		return nil
	}

	if url == "" {
		printUsage()
		return nil
	}

	result := engine.ResolveAndFetch(context.Background(), url, "")
	if !result.OK() {
		return fmt.Errorf("loading %s: %s", result.URL, result.Err.Error())
	}

	if result.Title != "" {
		fmt.Printf("# %s\n\n", result.Title)
	}
	fmt.Println(result.MarkdownText())
	return nil
}
