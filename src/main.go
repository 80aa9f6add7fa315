package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"seditor/src/buffer"
	"seditor/src/config"
	"seditor/src/editor"
	"seditor/src/terminal"
)

// fallbackSize is used when the terminal does not report its size.
var fallbackSize = editor.Size{Rows: 24, Cols: 80}

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "Usage: se <filename>\n")
		os.Exit(1)
	}

	if err := run(os.Args[1]); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("se: %v", err)
	}
}

func run(path string) error {
	cfg, err := config.Load(config.Path())
	if err != nil {
		return err
	}

	logFile, err := setupLogging(cfg.LogFile)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	// The file is read before the terminal changes so that a bad path
	// leaves the shell untouched.
	doc, err := buffer.Open(path, cfg.TabWidth)
	if err != nil {
		return err
	}

	term, err := terminal.Open(os.Stdin, os.Stdout)
	if err != nil {
		return err
	}
	defer func() {
		if err := term.Close(); err != nil {
			log.Printf("failed to restore terminal: %v", err)
		}
	}()

	// Raw mode turns ^C into a key, but a kill or hangup must still give
	// the terminal back.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigs)
	go func() {
		sig := <-sigs
		log.Printf("exiting on %v", sig)
		_ = term.Close()
		os.Exit(1)
	}()

	resize := terminal.NotifyResize()
	defer resize.Stop()

	ed := editor.New(doc, cfg, windowSize(term))
	defer ed.Close()
	log.Printf("editing %s (%d lines)", path, doc.LineCount())

	for {
		if resize.Pending() {
			ed.HandleResize(windowSize(term))
		}
		if err := ed.Refresh(term); err != nil {
			return err
		}
		if ed.Quit() {
			return nil
		}
		key, err := term.ReadKey()
		if err != nil {
			return err
		}
		ed.HandleKey(key)
	}
}

// setupLogging points the standard logger at path. Without a path log
// output is discarded, since stderr shares the screen with the editor.
func setupLogging(path string) (*os.File, error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return nil, nil
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	log.SetOutput(f)
	return f, nil
}

func windowSize(term *terminal.Terminal) editor.Size {
	rows, cols, err := term.Size()
	if err != nil {
		log.Printf("Warning: could not get window size: %v. Using defaults %dx%d.", err, fallbackSize.Cols, fallbackSize.Rows)
		return fallbackSize
	}
	return editor.Size{Rows: rows, Cols: cols}
}
