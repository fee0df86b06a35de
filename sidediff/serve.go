package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"sidediff.znkr.io/sidediff/input"
	"sidediff.znkr.io/sidediff/server"
)

func newServeCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve [flags] LEFT RIGHT",
		Short: "Serve a live side-by-side view that updates when the files change",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts, args[0], args[1])
		},
	}
	opts.registerServe(cmd.Flags())
	return cmd
}

func runServe(cmd *cobra.Command, opts *options, leftPath, rightPath string) error {
	if leftPath == input.Stdin || rightPath == input.Stdin {
		return errors.New("serve can't watch standard input")
	}
	cfg, err := opts.config(cmd)
	if err != nil {
		return err
	}

	load := func() (*server.Page, error) {
		c, err := compare(nil, leftPath, rightPath, cfg.Compare.Options(), opts.force)
		if err != nil {
			return nil, err
		}
		p, err := c.serverPage()
		if err != nil {
			return nil, err
		}
		log.Printf("Compared %s and %s: %v", leftPath, rightPath, c.stats())
		return p, nil
	}

	p, err := load()
	if err != nil {
		return err
	}

	// Start serving.
	srv, err := server.Run(cfg.Serve.Addr, p)
	if err != nil {
		return err
	}
	defer srv.Shutdown(context.Background())
	log.Printf("Now serving at http://%s, press Ctrl-C to shut down", srv.Addr())

	// Watch the parent directories and filter events by file name.
	watcher, files, err := watchFiles(leftPath, rightPath)
	if err != nil {
		return err
	}
	defer watcher.Close()
	{
		wl := watcher.WatchList()
		slices.Sort(wl)
		log.Printf("Watching:\n    %v", strings.Join(wl, "\n    "))
	}

	// Setup signals to react to Ctrl-C.
	sigint := make(chan os.Signal, 1)
	signal.Notify(sigint, os.Interrupt)
	defer signal.Stop(sigint)

	for {
		select {
		case event := <-watcher.Events:
			if !relevant(event, files) {
				continue
			}
			start := time.Now()
			p, err := load()
			if err != nil {
				log.Printf("failed to update comparison: %v", err)
				continue
			}
			srv.ReplacePage(p)
			log.Printf("Comparison reloaded (%v)", time.Since(start))
		case err := <-watcher.Errors:
			return fmt.Errorf("watching: %v", err)
		case err := <-srv.Error():
			return err
		case <-sigint:
			fmt.Print("\r") // remove Ctrl-C output characters
			log.Printf("Received Ctrl-C, shutting down")
			return nil
		}
	}
}

// watchFiles watches the directories containing paths. It returns the watcher and the set of
// absolute paths to react to.
func watchFiles(paths ...string) (*fsnotify.Watcher, map[string]bool, error) {
	files := make(map[string]bool)
	dirs := make(map[string]bool)
	for _, path := range paths {
		if path == input.DevNull {
			continue
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, nil, fmt.Errorf("resolving %s: %v", path, err)
		}
		files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, fmt.Errorf("starting watcher: %v", err)
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, nil, fmt.Errorf("starting watch: %v", err)
		}
	}
	return watcher, files, nil
}

// relevant reports whether event changes the contents of one of files.
func relevant(event fsnotify.Event, files map[string]bool) bool {
	// Absolutely no need to react to chmod.
	if event.Op == fsnotify.Chmod {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return files[abs]
}
