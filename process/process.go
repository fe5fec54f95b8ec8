// Public Domain (-) 2010-present, The Web4 Authors.
// See the Web4 UNLICENSE file for details.

// Package process manages the lifetime of the current command process.
package process

import (
	"os"
	"os/signal"
	"sync"
	"syscall"
)

var (
	exiting  bool
	exitFunc = os.Exit
	handlers []func()
	mu       sync.Mutex // protects exiting, handlers
)

// Exit runs the registered exit handlers and then terminates the process with
// the given status code. Exit blocks until the process terminates if it has
// already been called elsewhere, so callers never continue past it.
func Exit(code int) {
	if !begin() {
		select {}
	}
	runHandlers()
	exitFunc(code)
}

// SetExitHandler registers a handler to run before the process exits, either
// through Exit or on receiving os.Interrupt or SIGTERM. Handlers run in
// reverse order of registration.
func SetExitHandler(handler func()) {
	mu.Lock()
	handlers = append([]func(){handler}, handlers...)
	mu.Unlock()
}

func begin() bool {
	mu.Lock()
	defer mu.Unlock()
	if exiting {
		return false
	}
	exiting = true
	return true
}

func runHandlers() {
	mu.Lock()
	xs := make([]func(), len(handlers))
	copy(xs, handlers)
	mu.Unlock()
	for _, handler := range xs {
		handler()
	}
}

func watchSignals() {
	notifier := make(chan os.Signal, 1)
	signal.Notify(notifier, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-notifier
		Exit(1)
	}()
}

func init() {
	watchSignals()
}
