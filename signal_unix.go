//go:build !windows

package main

import (
	"os"
	"os/signal"
	"syscall"
)

// notifyExtraSignals also stops watch mode on SIGTERM and SIGHUP.
func notifyExtraSignals(ch chan<- os.Signal) {
	signal.Notify(ch, syscall.SIGTERM, syscall.SIGHUP)
}
