//go:build windows

package main

import "os"

// notifyExtraSignals is a no-op: os.Interrupt already covers Ctrl+C and
// Ctrl+Break stops the console process.
func notifyExtraSignals(_ chan<- os.Signal) {}
