package common

import (
	"os"
	"os/signal"
	"syscall"
)

// SignalHandler fires once on SIGINT or SIGTERM.
func SignalHandler() chan os.Signal {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	return sigs
}
