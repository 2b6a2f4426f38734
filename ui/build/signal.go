package build

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/clchiou/interrogator/ui/logger"
)

// SetupSignals cancels the interrogation context on the first signal,
// which kills any running build tool. main's deferred cleanups then
// remove the scratch room and flush the logs. If the process is still
// alive five seconds later, cleanup is run directly and the process
// exits.
func SetupSignals(log logger.Logger, cancel, cleanup func()) {
	signals := make(chan os.Signal, 5)
	signal.Notify(signals, os.Interrupt, syscall.SIGHUP, syscall.SIGTERM)
	go handleSignals(signals, log, cancel, cleanup)
}

func handleSignals(signals chan os.Signal, log logger.Logger, cancel, cleanup func()) {
	var timeout <-chan time.Time

	for {
		select {
		case s := <-signals:
			log.Println("Got signal:", s)
			cancel()
			timeout = time.After(5 * time.Second)
		case <-timeout:
			cleanup()
			os.Exit(1)
		}
	}
}
