package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"loopa-cli/internal/app/logger"
	"loopa-cli/internal/devserver"
)

func main() {
	var (
		addr            = flag.String("addr", ":8080", "listen address")
		processingAfter = flag.Duration("processing-after", 2*time.Second, "delay before an upload starts processing")
		doneAfter       = flag.Duration("done-after", 8*time.Second, "delay before an upload completes")
	)
	flag.Parse()

	log, err := logger.NewServer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	server := devserver.NewServer(devserver.Config{
		Addr:            *addr,
		ProcessingAfter: *processingAfter,
		DoneAfter:       *doneAfter,
	}, log)

	if err := server.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "server failed: %v\n", err)
		os.Exit(1)
	}
}
