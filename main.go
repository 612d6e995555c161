package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "./config.toml", "Config file path")
	flag.Usage = usage
	flag.Parse()

	config, err := LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	os.Exit(run(config, flag.Args()))
}

// run runs a command until it's done or the process is interrupted
func run(config Config, args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, config, os.Stdout)
	if err != nil {
		log.Error(err)
		return 1
	}
	defer a.close()
	return a.run(ctx, args)
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [-config path] [command] [flags]\n\nCommands:\n", os.Args[0])
	for _, c := range commands {
		fmt.Fprintf(flag.CommandLine.Output(), "  %-14s %s\n", c.name, c.summary)
	}
	fmt.Fprintln(flag.CommandLine.Output(), "\nWithout a command, the home page of the signed-in user is shown.")
	flag.PrintDefaults()
}
