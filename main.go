package main

import (
	"context"
	"os/signal"
	"syscall"

	guestchat "example.com/guestchat/app"
)

func main() {
	ctx, _ := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP)

	app := guestchat.New(ctx, nil)
	app.Start()
}
