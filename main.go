// MIT License
//
// Copyright 2024 Hive Tools Contributors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS
// IN THE SOFTWARE.

package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"github.com/hive-tools/hivekit/bot"
	"github.com/hive-tools/hivekit/flag"
	"github.com/hive-tools/hivekit/hive"
	"github.com/hive-tools/hivekit/log"
	"github.com/hive-tools/hivekit/ops"
)

func main() { os.Exit(_main()) }
func _main() (ret int) {
	// A .env file, if present, backs the HIVE_* environment variables.
	godotenv.Load()

	// Completion uses some flags, so parse them first thing.
	flag.Parse()
	if flag.Completion.Complete() {
		// Invoked for the purposes of completion, so don't actually
		// run the bot.
		return 0
	}
	flag.Validate()

	// Set up interrupts channel. We don't want to be interrupted during
	// initialization. If the signal is sent we will handle it later.
	ctx, cancel := context.WithCancel(context.Background())
	sigint := make(chan os.Signal, 1)
	signal.Notify(sigint, os.Interrupt)
	go func() {
		<-sigint
		cancel()
	}()

	log := log.New("main")
	defer log.Info("Hive posting bot stopped.")

	network := hive.Mainnet()
	if flag.NetworkName == "test" {
		network = hive.Testnet()
	}
	opts := []hive.Option{
		hive.WithNetwork(network),
		hive.WithTimeout(flag.Timeout),
	}
	if len(flag.Nodes) > 0 {
		opts = append(opts, hive.WithNodes(flag.Nodes...))
	}
	client := hive.NewClient(opts...)

	if healthy := client.HealthyNodes(ctx); len(healthy) == 0 {
		log.Error("No healthy API nodes.")
		return 1
	}

	b := bot.New(bot.Config{
		Client: client,
		Credentials: ops.Credentials{
			Username:   flag.Username,
			PostingWIF: flag.PostingWIF,
		},
		Interval:       flag.Interval,
		SelfVoteWeight: flag.SelfVote,
	})

	if flag.Templates != "" {
		templates, err := bot.LoadTemplates(flag.Templates)
		if err != nil {
			log.Errorf("bot.LoadTemplates(%#v): %v",
				flag.Templates, err)
			return 1
		}
		for _, post := range templates {
			b.Enqueue(post)
		}
		log.Infof("Queued %v post templates.", len(templates))
	}

	botDone := b.Start(ctx)
	log.Info("Hive posting bot started.")

	// Stop handling signals once we return.
	defer func() { signal.Reset(); close(sigint) }()
	defer func() {
		<-botDone // Wait for bot to stop.
	}()

	select {
	case <-ctx.Done():
		log.Infof("SIGINT: Shutting down...")
		return 0
	case <-botDone: // Closed if the bot exits prematurely.
	}
	return 1
}
