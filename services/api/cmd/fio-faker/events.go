package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"fiofaker/pkg/bus"
)

func newEventsCommand() *cobra.Command {
	var (
		url     string
		subject string
	)

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Tail events published by a running faker",
		RunE: func(cmd *cobra.Command, args []string) error {
			if url == "" {
				url = os.Getenv("FIO_FAKER_NATS_URL")
			}
			if url == "" {
				return errors.New("nats url is required (--nats-url or FIO_FAKER_NATS_URL)")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			events, err := bus.New(url)
			if err != nil {
				return fmt.Errorf("connect nats: %w", err)
			}
			defer events.Close()

			var mu sync.Mutex
			enc := json.NewEncoder(cmd.OutOrStdout())
			sub, err := events.Subscribe(ctx, subject, func(_ context.Context, ev bus.Event) error {
				mu.Lock()
				defer mu.Unlock()
				return enc.Encode(ev)
			})
			if err != nil {
				return fmt.Errorf("subscribe %s: %w", subject, err)
			}
			defer sub.Close()

			<-ctx.Done()
			return nil
		},
	}

	cmd.Flags().StringVar(&url, "nats-url", "", "NATS server URL")
	cmd.Flags().StringVar(&subject, "subject", bus.SubjectPrefix+">", "Subject to subscribe to")
	return cmd
}
