package main

import (
	"context"
	"fmt"
	"os"
)

// kioskSink stands in for the physical kiosk form action: it acknowledges
// the accepted badge on stdout so a wrapping form driver can act on it.
type kioskSink struct{}

func newKioskSink() *kioskSink { return &kioskSink{} }

func (*kioskSink) Submit(ctx context.Context, badgeID string) error {
	_, err := fmt.Fprintf(os.Stdout, "ACCEPT %s\n", badgeID)
	return err
}
