package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/bsm/redislock"
	"github.com/dimitrizarkua/jobs_backend/config"
	"github.com/dimitrizarkua/jobs_backend/models"
	"github.com/dimitrizarkua/jobs_backend/models/reports"
	"github.com/sirupsen/logrus"
)

// Audit tool: recomputes itemized totals for approved invoices and flags
// drift between the itemized total and the recorded payments. Reported
// figures always come from items, so drift here means a payment was taken
// against a stale total and needs a manual follow-up.
func main() {
	locationId := flag.Int("location-id", 0, "Required: location id to audit")
	dateFrom := flag.String("date-from", "", "Required: window start (YYYY-MM-DD)")
	dateTo := flag.String("date-to", "", "Required: window end (YYYY-MM-DD)")
	flag.Parse()

	if *locationId <= 0 || *dateFrom == "" || *dateTo == "" {
		fmt.Fprintln(os.Stderr, "--location-id, --date-from and --date-to are required")
		os.Exit(1)
	}

	var from, to models.DateString
	if err := from.UnmarshalJSON([]byte(fmt.Sprintf("%q", *dateFrom))); err != nil {
		fmt.Fprintln(os.Stderr, "invalid --date-from:", err)
		os.Exit(1)
	}
	if err := to.UnmarshalJSON([]byte(fmt.Sprintf("%q", *dateTo))); err != nil {
		fmt.Fprintln(os.Stderr, "invalid --date-to:", err)
		os.Exit(1)
	}
	if err := from.StartOfDayUTCTime(""); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := to.EndOfDayUTCTime(""); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := config.GetLogger()
	config.ConnectDatabaseWithRetry()
	config.ConnectRedisWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized")
		os.Exit(1)
	}

	ctx := context.Background()

	// One audit at a time per location; a second invocation exits cleanly.
	locker := config.GetRedisLock()
	if locker == nil {
		fmt.Fprintln(os.Stderr, "redis lock not initialized")
		os.Exit(1)
	}
	lockKey := fmt.Sprintf("lock:totals-audit:%d", *locationId)
	lock, err := locker.Obtain(ctx, lockKey, 10*time.Minute, nil)
	if err == redislock.ErrNotObtained {
		logger.WithFields(logrus.Fields{
			"field":       "totals-audit",
			"location_id": *locationId,
		}).Warn("another audit holds the lock; exiting")
		return
	} else if err != nil {
		fmt.Fprintln(os.Stderr, "obtain lock:", err)
		os.Exit(1)
	}
	defer func() {
		if releaseErr := lock.Release(ctx); releaseErr != nil {
			logger.WithFields(logrus.Fields{
				"field": "totals-audit",
			}).Warn("failed to release lock: " + releaseErr.Error())
		}
	}()

	fetcher := reports.NewDocumentFetcher(db)
	filter := &reports.ReportFilter{
		Mode: reports.ByLocationAndDate{
			LocationId: *locationId,
			DateFrom:   time.Time(from),
			DateTo:     time.Time(to),
		},
	}

	invoices, err := fetcher.FetchInvoices(ctx, filter)
	if err != nil {
		config.LogError(logger, "cmd/totals-audit", "main", "fetch invoices", *locationId, err)
		os.Exit(1)
	}

	drifted := 0
	for _, invoice := range invoices {
		itemized := invoice.TotalAmount()
		paid := invoice.TotalPaid()
		if paid.IsZero() || paid.Equal(itemized) {
			continue
		}
		// Partial payments are normal; only overpayment against the
		// itemized total is drift.
		if paid.LessThan(itemized) {
			continue
		}
		overpaid := paid.Sub(itemized)
		drifted++
		logger.WithFields(logrus.Fields{
			"field":          "totals-audit",
			"invoice_id":     invoice.ID,
			"itemized_total": itemized.String(),
			"total_paid":     paid.String(),
			"overpaid":       overpaid.String(),
		}).Warn("invoice paid beyond itemized total")
	}

	logger.WithFields(logrus.Fields{
		"field":       "totals-audit",
		"location_id": *locationId,
		"invoices":    len(invoices),
		"drifted":     drifted,
	}).Info("audit complete")
}
