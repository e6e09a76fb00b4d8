package download

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/time/rate"
)

// meter counts bytes written through it and logs the running total at
// most once per interval.
type meter struct {
	w       io.Writer
	logger  *slog.Logger
	total   int64
	written int64
	start   time.Time
	every   rate.Sometimes
}

func newMeter(w io.Writer, logger *slog.Logger, total int64) *meter {
	return &meter{
		w:      w,
		logger: logger,
		total:  total,
		start:  time.Now(),
		every:  rate.Sometimes{Interval: time.Second},
	}
}

func (m *meter) Write(p []byte) (int, error) {
	n, err := m.w.Write(p)
	m.written += int64(n)
	m.every.Do(func() { m.report("copying body") })

	return n, err
}

// done logs the final tally once the copy has ended.
func (m *meter) done() {
	m.report("body copied")
}

func (m *meter) report(msg string) {
	elapsed := time.Since(m.start)

	pct := "unknown"
	if m.total > 0 {
		pct = fmt.Sprintf("%.1f%%", float64(m.written)/float64(m.total)*100)
	}

	var mibps float64
	if s := elapsed.Seconds(); s > 0 {
		mibps = float64(m.written) / s / (1 << 20)
	}

	m.logger.Info(msg,
		"written", m.written,
		"total", m.total,
		"progress", pct,
		"elapsed", elapsed.Round(time.Millisecond),
		"mibps", fmt.Sprintf("%.2f", mibps),
	)
}
