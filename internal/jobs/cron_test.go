package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"sales-daily-report/internal/domain/report"
	"sales-daily-report/internal/logging"

	"github.com/robfig/cron/v3"
)

type detectorFunc func(ctx context.Context, day time.Time) ([]report.Alert, error)

func (f detectorFunc) MissingReports(ctx context.Context, day time.Time) ([]report.Alert, error) {
	return f(ctx, day)
}

type memSink struct {
	saved []report.Alert
	fail  map[string]bool
}

func (s *memSink) Save(_ context.Context, a report.Alert) error {
	if s.fail[a.AlertID] {
		return errors.New("write failed")
	}
	s.saved = append(s.saved, a)
	return nil
}

func TestMissingReportJob_ChecksYesterday(t *testing.T) {
	var gotDay time.Time
	det := detectorFunc(func(_ context.Context, day time.Time) ([]report.Alert, error) {
		gotDay = day
		return []report.Alert{{AlertID: "a1", UserID: "u001"}, {AlertID: "a2", UserID: "u002"}}, nil
	})
	sink := &memSink{}
	job := NewMissingReportJob(det, sink, logging.Discard())
	job.now = func() time.Time { return time.Date(2024, 6, 10, 0, 5, 0, 0, time.UTC) }

	n, err := job.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if want := time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC); !gotDay.Equal(want) {
		t.Fatalf("checked %v, want %v", gotDay, want)
	}
	if n != 2 || len(sink.saved) != 2 {
		t.Fatalf("saved %d (%d in sink), want 2", n, len(sink.saved))
	}
}

func TestMissingReportJob_SaveFailureSkipsOne(t *testing.T) {
	det := detectorFunc(func(context.Context, time.Time) ([]report.Alert, error) {
		return []report.Alert{{AlertID: "a1"}, {AlertID: "a2"}, {AlertID: "a3"}}, nil
	})
	sink := &memSink{fail: map[string]bool{"a2": true}}
	job := NewMissingReportJob(det, sink, nil)

	n, err := job.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if n != 2 || sink.saved[0].AlertID != "a1" || sink.saved[1].AlertID != "a3" {
		t.Fatalf("unexpected saves: n=%d %+v", n, sink.saved)
	}
}

func TestMissingReportJob_DetectorFailure(t *testing.T) {
	boom := errors.New("db down")
	det := detectorFunc(func(context.Context, time.Time) ([]report.Alert, error) { return nil, boom })
	sink := &memSink{}
	job := NewMissingReportJob(det, sink, logging.Discard())

	if _, err := job.Run(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
	if len(sink.saved) != 0 {
		t.Fatalf("nothing should be saved")
	}
}

func TestInitCronJobs(t *testing.T) {
	job := NewMissingReportJob(detectorFunc(func(context.Context, time.Time) ([]report.Alert, error) {
		return nil, nil
	}), &memSink{}, logging.Discard())

	c := cron.New()
	id, err := InitCronJobs(c, "0 9 * * *", job)
	if err != nil {
		t.Fatalf("InitCronJobs: %v", err)
	}
	defer c.Stop()
	if entry := c.Entry(id); entry.ID != id || entry.Next.IsZero() {
		t.Fatalf("job not scheduled: %+v", entry)
	}

	if _, err := InitCronJobs(cron.New(), "every day", job); err == nil {
		t.Fatalf("expected error for invalid spec")
	}
}
