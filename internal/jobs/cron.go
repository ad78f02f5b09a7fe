package jobs

import (
	"context"
	"time"

	"sales-daily-report/internal/domain/report"
	"sales-daily-report/internal/logging"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const moduleName = "jobs"

// MissingReportDetector finds who has not submitted a report for day.
type MissingReportDetector interface {
	MissingReports(ctx context.Context, day time.Time) ([]report.Alert, error)
}

// AlertSink keeps alerts until they expire.
type AlertSink interface {
	Save(ctx context.Context, a report.Alert) error
}

// MissingReportJob raises an alert for every report of the previous day that
// is missing or still a draft.
type MissingReportJob struct {
	detector MissingReportDetector
	sink     AlertSink
	log      *logrus.Logger
	now      func() time.Time
	timeout  time.Duration
}

func NewMissingReportJob(detector MissingReportDetector, sink AlertSink, log *logrus.Logger) *MissingReportJob {
	if log == nil {
		log = logging.Discard()
	}
	return &MissingReportJob{detector: detector, sink: sink, log: log, now: time.Now, timeout: time.Minute}
}

// Run checks yesterday and stores one alert per offender. It returns how many
// alerts were stored.
func (j *MissingReportJob) Run(ctx context.Context) (int, error) {
	day := report.DateOf(j.now()).AddDate(0, 0, -1)
	alerts, err := j.detector.MissingReports(ctx, day)
	if err != nil {
		logging.LogError(j.log, moduleName, "MissingReportJob.Run", "detect missing reports", day.Format("2006-01-02"), err)
		return 0, err
	}

	saved := 0
	for _, a := range alerts {
		if err := j.sink.Save(ctx, a); err != nil {
			// one bad write should not hide the other alerts
			logging.LogError(j.log, moduleName, "MissingReportJob.Run", "save alert", a.AlertID, err)
			continue
		}
		saved++
	}
	j.log.WithFields(logrus.Fields{
		"report_date": day.Format("2006-01-02"), "missing": len(alerts), "saved": saved,
	}).Info("missing report check finished")
	return saved, nil
}

// InitCronJobs schedules job on spec (standard 5-field cron) and starts c.
func InitCronJobs(c *cron.Cron, spec string, job *MissingReportJob) (cron.EntryID, error) {
	id, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), job.timeout)
		defer cancel()
		_, _ = job.Run(ctx)
	})
	if err != nil {
		return 0, err
	}

	c.Start()
	job.log.WithField("spec", spec).Info("cron jobs initialized")
	return id, nil
}
