package main

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"

	"github.com/tutorren/desk/core"
	remindsvc "github.com/tutorren/desk/services/reminder"
)

// reminderTimeout bounds one run of the reminder job.
const reminderTimeout = 4 * time.Minute

// startReminderJob emails every tutor about their next class on the
// `conf.Cron` schedule. It returns a nil *cron.Cron when no schedule is set.
func startReminderJob(conf core.ReminderConfig, svc *remindsvc.Service, logger core.Logger) (*cron.Cron, error) {
	if conf.Cron == "" {
		return nil, nil
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	_, err := c.AddFunc(conf.Cron, func() { runReminders(svc, conf.Horizon, logger) })
	if err != nil {
		return nil, errors.Wrapf(err, "parsing cron spec %q", conf.Cron)
	}
	logger.Info(fmt.Sprintf("reminders scheduled: %q (horizon %v)", conf.Cron, conf.Horizon))
	c.Start()
	return c, nil
}

func runReminders(svc *remindsvc.Service, horizon time.Duration, logger core.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), reminderTimeout)
	defer cancel()

	sent, err := svc.Send(ctx, time.Now(), horizon)
	if err != nil {
		logger.Error("sending reminders", err)
		return
	}
	logger.Info(fmt.Sprintf("%d reminder(s) sent", sent))
}
