package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorren/desk/core"
	logsvc "github.com/tutorren/desk/services/logger"
)

func Test_startReminderJob(t *testing.T) {
	logger := logsvc.NewNopLogger()

	c, err := startReminderJob(core.ReminderConfig{}, nil, logger)
	require.NoError(t, err)
	assert.Nil(t, c, "no schedule, no job")

	_, err = startReminderJob(core.ReminderConfig{Cron: "every tuesday"}, nil, logger)
	assert.Error(t, err)

	c, err = startReminderJob(core.ReminderConfig{Cron: "0 7 * * *"}, nil, logger)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Len(t, c.Entries(), 1)
	c.Stop()
}
