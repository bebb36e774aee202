package provisioning

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConsoleObserver_FormatEvent(t *testing.T) {
	t.Parallel()
	o := NewConsoleObserver()

	msg := o.formatEvent(Event{
		Type:    EventStageStarted,
		Stage:   "fetch",
		Message: "starting",
	})

	assert.Contains(t, msg, "stage.started")
	assert.Contains(t, msg, "[fetch]")
	assert.Contains(t, msg, "starting")
}

func TestConsoleObserver_FormatEvent_Fields(t *testing.T) {
	t.Parallel()
	o := NewConsoleObserver()

	msg := o.formatEvent(Event{
		Type:    EventArtifactCached,
		Stage:   "fetch",
		Message: "archive already present",
		Fields:  map[string]string{"path": "/tmp/archive.zip"},
	})

	assert.Contains(t, msg, "path=/tmp/archive.zip")
}

func TestConsoleObserver_WithFields(t *testing.T) {
	t.Parallel()
	o := NewConsoleObserver().WithFields(map[string]string{"run": "abc"})

	co, ok := o.(*ConsoleObserver)
	assert.True(t, ok)
	assert.Equal(t, "abc", co.contextFields["run"])
}

func TestLogHelpers(t *testing.T) {
	t.Parallel()
	observer := NewMockObserver()

	LogStageStart(observer, "packages")
	LogStageComplete(observer, "packages", 20*time.Millisecond)
	LogStageFailed(observer, "fetch", assert.AnError)
	LogCheckWarning(observer, "dnscheck", "no A record found")

	events := observer.Events()
	assert.Len(t, events, 4)
	assert.Equal(t, EventStageStarted, events[0].Type)
	assert.Equal(t, EventStageCompleted, events[1].Type)
	assert.Equal(t, EventStageFailed, events[2].Type)
	assert.Equal(t, EventCheckWarning, events[3].Type)
	assert.Contains(t, events[3].Message, "no A record")
}
