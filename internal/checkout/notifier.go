package checkout

import "log"

type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Event is a user-facing notification the terminal UI shows the operator.
type Event struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

type Notifier interface {
	Notify(event Event)
}

// LogNotifier writes events to the process log. The default when no UI
// channel is attached.
type LogNotifier struct{}

func (LogNotifier) Notify(event Event) {
	log.Printf("[%s] %s", event.Level, event.Message)
}
