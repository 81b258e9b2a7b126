package cart

import (
	"github.com/sirupsen/logrus"
)

type Level int

const (
	LevelSuccess Level = iota
	LevelInfo
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelInfo:
		return "info"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// Notification is the transient message shown after a cart change.
type Notification struct {
	Level   Level
	Message string
}

func success(msg string) *Notification { return &Notification{Level: LevelSuccess, Message: msg} }
func info(msg string) *Notification { return &Notification{Level: LevelInfo, Message: msg} }
func failure(msg string) *Notification { return &Notification{Level: LevelError, Message: msg} }

type Notifier interface {
	Notify(n Notification)
}

type NotifierFunc func(n Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

// LogNotifier writes notifications to a logger.
type LogNotifier struct {
	Log logrus.FieldLogger
}

func (l LogNotifier) Notify(n Notification) {
	entry := l.Log.WithField("notification", n.Level.String())
	if n.Level == LevelError {
		entry.Warn(n.Message)
		return
	}
	entry.Info(n.Message)
}

type discardNotifier struct{}

func (discardNotifier) Notify(Notification) {}
