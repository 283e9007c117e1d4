package tray

import (
	"github.com/gen2brain/beeep"
	"go.uber.org/zap"
)

// DesktopNotifier shows notices as native desktop alerts.
type DesktopNotifier struct {
	logger *zap.SugaredLogger
}

// NewDesktopNotifier returns a notifier backed by the OS notification area.
func NewDesktopNotifier(logger *zap.SugaredLogger) *DesktopNotifier {
	return &DesktopNotifier{logger: logger.Named("notify")}
}

// Notify shows an alert. If the desktop refuses, the message is logged so
// it is not lost.
func (n *DesktopNotifier) Notify(title, message string) error {
	if err := beeep.Alert(title, message, ""); err != nil {
		n.logger.Warnw(message, "title", title, "error", err)
		return err
	}
	return nil
}
