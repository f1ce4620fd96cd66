// Package notification provides desktop notification utilities.
package notification

import (
	"fmt"

	"github.com/gen2brain/beeep"

	"github.com/edaskel/questlog/internal/config"
	"github.com/edaskel/questlog/internal/ports"
)

// Notifier handles desktop notifications for progression milestones.
type Notifier struct {
	cfg *config.NotificationConfig
}

// Ensure Notifier implements ports.Notifier.
var _ ports.Notifier = (*Notifier)(nil)

// New creates a notifier with the given configuration.
func New(cfg *config.NotificationConfig) *Notifier {
	return &Notifier{cfg: cfg}
}

// Notify displays a desktop notification if enabled.
func (n *Notifier) Notify(title, message string) error {
	if !n.IsEnabled() {
		return nil
	}
	return beeep.Notify(title, message, "")
}

// NotifyLevelUp announces that the user reached a new level.
func (n *Notifier) NotifyLevelUp(level int) error {
	title := "🏆 Level Up!"
	message := fmt.Sprintf("You reached level %d. Keep it going!", level)
	return n.Notify(title, message)
}

// NotifyStreakRecord announces a new longest streak.
func (n *Notifier) NotifyStreakRecord(days int) error {
	title := "🔥 New Streak Record!"
	message := fmt.Sprintf("%d days in a row — your longest streak yet.", days)
	return n.Notify(title, message)
}

// IsEnabled returns true if notifications are enabled.
func (n *Notifier) IsEnabled() bool {
	return n.cfg != nil && n.cfg.Enabled
}
