package moderation

import (
	"fmt"
	"log"
	"time"

	"github.com/kazumaiq/cxner-music-bot/model"
)

// SweepReminders nudges the moderation channel about releases that sat in
// on_upload longer than the threshold. It reloads the store first so a
// concurrent hand edit of the data files is picked up, touches only the
// one-shot reminder flag and never changes a status.
func (e *Engine) SweepReminders() {
	e.store.Reload()
	now := e.now()

	type due struct {
		userID string
		idx    int
	}
	var pending []due
	e.store.EachRelease(func(userID string, idx int, r *model.Release) {
		if r.Status != model.StatusOnUpload || r.ReminderSent || r.UserDeleted {
			return
		}
		submitted, err := time.Parse(time.RFC3339, r.SubmissionTime)
		if err != nil {
			return
		}
		if now.Sub(submitted) > e.remindAfter {
			pending = append(pending, due{userID: userID, idx: idx})
		}
	})

	for _, p := range pending {
		rel, ok := e.store.Release(p.userID, p.idx)
		if !ok {
			continue
		}
		submitted, _ := time.Parse(time.RFC3339, rel.SubmissionTime)
		text := fmt.Sprintf(
			"⏰ **REMINDER: release is waiting**\n\n• **Title:** %s\n• **Artist:** %s\n• Submitted %d hours ago and still on upload.",
			rel.Title, rel.Performer, int(now.Sub(submitted).Hours()))
		if _, err := e.bot.Send(e.channel, text, nil, rel.CardMessageID); err != nil {
			log.Printf("moderation: reminder %s/%d: %v", p.userID, p.idx, err)
			continue
		}
		// flag only after the nudge went out, so a failed send retries
		// on the next sweep
		if err := e.store.UpdateRelease(p.userID, p.idx, func(r *model.Release) {
			r.ReminderSent = true
		}); err != nil {
			log.Printf("moderation: reminder flag %s/%d: %v", p.userID, p.idx, err)
		}
	}
}

// RunReminderLoop sweeps on interval until stop is closed.
func (e *Engine) RunReminderLoop(interval time.Duration, stop <-chan struct{}) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			e.SweepReminders()
		case <-stop:
			return
		}
	}
}
