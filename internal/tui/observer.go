package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/service"
)

// SessionObserver adapts SessionService subscriptions to a channel for Bubble Tea.
type SessionObserver struct {
	ch          chan service.SessionEvent
	done        chan struct{}
	once        sync.Once
	unsubscribe func()
}

// NewSessionObserver subscribes to svc. Close releases the subscription.
func NewSessionObserver(svc *service.SessionService) *SessionObserver {
	o := &SessionObserver{
		ch:   make(chan service.SessionEvent, 16),
		done: make(chan struct{}),
	}
	o.unsubscribe = svc.Subscribe(o.onEvent)
	return o
}

// onEvent forwards a transition, blocking until it is queued or the observer is closed
func (o *SessionObserver) onEvent(e service.SessionEvent) {
	select {
	case o.ch <- e:
	case <-o.done:
	}
}

// Wait returns a command that delivers the next session event
func (o *SessionObserver) Wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case e := <-o.ch:
			return SessionEventMsg{Event: e}
		case <-o.done:
			return nil
		}
	}
}

// Close unsubscribes and unblocks pending waits
func (o *SessionObserver) Close() {
	o.once.Do(func() {
		o.unsubscribe()
		close(o.done)
	})
}
