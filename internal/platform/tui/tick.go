// Package tui provides the Bubble Tea integration for the game.
// It handles the terminal UI loop, input mapping, score persistence and SSH serving.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg struct {
	At  time.Time
	Gen uint64 // Loop that scheduled the tick
}

// loopGen hands out tick loop generations so a stale loop dies with its model.
var loopGen atomic.Uint64

func nextLoopGen() uint64 {
	return loopGen.Add(1)
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int, gen uint64) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{At: t, Gen: gen}
	})
}
