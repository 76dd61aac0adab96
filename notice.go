package main

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type clearNoticeMsg struct{ id int }

const noticeDuration = 2 * time.Second

var noticeIcons = map[string]string{
	"info":    "ℹ",
	"success": "✓",
	"warn":    "!",
	"error":   "×",
}

func noticeText(msg, kind string) string {
	if msg == "" {
		return ""
	}
	if icon, ok := noticeIcons[kind]; ok {
		return icon + " " + msg
	}
	return msg
}

// startNotice shows msg in the status bar and schedules its removal. A newer
// notice invalidates the timers of older ones.
func (m *model) startNotice(msg, kind string, d time.Duration) tea.Cmd {
	m.ui.noticeMsg = msg
	m.ui.noticeType = kind
	m.ui.noticeSeq++
	id := m.ui.noticeSeq
	return tea.Tick(d, func(time.Time) tea.Msg { return clearNoticeMsg{id: id} })
}
