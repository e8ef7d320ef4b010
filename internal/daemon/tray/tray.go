package tray

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/getlantern/systray"
)

const refreshInterval = 2 * time.Second

var (
	state   DaemonState
	onStart func()
	onExit  func()

	countsItem    *systray.MenuItem
	dismissItem   *systray.MenuItem
	soundItem     *systray.MenuItem
	dashboardItem *systray.MenuItem
	ackItem       *systray.MenuItem
	resetItem     *systray.MenuItem
	quitItem      *systray.MenuItem

	ready    = make(chan struct{})
	stopOnce sync.Once
	stop     = make(chan struct{})
)

// Run starts the system tray. This blocks the calling goroutine (must be main).
// onStartFn is called when the tray is ready (start the daemon here).
// onExitFn is called when the tray exits (cleanup here).
func Run(s DaemonState, onStartFn, onExitFn func()) {
	state = s
	onStart = onStartFn
	onExit = onExitFn
	systray.Run(onReady, onQuit)
}

// Quit signals the tray to exit.
func Quit() {
	systray.Quit()
}

func onReady() {
	systray.SetTemplateIcon(iconData, iconData)
	systray.SetTooltip(formatTooltip(0, 0))

	header := systray.AddMenuItem("Pingwatch", "")
	header.Disable()

	countsItem = systray.AddMenuItem("Starting...", "")
	countsItem.Disable()

	dismissItem = systray.AddMenuItem("Dismiss alert", "Close the current alert")
	dismissItem.Hide()

	systray.AddSeparator()

	soundItem = systray.AddMenuItemCheckbox("Sound", "Play a sound on each ping", true)
	dashboardItem = systray.AddMenuItem("Open dashboard", "Open the status page in a browser")
	ackItem = systray.AddMenuItem("Acknowledge", "Clear the pending count")
	resetItem = systray.AddMenuItem("Reset today's counters", "")

	systray.AddSeparator()

	quitItem = systray.AddMenuItem("Quit", "Shut down the Pingwatch daemon")

	close(ready)

	if onStart != nil {
		onStart()
	}

	refresh()
	go handleClicks()
	go refreshLoop()
}

func onQuit() {
	stopOnce.Do(func() { close(stop) })
	if onExit != nil {
		onExit()
	}
}

func handleClicks() {
	for {
		select {
		case <-stop:
			return

		case <-dismissItem.ClickedCh:
			if state != nil {
				state.Dismiss()
			}

		case <-soundItem.ClickedCh:
			if state != nil {
				setChecked(soundItem, state.ToggleSound())
			}

		case <-dashboardItem.ClickedCh:
			if state == nil || state.HTTPPort() == 0 {
				continue
			}
			url := fmt.Sprintf("http://127.0.0.1:%d/", state.HTTPPort())
			if err := openBrowser(url); err != nil {
				log.Printf("[tray] failed to open %s: %v", url, err)
			}

		case <-ackItem.ClickedCh:
			if state != nil {
				state.Acknowledge()
				refresh()
			}

		case <-resetItem.ClickedCh:
			if state != nil {
				state.Reset()
				refresh()
			}

		case <-quitItem.ClickedCh:
			if state != nil {
				state.RequestShutdown()
			}
		}
	}
}

func refreshLoop() {
	ticker := time.NewTicker(refreshInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			refresh()
		}
	}
}

// refresh pulls counters from the daemon into the menu and tooltip.
func refresh() {
	if state == nil {
		return
	}
	st := state.Status()
	countsItem.SetTitle(formatCounts(st.TotalCount, st.PendingCount))
	setChecked(soundItem, st.SoundEnabled)
	systray.SetTooltip(formatTooltip(st.TotalCount, st.PendingCount))
}

func setChecked(item *systray.MenuItem, checked bool) {
	if checked {
		item.Check()
	} else {
		item.Uncheck()
	}
}

func formatCounts(total, pending int) string {
	return fmt.Sprintf("Today: %d  Pending: %d", total, pending)
}

func formatTooltip(total, pending int) string {
	if pending == 0 {
		return fmt.Sprintf("Pingwatch: %d today", total)
	}
	return fmt.Sprintf("Pingwatch: %d today, %d pending", total, pending)
}

func formatBadge(pending int) string {
	if pending <= 0 {
		return ""
	}
	if pending > 99 {
		return "● 99+"
	}
	return fmt.Sprintf("● %d", pending)
}
