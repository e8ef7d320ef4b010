package alert

import (
	"errors"
	"log"

	"github.com/gen2brain/beeep"
)

// Presenter puts a surface on screen. Implementations are only ever called
// from the dispatcher loop.
type Presenter interface {
	Show(id string, v View) error
	Update(id string, v View) error
	Close(id string) error
}

// MultiPresenter fans out to several presenters. Show fails only when every
// presenter fails; partial failures are logged.
type MultiPresenter []Presenter

// Show presents the surface on every backend.
func (m MultiPresenter) Show(id string, v View) error {
	var errs []error
	for _, p := range m {
		if err := p.Show(id, v); err != nil {
			errs = append(errs, err)
		}
	}
	if len(m) > 0 && len(errs) == len(m) {
		return errors.Join(errs...)
	}
	for _, err := range errs {
		log.Printf("[alert] presenter failed to show %s: %v", id, err)
	}
	return nil
}

// Update refreshes the surface on every backend.
func (m MultiPresenter) Update(id string, v View) error {
	var errs []error
	for _, p := range m {
		if err := p.Update(id, v); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close removes the surface from every backend.
func (m MultiPresenter) Close(id string) error {
	var errs []error
	for _, p := range m {
		if err := p.Close(id); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LogPresenter writes surfaces to the log. Used when running headless.
type LogPresenter struct{}

func (LogPresenter) Show(id string, v View) error {
	log.Printf("[alert] %s: %s", v.Title, oneLine(v))
	return nil
}

func (LogPresenter) Update(id string, v View) error {
	log.Printf("[alert] updated: %s", oneLine(v))
	return nil
}

func (LogPresenter) Close(id string) error {
	log.Printf("[alert] dismissed %s", id)
	return nil
}

// ToastPresenter raises desktop notifications. The notification daemon owns
// the toast's lifetime, so Close has nothing to undo.
type ToastPresenter struct {
	Icon string
}

// Show raises a toast.
func (t ToastPresenter) Show(id string, v View) error {
	return beeep.Notify(v.Title, v.Message(), t.Icon)
}

// Update raises a fresh toast carrying the new counts.
func (t ToastPresenter) Update(id string, v View) error {
	return beeep.Notify(v.Title, v.Message(), t.Icon)
}

// Close is a no-op.
func (t ToastPresenter) Close(id string) error {
	return nil
}

func oneLine(v View) string {
	msg := []rune(v.Message())
	for i, r := range msg {
		if r == '\n' {
			msg[i] = ' '
		}
	}
	return string(msg)
}
