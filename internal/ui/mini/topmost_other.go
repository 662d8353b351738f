//go:build !windows

package mini

import "dreamytimer/internal/core/model"

// fyne exposes neither window position nor stacking order outside Windows.
func (mini *Window) pinNative(*model.Position) {}

func (mini *Window) nativePosition() (model.Position, bool) {
	return model.Position{}, false
}
