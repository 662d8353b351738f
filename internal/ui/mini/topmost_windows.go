//go:build windows

package mini

import (
	"syscall"
	"unsafe"

	"fyne.io/fyne/v2/driver"

	"dreamytimer/internal/core/model"
)

const (
	swpNoSize     = 0x0001
	swpNoActivate = 0x0010
	smCxScreen    = 0
)

// HWND_TOPMOST is (HWND)-1.
var hwndTopmost = ^uintptr(0)

var (
	user32DLL            = syscall.NewLazyDLL("user32.dll")
	procSetWindowPos     = user32DLL.NewProc("SetWindowPos")
	procGetWindowRect    = user32DLL.NewProc("GetWindowRect")
	procGetSystemMetrics = user32DLL.NewProc("GetSystemMetrics")
)

type rect struct {
	Left, Top, Right, Bottom int32
}

// pinNative keeps the window above others and moves it to position, or to
// the top-right corner when position is nil.
func (mini *Window) pinNative(position *model.Position) {
	mini.runNative(func(hwnd uintptr) {
		x, y := 0, defaultTopMargin
		if position != nil {
			x, y = position.X, position.Y
		} else {
			screenWidth, _, _ := procGetSystemMetrics.Call(uintptr(smCxScreen))
			x = int(int32(screenWidth)) - defaultRightMargin
		}
		procSetWindowPos.Call(hwnd, hwndTopmost, uintptr(int32(x)), uintptr(int32(y)), 0, 0, swpNoSize|swpNoActivate)
	})
}

// nativePosition returns the top-left corner of the window on screen.
func (mini *Window) nativePosition() (model.Position, bool) {
	var position model.Position
	found := false
	mini.runNative(func(hwnd uintptr) {
		var bounds rect
		ok, _, _ := procGetWindowRect.Call(hwnd, uintptr(unsafe.Pointer(&bounds)))
		if ok == 0 {
			return
		}
		position = model.Position{X: int(bounds.Left), Y: int(bounds.Top)}
		found = true
	})
	return position, found
}

func (mini *Window) runNative(fn func(hwnd uintptr)) {
	mini.mu.Lock()
	window := mini.window
	mini.mu.Unlock()

	nativeWindow, ok := window.(driver.NativeWindow)
	if !ok {
		return
	}
	nativeWindow.RunNative(func(context any) {
		var hwnd uintptr
		switch value := context.(type) {
		case driver.WindowsWindowContext:
			hwnd = value.HWND
		case *driver.WindowsWindowContext:
			hwnd = value.HWND
		default:
			return
		}
		if hwnd != 0 {
			fn(hwnd)
		}
	})
}
