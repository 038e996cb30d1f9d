//go:build windows

package hotkeys

import (
	"context"
	"fmt"
	"runtime"
	"unsafe"

	"go.uber.org/zap"
	"golang.org/x/sys/windows"
)

const (
	_WM_HOTKEY    = 0x0312
	_WM_QUIT      = 0x0012
	_MOD_NOREPEAT = 0x4000
)

type msg struct {
	HWnd    uintptr
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	Pt      struct{ X, Y int32 }
}

// Start registers the hotkeys and runs the message loop on a dedicated OS
// thread until ctx is cancelled. RegisterHotKey binds to the calling thread,
// so registration and the loop must share one.
func (m *Manager) Start(ctx context.Context) error {
	user32 := windows.NewLazyDLL("user32.dll")
	kernel32 := windows.NewLazyDLL("kernel32.dll")
	procRegisterHotKey := user32.NewProc("RegisterHotKey")
	procUnregisterHotKey := user32.NewProc("UnregisterHotKey")
	procGetMessageW := user32.NewProc("GetMessageW")
	procPostThreadMessageW := user32.NewProc("PostThreadMessageW")
	procGetCurrentThreadId := kernel32.NewProc("GetCurrentThreadId")

	registered := make(chan error, 1)
	threadID := make(chan uintptr, 1)

	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		tid, _, _ := procGetCurrentThreadId.Call()
		threadID <- tid

		var failed error
		for i, reg := range m.regs {
			ret, _, callErr := procRegisterHotKey.Call(
				0,
				uintptr(i+1),
				uintptr(uint32(reg.binding.Modifiers())|_MOD_NOREPEAT),
				uintptr(reg.binding.Key()),
			)
			if ret == 0 {
				failed = fmt.Errorf("failed to register hotkey %q: %v", reg.binding.String(), callErr)
				break
			}
		}
		registered <- failed
		if failed != nil {
			return
		}

		defer func() {
			for i := range m.regs {
				procUnregisterHotKey.Call(0, uintptr(i+1))
			}
		}()

		var message msg
		for {
			ret, _, _ := procGetMessageW.Call(uintptr(unsafe.Pointer(&message)), 0, 0, 0)
			// 0 = WM_QUIT, ^0 = error; stop either way
			if ret == 0 || int32(ret) == -1 {
				return
			}
			if message.Message == _WM_HOTKEY {
				m.trigger(int(message.WParam) - 1)
			}
		}
	}()

	tid := <-threadID
	if err := <-registered; err != nil {
		return err
	}

	go func() {
		<-ctx.Done()
		m.log.Debug("stopping hotkey message loop")
		procPostThreadMessageW.Call(tid, _WM_QUIT, 0, 0)
	}()

	m.log.Info("global hotkeys registered", zap.Strings("bindings", m.Bindings()))
	return nil
}
