//go:build windows

package platform

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"

	"cliptranslate/hotkey"
)

var (
	setWindowsHookEx    = user32.NewProc("SetWindowsHookExW")
	callNextHookEx      = user32.NewProc("CallNextHookEx")
	unhookWindowsHookEx = user32.NewProc("UnhookWindowsHookEx")
	peekMessage         = user32.NewProc("PeekMessageW")
)

const (
	whKeyboardLL = 13
	wmKeydown    = 0x0100
	wmKeyup      = 0x0101
	wmSyskeydown = 0x0104
	wmSyskeyup   = 0x0105
	pmRemove     = 0x0001
)

type kbdllhookstruct struct {
	vkCode      uint32
	scanCode    uint32
	flags       uint32
	time        uint32
	dwExtraInfo uintptr
}

type msg struct {
	hwnd    uintptr
	message uint32
	wParam  uintptr
	lParam  uintptr
	time    uint32
	pt      struct{ x, y int32 }
}

// WindowsKeySource installs a low-level keyboard hook and runs the matcher
// and debounce gate inside the hook callback. The callback only updates
// matcher state and does a non-blocking channel send; anything slower
// would stall input delivery system-wide and risk the hook being
// deregistered.
type WindowsKeySource struct {
	mu          sync.Mutex
	matcher     *hotkey.Matcher
	gate        *hotkey.Gate
	activations chan struct{}
	hook        uintptr
	done        chan struct{}
}

// NewKeySource creates the Windows hotkey event source.
func NewKeySource() KeySource {
	return &WindowsKeySource{}
}

// Listen starts watching for the given hotkey spec. Activations arrive on
// the returned channel in key-event order; if the consumer lags, extra
// pulses are dropped rather than blocking the hook.
func (s *WindowsKeySource) Listen(ctx context.Context, spec hotkey.Spec) (<-chan struct{}, error) {
	if hotkey.IsModifier(spec.KeyCode) {
		return nil, fmt.Errorf("hotkey key code %#x is a modifier", spec.KeyCode)
	}

	s.mu.Lock()
	s.matcher = hotkey.NewMatcher(spec)
	s.gate = hotkey.NewGate(hotkey.DefaultCooldown)
	s.activations = make(chan struct{}, 10)
	s.done = make(chan struct{})
	s.mu.Unlock()

	// Start hook in a goroutine
	errCh := make(chan error, 1)
	go s.runHook(errCh)

	// Wait for hook to be installed or error
	select {
	case err := <-errCh:
		if err != nil {
			return nil, err
		}
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	// Monitor context cancellation
	go func() {
		<-ctx.Done()
		close(s.done)
		if s.hook != 0 {
			unhookWindowsHookEx.Call(s.hook)
		}
	}()

	return s.activations, nil
}

func (s *WindowsKeySource) runHook(errCh chan<- error) {
	// The hook lives and dies with this OS thread.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	hookProc := func(nCode int32, wParam uintptr, lParam uintptr) uintptr {
		if nCode >= 0 {
			kb := (*kbdllhookstruct)(unsafe.Pointer(lParam))
			s.handleKeyEvent(wParam, kb)
		}
		r, _, _ := callNextHookEx.Call(0, uintptr(nCode), wParam, lParam)
		return r
	}

	hook, _, err := setWindowsHookEx.Call(
		whKeyboardLL,
		windows.NewCallback(hookProc),
		0,
		0,
	)

	if hook == 0 {
		errCh <- fmt.Errorf("SetWindowsHookEx failed: %w", err)
		return
	}

	s.mu.Lock()
	s.hook = hook
	s.mu.Unlock()

	errCh <- nil

	// Message loop
	var m msg
	for {
		select {
		case <-s.done:
			return
		default:
			// Non-blocking peek
			r, _, _ := peekMessage.Call(
				uintptr(unsafe.Pointer(&m)),
				0,
				0,
				0,
				pmRemove,
			)
			if r != 0 {
				// Process message if available
				continue
			}
			// Small sleep to prevent busy loop
			runtime.Gosched()
		}
	}
}

// handleKeyEvent runs on the OS input thread. It must return quickly and
// never block.
func (s *WindowsKeySource) handleKeyEvent(wParam uintptr, kb *kbdllhookstruct) {
	tr := hotkey.Up
	if wParam == wmKeydown || wParam == wmSyskeydown {
		tr = hotkey.Down
	}

	ev := hotkey.KeyEvent{
		KeyCode:    int(kb.vkCode),
		Transition: tr,
		Time:       time.Now(),
	}

	if !s.matcher.Match(ev) || !s.gate.Allow(ev.Time) {
		return
	}

	select {
	case s.activations <- struct{}{}:
	default:
	}
}
