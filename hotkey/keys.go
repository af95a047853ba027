package hotkey

import "fmt"

// Windows virtual key codes for modifier keys. The low-level hook reports
// left/right variants; the generic codes show up via GetAsyncKeyState and
// in configs.
const (
	vkShift  = 0x10
	vkCtrl   = 0x11
	vkAlt    = 0x12
	vkLShift = 0xA0
	vkRShift = 0xA1
	vkLCtrl  = 0xA2
	vkRCtrl  = 0xA3
	vkLAlt   = 0xA4
	vkRAlt   = 0xA5
)

type modifier int

const (
	modCtrl modifier = iota
	modAlt
	modShift
)

// modifierBit maps a virtual key code to the modifier it represents.
func modifierBit(vk int) (modifier, bool) {
	switch vk {
	case vkCtrl, vkLCtrl, vkRCtrl:
		return modCtrl, true
	case vkAlt, vkLAlt, vkRAlt:
		return modAlt, true
	case vkShift, vkLShift, vkRShift:
		return modShift, true
	}
	return 0, false
}

// IsModifier reports whether vk is a modifier key. A Spec's KeyCode must
// never be one.
func IsModifier(vk int) bool {
	_, ok := modifierBit(vk)
	return ok
}

var keyCodes = map[string]int{
	"a": 0x41, "b": 0x42, "c": 0x43, "d": 0x44, "e": 0x45,
	"f": 0x46, "g": 0x47, "h": 0x48, "i": 0x49, "j": 0x4A,
	"k": 0x4B, "l": 0x4C, "m": 0x4D, "n": 0x4E, "o": 0x4F,
	"p": 0x50, "q": 0x51, "r": 0x52, "s": 0x53, "t": 0x54,
	"u": 0x55, "v": 0x56, "w": 0x57, "x": 0x58, "y": 0x59, "z": 0x5A,
	"0": 0x30, "1": 0x31, "2": 0x32, "3": 0x33, "4": 0x34,
	"5": 0x35, "6": 0x36, "7": 0x37, "8": 0x38, "9": 0x39,
	"f1": 0x70, "f2": 0x71, "f3": 0x72, "f4": 0x73,
	"f5": 0x74, "f6": 0x75, "f7": 0x76, "f8": 0x77,
	"f9": 0x78, "f10": 0x79, "f11": 0x7A, "f12": 0x7B,
	"space": 0x20, "enter": 0x0D, "esc": 0x1B,
	"tab": 0x09, "backspace": 0x08,
}

// KeyCode returns the virtual key code for a key name as used in config
// combo strings.
func KeyCode(key string) (int, error) {
	if code, ok := keyCodes[key]; ok {
		return code, nil
	}
	return 0, fmt.Errorf("unknown key: %s", key)
}

// KeyName returns the config name for a virtual key code, or a hex
// placeholder for codes outside the table.
func KeyName(code int) string {
	for name, c := range keyCodes {
		if c == code {
			return name
		}
	}
	return fmt.Sprintf("0x%X", code)
}
