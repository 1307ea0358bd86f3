package hal

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ScriptEvent is a key event due on a given tick.
type ScriptEvent struct {
	Tick  uint64
	Event KeyEvent
}

// Script is a tick-ordered list of key events for headless runs.
type Script []ScriptEvent

// Len is the number of ticks the script spans, including one tick after
// the last event so its effect is observed.
func (s Script) Len() uint64 {
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1].Tick + 1
}

var specialNames = map[string]KeyCode{
	"up":     KeyUp,
	"down":   KeyDown,
	"left":   KeyLeft,
	"right":  KeyRight,
	"esc":    KeyEscape,
	"escape": KeyEscape,
}

// ParseScript reads a comma-separated list of "key[:ticks]" items. Each item
// presses key, holds it for ticks (default 1) and releases it; items run one
// after another. key is a single character or up, down, left, right, esc.
// An item of two or more digits ("20") waits that many ticks.
//
//	w:30,right:10,f,2
func ParseScript(s string) (Script, error) {
	var out Script
	var tick uint64
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}

		if n, err := strconv.ParseUint(item, 10, 32); err == nil && len(item) > 1 {
			tick += n
			continue
		}

		name, hold := item, uint64(1)
		if i := strings.LastIndexByte(item, ':'); i > 0 {
			n, err := strconv.ParseUint(item[i+1:], 10, 32)
			if err != nil || n == 0 {
				return nil, fmt.Errorf("script: bad hold in %q", item)
			}
			name, hold = item[:i], n
		}

		var ev KeyEvent
		if code, ok := specialNames[strings.ToLower(name)]; ok {
			ev.Code = code
		} else if utf8.RuneCountInString(name) == 1 {
			ev.Rune, _ = utf8.DecodeRuneInString(name)
		} else {
			return nil, fmt.Errorf("script: unknown key %q", name)
		}

		down, up := ev, ev
		down.Press = true
		out = append(out, ScriptEvent{Tick: tick, Event: down}, ScriptEvent{Tick: tick + hold, Event: up})
		tick += hold
	}
	return out, nil
}
