package main

import (
	"fmt"
	"os"
	"sync"
	"time"

	"golang.org/x/term"
)

// noteMap assigns MIDI notes to a QWERTY row, piano-style, for manual
// note-on/off testing without a MIDI controller (grounded on the
// teacher's terminal keyboard-routing host, generalised here from
// "echo typed characters" to "send a note-on for each key press").
var noteMap = map[byte]int{
	'z': 60, 'x': 62, 'c': 64, 'v': 65, 'b': 67, 'n': 69, 'm': 71,
	'a': 72, 's': 74, 'd': 76, 'f': 77, 'g': 79, 'h': 81, 'j': 83,
}

// keyboardReader puts stdin into raw mode and reads it one byte at a
// time, reporting each mapped key press once. A terminal reports no
// key-up, so no note-off is ever reported for a pressed key (grounded on
// terminal_host.go's raw-mode stdin read loop, golang.org/x/term
// MakeRaw/Restore).
type keyboardReader struct {
	fd       int
	oldState *term.State
	stopCh   chan struct{}
	done     chan struct{}
	once     sync.Once
}

func newKeyboardReader() *keyboardReader {
	return &keyboardReader{stopCh: make(chan struct{}), done: make(chan struct{})}
}

// start puts the terminal in raw mode and invokes onNote(midiNote) for
// every mapped key pressed until stop is called, 'q' or Ctrl-C is read,
// or reading stdin fails.
func (k *keyboardReader) start(onNote func(midiNote int)) error {
	k.fd = int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(k.fd)
	if err != nil {
		return fmt.Errorf("keyboard: failed to set raw mode: %w", err)
	}
	k.oldState = oldState

	go func() {
		defer close(k.done)
		buf := make([]byte, 1)
		for {
			select {
			case <-k.stopCh:
				return
			default:
			}
			n, err := os.Stdin.Read(buf)
			if n > 0 {
				if note, ok := noteMap[buf[0]]; ok {
					onNote(note)
				}
				if buf[0] == 3 || buf[0] == 'q' { // Ctrl-C or 'q' quits
					return
				}
			}
			if err != nil {
				return
			}
			time.Sleep(2 * time.Millisecond)
		}
	}()
	return nil
}

func (k *keyboardReader) stop() {
	k.once.Do(func() { close(k.stopCh) })
	<-k.done
	if k.oldState != nil {
		_ = term.Restore(k.fd, k.oldState)
	}
}
