// Command samplerdemo exercises the granular sampler core end to end
// from a terminal: it opens an oto audio output, reads note-on events
// from a QWERTY keyboard in raw mode, and redraws the latest published
// snapshot as ASCII bars. It is host/UI glue, not part of the core.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/aurelabs/grainforge"
)

func main() {
	sampleRate := flag.Int("samplerate", 48000, "audio sample rate in Hz")
	instances := flag.Int("instances", sampler.DefaultInstanceNum, "number of sampler instances")
	instanceIdx := flag.Int("instance", 0, "instance index driven by the keyboard")
	flag.Parse()

	s, reader := sampler.New(float32(*sampleRate), *instances)

	player, err := newOtoPlayer(*sampleRate)
	if err != nil {
		log.Fatalf("samplerdemo: failed to open audio output: %v", err)
	}
	defer player.close()
	player.start(s)

	s.Record(*instanceIdx)
	fmt.Printf("arming instance %d's record buffer for %d seconds (this demo has no live input wired, so it records silence)\n", *instanceIdx, sampler.BufferSecondsRecord)
	time.Sleep(sampler.BufferSecondsRecord * time.Second)

	s.SetDensity(*instanceIdx, 8)
	s.SetGrainLength(*instanceIdx, 0.25)
	s.SetLoopStart(*instanceIdx, 0)
	s.SetLoopLength(*instanceIdx, 1)

	kb := newKeyboardReader()
	if err := kb.start(func(note int) {
		s.NoteOn(note)
	}); err != nil {
		log.Fatalf("samplerdemo: %v", err)
	}
	defer kb.stop()

	fmt.Println("press z,x,c,v,b,n,m,a,s,d,f,g,h,j to play notes; q to quit")

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-kb.done:
			return
		case <-ticker.C:
		}
		snaps := reader.Read()
		if len(snaps) <= *instanceIdx {
			continue
		}
		drawBars(snaps[*instanceIdx].Bars[:], snaps[*instanceIdx].OutputPeak)
	}
}

func drawBars(bars []float32, peak float32) {
	var b strings.Builder
	for _, v := range bars {
		level := int(v * 8)
		if level > 7 {
			level = 7
		}
		b.WriteByte(" .:-=+*#"[level])
	}
	fmt.Fprintf(os.Stdout, "\r%s  peak=%.3f", b.String(), peak)
}
