package main

import (
	"fmt"
	"time"

	"github.com/flk92/pcem/sdk/contracts"
	"github.com/flk92/pcem/sdk/midiout"
)

func main() {
	// Create the MIDI output client with default options: platform host
	// adapters, zap logging, and settings defaults (device index 0).
	out, err := midiout.New(
		contracts.WithLogLevel(contracts.InfoLevel),
		contracts.WithClientName("PCem example"),
	)
	if err != nil {
		fmt.Println("Error creating MIDI output client:", err)
		return
	}

	// List every selectable destination: raw hardware ports first, then
	// sequencer ports.
	count := out.DeviceCount()
	fmt.Printf("%d MIDI output devices:\n", count)
	for i := 0; i < count; i++ {
		name, err := out.DeviceName(i)
		if err != nil {
			continue
		}
		fmt.Printf("  %d: %s\n", i, name)
	}

	// Open the configured device and play a short note the way the
	// emulated sound chip would: one protocol byte at a time.
	out.Init()
	defer out.Close()

	for _, b := range []byte{0x90, 60, 100} { // note on, middle C
		out.Write(b)
	}
	time.Sleep(500 * time.Millisecond)
	for _, b := range []byte{0x80, 60, 0} { // note off
		out.Write(b)
	}
}
