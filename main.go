// main.go - Main entry point for the Cosmac8 Virtual Machine

/*
Cosmac8 - A CHIP-8 virtual machine

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/Cosmac8
License: GPLv3 or later
*/

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
)

func boilerPlate() {
	fmt.Println("\nCosmac8 - A CHIP-8 virtual machine")
	fmt.Println("(c) 2024 - 2026 Zayn Otley")
	fmt.Println("https://github.com/IntuitionAmiga/Cosmac8")
	fmt.Println("License: GPLv3 or later")
}

func main() {
	var (
		scale    int
		cycles   int
		terminal bool
		mute     bool
	)

	flagSet := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.IntVar(&scale, "scale", 12, "Window scale factor (pixels per CHIP-8 pixel)")
	flagSet.IntVar(&cycles, "cycles", DEFAULT_CYCLES_PER_FRAME, "CPU cycles per 60Hz frame")
	flagSet.BoolVar(&terminal, "terminal", false, "Render into the terminal instead of a window")
	flagSet.BoolVar(&mute, "mute", false, "Disable audio output")

	flagSet.Usage = func() {
		flagSet.SetOutput(os.Stdout)
		fmt.Println("Usage: ./cosmac8 [-scale 12] [-cycles 10] [-terminal] [-mute] rom_file")
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			flagSet.Usage()
			os.Exit(0)
		}
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	romPath := flagSet.Arg(0)
	if romPath == "" {
		flagSet.Usage()
		os.Exit(1)
	}
	if scale < 1 || scale > 64 {
		fmt.Println("Error: -scale must be between 1 and 64")
		os.Exit(1)
	}

	if !terminal {
		boilerPlate()
	}

	beeper := NewBeeper(SAMPLE_RATE)
	var audio *TonePlayer
	if !mute {
		var err error
		audio, err = NewTonePlayer(beeper, SAMPLE_RATE)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Audio unavailable, continuing silent: %v\n", err)
			audio = nil
		}
	}

	backend := VIDEO_BACKEND_EBITEN
	if terminal {
		backend = VIDEO_BACKEND_TERMINAL
	}
	video, err := NewVideoOutput(backend, scale)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize video: %v\n", err)
		os.Exit(1)
	}

	machine := NewMachine(video, beeper, audio, cycles)
	if err := machine.LoadROM(romPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ROM: %v\n", err)
		os.Exit(1)
	}

	if err := video.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start video: %v\n", err)
		os.Exit(2)
	}

	machine.Run()
	machine.Shutdown()
}
