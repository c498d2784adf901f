package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"notejump/internal/game"
)

func main() {
	settingsPath := flag.String("settings", "notejump.yaml", "path to the settings file")
	list := flag.Bool("list", false, "print the level table and exit")
	flag.Parse()

	if *list {
		for _, lv := range game.Levels() {
			pro := ""
			if lv.Pro {
				pro = " [pro]"
			}
			fmt.Printf("%d. %s%s — %.0f bpm, %.0fs, %d sounds: %s\n",
				lv.ID, lv.Name, pro, lv.BPM, lv.Duration, lv.RequiredSounds, lv.Description)
		}
		return
	}

	cfg, err := game.LoadSettings(*settingsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "settings: %v\n", err)
		os.Exit(1)
	}

	// Seed from environment or clock; spawn sequences vary per run.
	seed := uint64(time.Now().UnixNano())
	if s := os.Getenv("NOTEJUMP_SEED"); s != "" {
		if v, err := strconv.ParseUint(s, 10, 64); err == nil {
			seed = v
		}
	}

	if err := game.RunDesktop(cfg, seed); err != nil {
		fmt.Fprintf(os.Stderr, "notejump: %v\n", err)
		os.Exit(1)
	}
}
