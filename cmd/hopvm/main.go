// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"bufio"
	"errors"
	"flag"
	"log"
	"os"

	"github.com/ezrec/hopvm/config"
	"github.com/ezrec/hopvm/cpu"
	"github.com/ezrec/hopvm/emulator"
	"github.com/ezrec/hopvm/image"
)

func main() {
	var compile string
	var load string
	var save string
	var conf string
	var memory int
	var output string
	var verbose bool

	flag.StringVar(&compile, "c", "", ".hop file to assemble")
	flag.StringVar(&load, "l", "", ".hopi image to load")
	flag.StringVar(&save, "s", "", "Save image to file, do not execute")
	flag.StringVar(&conf, "config", "", "hopvm.toml configuration file")
	flag.IntVar(&memory, "m", 0, "Memory size in words")
	flag.StringVar(&output, "o", "", "Output file")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(compile) != 0 && len(load) != 0 {
		log.Fatalf("%v: -c and -l are exclusive", os.Args[0])
	}

	cfg := config.Default()
	if len(conf) != 0 {
		var err error
		cfg, err = config.Load(conf)
		if err != nil {
			log.Fatalf("%v: %v", conf, err)
		}
	}
	if memory != 0 {
		cfg.Machine.Memory = memory
	}
	if len(output) != 0 {
		cfg.Output.Path = output
	}
	if verbose {
		cfg.Machine.Verbose = true
		cfg.Assembler.Verbose = true
	}
	err := cfg.Validate()
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	emu := emulator.NewEmulator(cfg.Machine.Memory)
	emu.Verbose = cfg.Machine.Verbose

	var img *image.Image

	switch {
	case len(compile) != 0:
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm := &cpu.Assembler{Verbose: cfg.Assembler.Verbose}
		for key, value := range emu.Defines() {
			asm.Predefine(key, value)
		}
		for key, value := range cfg.Assembler.Defines {
			asm.Predefine(key, value)
		}
		prog, err := asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		emu.Program = prog
		img = image.FromProgram(prog)

		if len(save) != 0 {
			ouf, err := os.Create(save)
			if err != nil {
				log.Fatalf("%v: %v", save, err)
			}
			defer ouf.Close()
			err = image.Save(ouf, img)
			if err != nil {
				log.Fatalf("%v: %v", save, err)
			}
			return
		}
	case len(load) != 0:
		inf, err := os.Open(load)
		if err != nil {
			log.Fatalf("%v: %v", load, err)
		}
		defer inf.Close()

		img, err = image.Load(inf)
		if err != nil {
			log.Fatalf("%v: %v", load, err)
		}
	default:
		log.Fatalf("%v: one of -c or -l is required", os.Args[0])
	}

	if cfg.Output.Path == "-" {
		emu.Tape.Output = bufio.NewWriter(os.Stdout)
	} else {
		ouf, err := os.Create(cfg.Output.Path)
		if err != nil {
			log.Fatalf("%v: %v", cfg.Output.Path, err)
		}
		defer ouf.Close()
		emu.Tape.Output = bufio.NewWriter(ouf)
	}

	err = emu.Load(img.Words)
	if err != nil {
		log.Fatalf("load: %v", err)
	}

	err = emu.Run()
	if err != nil {
		var fault *cpu.Fault
		if errors.As(err, &fault) {
			name, offset, ok := img.Locate(int(fault.Pc))
			if ok {
				log.Printf("fault: %v at pc %d (%v+%d)", fault.Kind(), fault.Pc, name, offset)
			} else {
				log.Printf("fault: %v at pc %d", fault.Kind(), fault.Pc)
			}
		}
		log.Fatal(err)
	}
}
