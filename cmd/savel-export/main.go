package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vlehtola/savel"
	"github.com/vlehtola/savel/version"
)

func main() {
	rate := flag.Int("r", 44100, "Sample rate of the output file, in Hz.")
	stereo := flag.Bool("c", false, "Write a stereo file. Both channels carry the same signal.")
	outPath := flag.String("o", "", "Output file name. By default the input file name with a .wav extension.")
	levels := flag.Bool("p", false, "Print the peak and RMS levels of the mix to standard error.")
	versionFlag := flag.Bool("v", false, "Print version.")
	help := flag.Bool("h", false, "Show help.")
	flag.Usage = printUsage
	flag.Parse()
	if *versionFlag {
		fmt.Println(version.VersionOrHash)
		os.Exit(0)
	}
	if flag.NArg() != 1 || *help {
		flag.Usage()
		os.Exit(0)
	}
	input := flag.Arg(0)
	song, err := savel.ReadSongFile(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading song: %v\n", err)
		os.Exit(1)
	}
	if *levels {
		buffer, err := savel.Mix(song, *rate)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error mixing song: %v\n", err)
			os.Exit(1)
		}
		l := savel.Level(buffer)
		fmt.Fprintf(os.Stderr, "peak: %v, rms: %v\n", l.Peak, l.RMS)
	}
	path := *outPath
	if path == "" {
		path = strings.TrimSuffix(input, filepath.Ext(input)) + ".wav"
	}
	err = savel.Export(song, savel.WriteInfo{
		FilePath:   path,
		SampleRate: *rate,
		Stereo:     *stereo,
		Format:     savel.FormatWav,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error exporting song: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [flags] song.yml\n", os.Args[0])
	fmt.Fprintln(os.Stderr, "Renders a savel song file (YAML or JSON) into a 16-bit PCM .wav file.")
	flag.PrintDefaults()
}
