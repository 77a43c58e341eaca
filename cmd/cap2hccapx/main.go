// Command cap2hccapx converts a pcap capture into one or more hccapx
// binary handshake records, for use by wpacrack or other hccapx-aware
// tools. It does no cracking itself.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/lcalzada-xor/wpacrack/internal/adapters/capture"
	"github.com/lcalzada-xor/wpacrack/internal/adapters/hccapx"
)

func main() {
	in := flag.String("i", "", "Input pcap capture file")
	out := flag.String("o", "", "Output hccapx file")
	flag.Parse()

	if *in == "" || *out == "" {
		flag.Usage()
		os.Exit(2)
	}

	log.Printf("Reading capture: %s", *in)
	records, err := capture.WalkFile(*in)
	if err != nil {
		log.Fatalf("Failed to read capture: %v", err)
	}
	log.Printf("Found %d handshake(s)", len(records))

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("Failed to create output file: %v", err)
	}
	defer f.Close()

	for _, r := range records {
		buf, err := hccapx.Encode(r)
		if err != nil {
			log.Fatalf("Failed to encode record for %q: %v", r.ESSIDString(), err)
		}
		if _, err := f.Write(buf); err != nil {
			log.Fatalf("Failed to write record: %v", err)
		}
	}

	log.Printf("Wrote %d record(s) to %s", len(records), *out)
}
