//go:build pcap
// +build pcap

// Command pcap-replay feeds sensor readings captured on the wire back
// through the distance model. It extracts UDP payloads from a pcap
// file, parses each newline-delimited reading, and prints the model's
// consumer views once the capture is exhausted.
//
// Build with the 'pcap' tag; the gopacket pcap bindings need libpcap.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcap"

	"github.com/banshee-data/proximity/internal/prox"
	"github.com/banshee-data/proximity/internal/scanner"
)

var (
	pcapFile = flag.String("file", "", "PCAP file to replay")
	udpPort  = flag.Int("port", 2368, "UDP port carrying sensor readings")
	maxRange = flag.Float64("max-range", 100, "Sensor max range in meters")
)

func main() {
	flag.Parse()
	if *pcapFile == "" {
		log.Fatal("-file is required")
	}

	backend, err := prox.NewBackend(&prox.Frontend{}, prox.Config{
		MaxRangeMeters: float32(*maxRange),
	})
	if err != nil {
		log.Fatalf("failed to build distance model: %v", err)
	}

	handle, err := pcap.OpenOffline(*pcapFile)
	if err != nil {
		log.Fatalf("failed to open PCAP file %s: %v", *pcapFile, err)
	}
	defer handle.Close()

	filterStr := fmt.Sprintf("udp port %d", *udpPort)
	if err := handle.SetBPFFilter(filterStr); err != nil {
		log.Fatalf("failed to set BPF filter %q: %v", filterStr, err)
	}

	var packets, lines, parseFails, samples int
	packetSource := gopacket.NewPacketSource(handle, handle.LinkType())
	for packet := range packetSource.Packets() {
		udpLayer := packet.Layer(layers.LayerTypeUDP)
		if udpLayer == nil {
			continue
		}
		udp, ok := udpLayer.(*layers.UDP)
		if !ok || len(udp.Payload) == 0 {
			continue
		}
		packets++

		for _, line := range strings.Split(string(udp.Payload), "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			lines++
			sample, err := scanner.ParseLine(line)
			if err != nil {
				parseFails++
				continue
			}
			if sample.NoReturn || sample.DistanceM > backend.MaxRange() {
				if sector, ok := backend.ConvertAngleToSector(sample.AngleDeg); ok {
					backend.InvalidateSector(sector)
				}
				continue
			}
			if backend.RecordSample(sample.AngleDeg, sample.DistanceM) {
				samples++
			}
		}
	}
	backend.SetStatus(prox.StatusGood)

	fmt.Printf("replayed %d packets: %d lines, %d samples, %d parse failures\n",
		packets, lines, samples, parseFails)

	if angle, dist, ok := backend.ClosestObject(); ok {
		fmt.Printf("closest object: %.1f° at %.2fm\n", angle, dist)
	} else {
		fmt.Println("no valid readings in capture")
	}

	if distances, ok := backend.Distances(); ok {
		for i := 0; i < prox.NumOrientations; i++ {
			fmt.Printf("  orientation %d (%3d°): %.2fm\n",
				distances.Orientation[i], i*45, distances.Distance[i])
		}
	}

	if points, ok := backend.BoundaryPoints(); ok {
		fmt.Println("boundary polygon:")
		for _, pt := range points {
			fmt.Printf("  (%.2f, %.2f)\n", pt.X, pt.Y)
		}
	}
}
