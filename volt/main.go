package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/itohio/govolt/pkg/adc"
	"github.com/itohio/govolt/pkg/config"
	"github.com/itohio/govolt/pkg/indicator"
	"github.com/itohio/govolt/pkg/monitor"
	"github.com/itohio/govolt/pkg/report"
)

func main() {
	var (
		portFlag     = flag.String("p", "", "ADC serial port override (e.g., COM3 or /dev/ttyACM0)")
		outFlag      = flag.String("o", "", "Report output serial port (default: stdout)")
		configFlag   = flag.String("config", "config.yaml", "Configuration file path")
		simFlag      = flag.Bool("sim", false, "Use simulated ADC instead of serial port")
		durationFlag = flag.Duration("duration", 0, "Stop after this long (0 = run until interrupted)")
		listFlag     = flag.Bool("list-ports", false, "List available serial ports and exit")
	)
	flag.Parse()

	if *listFlag {
		listPorts()
		return
	}

	// Load configuration
	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Override ports if provided via command line
	if *portFlag != "" {
		cfg.ADC.Port = *portFlag
	}
	if *outFlag != "" {
		cfg.Serial.Port = *outFlag
	}

	// Select the ADC device
	var dev adc.Device
	if *simFlag || cfg.ADC.Port == "" {
		dev = adc.NewSim(&cfg.Sim)
		fmt.Println("Using simulated ADC")
	} else {
		ser := adc.NewSerial(cfg.ADC.Port, cfg.ADC.BaudRate)
		if err := ser.Connect(); err != nil {
			log.Fatalf("Failed to connect to %s: %v", cfg.ADC.Port, err)
		}
		defer ser.Close()
		dev = ser
		fmt.Printf("Connected to ADC on serial port: %s\n", cfg.ADC.Port)
	}

	// Select the heartbeat indicator
	var pin indicator.Pin
	if cfg.Indicator.Chip != "" {
		line, err := indicator.NewLine(cfg.Indicator.Chip, cfg.Indicator.Offset)
		if err != nil {
			log.Fatalf("Failed to request GPIO line %s:%d: %v", cfg.Indicator.Chip, cfg.Indicator.Offset, err)
		}
		defer line.Close()
		pin = line
		fmt.Printf("Heartbeat on GPIO %s:%d\n", cfg.Indicator.Chip, cfg.Indicator.Offset)
	} else {
		pin = &indicator.MemoryPin{}
	}

	// Select the report sink
	var sink report.Sink
	if cfg.Serial.Port != "" {
		out := report.NewSerialPort(cfg.Serial.Port, cfg.Serial.BaudRate)
		if err := out.Connect(); err != nil {
			log.Fatalf("Failed to connect to %s: %v", cfg.Serial.Port, err)
		}
		defer out.Close()
		sink = out
		fmt.Printf("Reporting to serial port: %s\n", cfg.Serial.Port)
	} else {
		sink = report.NewWriter(os.Stdout)
	}

	mon, err := monitor.New(cfg, dev, pin, sink)
	if err != nil {
		log.Fatalf("Failed to create monitor: %v", err)
	}

	// Give a freshly opened port a moment before sampling starts.
	time.Sleep(time.Second)
	fmt.Printf("Sampling every %v, press Ctrl+C to stop\n", mon.Period())

	if err := mon.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start monitor: %v", err)
	}

	// Wait for an interrupt or the configured duration
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	if *durationFlag > 0 {
		select {
		case <-sig:
		case <-time.After(*durationFlag):
		}
	} else {
		<-sig
	}

	mon.Stop()

	snap := mon.Stats()
	log.Printf("Stopped: %d alarms, %d reports, %d wakeups, %d read faults, %d indicator faults",
		snap.Fires, snap.Consumed, snap.Wakeups, snap.ReadFaults, snap.PinFaults)
}

// listPorts prints the serial ports visible on this host.
func listPorts() {
	ports, err := report.Ports()
	if err != nil {
		log.Fatalf("Failed to enumerate serial ports: %v", err)
	}
	if len(ports) == 0 {
		fmt.Println("No serial ports found")
		return
	}
	for _, name := range ports {
		fmt.Println(name)
	}
}
