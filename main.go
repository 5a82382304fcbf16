package main

import (
	"time"

	"mlxio-go/services/hal"
)

// Heartbeat LED per board; the first one present in the table is used.
var heartbeatLEDs = []string{"MCU_LED_G", "LED_GREEN"}

func main() {
	// Pins first: nothing may drive a chip select or supply switch before
	// its boot level is latched.
	hal.InitializePins()

	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	println("boot")

	var led *hal.Line
	for _, name := range heartbeatLEDs {
		if l, err := hal.MustPins().Output(name); err == nil {
			led = l
			break
		}
	}

	tick := time.NewTicker(1 * time.Second)
	defer tick.Stop()

	for t := range tick.C {
		if led != nil {
			_ = led.Set(!led.Level())
		}
		println(t.Format("15:04:05"), "Heartbeat")
	}
}
