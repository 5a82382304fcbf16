package boards

import (
	"mlxio-go/types"

	"periph.io/x/conn/v3/gpio"
)

// STM32F4Discovery is the STM32F407G-DISC1 kit (LQFP100).
var STM32F4Discovery = &Board{
	Name: "stm32f4disco",
	MCU:  "STM32F407VG",
	Bonded: [types.NumPorts]types.Mask{
		types.PortA: allPins,
		types.PortB: allPins,
		types.PortC: allPins,
		types.PortD: allPins,
		types.PortE: allPins,
		types.PortH: pins(0, 1),
	},
	Pins: []types.PinDesc{
		output("LED_GREEN", types.PortD, 12, gpio.Low),
		output("LED_ORANGE", types.PortD, 13, gpio.Low),
		output("LED_RED", types.PortD, 14, gpio.Low),
		output("LED_BLUE", types.PortD, 15, gpio.Low),

		// External pull-down on the board.
		input("BUTTON", types.PortA, 0, gpio.Float),

		output("MEMS_ACCEL_CS", types.PortE, 3, gpio.High),
		input("MEMS_ACCEL_INT1", types.PortE, 0, gpio.Float),
		input("MEMS_ACCEL_INT2", types.PortE, 1, gpio.Float),

		periph("UART_TX", types.PortA, 2, "usart2"),
		periph("UART_RX", types.PortA, 3, "usart2"),
		periph("SPI1_SCK", types.PortA, 5, "spi1"),
		periph("SPI1_SDI", types.PortA, 6, "spi1"),
		periph("SPI1_SDO", types.PortA, 7, "spi1"),
		periph("SYS_SWDIO", types.PortA, 13, "swd"),
		periph("SYS_SWCLK", types.PortA, 14, "swd"),
		periph("SYS_SWO", types.PortB, 3, "sys"),
		periph("RCC_OSC_IN", types.PortH, 0, "rcc"),
		periph("RCC_OSC_OUT", types.PortH, 1, "rcc"),
	},
}

func init() { Register(STM32F4Discovery) }
