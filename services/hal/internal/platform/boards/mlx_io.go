package boards

import (
	"mlxio-go/types"

	"periph.io/x/conn/v3/gpio"
)

// MelexisIO is the Melexis IO interface board (STM32F412).
//
// Entries keep schematic net order; clocks and level presets are derived
// from the order of first appearance. Chip selects idle high except
// SPI2_CS0, which the schematic holds low. The RGB LED is active low and
// boots dark. PS_EN/PS_SEL keep the sensor supply off until the
// application enables it.
var MelexisIO = &Board{
	Name: "mlx_io",
	MCU:  "STM32F412",
	Bonded: [types.NumPorts]types.Mask{
		types.PortA: allPins,
		types.PortB: allPins &^ pins(11),
		types.PortC: pins(0, 2, 3, 4, 6, 7, 8, 9, 12, 13, 14, 15),
		types.PortD: pins(0, 1, 2, 4, 6, 7, 11, 12, 13),
		types.PortE: pins(2, 3, 4, 7, 8, 9, 10),
		types.PortH: pins(0, 1),
	},
	Pins: []types.PinDesc{
		periph("I2C2_SDA", types.PortC, 12, "i2c2"),
		analog("DIR_4", types.PortD, 4),
		periph("SYS_SWO", types.PortB, 3, "sys"),
		periph("SPI_MOSI", types.PortB, 5, "spi1"),
		output("PS_EN", types.PortE, 4, gpio.Low),
		analog("DIR_1", types.PortD, 0),
		analog("DIR_5", types.PortD, 6),
		periph("USB_N", types.PortA, 11, "usb_otg_fs"),
		periph("SYS_SWCLK", types.PortA, 14, "swd"),
		analog("DIR_2", types.PortD, 1),
		input("BOOT", types.PortC, 13, gpio.Float),
		periph("SYS_SWDIO", types.PortA, 13, "swd"),
		analog("DIR_3", types.PortD, 2),
		periph("USB_P", types.PortA, 12, "usb_otg_fs"),
		periph("UART_VCP_RX", types.PortA, 3, "usart2"),
		periph("UART_VCP_TX", types.PortA, 2, "usart2"),
		periph("SPI2_MISO", types.PortC, 2, "spi2"),
		periph("I2C_SCL", types.PortC, 6, "fmpi2c1"),
		periph("I2C_SDA", types.PortC, 7, "fmpi2c1"),
		periph("SPI2_CLK", types.PortA, 9, "spi2"),
		output("CS1", types.PortB, 0, gpio.High),
		periph("SPI_CLK", types.PortA, 5, "spi1"),
		periph("SPI2_MOSI", types.PortC, 3, "spi2"),
		output("MCU_LED_G", types.PortE, 9, gpio.High),
		periph("SPI_MISO", types.PortA, 6, "spi1"),
		periph("PIN_A1", types.PortA, 1, "adc1"),
		periph("I2C2_SCL", types.PortB, 10, "i2c2"),
		output("MCU_LED_B", types.PortE, 8, gpio.High),
		output("SPI2_CS1", types.PortB, 1, gpio.High),
		output("CS0", types.PortA, 4, gpio.High),
		output("SPI2_CS0", types.PortB, 14, gpio.Low),
		output("MCU_LED_R", types.PortE, 10, gpio.High),
		output("PS_SEL", types.PortE, 7, gpio.Low),
		periph("PIN_A0", types.PortA, 0, "adc1"),
		periph("RCC_OSC_IN", types.PortH, 0, "rcc"),
		periph("RCC_OSC_OUT", types.PortH, 1, "rcc"),
	},
}

func init() { Register(MelexisIO) }
