//go:build stm32f4

package platform

import (
	"device/stm32"

	"mlxio-go/services/hal/internal/halerr"
	"mlxio-go/types"

	"periph.io/x/conn/v3/gpio"
)

// DefaultBackend programs the STM32F4 RCC and GPIO registers directly.
func DefaultBackend() Backend { return stm32Backend{} }

type stm32Backend struct{}

func bankOf(p types.Port) (*stm32.GPIO_Type, uint32, bool) {
	switch p {
	case types.PortA:
		return stm32.GPIOA, stm32.RCC_AHB1ENR_GPIOAEN, true
	case types.PortB:
		return stm32.GPIOB, stm32.RCC_AHB1ENR_GPIOBEN, true
	case types.PortC:
		return stm32.GPIOC, stm32.RCC_AHB1ENR_GPIOCEN, true
	case types.PortD:
		return stm32.GPIOD, stm32.RCC_AHB1ENR_GPIODEN, true
	case types.PortE:
		return stm32.GPIOE, stm32.RCC_AHB1ENR_GPIOEEN, true
	case types.PortH:
		return stm32.GPIOH, stm32.RCC_AHB1ENR_GPIOHEN, true
	default:
		return nil, 0, false
	}
}

func (stm32Backend) EnableClock(p types.Port) error {
	_, en, ok := bankOf(p)
	if !ok {
		return halerr.ErrUnknownPort
	}
	stm32.RCC.AHB1ENR.SetBits(en)
	// Read back so the clock is running before the first bank access.
	_ = stm32.RCC.AHB1ENR.Get()
	return nil
}

func clocked(p types.Port) (*stm32.GPIO_Type, error) {
	g, en, ok := bankOf(p)
	if !ok {
		return nil, halerr.ErrUnknownPort
	}
	if !stm32.RCC.AHB1ENR.HasBits(en) {
		return nil, halerr.ErrClockDisabled
	}
	return g, nil
}

func (stm32Backend) WriteLevel(p types.Port, m types.Mask, l gpio.Level) error {
	g, err := clocked(p)
	if err != nil {
		return err
	}
	// BSRR is write-only and atomic: low half sets, high half resets.
	if l {
		g.BSRR.Set(uint32(m))
	} else {
		g.BSRR.Set(uint32(m) << 16)
	}
	return nil
}

func (stm32Backend) Configure(p types.Port, m types.Mask, c types.PinConfig) error {
	g, err := clocked(p)
	if err != nil {
		return err
	}
	w, err := encode(c)
	if err != nil {
		return err
	}
	if w.output {
		g.OSPEEDR.Set(put2(g.OSPEEDR.Get(), m, w.speed))
		g.OTYPER.ClearBits(uint32(m))
	}
	g.PUPDR.Set(put2(g.PUPDR.Get(), m, w.pupd))
	g.MODER.Set(put2(g.MODER.Get(), m, w.moder))
	return nil
}
