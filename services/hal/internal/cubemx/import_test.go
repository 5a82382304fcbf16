package cubemx

import (
	"errors"
	"os"
	"strings"
	"testing"

	"mlxio-go/services/hal/internal/halerr"
	"mlxio-go/services/hal/internal/pinmux"
	"mlxio-go/services/hal/internal/platform/boards"
	"mlxio-go/types"

	"periph.io/x/conn/v3/gpio"
)

func importTestdata(t *testing.T) *Result {
	t.Helper()
	h, err := os.Open("testdata/main.h")
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()
	c, err := os.Open("testdata/gpio.c")
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	res, err := Import("mlx_io_cubemx", h, c)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	return res
}

func TestImport_Clocks(t *testing.T) {
	res := importTestdata(t)
	want := []types.Port{types.PortC, types.PortD, types.PortB, types.PortE, types.PortA, types.PortH}
	if len(res.Clocks) != len(want) {
		t.Fatalf("clocks=%v", res.Clocks)
	}
	for i := range want {
		if res.Clocks[i] != want[i] {
			t.Fatalf("clocks=%v want %v", res.Clocks, want)
		}
	}
}

func TestImport_Descriptors(t *testing.T) {
	res := importTestdata(t)
	byName := map[string]types.PinDesc{}
	for _, d := range res.Board.Pins {
		byName[d.Name] = d
	}
	cases := []struct {
		name    string
		label   string
		mode    types.Mode
		initial gpio.Level
	}{
		{"PS_EN", "PE4", types.ModeOutput, gpio.Low},
		{"MCU_LED_R", "PE10", types.ModeOutput, gpio.High},
		{"CS0", "PA4", types.ModeOutput, gpio.High},
		{"SPI2_CS0", "PB14", types.ModeOutput, gpio.Low},
		{"BOOT", "PC13", types.ModeInput, gpio.Low},
		{"DIR_4", "PD4", types.ModeAnalog, gpio.Low},
		{"PD7", "PD7", types.ModeAnalog, gpio.Low},
		{"SPI2_MISO", "PC2", types.ModePeripheral, gpio.Low},
	}
	for _, tc := range cases {
		d, ok := byName[tc.name]
		if !ok {
			t.Fatalf("%s missing", tc.name)
		}
		if d.Label() != tc.label || d.Mode != tc.mode || d.Initial != tc.initial {
			t.Fatalf("%s = %s %s %v", tc.name, d.Label(), d.Mode, d.Initial)
		}
	}
	if o := byName["SPI2_MISO"].Owner; o != "spi2" {
		t.Fatalf("SPI2_MISO owner %q", o)
	}
	if err := pinmux.Validate(res.Board); err != nil {
		t.Fatalf("imported board invalid: %v", err)
	}
}

func TestImport_MatchesCompiledTable(t *testing.T) {
	res := importTestdata(t)
	ms, err := pinmux.Diff(boards.MelexisIO, res.Board)
	if err != nil {
		t.Fatal(err)
	}
	for _, m := range ms {
		t.Errorf("%s %s: want %q got %q", m.Label, m.Field, m.Want, m.Got)
	}
	// The compiled plan clocks ports in the same order the generator does.
	p, err := pinmux.BuildPlan(boards.MelexisIO)
	if err != nil {
		t.Fatal(err)
	}
	for i, port := range res.Clocks {
		if p.Clocks[i] != port {
			t.Fatalf("clock %d: plan GPIO%s, generated GPIO%s", i, p.Clocks[i], port)
		}
	}
}

const header = `
#define LED_Pin GPIO_PIN_5
#define LED_GPIO_Port GPIOA /* user LED */
#define BTN_Pin GPIO_PIN_13
#define BTN_GPIO_Port GPIOC
`

func TestImport_Aliases(t *testing.T) {
	src := `
void MX_GPIO_Init(void)
{
  GPIO_InitTypeDef GPIO_InitStruct = {0};
  __HAL_RCC_GPIOA_CLK_ENABLE();
  __HAL_RCC_GPIOC_CLK_ENABLE();
  HAL_GPIO_WritePin(LED_GPIO_Port, LED_Pin, GPIO_PIN_SET);
  GPIO_InitStruct.Pin = LED_Pin;
  GPIO_InitStruct.Mode = GPIO_MODE_OUTPUT_PP;
  GPIO_InitStruct.Pull = GPIO_NOPULL;
  GPIO_InitStruct.Speed = GPIO_SPEED_FREQ_HIGH;
  HAL_GPIO_Init(LED_GPIO_Port, &GPIO_InitStruct);
  GPIO_InitStruct.Pin = BTN_Pin;
  GPIO_InitStruct.Mode = GPIO_MODE_INPUT;
  GPIO_InitStruct.Pull = GPIO_PULLUP;
  HAL_GPIO_Init(BTN_GPIO_Port, &GPIO_InitStruct);
}
`
	res, err := Import("nucleo", strings.NewReader(header), strings.NewReader(src))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	pins := res.Board.Pins
	if len(pins) != 2 {
		t.Fatalf("pins=%+v", pins)
	}
	led, btn := pins[0], pins[1]
	if led.Name != "LED" || led.Speed != types.SpeedHigh || led.Initial != gpio.High {
		t.Fatalf("led=%+v", led)
	}
	if btn.Name != "BTN" || btn.Pull != gpio.PullUp || btn.Port != types.PortC {
		t.Fatalf("btn=%+v", btn)
	}
	out := GoTable(pins)
	want := "\ttypes.PinDesc{Name: \"LED\", Port: types.PortA, Num: 5, Mode: types.ModeOutput, Pull: gpio.Float, Speed: types.SpeedHigh, Initial: gpio.High},\n" +
		"\tinput(\"BTN\", types.PortC, 13, gpio.PullUp),\n"
	if out != want {
		t.Fatalf("GoTable:\n%s\nwant:\n%s", out, want)
	}
}

func TestImport_Rejects(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want error
	}{
		{"alternate function", `
  GPIO_InitStruct.Pin = LED_Pin;
  GPIO_InitStruct.Mode = GPIO_MODE_AF_PP;
  GPIO_InitStruct.Pull = GPIO_NOPULL;
  HAL_GPIO_Init(GPIOA, &GPIO_InitStruct);`, halerr.ErrUnsupported},
		{"configured twice", `
  GPIO_InitStruct.Pin = LED_Pin;
  GPIO_InitStruct.Mode = GPIO_MODE_ANALOG;
  GPIO_InitStruct.Pull = GPIO_NOPULL;
  HAL_GPIO_Init(GPIOA, &GPIO_InitStruct);
  HAL_GPIO_Init(GPIOA, &GPIO_InitStruct);`, halerr.ErrPinConflict},
		{"unknown port", `HAL_GPIO_WritePin(GPIOZ, LED_Pin, GPIO_PIN_SET);`, halerr.ErrUnknownPort},
		{"unknown pin", `HAL_GPIO_WritePin(GPIOA, GPIO_PIN_16, GPIO_PIN_SET);`, halerr.ErrUnknownPin},
		{"syntax", `HAL_GPIO_Init(GPIOA, GPIO_InitStruct);`, halerr.ErrParse},
	}
	for _, tc := range cases {
		_, err := Import("bad", strings.NewReader(header), strings.NewReader(tc.src))
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: got %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestGoTable_KeepsOutputPullAndSpeed(t *testing.T) {
	src := `
  HAL_GPIO_WritePin(GPIOA, LED_Pin, GPIO_PIN_SET);
  GPIO_InitStruct.Pin = LED_Pin;
  GPIO_InitStruct.Mode = GPIO_MODE_OUTPUT_PP;
  GPIO_InitStruct.Pull = GPIO_PULLUP;
  GPIO_InitStruct.Speed = GPIO_SPEED_FREQ_HIGH;
  HAL_GPIO_Init(GPIOA, &GPIO_InitStruct);
  GPIO_InitStruct.Pin = GPIO_PIN_6;
  GPIO_InitStruct.Mode = GPIO_MODE_OUTPUT_PP;
  GPIO_InitStruct.Pull = GPIO_NOPULL;
  GPIO_InitStruct.Speed = GPIO_SPEED_FREQ_LOW;
  HAL_GPIO_Init(GPIOA, &GPIO_InitStruct);`
	res, err := Import("pulled", strings.NewReader(header), strings.NewReader(src))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	led := res.Board.Pins[0]
	if led.Pull != gpio.PullUp || led.Speed != types.SpeedHigh {
		t.Fatalf("led=%+v", led)
	}
	want := "\ttypes.PinDesc{Name: \"LED\", Port: types.PortA, Num: 5, Mode: types.ModeOutput, Pull: gpio.PullUp, Speed: types.SpeedHigh, Initial: gpio.High},\n" +
		"\toutput(\"PA6\", types.PortA, 6, gpio.Low),\n"
	if got := GoTable(res.Board.Pins); got != want {
		t.Fatalf("GoTable:\n%s\nwant:\n%s", got, want)
	}
}
