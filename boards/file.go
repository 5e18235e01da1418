//go:build !stm32f4

package boards

import (
	"io"

	"gopkg.in/yaml.v3"

	"clocktree-go/clock"
	"clocktree-go/errcode"
)

const opLoad = "boards.load"

// File is the YAML form of a Board. Enumerations use their textual names
// ("pll", "hse", "div4", "hclk/8"). Omitted prescalers default to div1,
// PLLP to div2 and SysTick to hclk/8.
type File struct {
	Name  string `yaml:"name"`
	HSEHz uint32 `yaml:"hse_hz"`

	SysClk string `yaml:"sysclk"`
	PLL    struct {
		Source string `yaml:"source"`
		M      uint8  `yaml:"m"`
		N      uint16 `yaml:"n"`
		P      string `yaml:"p"`
		Q      uint8  `yaml:"q"`
	} `yaml:"pll"`

	AHB       string `yaml:"ahb"`
	APB1      string `yaml:"apb1"`
	APB2      string `yaml:"apb2"`
	TimPre    bool   `yaml:"timpre"`
	SysTick   string `yaml:"systick"`
	Overdrive bool   `yaml:"overdrive"`

	Enables struct {
		AHB1 uint32 `yaml:"ahb1"`
		AHB2 uint32 `yaml:"ahb2"`
		AHB3 uint32 `yaml:"ahb3"`
		APB1 uint32 `yaml:"apb1"`
		APB2 uint32 `yaml:"apb2"`
	} `yaml:"enables"`

	ConsoleBaud uint32 `yaml:"console_baud"`
}

// Load decodes one board from r. Unknown keys are rejected.
func Load(r io.Reader) (Board, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var f File
	if err := dec.Decode(&f); err != nil {
		return Board{}, &errcode.E{C: errcode.InvalidParams, Op: opLoad, Msg: "decode", Err: err}
	}
	return f.Board()
}

// Board converts f, resolving every name.
func (f *File) Board() (Board, error) {
	b := Board{
		Name:        f.Name,
		Chip:        clock.STM32F4,
		ConsoleBaud: f.ConsoleBaud,
	}
	if f.HSEHz != 0 {
		b.Chip.HSE = f.HSEHz
	}
	if b.ConsoleBaud == 0 {
		b.ConsoleBaud = defaultBaud
	}

	c := &b.Clock
	var err error
	if c.SysSource, err = clock.ParseClockSource(f.SysClk); err != nil {
		return Board{}, field("sysclk", err)
	}
	if c.PLLSource, err = clock.ParsePLLSource(f.PLL.Source); err != nil {
		return Board{}, field("pll.source", err)
	}
	if f.PLL.P != "" {
		if c.PLLP, err = clock.ParsePLLP(f.PLL.P); err != nil {
			return Board{}, field("pll.p", err)
		}
	}
	if c.AHB, err = clock.ParseAHBPrescaler(f.AHB); err != nil {
		return Board{}, field("ahb", err)
	}
	if c.APB1, err = clock.ParseAPBPrescaler(f.APB1); err != nil {
		return Board{}, field("apb1", err)
	}
	if c.APB2, err = clock.ParseAPBPrescaler(f.APB2); err != nil {
		return Board{}, field("apb2", err)
	}
	if f.SysTick != "" {
		if c.SysTick, err = clock.ParseSysTickSource(f.SysTick); err != nil {
			return Board{}, field("systick", err)
		}
	}
	c.PLLM, c.PLLN, c.PLLQ = f.PLL.M, f.PLL.N, f.PLL.Q
	c.TimPre = f.TimPre
	c.Overdrive = f.Overdrive
	c.Enables = clock.PeripheralEnables{
		AHB1: f.Enables.AHB1,
		AHB2: f.Enables.AHB2,
		AHB3: f.Enables.AHB3,
		APB1: f.Enables.APB1,
		APB2: f.Enables.APB2,
	}
	return b, nil
}

func field(name string, err error) error {
	return &errcode.E{C: errcode.InvalidParams, Op: opLoad, Msg: name, Err: err}
}
