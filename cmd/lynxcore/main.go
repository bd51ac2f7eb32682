// Command lynxcore is a headless driver for the Lynx core: it loads a ROM,
// runs it for a fixed number of frames, and writes the final video frame
// and any buffered audio to disk. It implements the narrow host interfaces
// the core consumes (battery load/save, audio sink, controller) with plain
// file I/O, standing in for a full GUI/mixer/input-binding shell.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"lynxcore/internal/console"
	"lynxcore/internal/debug"
	"lynxcore/internal/lynxtype"
	"lynxcore/internal/video"
)

// fileBattery persists the EEPROM image as `<rom>.eeprom` next to the ROM.
type fileBattery struct{ dir string }

func (b fileBattery) Load(suffix string) ([]byte, error) {
	return os.ReadFile(filepath.Join(b.dir, suffix+".eeprom"))
}

func (b fileBattery) Save(suffix string, data []byte) error {
	return os.WriteFile(filepath.Join(b.dir, suffix+".eeprom"), data, 0o644)
}

// wavAudioSink accumulates every played frame's samples; writeWav writes
// them out as a WAV file.
type wavAudioSink struct {
	samples []int16
	rate    int
}

func (s *wavAudioSink) Play(samples []int16, sampleRate int) {
	s.rate = sampleRate
	s.samples = append(s.samples, samples...)
}

func (s *wavAudioSink) writeWav(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	rate := s.rate
	if rate == 0 {
		rate = lynxtype.AudioSampleRateHz
	}

	enc := wav.NewEncoder(f, rate, 16, 2, 1)
	data := make([]int, len(s.samples))
	for i, v := range s.samples {
		data[i] = int(v)
	}
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 2, SampleRate: rate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		return err
	}
	return enc.Close()
}

// noController reports no buttons held; active-low latches read as all 1s.
type noController struct{}

func (noController) ReadJoystick() uint8 { return 0xFF }
func (noController) ReadSwitches() uint8 { return 0xFF }

func main() {
	romPath := flag.String("rom", "", "path to a .lnx or raw .o ROM image")
	frames := flag.Int("frames", 60, "number of frames to run")
	outPNG := flag.String("png", "", "write the final frame as a PNG to this path")
	outWav := flag.String("wav", "", "write buffered audio as a WAV to this path")
	verbose := flag.Bool("log", false, "enable console-component logging to stderr")
	flag.Parse()

	if *romPath == "" {
		fmt.Fprintln(os.Stderr, "usage: lynxcore -rom <path> [-frames N] [-png out.png] [-wav out.wav]")
		os.Exit(1)
	}

	logger := debug.NewLogger(4000)
	if *verbose {
		logger.SetComponentEnabled(debug.ComponentConsole, true)
	}

	c := console.New(logger)

	data, err := os.ReadFile(*romPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading ROM: %v\n", err)
		os.Exit(1)
	}

	suffix := strings.TrimSuffix(filepath.Base(*romPath), filepath.Ext(*romPath))
	c.Battery = fileBattery{dir: filepath.Dir(*romPath)}
	c.Controller = noController{}
	sink := &wavAudioSink{}
	c.Audio = sink

	if err := c.LoadROM(data, suffix); err != nil {
		fmt.Fprintf(os.Stderr, "loading ROM: %v\n", err)
		os.Exit(1)
	}

	for i := 0; i < *frames; i++ {
		c.RunFrame()
	}

	if err := c.SaveBattery(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: saving battery: %v\n", err)
	}

	if *outPNG != "" {
		if err := writeFramePNG(c, *outPNG); err != nil {
			fmt.Fprintf(os.Stderr, "writing PNG: %v\n", err)
			os.Exit(1)
		}
	}

	if *outWav != "" {
		if err := sink.writeWav(*outWav); err != nil {
			fmt.Fprintf(os.Stderr, "writing WAV: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Printf("ran %d frames, cycle count %d, %d audio samples buffered\n", *frames, c.CPU.CycleCount, len(sink.samples))

	if *verbose {
		logger.Shutdown()
		for _, e := range logger.GetEntries() {
			fmt.Fprintln(os.Stderr, e.Format())
		}
	}
}

func writeFramePNG(c *console.Console, path string) error {
	fb := c.Framebuffer()
	frame := video.Rotate(fb[:], 160, 102, c.Cart.Rotation)

	img := image.NewRGBA(image.Rect(0, 0, frame.Width, frame.Height))
	for y := 0; y < frame.Height; y++ {
		for x := 0; x < frame.Width; x++ {
			argb := frame.Pixels[y*frame.Width+x]
			img.Set(x, y, color.RGBA{
				R: uint8(argb >> 16),
				G: uint8(argb >> 8),
				B: uint8(argb),
				A: uint8(argb >> 24),
			})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
