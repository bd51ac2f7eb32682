package console

import "lynxcore/internal/lynxtype"

// RunFrame advances the machine by one video frame's worth of CPU cycles
// (the last instruction may finish a few cycles past that target): step
// the CPU, tick Mikey and the APU against the resulting cycle count, update
// the CPU's IRQ line from Mikey's pending mask, and — once the frame's
// worth of cycles has elapsed — flush audio and latch the polled controller
// state into Suzy. Framebuffer returns the resulting frame.
func (c *Console) RunFrame() {
	target := c.CPU.CycleCount + lynxtype.CPUCyclesPerFrame()
	for c.CPU.CycleCount < target {
		c.CPU.Step()
		c.Mikey.Tick(c.CPU.CycleCount, c.RAM[:])
		c.APU.Tick(c.CPU.CycleCount)
		c.CPU.SetIRQLine(c.Mikey.IrqPending != 0)
	}

	samples := c.APU.EndFrame()
	if c.Audio != nil && len(samples) > 0 {
		c.Audio.Play(samples, int(c.APU.SampleRate))
	}

	if c.Controller != nil {
		c.Suzy.SetJoystick(c.Controller.ReadJoystick())
		c.Suzy.SetSwitches(c.Controller.ReadSwitches())
	}
}

// Framebuffer returns Mikey's current ARGB8888 frame.
func (c *Console) Framebuffer() *[lynxtype.ScreenWidth * lynxtype.ScreenHeight]uint32 {
	return &c.Mikey.Framebuffer
}
