package main

import (
	"github.com/mister-x86/ide"
)

// loggingWindow is a stand-in RegisterWindow: it logs every register and
// config-register transaction instead of driving real FPGA bus memory.
// Wiring an actual hardware window is outside this module's scope (§1) —
// this exists to demonstrate Mount and Channel.OnRequest end to end.
type loggingWindow struct{}

func (w *loggingWindow) SendRegs(base uint32, words [3]uint32) error {
	log.Debugf("channel 0x%04X: send_regs %08x %08x %08x", base, words[0], words[1], words[2])
	return nil
}

func (w *loggingWindow) RecvRegs(base uint32, words *[3]uint32) error {
	log.Debugf("channel 0x%04X: recv_regs", base)
	return nil
}

func (w *loggingWindow) SendData(base uint32, words []uint32) error {
	log.Debugf("channel 0x%04X: send_data %d words", base, len(words))
	return nil
}

func (w *loggingWindow) RecvData(base uint32, words []uint32) error {
	log.Debugf("channel 0x%04X: recv_data %d words", base, len(words))
	return nil
}

func (w *loggingWindow) WriteConfig(base uint32, reg ide.ConfigReg, value uint32, ver ide.Version) error {
	log.Debugf("channel 0x%04X: write_config reg=%d value=%d ver=%d", base, reg, value, ver)
	return nil
}

func (w *loggingWindow) ResetBuf(base uint32) error {
	log.Debugf("channel 0x%04X: reset_buf", base)
	return nil
}
