package ide

import "testing"

// FuzzRegisterViewUnpack fuzzes the register-window wire codec. Every
// 3-word input must decode without panicking, regardless of bit pattern.
func FuzzRegisterViewUnpack(f *testing.F) {
	f.Add(uint32(0), uint32(0), uint32(0))
	f.Add(uint32(0xFFFFFFFF), uint32(0xFFFFFFFF), uint32(0xFFFFFFFF))
	f.Add(uint32(1), uint32(0xEB14), uint32(0x00E00000))

	f.Fuzz(func(t *testing.T, w0, w1, w2 uint32) {
		var r RegisterView
		r.Unpack([3]uint32{w0, w1, w2})
		r.Pack(false)
		r.Pack(true)
	})
}
