package bios

func (b *Bios) Rand() uint32 {
	mem := b.M.Mem()
	s := mem.Read32(randSeed)*1103515245 + 12345
	mem.Write32(randSeed, s)
	return (s >> 16) & 0x7fff
}

func (b *Bios) Srand(seed uint32) {
	b.M.Mem().Write32(randSeed, seed)
}

// font table runs: the first Shift-JIS code of each run and its offset into the ROM font
var (
	krom8140 = [][2]uint32{
		{0x8140, 0x0000}, {0x8180, 0x0762}, {0x81ad, 0x0cc6}, {0x81b8, 0x0ca8},
		{0x81c0, 0x0f00}, {0x81c8, 0x0d98}, {0x81cf, 0x10c2}, {0x81da, 0x0e6a},
		{0x81e9, 0x13ce}, {0x81f0, 0x102c}, {0x81f8, 0x1590}, {0x81fc, 0x111c},
		{0x81fd, 0x1626}, {0x824f, 0x113a}, {0x8259, 0x20ee}, {0x8260, 0x1266},
		{0x827a, 0x24cc}, {0x8281, 0x1572}, {0x829b, 0x28aa}, {0x829f, 0x187e},
		{0x82f2, 0x32dc}, {0x8340, 0x2238}, {0x837f, 0x4362}, {0x8380, 0x299a},
		{0x8397, 0x4632}, {0x839f, 0x2c4c}, {0x83b7, 0x49f2}, {0x83bf, 0x2f1c},
		{0x83d7, 0x4db2}, {0x8440, 0x31ec}, {0x8461, 0x5dde}, {0x8470, 0x35ca},
		{0x847f, 0x6162}, {0x8480, 0x378c}, {0x8492, 0x639c}, {0x849f, 0x39a8},
		{0xffff, 0},
	}
	krom889f = [][2]uint32{
		{0x889f, 0x3d68}, {0x8900, 0x40ec}, {0x897f, 0x4fb0}, {0x8a00, 0x56f4},
		{0x8a7f, 0x65b8}, {0x8b00, 0x6cfc}, {0x8b7f, 0x7bc0}, {0x8c00, 0x8304},
		{0x8c7f, 0x91c8}, {0x8d00, 0x990c}, {0x8d7f, 0xa7d0}, {0x8e00, 0xaf14},
		{0x8e7f, 0xbdd8}, {0x8f00, 0xc51c}, {0x8f7f, 0xd3e0}, {0x9000, 0xdb24},
		{0x907f, 0xe9e8}, {0x9100, 0xf12c}, {0x917f, 0xfff0}, {0x9200, 0x10734},
		{0x927f, 0x115f8}, {0x9300, 0x11d3c}, {0x937f, 0x12c00}, {0x9400, 0x13344},
		{0x947f, 0x14208}, {0x9500, 0x1494c}, {0x957f, 0x15810}, {0x9600, 0x15f54},
		{0x967f, 0x16e18}, {0x9700, 0x1755c}, {0x977f, 0x18420}, {0x9800, 0x18b64},
		{0xffff, 0},
	}
)

const kromBase = 0xbfc66000

func kromLookup(table [][2]uint32, code uint32) uint32 {
	i := 0
	for table[i][0] <= code {
		i++
	}
	run := table[i-1]
	return kromBase + (code-run[0])*0x1e + run[1]
}

// Krom2RawAdd maps a Shift-JIS code to its glyph in the ROM font.
func (b *Bios) Krom2RawAdd(code uint32) uint32 {
	switch {
	case code >= 0x8140 && code <= 0x84be:
		return kromLookup(krom8140, code)
	case code >= 0x889f && code <= 0x9872:
		return kromLookup(krom889f, code)
	}
	return 0xffffffff
}

func (b *Bios) GetC0Table() uint32 { return c0TableAddr }
func (b *Bios) GetB0Table() uint32 { return b0TableAddr }

func (b *Bios) FlushCache() {}
func (b *Bios) Init96()     {}
func (b *Bios) Remove96()   {}
