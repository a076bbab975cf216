package bios

import (
	co "github.com/psxcorn/psxcorn/go/kernel/common"
	"github.com/psxcorn/psxcorn/go/models/psx"
)

func (b *Bios) InitCARD(padEnable uint32) {
	b.cardState = 0
}

func (b *Bios) StartCARD() {
	if b.cardState == 0 {
		b.cardState = 1
	}
}

func (b *Bios) StopCARD() {
	if b.cardState == 1 {
		b.cardState = 0
	}
}

// CardState is -1 before InitCARD, then 0 when stopped and 1 when started.
func (b *Bios) CardState() int {
	return b.cardState
}

// sector returns the byte range of one 128-byte sector on the card behind chan.
func (b *Bios) sector(ch, sector uint32) []byte {
	card := b.card(int(ch >> 4))
	off := int(sector) * psx.FrameSize
	if card == nil || off+psx.FrameSize > psx.CardSize {
		return nil
	}
	return card.Bytes()[off : off+psx.FrameSize]
}

func (b *Bios) CardWrite(ch, sector uint32, buf co.Buf) uint32 {
	b.cardChan = ch
	if p := b.sector(ch, sector); p != nil && buf.Addr != 0 {
		copy(p, buf.Bytes(psx.FrameSize))
		b.persist(b.card(int(ch>>4)), int(sector)*psx.FrameSize, psx.FrameSize)
	}
	b.deliverEvent(0x11, 2)
	return 1
}

func (b *Bios) CardRead(ch, sector uint32, buf co.Obuf) uint32 {
	b.cardChan = ch
	if p := b.sector(ch, sector); p != nil && buf.Addr != 0 {
		copy(buf.Bytes(psx.FrameSize), p)
	}
	b.deliverEvent(0x11, 2)
	return 1
}

func (b *Bios) CardInfo(ch uint32) uint32 {
	b.cardChan = ch
	b.deliverEvent(0x81, 2)
	return 1
}

func (b *Bios) CardLoad(ch uint32) uint32 {
	b.cardChan = ch
	b.deliverEvent(0x81, 2)
	return 1
}

func (b *Bios) CardChan() uint32   { return b.cardChan }
func (b *Bios) CardStatus() uint32 { return 1 }
func (b *Bios) NewCard()           {}
