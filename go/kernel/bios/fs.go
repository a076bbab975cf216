package bios

import (
	"strings"

	co "github.com/psxcorn/psxcorn/go/kernel/common"
	"github.com/psxcorn/psxcorn/go/models/psx"
)

const (
	numFds = 32

	// open mode bits
	fCreat  = 0x200
	fNowait = 0x8000

	seekSet = 0
	seekCur = 1
	seekEnd = 2

	stdoutFd = 1
	firstFd  = 2
)

type fileDesc struct {
	used   bool
	name   string
	mode   uint32
	offset int32
	port   int
	block  int
}

// findState carries a firstfile search across nextfile calls.
type findState struct {
	port    int
	pattern string
	next    int
}

// DirEntry is the guest's struct DIRENTRY.
type DirEntry struct {
	Name   string `struc:"[20]byte"`
	Attr   int32
	Size   int32
	Next   uint32
	Head   int32
	System [4]byte
}

// cardPath splits "bu00:NAME" into a port and file name.
func cardPath(path string) (port int, name string) {
	switch {
	case strings.HasPrefix(path, "bu00"):
		port = 0
	case strings.HasPrefix(path, "bu10"):
		port = 1
	default:
		return -1, ""
	}
	if len(path) > 5 {
		name = path[5:]
	}
	return port, name
}

func (b *Bios) card(port int) psx.Storage {
	if port < 0 {
		return nil
	}
	return b.M.Card(port)
}

// findFile returns the directory block holding name, or -1.
func (b *Bios) findFile(card psx.Storage, name string) (int, *psx.DirFrame) {
	for i := 1; i < psx.NumBlocks; i++ {
		f, err := psx.GetFrame(card.Bytes(), i)
		if err != nil || !f.InUse() || f.Name != name {
			continue
		}
		return i, f
	}
	return -1, nil
}

func (b *Bios) putFrame(card psx.Storage, i int, f *psx.DirFrame) {
	if err := psx.PutFrame(card.Bytes(), i, f); err != nil {
		b.verbose("card frame %d: %v\n", i, err)
		return
	}
	b.persist(card, i*psx.FrameSize, psx.FrameSize)
}

func (b *Bios) persist(card psx.Storage, off, n int) {
	if err := card.Persist(off, n); err != nil {
		b.Printf("card: %v\n", err)
	}
}

func (b *Bios) createFile(card psx.Storage, name string, mode uint32) int {
	for i := 1; i < psx.NumBlocks; i++ {
		f, err := psx.GetFrame(card.Bytes(), i)
		if err != nil || f.InUse() {
			continue
		}
		b.putFrame(card, i, &psx.DirFrame{
			State: psx.StateInUse | uint8(mode>>16),
			Size:  psx.BlockSize,
			Next:  psx.NoNext,
			Name:  name,
		})
		b.verbose("create %s in block %d\n", name, i)
		return i
	}
	return -1
}

// allocFd reuses the descriptor last opened under name, else takes the first free one.
func (b *Bios) allocFd(port int, name string) int {
	for i := firstFd; i < numFds; i++ {
		if fd := &b.fds[i]; fd.used && fd.port == port && fd.name == name {
			return i
		}
	}
	for i := firstFd; i < numFds; i++ {
		if !b.fds[i].used {
			return i
		}
	}
	return -1
}

func (b *Bios) Open(path string, mode uint32) co.Fd {
	port, name := cardPath(path)
	card := b.card(port)
	if card == nil {
		return -1
	}
	block, _ := b.findFile(card, name)
	if block < 0 && mode&fCreat != 0 {
		block = b.createFile(card, name, mode)
	}
	if block < 0 {
		return -1
	}
	fd := b.allocFd(port, name)
	if fd < 0 {
		return -1
	}
	b.fds[fd] = fileDesc{used: true, name: name, mode: mode, port: port, block: block}
	return co.Fd(fd)
}

func (b *Bios) fd(fd co.Fd) *fileDesc {
	if fd < firstFd || fd >= numFds || !b.fds[fd].used {
		return nil
	}
	return &b.fds[fd]
}

func (b *Bios) Lseek(fd co.Fd, off co.Off, whence int32) int32 {
	f := b.fd(fd)
	if f == nil {
		return -1
	}
	switch whence {
	case seekSet:
		f.offset = int32(off)
	case seekCur:
		f.offset += int32(off)
	case seekEnd:
		size := int32(psx.BlockSize)
		if card := b.card(f.port); card != nil {
			if frame, err := psx.GetFrame(card.Bytes(), f.block); err == nil {
				size = int32(frame.Size)
			}
		}
		f.offset = size + int32(off)
	default:
		return -1
	}
	return f.offset
}

// span returns the card byte range for an n-byte transfer at the descriptor's offset.
func (f *fileDesc) span(n co.Len) (int, bool) {
	off := f.block*psx.BlockSize + int(f.offset)
	if f.offset < 0 || off+int(n) > psx.CardSize {
		return 0, false
	}
	return off, true
}

func (f *fileDesc) result(n co.Len) int32 {
	if f.mode&fNowait != 0 {
		return 0
	}
	return int32(n)
}

func (b *Bios) Read(fd co.Fd, buf co.Obuf, n co.Len) int32 {
	f := b.fd(fd)
	if f == nil || buf.Addr == 0 {
		return -1
	}
	card := b.card(f.port)
	off, ok := f.span(n)
	if card == nil || !ok {
		return -1
	}
	copy(buf.Bytes(int(n)), card.Bytes()[off:off+int(n)])
	ret := f.result(n)
	f.offset += ret
	b.deliverEvent(0x11, 2)
	b.deliverEvent(0x81, 2)
	return ret
}

func (b *Bios) Write(fd co.Fd, buf co.Buf, n co.Len) int32 {
	if buf.Addr == 0 {
		return -1
	}
	if fd == stdoutFd {
		b.M.Config().Stdout.Write(buf.Bytes(int(n)))
		return int32(n)
	}
	f := b.fd(fd)
	if f == nil {
		return -1
	}
	card := b.card(f.port)
	off, ok := f.span(n)
	if card == nil || !ok {
		return -1
	}
	copy(card.Bytes()[off:], buf.Bytes(int(n)))
	f.offset += int32(n)
	b.persist(card, off, int(n))
	b.deliverEvent(0x11, 2)
	b.deliverEvent(0x81, 2)
	return f.result(n)
}

func (b *Bios) Close(fd co.Fd) co.Fd {
	return fd
}

// glob matches a name against a firstfile pattern over the 20-byte name field.
// '?' matches any one character and '*' matches the rest.
func glob(pattern, name string) bool {
	if pattern == "" {
		return true
	}
	at := func(s string, i int) byte {
		if i < len(s) {
			return s[i]
		}
		return 0
	}
	for i := 0; i < psx.NameLen; i++ {
		p, c := at(pattern, i), at(name, i)
		switch {
		case p == c:
			if c == 0 {
				return true
			}
		case p == '?':
		case p == '*':
			return true
		default:
			return false
		}
	}
	return true
}

func (b *Bios) nextMatch(dir co.Obuf) uint32 {
	card := b.card(b.find.port)
	if card == nil {
		return 0
	}
	for b.find.next < psx.NumBlocks {
		i := b.find.next
		b.find.next++
		f, err := psx.GetFrame(card.Bytes(), i)
		if err != nil || !f.InUse() || !glob(b.find.pattern, f.Name) {
			continue
		}
		ent := &DirEntry{
			Name: f.Name,
			Attr: int32(f.State & 0xf0),
			Size: psx.BlockSize,
			Head: int32(i),
		}
		if err := dir.Pack(ent); err != nil {
			b.verbose("firstfile: %v\n", err)
			return 0
		}
		return dir.Addr
	}
	return 0
}

func (b *Bios) Firstfile(pattern string, dir co.Obuf) uint32 {
	port, name := cardPath(pattern)
	b.find = findState{port: port, pattern: name, next: 1}
	// the firmware reads the directory through _card_read
	b.deliverEvent(0x11, 2)
	if port < 0 || dir.Addr == 0 {
		return 0
	}
	return b.nextMatch(dir)
}

func (b *Bios) Nextfile(dir co.Obuf) uint32 {
	if dir.Addr == 0 {
		return 0
	}
	return b.nextMatch(dir)
}

// Rename only works within one card.
func (b *Bios) Rename(from, to string) uint32 {
	port, oldName := cardPath(from)
	toPort, newName := cardPath(to)
	card := b.card(port)
	if card == nil || port != toPort {
		return 0
	}
	block, f := b.findFile(card, oldName)
	if block < 0 {
		return 0
	}
	f.Name = newName
	f.Pad = [96]byte{}
	b.putFrame(card, block, f)
	return 1
}

// Delete marks the directory entry deleted, leaving its data in place.
func (b *Bios) Delete(path string) uint32 {
	port, name := cardPath(path)
	card := b.card(port)
	if card == nil {
		return 0
	}
	block, f := b.findFile(card, name)
	if block < 0 {
		return 0
	}
	f.State = f.State&0xf | psx.StateDeleted
	b.putFrame(card, block, f)
	b.verbose("delete %s\n", name)
	return 1
}
