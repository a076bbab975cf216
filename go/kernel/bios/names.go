package bios

import (
	co "github.com/psxcorn/psxcorn/go/kernel/common"
)

// Names holds the display name of every known call. Slots without an entry print as sys_a0_NN.
var Names = [co.NumTables]map[int]string{
	co.TableA0: {
		0x00: "open",
		0x01: "lseek",
		0x02: "read",
		0x03: "write",
		0x04: "close",
		0x05: "ioctl",
		0x06: "exit",
		0x08: "getc",
		0x09: "putc",
		0x0a: "todigit",
		0x0b: "atof",
		0x0c: "strtoul",
		0x0d: "strtol",
		0x0e: "abs",
		0x0f: "labs",
		0x10: "atoi",
		0x11: "atol",
		0x12: "atob",
		0x13: "setjmp",
		0x14: "longjmp",
		0x15: "strcat",
		0x16: "strncat",
		0x17: "strcmp",
		0x18: "strncmp",
		0x19: "strcpy",
		0x1a: "strncpy",
		0x1b: "strlen",
		0x1c: "index",
		0x1d: "rindex",
		0x1e: "strchr",
		0x1f: "strrchr",
		0x20: "strpbrk",
		0x21: "strspn",
		0x22: "strcspn",
		0x23: "strtok",
		0x24: "strstr",
		0x25: "toupper",
		0x26: "tolower",
		0x27: "bcopy",
		0x28: "bzero",
		0x29: "bcmp",
		0x2a: "memcpy",
		0x2b: "memset",
		0x2c: "memmove",
		0x2d: "memcmp",
		0x2e: "memchr",
		0x2f: "rand",
		0x30: "srand",
		0x31: "qsort",
		0x32: "strtod",
		0x33: "malloc",
		0x34: "free",
		0x35: "lsearch",
		0x36: "bsearch",
		0x37: "calloc",
		0x38: "realloc",
		0x39: "InitHeap",
		0x3a: "_exit",
		0x3b: "getchar",
		0x3c: "putchar",
		0x3d: "gets",
		0x3e: "puts",
		0x3f: "printf",
		0x41: "LoadTest",
		0x42: "Load",
		0x43: "Exec",
		0x44: "FlushCache",
		0x45: "InstallInterruptHandler",
		0x46: "GPU_dw",
		0x47: "mem2vram",
		0x48: "SendGPUStatus",
		0x49: "GPU_cw",
		0x4a: "GPU_cwb",
		0x4b: "SendPackets",
		0x4d: "GetGPUStatus",
		0x4e: "GPU_sync",
		0x51: "LoadExec",
		0x52: "GetSysSp",
		0x54: "_96_init",
		0x55: "_bu_init",
		0x56: "_96_remove",
		0x5b: "dev_tty_init",
		0x5c: "dev_tty_open",
		0x5e: "dev_tty_ioctl",
		0x5f: "dev_cd_open",
		0x60: "dev_cd_read",
		0x61: "dev_cd_close",
		0x62: "dev_cd_firstfile",
		0x63: "dev_cd_nextfile",
		0x64: "dev_cd_chdir",
		0x65: "dev_card_open",
		0x66: "dev_card_read",
		0x67: "dev_card_write",
		0x68: "dev_card_close",
		0x69: "dev_card_firstfile",
		0x6a: "dev_card_nextfile",
		0x6b: "dev_card_erase",
		0x6c: "dev_card_undelete",
		0x6d: "dev_card_format",
		0x6e: "dev_card_rename",
		0x6f: "dev_card_6f",
		0x70: "_bu_init",
		0x71: "_96_init",
		0x72: "_96_remove",
		0x78: "_96_CdSeekL",
		0x7c: "_96_CdGetStatus",
		0x7e: "_96_CdRead",
		0x85: "_96_CdStop",
		0x96: "AddCDROMDevice",
		0x97: "AddMemCardDevide",
		0x98: "DisableKernelIORedirection",
		0x99: "EnableKernelIORedirection",
		0x9c: "SetConf",
		0x9d: "GetConf",
		0x9f: "SetMem",
		0xa0: "_boot",
		0xa1: "SystemError",
		0xa2: "EnqueueCdIntr",
		0xa3: "DequeueCdIntr",
		0xa5: "ReadSector",
		0xa6: "get_cd_status",
		0xa7: "bufs_cb_0",
		0xa8: "bufs_cb_1",
		0xa9: "bufs_cb_2",
		0xaa: "bufs_cb_3",
		0xab: "_card_info",
		0xac: "_card_load",
		0xad: "_card_auto",
		0xae: "bufs_cd_4",
		0xb2: "do_a_long_jmp",
	},
	co.TableB0: {
		0x00: "SysMalloc",
		0x02: "SetRCnt",
		0x03: "GetRCnt",
		0x04: "StartRCnt",
		0x05: "StopRCnt",
		0x06: "ResetRCnt",
		0x07: "DeliverEvent",
		0x08: "OpenEvent",
		0x09: "CloseEvent",
		0x0a: "WaitEvent",
		0x0b: "TestEvent",
		0x0c: "EnableEvent",
		0x0d: "DisableEvent",
		0x0e: "OpenTh",
		0x0f: "CloseTh",
		0x10: "ChangeTh",
		0x12: "InitPAD",
		0x13: "StartPAD",
		0x14: "StopPAD",
		0x15: "PAD_init",
		0x16: "PAD_dr",
		0x17: "ReturnFromException",
		0x18: "ResetEntryInt",
		0x19: "HookEntryInt",
		0x20: "UnDeliverEvent",
		0x32: "open",
		0x33: "lseek",
		0x34: "read",
		0x35: "write",
		0x36: "close",
		0x37: "ioctl",
		0x38: "exit",
		0x3a: "getc",
		0x3b: "putc",
		0x3c: "getchar",
		0x3d: "putchar",
		0x3e: "gets",
		0x3f: "puts",
		0x40: "cd",
		0x41: "format",
		0x42: "firstfile",
		0x43: "nextfile",
		0x44: "rename",
		0x45: "delete",
		0x46: "undelete",
		0x47: "AddDevice",
		0x48: "RemoteDevice",
		0x49: "PrintInstalledDevices",
		0x4a: "InitCARD",
		0x4b: "StartCARD",
		0x4c: "StopCARD",
		0x4e: "_card_write",
		0x4f: "_card_read",
		0x50: "_new_card",
		0x51: "Krom2RawAdd",
		0x54: "_get_errno",
		0x55: "_get_error",
		0x56: "GetC0Table",
		0x57: "GetB0Table",
		0x58: "_card_chan",
		0x5b: "ChangeClearPAD",
		0x5c: "_card_status",
		0x5d: "_card_wait",
	},
	co.TableC0: {
		0x00: "InitRCnt",
		0x01: "InitException",
		0x02: "SysEnqIntRP",
		0x03: "SysDeqIntRP",
		0x04: "get_free_EvCB_slot",
		0x05: "get_free_TCB_slot",
		0x06: "ExceptionHandler",
		0x07: "InstallExeptionHandler",
		0x08: "SysInitMemory",
		0x09: "SysInitKMem",
		0x0a: "ChangeClearRCnt",
		0x0b: "SystemError",
		0x0c: "InitDefInt",
		0x12: "InstallDevices",
		0x13: "FlushStfInOutPut",
		0x15: "_cdevinput",
		0x16: "_cdevscan",
		0x17: "_circgetc",
		0x18: "_circputc",
		0x19: "ioabort",
		0x1b: "KernelRedirect",
		0x1c: "PatchAOTable",
	},
}
