package common

import (
	"github.com/lunixbochs/argjoy"
)

func (k *KernelBase) commonArgCodec(arg interface{}, vals []interface{}) error {
	if reg, ok := vals[0].(uint64); ok {
		switch v := arg.(type) {
		case *Buf:
			*v = NewBuf(k, uint32(reg))
		case *Obuf:
			*v = Obuf{NewBuf(k, uint32(reg))}
		case *Len:
			*v = Len(reg)
		case *Off:
			*v = Off(int32(reg))
		case *Fd:
			*v = Fd(int32(reg))
		case *Ptr:
			*v = Ptr(reg)
		case *string:
			// null string pointers are read as empty
			if uint32(reg) == 0 {
				*v = ""
				return nil
			}
			*v = k.M.Mem().ReadStr(uint32(reg))
		default:
			return argjoy.NoMatch
		}
		return nil
	}
	return argjoy.NoMatch
}
