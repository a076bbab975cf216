package models

import "fmt"

// ExitStatus is returned from a run when the guest program exits.
type ExitStatus int

func (e ExitStatus) Error() string {
	return fmt.Sprintf("exit %d", e)
}
