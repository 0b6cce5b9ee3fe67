//go:build darwin

package process

/*
#include <libproc.h>
*/
import "C"

import (
	"context"
	"fmt"
	"unsafe"
)

// listPIDs sizes the table with a NULL buffer, then fetches into a fresh one
func listPIDs(_ context.Context) ([]int32, error) {
	return enumeratePIDs(
		func() (int, error) {
			n, err := C.proc_listallpids(nil, 0)
			if n <= 0 && err != nil {
				return 0, fmt.Errorf("proc_listallpids: %w", err)
			}
			return int(n), nil
		},
		func(buf []int32) (int, error) {
			size := C.int(len(buf) * int(unsafe.Sizeof(buf[0])))
			n, err := C.proc_listallpids(unsafe.Pointer(&buf[0]), size)
			if n < 0 && err != nil {
				return 0, fmt.Errorf("proc_listallpids: %w", err)
			}
			return int(n), nil
		},
	)
}
