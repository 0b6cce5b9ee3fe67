// Command libnanostats builds the status display as a C shared library:
//
//	go build -buildmode=c-shared -o libnanostats.dylib ./cmd/libnanostats
//
// Hosts call nano_stats_create, then nano_stats_run (which blocks until the
// user quits) and finally nano_stats_destroy.
package main

/*
#include <stdint.h>
*/
import "C"

import (
	"runtime/cgo"

	"github.com/sirupsen/logrus"

	"github.com/ngenohkevin/nanostats/config"
	"github.com/ngenohkevin/nanostats/internal/app"
)

// nano_stats_create returns a handle to a new status display, or 0 on failure.
// A NULL or empty title uses the configured one.
//
//export nano_stats_create
func nano_stats_create(title *C.char) C.uintptr_t {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Error("failed to load config")
		return 0
	}

	var t string
	if title != nil {
		t = C.GoString(title)
	}

	a, err := app.New(t, cfg)
	if err != nil {
		logrus.WithError(err).Error("failed to create status display")
		return 0
	}
	return C.uintptr_t(cgo.NewHandle(a))
}

// nano_stats_run blocks until the display exits. It returns 0 on success.
//
//export nano_stats_run
func nano_stats_run(handle C.uintptr_t) C.int {
	a, ok := lookup(handle)
	if !ok {
		return -1
	}
	if err := a.Run(); err != nil {
		logrus.WithError(err).Error("status display failed")
		return 1
	}
	return 0
}

// nano_stats_destroy stops the display and frees the handle. A zero handle is ignored.
//
//export nano_stats_destroy
func nano_stats_destroy(handle C.uintptr_t) {
	a, ok := lookup(handle)
	if !ok {
		return
	}
	if err := a.Close(); err != nil {
		logrus.WithError(err).Warn("failed to close status display")
	}
	cgo.Handle(handle).Delete()
}

func lookup(handle C.uintptr_t) (*app.App, bool) {
	if handle == 0 {
		return nil, false
	}
	a, ok := cgo.Handle(handle).Value().(*app.App)
	return a, ok
}

func main() {}
