//go:build darwin

package system

/*
#include <mach/mach.h>
#include <mach/mach_host.h>

static kern_return_t read_vm_stats(vm_statistics64_data_t *stats, mach_msg_type_number_t *count, vm_size_t *page_size) {
	mach_port_t host = mach_host_self();
	*count = HOST_VM_INFO64_COUNT;
	kern_return_t kr = host_statistics64(host, HOST_VM_INFO64, (host_info64_t)stats, count);
	if (kr == KERN_SUCCESS) {
		kr = host_page_size(host, page_size);
	}
	mach_port_deallocate(mach_task_self(), host);
	return kr;
}

static mach_msg_type_number_t vm_stats_count(void) {
	return HOST_VM_INFO64_COUNT;
}
*/
import "C"

import (
	"context"
	"fmt"

	"golang.org/x/sys/unix"
)

// darwinSource reads hw.memsize and the mach VM statistics
type darwinSource struct{}

func newPlatformSource() Source {
	return darwinSource{}
}

func (darwinSource) PhysicalMemory(_ context.Context) (uint64, error) {
	total, err := unix.SysctlUint64("hw.memsize")
	if err != nil {
		return 0, fmt.Errorf("sysctl hw.memsize: %w", err)
	}
	return total, nil
}

func (darwinSource) VMCounters(_ context.Context) (VMCounters, error) {
	var stats C.vm_statistics64_data_t
	var count C.mach_msg_type_number_t
	var pageSize C.vm_size_t

	if kr := C.read_vm_stats(&stats, &count, &pageSize); kr != C.KERN_SUCCESS {
		return VMCounters{}, fmt.Errorf("host_statistics64 returned %d", int(kr))
	}
	if count != C.vm_stats_count() {
		return VMCounters{}, fmt.Errorf("host_statistics64 returned %d counters, expected %d", int(count), int(C.vm_stats_count()))
	}

	return VMCounters{
		ActivePages:     uint64(stats.active_count),
		InactivePages:   uint64(stats.inactive_count),
		WiredPages:      uint64(stats.wire_count),
		CompressedPages: uint64(stats.compressor_page_count),
		PageSize:        uint64(pageSize),
	}, nil
}
