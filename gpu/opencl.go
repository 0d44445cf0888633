// Copyright 2026 The Goperm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build opencl

package gpu

/*
#cgo CFLAGS: -DCL_TARGET_OPENCL_VERSION=120 -DCL_USE_DEPRECATED_OPENCL_1_2_APIS
#cgo LDFLAGS: -lOpenCL
#cgo darwin LDFLAGS: -framework OpenCL

#include <stdlib.h>
#ifdef __APPLE__
#include <OpenCL/opencl.h>
#else
#include <CL/cl.h>
#endif
*/
import "C"

import (
	"math"
	"strings"
	"unsafe"

	"github.com/cpmech/gosl/chk"
)

// kernel program: CSR sparse matrix-vector multiply, two vector update
// kernels and a partial dot-product reduction finished on the host
const clKernelSource = `
#pragma OPENCL EXTENSION cl_khr_fp64 : enable

__kernel void spmv(__global const int* ap, __global const int* aj,
                   __global const double* ax, __global const double* x,
                   __global double* y, const int n) {
    int i = get_global_id(0);
    if (i >= n) {
        return;
    }
    double sum = 0.0;
    for (int k = ap[i]; k < ap[i+1]; k++) {
        sum += ax[k] * x[aj[k]];
    }
    y[i] = sum;
}

__kernel void axpy(__global double* y, __global const double* x,
                   const double a, const int n) {
    int i = get_global_id(0);
    if (i < n) {
        y[i] += a * x[i];
    }
}

__kernel void xpay(__global double* y, __global const double* x,
                   const double a, const int n) {
    int i = get_global_id(0);
    if (i < n) {
        y[i] = x[i] + a * y[i];
    }
}

__kernel void dotp(__global const double* u, __global const double* v,
                   __global double* part, __local double* scratch,
                   const int n) {
    int gid = get_global_id(0);
    int lid = get_local_id(0);
    scratch[lid] = (gid < n) ? u[gid] * v[gid] : 0.0;
    barrier(CLK_LOCAL_MEM_FENCE);
    for (int s = get_local_size(0) / 2; s > 0; s >>= 1) {
        if (lid < s) {
            scratch[lid] += scratch[lid + s];
        }
        barrier(CLK_LOCAL_MEM_FENCE);
    }
    if (lid == 0) {
        part[get_group_id(0)] = scratch[0];
    }
}
`

// localSize is the work-group size used by all kernels
const localSize = 64

// clDevice drives one OpenCL device. The context, queue, program and
// kernels live for the device lifetime; solve buffers are created and
// released inside each CG call.
type clDevice struct {
	devid C.cl_device_id
	ctx   C.cl_context
	queue C.cl_command_queue
	prog  C.cl_program
	kSpmv C.cl_kernel
	kAxpy C.cl_kernel
	kXpay C.cl_kernel
	kDot  C.cl_kernel
	name  string
}

// probe finds the first OpenCL GPU with double-precision support and
// prepares the kernel program on it
func probe() (Device, error) {

	// platform and device
	o := new(clDevice)
	var platform C.cl_platform_id
	var count C.cl_uint
	if code := C.clGetPlatformIDs(1, &platform, &count); code != C.CL_SUCCESS || count < 1 {
		return nil, chk.Err("cannot find an OpenCL platform (code=%d)", code)
	}
	if code := C.clGetDeviceIDs(platform, C.CL_DEVICE_TYPE_GPU, 1, &o.devid, &count); code != C.CL_SUCCESS || count < 1 {
		return nil, chk.Err("cannot find an OpenCL GPU device (code=%d)", code)
	}

	// name and double-precision support
	buf := make([]byte, 2048)
	C.clGetDeviceInfo(o.devid, C.CL_DEVICE_NAME, C.size_t(len(buf)), unsafe.Pointer(&buf[0]), nil)
	o.name = C.GoString((*C.char)(unsafe.Pointer(&buf[0])))
	C.clGetDeviceInfo(o.devid, C.CL_DEVICE_EXTENSIONS, C.size_t(len(buf)), unsafe.Pointer(&buf[0]), nil)
	if !strings.Contains(C.GoString((*C.char)(unsafe.Pointer(&buf[0]))), "cl_khr_fp64") {
		return nil, chk.Err("device %q lacks double-precision support", o.name)
	}

	// context and queue
	var code C.cl_int
	o.ctx = C.clCreateContext(nil, 1, &o.devid, nil, nil, &code)
	if code != C.CL_SUCCESS {
		return nil, chk.Err("cannot create OpenCL context (code=%d)", code)
	}
	o.queue = C.clCreateCommandQueue(o.ctx, o.devid, 0, &code)
	if code != C.CL_SUCCESS {
		o.Free()
		return nil, chk.Err("cannot create OpenCL command queue (code=%d)", code)
	}

	// program
	src := C.CString(clKernelSource)
	defer C.free(unsafe.Pointer(src))
	o.prog = C.clCreateProgramWithSource(o.ctx, 1, &src, nil, &code)
	if code != C.CL_SUCCESS {
		o.Free()
		return nil, chk.Err("cannot create OpenCL program (code=%d)", code)
	}
	if code = C.clBuildProgram(o.prog, 1, &o.devid, nil, nil, nil); code != C.CL_SUCCESS {
		var lsz C.size_t
		C.clGetProgramBuildInfo(o.prog, o.devid, C.CL_PROGRAM_BUILD_LOG, 0, nil, &lsz)
		log := "unavailable"
		if lsz > 1 {
			lbuf := make([]byte, int(lsz))
			C.clGetProgramBuildInfo(o.prog, o.devid, C.CL_PROGRAM_BUILD_LOG, lsz, unsafe.Pointer(&lbuf[0]), nil)
			log = strings.TrimRight(string(lbuf[:lsz-1]), "\x00\n ")
		}
		o.Free()
		return nil, chk.Err("cannot build OpenCL program on %q: %s", o.name, log)
	}

	// kernels
	for _, k := range []struct {
		name string
		dst  *C.cl_kernel
	}{
		{"spmv", &o.kSpmv},
		{"axpy", &o.kAxpy},
		{"xpay", &o.kXpay},
		{"dotp", &o.kDot},
	} {
		cname := C.CString(k.name)
		*k.dst = C.clCreateKernel(o.prog, cname, &code)
		C.free(unsafe.Pointer(cname))
		if code != C.CL_SUCCESS {
			o.Free()
			return nil, chk.Err("cannot create kernel %q (code=%d)", k.name, code)
		}
	}
	return o, nil
}

// Name returns the device name
func (o *clDevice) Name() string {
	return o.name
}

// Free releases kernels, program, queue and context
func (o *clDevice) Free() {
	for _, k := range []C.cl_kernel{o.kSpmv, o.kAxpy, o.kXpay, o.kDot} {
		if k != nil {
			C.clReleaseKernel(k)
		}
	}
	o.kSpmv, o.kAxpy, o.kXpay, o.kDot = nil, nil, nil, nil
	if o.prog != nil {
		C.clReleaseProgram(o.prog)
		o.prog = nil
	}
	if o.queue != nil {
		C.clReleaseCommandQueue(o.queue)
		o.queue = nil
	}
	if o.ctx != nil {
		C.clReleaseContext(o.ctx)
		o.ctx = nil
	}
}

// CG solves A·x = b on the device. Buffers are uploaded, used and
// released within this call; the queue is drained every iteration so
// host decisions always see finished device work.
func (o *clDevice) CG(ap, aj []int32, ax, b, x []float64, tol float64, maxIt int) (it int, resid float64, err error) {

	// check buffers
	n := len(b)
	if n < 1 {
		return 0, 0, chk.Err("system is empty")
	}
	if len(x) != n || len(ap) != n+1 {
		return 0, 0, chk.Err("buffer sizes are inconsistent: len(ap)=%d len(b)=%d len(x)=%d", len(ap), len(b), len(x))
	}
	if int(ap[n]) != len(aj) || len(aj) != len(ax) {
		return 0, 0, chk.Err("CSR arrays are inconsistent: ap[n]=%d len(aj)=%d len(ax)=%d", ap[n], len(aj), len(ax))
	}
	if tol <= 0 || maxIt < 1 {
		return 0, 0, chk.Err("tol and maxIt must be positive: tol=%g maxIt=%d", tol, maxIt)
	}

	// launch geometry and partial-sum staging
	ngroups := (n + localSize - 1) / localSize
	part := make([]float64, ngroups)

	// device buffers
	var bufs []C.cl_mem
	defer func() {
		for _, m := range bufs {
			C.clReleaseMemObject(m)
		}
	}()
	alloc := func(flags C.cl_mem_flags, size int, host unsafe.Pointer) (m C.cl_mem) {
		if err != nil {
			return
		}
		var code C.cl_int
		m = C.clCreateBuffer(o.ctx, flags, C.size_t(size), host, &code)
		if code != C.CL_SUCCESS {
			err = chk.Err("cannot create device buffer of %d bytes (code=%d)", size, code)
			return
		}
		bufs = append(bufs, m)
		return
	}
	roCopy := C.cl_mem_flags(C.CL_MEM_READ_ONLY | C.CL_MEM_COPY_HOST_PTR)
	rwCopy := C.cl_mem_flags(C.CL_MEM_READ_WRITE | C.CL_MEM_COPY_HOST_PTR)
	dAp := alloc(roCopy, 4*(n+1), unsafe.Pointer(&ap[0]))
	dAj := alloc(roCopy, 4*len(aj), unsafe.Pointer(&aj[0]))
	dAx := alloc(roCopy, 8*len(ax), unsafe.Pointer(&ax[0]))
	dB := alloc(roCopy, 8*n, unsafe.Pointer(&b[0]))
	dX := alloc(rwCopy, 8*n, unsafe.Pointer(&x[0]))
	dR := alloc(C.CL_MEM_READ_WRITE, 8*n, nil)
	dP := alloc(C.CL_MEM_READ_WRITE, 8*n, nil)
	dKp := alloc(C.CL_MEM_READ_WRITE, 8*n, nil)
	dPart := alloc(C.CL_MEM_READ_WRITE, 8*ngroups, nil)
	if err != nil {
		return
	}

	// r = b - A·x and p = r
	matVec := func(src, dst C.cl_mem) { o.runSpmv(dAp, dAj, dAx, src, dst, n, &err) }
	matVec(dX, dKp)
	o.copyVec(dB, dR, n, &err)
	o.runAxpy(o.kAxpy, dR, dKp, -1.0, n, &err)
	o.copyVec(dR, dP, n, &err)

	// check convergence at the initial guess
	rr := o.runDot(dR, dR, dPart, part, n, &err)
	C.clFinish(o.queue)
	if err != nil {
		return
	}
	resid = math.Sqrt(rr)
	if resid < tol {
		return it, resid, o.readVec(dX, x, n)
	}

	// iterate
	for it = 1; it <= maxIt; it++ {

		// kp = A·p and step length
		matVec(dP, dKp)
		pkp := o.runDot(dP, dKp, dPart, part, n, &err)
		pp := o.runDot(dP, dP, dPart, part, n, &err)
		if err != nil {
			return
		}
		if pkp <= 1e-30*pp {
			o.readVec(dX, x, n)
			return it, resid, chk.Err("conjugate-gradient breakdown: pᵀ·A·p = %g at iteration %d", pkp, it)
		}
		α := rr / pkp

		// update solution and residual
		o.runAxpy(o.kAxpy, dX, dP, α, n, &err)
		if it%50 == 0 {
			matVec(dX, dKp)
			o.copyVec(dB, dR, n, &err)
			o.runAxpy(o.kAxpy, dR, dKp, -1.0, n, &err)
		} else {
			o.runAxpy(o.kAxpy, dR, dKp, -α, n, &err)
		}

		// convergence
		rrNew := o.runDot(dR, dR, dPart, part, n, &err)
		C.clFinish(o.queue)
		if err != nil {
			return
		}
		resid = math.Sqrt(rrNew)
		if resid < tol {
			return it, resid, o.readVec(dX, x, n)
		}

		// next direction
		o.runAxpy(o.kXpay, dP, dR, rrNew/rr, n, &err)
		rr = rrNew
	}
	it = maxIt
	if e := o.readVec(dX, x, n); e != nil {
		return it, resid, e
	}
	return it, resid, chk.Err("conjugate-gradient did not converge after %d iterations: residual = %g", maxIt, resid)
}

// runSpmv enqueues y = A·x
func (o *clDevice) runSpmv(ap, aj, ax, x, y C.cl_mem, n int, err *error) {
	if *err != nil {
		return
	}
	cn := C.cl_int(n)
	C.clSetKernelArg(o.kSpmv, 0, C.size_t(unsafe.Sizeof(ap)), unsafe.Pointer(&ap))
	C.clSetKernelArg(o.kSpmv, 1, C.size_t(unsafe.Sizeof(aj)), unsafe.Pointer(&aj))
	C.clSetKernelArg(o.kSpmv, 2, C.size_t(unsafe.Sizeof(ax)), unsafe.Pointer(&ax))
	C.clSetKernelArg(o.kSpmv, 3, C.size_t(unsafe.Sizeof(x)), unsafe.Pointer(&x))
	C.clSetKernelArg(o.kSpmv, 4, C.size_t(unsafe.Sizeof(y)), unsafe.Pointer(&y))
	C.clSetKernelArg(o.kSpmv, 5, C.size_t(unsafe.Sizeof(cn)), unsafe.Pointer(&cn))
	o.launch(o.kSpmv, n, err)
}

// runAxpy enqueues y += a·x (kAxpy) or y = x + a·y (kXpay)
func (o *clDevice) runAxpy(k C.cl_kernel, y, x C.cl_mem, a float64, n int, err *error) {
	if *err != nil {
		return
	}
	ca := C.cl_double(a)
	cn := C.cl_int(n)
	C.clSetKernelArg(k, 0, C.size_t(unsafe.Sizeof(y)), unsafe.Pointer(&y))
	C.clSetKernelArg(k, 1, C.size_t(unsafe.Sizeof(x)), unsafe.Pointer(&x))
	C.clSetKernelArg(k, 2, C.size_t(unsafe.Sizeof(ca)), unsafe.Pointer(&ca))
	C.clSetKernelArg(k, 3, C.size_t(unsafe.Sizeof(cn)), unsafe.Pointer(&cn))
	o.launch(k, n, err)
}

// runDot computes the inner product of u and v: the kernel reduces each
// work-group into part and the host finishes the sum
func (o *clDevice) runDot(u, v, dPart C.cl_mem, part []float64, n int, err *error) (res float64) {
	if *err != nil {
		return
	}
	cn := C.cl_int(n)
	C.clSetKernelArg(o.kDot, 0, C.size_t(unsafe.Sizeof(u)), unsafe.Pointer(&u))
	C.clSetKernelArg(o.kDot, 1, C.size_t(unsafe.Sizeof(v)), unsafe.Pointer(&v))
	C.clSetKernelArg(o.kDot, 2, C.size_t(unsafe.Sizeof(dPart)), unsafe.Pointer(&dPart))
	C.clSetKernelArg(o.kDot, 3, C.size_t(8*localSize), nil)
	C.clSetKernelArg(o.kDot, 4, C.size_t(unsafe.Sizeof(cn)), unsafe.Pointer(&cn))
	o.launch(o.kDot, n, err)
	if *err != nil {
		return
	}
	if code := C.clEnqueueReadBuffer(o.queue, dPart, C.CL_TRUE, 0, C.size_t(8*len(part)), unsafe.Pointer(&part[0]), 0, nil, nil); code != C.CL_SUCCESS {
		*err = chk.Err("cannot read partial sums (code=%d)", code)
		return
	}
	for _, s := range part {
		res += s
	}
	return
}

// copyVec enqueues a device-to-device vector copy
func (o *clDevice) copyVec(src, dst C.cl_mem, n int, err *error) {
	if *err != nil {
		return
	}
	if code := C.clEnqueueCopyBuffer(o.queue, src, dst, 0, 0, C.size_t(8*n), 0, nil, nil); code != C.CL_SUCCESS {
		*err = chk.Err("cannot copy device buffer (code=%d)", code)
	}
}

// readVec blocks until dst holds the device vector
func (o *clDevice) readVec(src C.cl_mem, dst []float64, n int) error {
	if code := C.clEnqueueReadBuffer(o.queue, src, C.CL_TRUE, 0, C.size_t(8*n), unsafe.Pointer(&dst[0]), 0, nil, nil); code != C.CL_SUCCESS {
		return chk.Err("cannot read device buffer (code=%d)", code)
	}
	return nil
}

// launch enqueues one kernel over n work-items rounded up to full
// work-groups
func (o *clDevice) launch(k C.cl_kernel, n int, err *error) {
	if *err != nil {
		return
	}
	local := C.size_t(localSize)
	global := C.size_t((n + localSize - 1) / localSize * localSize)
	if code := C.clEnqueueNDRangeKernel(o.queue, k, 1, nil, &global, &local, 0, nil, nil); code != C.CL_SUCCESS {
		*err = chk.Err("cannot enqueue kernel (code=%d)", code)
	}
}
