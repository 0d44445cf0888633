// Copyright 2026 The Goperm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !opencl

package gpu

import "github.com/cpmech/gosl/chk"

// probe reports that no hardware backend was compiled in. Build with
// the 'opencl' tag to enable the OpenCL device.
func probe() (Device, error) {
	return nil, chk.Err("binary was built without the 'opencl' tag")
}
