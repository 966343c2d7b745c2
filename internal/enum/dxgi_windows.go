//go:build windows

package enum

import (
	"errors"
	"fmt"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

// DXGI_ADAPTER_FLAG_SOFTWARE marks reference/software rasterizers.
const dxgiAdapterFlagSoftware = 0x2

// DXGI_ERROR_NOT_FOUND terminates EnumAdapters1 iteration.
const dxgiErrNotFound = 0x887A0002

var (
	modDXGI                = windows.NewLazySystemDLL("dxgi.dll")
	procCreateDXGIFactory1 = modDXGI.NewProc("CreateDXGIFactory1")

	// IID_IDXGIFactory1 {770aae78-f26f-4dba-a829-253c83d1b387}
	iidIDXGIFactory1 = windows.GUID{
		Data1: 0x770aae78, Data2: 0xf26f, Data3: 0x4dba,
		Data4: [8]byte{0xa8, 0x29, 0x25, 0x3c, 0x83, 0xd1, 0xb3, 0x87},
	}
)

var errEnumDone = errors.New("adapter enumeration complete")

// hresult carries a COM return code through the error chain.
type hresult uintptr

func (hr hresult) failed() bool  { return hr&0x80000000 != 0 }
func (hr hresult) Error() string { return fmt.Sprintf("HRESULT 0x%08X", uint32(hr)) }

// adapterDesc1 mirrors DXGI_ADAPTER_DESC1. The three memory figures are
// SIZE_T in the C headers, hence uintptr here.
type adapterDesc1 struct {
	Description           [128]uint16
	VendorID              uint32
	DeviceID              uint32
	SubSysID              uint32
	Revision              uint32
	DedicatedVideoMemory  uintptr
	DedicatedSystemMemory uintptr
	SharedSystemMemory    uintptr
	AdapterLuid           windows.LUID
	Flags                 uint32
}

func (d *adapterDesc1) name() string {
	return windows.UTF16ToString(d.Description[:])
}

// dxgiFactory1 is an IDXGIFactory1 COM object: a pointer to a vtable of
// method slots. Only the slots this package calls are invoked; the struct
// names every inherited slot so the offsets line up.
type dxgiFactory1 struct {
	vtbl *dxgiFactory1Vtbl
}

type dxgiFactory1Vtbl struct {
	// IUnknown
	queryInterface uintptr
	addRef         uintptr
	release        uintptr
	// IDXGIObject
	setPrivateData          uintptr
	setPrivateDataInterface uintptr
	getPrivateData          uintptr
	getParent               uintptr
	// IDXGIFactory
	enumAdapters          uintptr
	makeWindowAssociation uintptr
	getWindowAssociation  uintptr
	createSwapChain       uintptr
	createSoftwareAdapter uintptr
	// IDXGIFactory1
	enumAdapters1 uintptr
	isCurrent     uintptr
}

type dxgiAdapter1 struct {
	vtbl *dxgiAdapter1Vtbl
}

type dxgiAdapter1Vtbl struct {
	// IUnknown
	queryInterface uintptr
	addRef         uintptr
	release        uintptr
	// IDXGIObject
	setPrivateData          uintptr
	setPrivateDataInterface uintptr
	getPrivateData          uintptr
	getParent               uintptr
	// IDXGIAdapter
	enumOutputs           uintptr
	getDesc               uintptr
	checkInterfaceSupport uintptr
	// IDXGIAdapter1
	getDesc1 uintptr
}

func createFactory1() (*dxgiFactory1, error) {
	var factory *dxgiFactory1
	hr, _, _ := procCreateDXGIFactory1.Call(
		uintptr(unsafe.Pointer(&iidIDXGIFactory1)),
		uintptr(unsafe.Pointer(&factory)),
	)
	if hresult(hr).failed() {
		return nil, fmt.Errorf("CreateDXGIFactory1: %w", hresult(hr))
	}
	return factory, nil
}

func (f *dxgiFactory1) enumAdapters1(index uint32) (*dxgiAdapter1, error) {
	var adapter *dxgiAdapter1
	hr, _, _ := syscall.SyscallN(f.vtbl.enumAdapters1,
		uintptr(unsafe.Pointer(f)),
		uintptr(index),
		uintptr(unsafe.Pointer(&adapter)),
	)
	if uint32(hr) == dxgiErrNotFound {
		return nil, errEnumDone
	}
	if hresult(hr).failed() {
		return nil, fmt.Errorf("IDXGIFactory1::EnumAdapters1(%d): %w", index, hresult(hr))
	}
	return adapter, nil
}

func (f *dxgiFactory1) release() {
	syscall.SyscallN(f.vtbl.release, uintptr(unsafe.Pointer(f)))
}

func (a *dxgiAdapter1) getDesc1() (adapterDesc1, error) {
	var desc adapterDesc1
	hr, _, _ := syscall.SyscallN(a.vtbl.getDesc1,
		uintptr(unsafe.Pointer(a)),
		uintptr(unsafe.Pointer(&desc)),
	)
	if hresult(hr).failed() {
		return adapterDesc1{}, fmt.Errorf("IDXGIAdapter1::GetDesc1: %w", hresult(hr))
	}
	return desc, nil
}

func (a *dxgiAdapter1) release() {
	syscall.SyscallN(a.vtbl.release, uintptr(unsafe.Pointer(a)))
}

// dxgiAdapters walks EnumAdapters1 until DXGI_ERROR_NOT_FOUND and returns
// every descriptor in DXGI order, software rasterizers included.
func dxgiAdapters() ([]adapterDesc1, error) {
	factory, err := createFactory1()
	if err != nil {
		return nil, err
	}
	defer factory.release()

	var out []adapterDesc1
	for i := uint32(0); ; i++ {
		adapter, err := factory.enumAdapters1(i)
		if errors.Is(err, errEnumDone) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		desc, err := adapter.getDesc1()
		adapter.release()
		if err != nil {
			return nil, err
		}
		out = append(out, desc)
	}
}

// packLUID folds a windows.LUID into the high<<32|low form used everywhere
// else in this module.
func packLUID(l windows.LUID) uint64 {
	return uint64(uint32(l.HighPart))<<32 | uint64(l.LowPart)
}
