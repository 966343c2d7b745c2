package types

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassFor(t *testing.T) {
	integrated := GpuIdentity{Name: "Intel UHD Graphics 630", IsIntegrated: true}
	discrete := GpuIdentity{Name: "NVIDIA GeForce RTX 3080"}

	if got := ClassFor(integrated); got != ClassPowerSaving {
		t.Errorf("ClassFor(integrated) = %v, want %v", got, ClassPowerSaving)
	}
	if got := ClassFor(discrete); got != ClassHighPerformance {
		t.Errorf("ClassFor(discrete) = %v, want %v", got, ClassHighPerformance)
	}
}

func TestPreferenceClass_Valid(t *testing.T) {
	for _, c := range []PreferenceClass{ClassDefault, ClassPowerSaving, ClassHighPerformance} {
		if !c.Valid() {
			t.Errorf("%d should be valid", c)
		}
	}
	for _, c := range []PreferenceClass{-1, 3, 1073741824} {
		if c.Valid() {
			t.Errorf("%d should be invalid", c)
		}
	}
}

func TestGpuIdentity_DisplayName(t *testing.T) {
	tests := []struct {
		name     string
		identity GpuIdentity
		expected string
	}{
		{
			name:     "unique name",
			identity: GpuIdentity{Name: "NVIDIA GeForce RTX 3080"},
			expected: "NVIDIA GeForce RTX 3080",
		},
		{
			name:     "duplicate",
			identity: GpuIdentity{Name: "Intel UHD Graphics 630", DuplicateIndex: 2},
			expected: "Intel UHD Graphics 630 (#2)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.identity.DisplayName(); got != tt.expected {
				t.Errorf("DisplayName() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestVendor_String(t *testing.T) {
	tests := []struct {
		vendor   Vendor
		expected string
	}{
		{VendorNVIDIA, "NVIDIA"},
		{VendorAMD, "AMD"},
		{VendorIntel, "Intel"},
		{VendorOther, "Other"},
		{Vendor(42), "Other"},
	}
	for _, tt := range tests {
		if got := tt.vendor.String(); got != tt.expected {
			t.Errorf("Vendor(%d).String() = %q, want %q", tt.vendor, got, tt.expected)
		}
	}
}

func TestError_Wrapping(t *testing.T) {
	cause := errors.New("access denied")
	err := NewError(ErrKindStoreWrite, "preference store write failed", cause)

	if !errors.Is(err, cause) {
		t.Error("wrapped cause should be reachable via errors.Is")
	}
	if !IsKind(err, ErrKindStoreWrite) {
		t.Error("IsKind should match the error's kind")
	}
	if IsKind(err, ErrKindNotFound) {
		t.Error("IsKind should not match a different kind")
	}

	// Wrapping a typed error in fmt.Errorf keeps the kind reachable.
	wrapped := fmt.Errorf("set default: %w", err)
	if !IsKind(wrapped, ErrKindStoreWrite) {
		t.Error("IsKind should see through fmt.Errorf wrapping")
	}

	if IsKind(errors.New("plain"), ErrKindStoreWrite) {
		t.Error("IsKind on an untyped error should be false")
	}
}
