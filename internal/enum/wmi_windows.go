//go:build windows

package enum

import "github.com/yusufpapurcu/wmi"

func queryVideoControllers() ([]videoController, error) {
	var rows []videoController
	query := "SELECT Name, PNPDeviceID FROM Win32_VideoController"
	if err := wmi.Query(query, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
