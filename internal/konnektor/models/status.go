// Package models holds the konnektor management API payloads and the flattened
// result shapes the check prints.
package models

import "encoding/json"

// ConnectorStatus is the response from GET /rest/mgmt/ak/dienste/status.
type ConnectorStatus struct {
	VpnTiConnected           *bool  `json:"vpnTiConnected" validate:"required"`
	VpnTiConnectionStateDate *int64 `json:"vpnTiConnectionStateDate" validate:"required"`
	ConnectorStarted         *int64 `json:"connectorStarted" validate:"required"`
	RestartRequired          *bool  `json:"restartRequired" validate:"required"`
}

// StatusResult is the printed form of ConnectorStatus.
type StatusResult struct {
	VpnTiConnected           int   `json:"vpnTiConnected"`
	VpnTiConnectionStateDate int64 `json:"vpnTiConnectionStateDate"`
	ConnectorStarted         int64 `json:"connectorStarted"`
	RestartRequired          int   `json:"restartRequired"`
}

// UpdateInfo is the response from GET /rest/mgmt/ak/dienste/ksr/informationen/updates-konnektor.
type UpdateInfo struct {
	LastUpdate *int64 `json:"lastUpdate" validate:"required"`
}

// UpdateStatusResult is the printed form of UpdateInfo.
type UpdateStatusResult struct {
	LastUpdateCheck int64 `json:"lastUpdateCheck"`
}

// VersionInfo is the response from GET /rest/mgmt/ak/dienste/status/version.
// The values are printed as received, whatever their JSON type, so it doubles
// as the result shape.
type VersionInfo struct {
	FwVersion    json.RawMessage `json:"fwVersion" validate:"required"`
	HwVersion    json.RawMessage `json:"hwVersion" validate:"required"`
	ProductName  json.RawMessage `json:"productName" validate:"required"`
	ProductType  json.RawMessage `json:"productType" validate:"required"`
	SerialNumber json.RawMessage `json:"serialNumber" validate:"required"`
	BuildTime    json.RawMessage `json:"buildTime" validate:"required"`
}

// BasicStatus is the response from GET /rest/mgmt/nk/status/basic, trimmed to the
// fields that are reported. Values pass through unchanged.
type BasicStatus struct {
	CPUTemperature json.RawMessage `json:"cpuTemperature" validate:"required"`
	CPUTempStatus  json.RawMessage `json:"cpuTempStatus" validate:"required"`
	MemTotal       json.RawMessage `json:"memTotal" validate:"required"`
	MemFree        json.RawMessage `json:"memFree" validate:"required"`
	MemAvailable   json.RawMessage `json:"memAvailable" validate:"required"`
	MemBuffers     json.RawMessage `json:"memBuffers" validate:"required"`
	MemCached      json.RawMessage `json:"memCached" validate:"required"`
	MemMapped      json.RawMessage `json:"memMapped" validate:"required"`
	MemShmem       json.RawMessage `json:"memShmem" validate:"required"`
	MemSlab        json.RawMessage `json:"memSlab" validate:"required"`
	MemKernelStack json.RawMessage `json:"memKernelStack" validate:"required"`
	MemPageTables  json.RawMessage `json:"memPageTables" validate:"required"`
	Uptime         json.RawMessage `json:"uptime" validate:"required"`
	LoadAvg1Min    json.RawMessage `json:"loadAvg1min" validate:"required"`
	LoadAvg5Min    json.RawMessage `json:"loadAvg5min" validate:"required"`
	LoadAvg15Min   json.RawMessage `json:"loadAvg15min" validate:"required"`
}
