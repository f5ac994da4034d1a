package entity

import "time"

// Machine statuses
const (
	MachineOnline      = "online"
	MachineOffline     = "offline"
	MachineError       = "error"
	MachineMaintenance = "maintenance"
)

// Integration types
const (
	IntegrationOPCUA    = "opc_ua"
	IntegrationMQTT     = "mqtt"
	IntegrationRESTAPI  = "rest_api"
	IntegrationDatabase = "database"
)

// Integration statuses
const (
	IntegrationConnected    = "connected"
	IntegrationDisconnected = "disconnected"
	IntegrationError        = "error"
)

// IsIntegrationStatus reports whether s is a known integration status
func IsIntegrationStatus(s string) bool {
	return s == IntegrationConnected || s == IntegrationDisconnected || s == IntegrationError
}

// Machine a shop-floor asset
type Machine struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Type          string    `json:"type"`
	Location      string    `json:"location"`
	Status        string    `json:"status"`
	LastHeartbeat time.Time `json:"lastHeartbeat"`
	OEE           float64   `json:"oee"`
	CurrentJob    string    `json:"currentJob,omitempty"`
	CycleTime     *float64  `json:"cycleTime,omitempty"`
	PartCount     *int      `json:"partCount,omitempty"`
}

// Integration an external data connection
type Integration struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Type     string         `json:"type"`
	Status   string         `json:"status"`
	Endpoint string         `json:"endpoint"`
	LastSync *time.Time     `json:"lastSync,omitempty"`
	Config   map[string]any `json:"config"`
}

// Clone deep copy; Config values are shared
func (i *Integration) Clone() *Integration {
	c := *i
	c.LastSync = cloneTime(i.LastSync)
	c.Config = make(map[string]any, len(i.Config))
	for k, v := range i.Config {
		c.Config[k] = v
	}
	return &c
}

// TelemetryData a machine sensor sample
type TelemetryData struct {
	MachineID   string    `json:"machineId"`
	Timestamp   time.Time `json:"timestamp"`
	Temperature *float64  `json:"temperature,omitempty"`
	Pressure    *float64  `json:"pressure,omitempty"`
	Vibration   *float64  `json:"vibration,omitempty"`
	Power       *float64  `json:"power,omitempty"`
	CycleTime   *float64  `json:"cycleTime,omitempty"`
	Status      string    `json:"status,omitempty"`
}
