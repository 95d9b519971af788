package models

// DefaultMQTTPort is used when the operator leaves the port empty.
const DefaultMQTTPort = 1883

// DeviceConfig is what GET /api/config returns; passwords are never echoed.
type DeviceConfig struct {
	WifiSSID    string `json:"wifiSsid"`
	MQTTHost    string `json:"mqttHost"`
	MQTTPort    int    `json:"mqttPort"`
	MQTTUser    string `json:"mqttUser"`
	HasWifiPass bool   `json:"hasWifiPass"`
	HasMQTTPass bool   `json:"hasMqttPass"`
}

// ConfigUpdate is the body of POST /api/config.
type ConfigUpdate struct {
	WifiSSID  string `json:"wifiSsid"`
	WifiPass  string `json:"wifiPass"`
	MQTTHost  string `json:"mqttHost"`
	MQTTPort  int    `json:"mqttPort"`
	MQTTUser  string `json:"mqttUser"`
	MQTTPass  string `json:"mqttPass"`
	MQTTTopic string `json:"mqttTopic,omitempty"`
	MQTTTLS   bool   `json:"mqttTls"`
}

// WifiNetwork is one access point seen by the device.
type WifiNetwork struct {
	SSID        string `json:"ssid"`
	RSSI        int    `json:"rssi"`
	Secure      bool   `json:"secure"`
	SignalLevel int    `json:"signalLevel,omitempty"` // 1..4 bars
}

// WifiScan is the body of GET /api/wifi/scan.
type WifiScan struct {
	Scanning bool          `json:"scanning"`
	Networks []WifiNetwork `json:"networks"`
}
