package models

// MemoryStatus - ответ на запрос памяти ~HM, в килобайтах.
type MemoryStatus struct {
	TotalRAMKB         uint32 `json:"total_ram_kb" yaml:"total_ram_kb"`
	MaxAvailableKB     uint32 `json:"max_available_kb" yaml:"max_available_kb"`
	CurrentAvailableKB uint32 `json:"current_available_kb" yaml:"current_available_kb"`
}

// OdometerInfo - ответ на ~HQOD.
type OdometerInfo struct {
	TotalPrintLength string `json:"total_print_length"`
	TotalLabels      string `json:"total_labels"`
}

// PrintheadInfo - ответ на ~HQPH.
type PrintheadInfo struct {
	UsedInches  string `json:"used_inches"`
	TotalLabels string `json:"total_labels"`
}

// HostStatus содержит основные поля ответа ~HS.
type HostStatus struct {
	CommunicationMode string `json:"communication_mode"`
	PaperOut          bool   `json:"paper_out"`
	Pause             bool   `json:"pause"`
	LabelLength       string `json:"label_length"`
	LabelsRemaining   string `json:"labels_remaining"`
}

// SensorMediaStatus описывает заправленный носитель и датчики.
type SensorMediaStatus struct {
	MediaType      string `json:"media_type"`
	SensorProfile  string `json:"sensor_profile"`
	MediaDetected  bool   `json:"media_detected"`
	RibbonDetected bool   `json:"ribbon_detected"`
}

// AlertInfo содержит расшифрованные оповещения и исходный ответ.
type AlertInfo struct {
	ActiveAlerts []string `json:"active_alerts"`
	RawCodes     string   `json:"raw_codes"`
}

// SuppliesStatus описывает состояние носителя и ленты.
type SuppliesStatus struct {
	MediaStatus           string `json:"media_status"`
	RibbonStatus          string `json:"ribbon_status"`
	MediaRemainingPercent *uint8 `json:"media_remaining_percent,omitempty"`
}

// BatteryInfo описывает батарею мобильных принтеров.
type BatteryInfo struct {
	ChargePercent string `json:"charge_percent"`
	Charging      bool   `json:"charging"`
}

// LabelDimensions - ширина и высота этикетки в том виде, как их сообщил принтер.
type LabelDimensions struct {
	Width  string `json:"width"`
	Height string `json:"height"`
}

// PrinterInfo - полная диагностическая сводка принтера.
// Поле остается nil, если принтер не ответил на соответствующий запрос.
type PrinterInfo struct {
	SerialNumber      *string            `json:"serial_number,omitempty"`
	HardwareAddress   *string            `json:"hardware_address,omitempty"`
	Odometer          *OdometerInfo      `json:"odometer,omitempty"`
	PrintheadLife     *PrintheadInfo     `json:"printhead_life,omitempty"`
	PlugAndPlay       *string            `json:"plug_and_play,omitempty"`
	HostStatus        *HostStatus        `json:"host_status,omitempty"`
	SensorMediaStatus *SensorMediaStatus `json:"sensor_media_status,omitempty"`
	Alerts            *AlertInfo         `json:"alerts,omitempty"`
	SuppliesStatus    *SuppliesStatus    `json:"supplies_status,omitempty"`
	FirmwareVersion   *string            `json:"firmware_version,omitempty"`
	Battery           *BatteryInfo       `json:"battery,omitempty"`
	LabelDimensions   *LabelDimensions   `json:"label_dimensions,omitempty"`
	MemoryStatus      *MemoryStatus      `json:"memory_status,omitempty"`
}
