package printer

// Строки запросов, определенные прошивкой, отправляются как есть.
const (
	QueryStatus          = "~HQES\r\n"
	QueryMemory          = "~HM\r\n"
	QuerySerialNumber    = "~HQSN\r\n"
	QueryHardwareAddress = "~HQHA\r\n"
	QueryOdometer        = "~HQOD\r\n"
	QueryPrintheadLife   = "~HQPH\r\n"
	QueryPlugAndPlay     = "~HQPP\r\n"
	QueryFirmware        = "~HQFW\r\n"
)

// HostQuery строит запрос ~HQ для двухбуквенного кода.
func HostQuery(code string) string {
	return "~HQ" + code + "\r\n"
}
