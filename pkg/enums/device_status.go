package enums

// DeviceStatus is the condition filter accepted by the catalog phones endpoint.
type DeviceStatus string

const (
	DeviceStatusUsed    DeviceStatus = "used"
	DeviceStatusNotUsed DeviceStatus = "not used"
)

func (s DeviceStatus) String() string {
	return string(s)
}

// DeviceStatusFor maps the used flag onto the upstream query value.
func DeviceStatusFor(used bool) DeviceStatus {
	if used {
		return DeviceStatusUsed
	}
	return DeviceStatusNotUsed
}
