package ft232h

// The method set below satisfies the mcp342x.Bus interface. Every transfer
// is a complete transaction: start condition, addressed payload, stop
// condition.

// Init configures the MPSSE engine for I2C.
func (ft *FT232H) Init() error {
	return ft.FT232H.I2C.Init()
}

// Read fetches count bytes from the slave at addr.
func (ft *FT232H) Read(addr uint8, count uint) ([]byte, error) {
	return ft.FT232H.I2C.Read(uint(addr), count, true, true)
}

// Write sends data to the slave at addr.
func (ft *FT232H) Write(addr uint8, data []byte) (uint, error) {
	return ft.FT232H.I2C.Write(uint(addr), data, true, true)
}

// Close closes the interface.
func (ft *FT232H) Close() error {
	return ft.FT232H.Close()
}
