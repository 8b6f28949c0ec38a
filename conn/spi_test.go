package conn

import "testing"

func TestOpenSPIUnknown(t *testing.T) {
	if _, err := OpenSPI("MATRIX_TEST_SPI"); err == nil {
		t.Fatal("expected an error for an unknown port")
	}
}
