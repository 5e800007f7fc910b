package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterZeroAlwaysReadsZero(t *testing.T) {
	var c CPU
	c.WriteRegister(0, 0xDEADBEEF)
	assert.Equal(t, uint32(0), c.ReadRegister(0))
}

func TestRegisterWriteReadRoundTrip(t *testing.T) {
	var c CPU
	c.WriteRegister(5, 0x12345678)
	assert.Equal(t, uint32(0x12345678), c.ReadRegister(5))
}

func TestGetSetRegisterBoundsChecked(t *testing.T) {
	var c CPU
	if err := c.SetRegister(32, 1); err == nil {
		t.Fatal("expected RegisterFault for index 32")
	}
	if _, err := c.GetRegister(-1); err == nil {
		t.Fatal("expected RegisterFault for index -1")
	}

	assert.NoError(t, c.SetRegister(10, 99))
	v, err := c.GetRegister(10)
	assert.NoError(t, err)
	assert.Equal(t, uint32(99), v)
}

func TestCPUReset(t *testing.T) {
	var c CPU
	c.WriteRegister(3, 7)
	c.PC = 0x1000
	c.Reset()
	assert.Equal(t, uint32(0), c.ReadRegister(3))
	assert.Equal(t, uint32(0), c.PC)
}
