package vm

import "testing"

func TestStatisticsCPIAndTakenRate(t *testing.T) {
	v := NewVM(64, 100)
	v.Retired = 10
	v.Cycles = 10
	v.Branches = 4
	v.Taken = 3
	v.CPU.PC = 0x40

	s := v.Statistics()
	if s.CPI != 1.0 {
		t.Errorf("CPI = %f, want 1.0", s.CPI)
	}
	if s.TakenRate != 0.75 {
		t.Errorf("TakenRate = %f, want 0.75", s.TakenRate)
	}
	if s.FinalPC != 0x40 {
		t.Errorf("FinalPC = 0x%X, want 0x40", s.FinalPC)
	}
}

func TestStatisticsZeroDenominators(t *testing.T) {
	v := NewVM(64, 100)
	s := v.Statistics()
	if s.CPI != 0 || s.TakenRate != 0 {
		t.Errorf("expected zero CPI/TakenRate with no retired instructions or branches, got %+v", s)
	}
}

func TestStatisticsStringContainsKeyFields(t *testing.T) {
	v := NewVM(64, 100)
	v.Retired = 5
	v.Cycles = 5
	out := v.Statistics().String()
	if out == "" {
		t.Fatal("expected non-empty statistics report")
	}
}
