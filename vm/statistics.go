package vm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Statistics is the human-readable execution report: retired instruction
// count, cycle count, CPI, final PC, and branch/taken counts with rate.
type Statistics struct {
	Retired       uint64  `json:"retired"`
	Cycles        uint64  `json:"cycles"`
	CPI           float64 `json:"cpi"`
	FinalPC       uint32  `json:"final_pc"`
	Branches      uint64  `json:"branches"`
	Taken         uint64  `json:"taken"`
	TakenRate     float64 `json:"taken_rate"`
	Halted        bool    `json:"halted"`
	WarningsCount int     `json:"warnings_count"`
}

// Statistics snapshots the VM's counters into a report. CPI and taken-rate
// are zero when their denominators are zero.
func (v *VM) Statistics() Statistics {
	s := Statistics{
		Retired:       v.Retired,
		Cycles:        v.Cycles,
		FinalPC:       v.CPU.PC,
		Branches:      v.Branches,
		Taken:         v.Taken,
		Halted:        v.Halted,
		WarningsCount: len(v.Warnings),
	}
	if s.Retired > 0 {
		s.CPI = float64(s.Cycles) / float64(s.Retired)
	}
	if s.Branches > 0 {
		s.TakenRate = float64(s.Taken) / float64(s.Branches)
	}
	return s
}

// String renders the report in the §6 statistics-block layout.
func (s Statistics) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "instructions retired: %d\n", s.Retired)
	fmt.Fprintf(&b, "cycles:               %d\n", s.Cycles)
	fmt.Fprintf(&b, "CPI:                  %.3f\n", s.CPI)
	fmt.Fprintf(&b, "final PC:             0x%08X\n", s.FinalPC)
	fmt.Fprintf(&b, "branches:             %d\n", s.Branches)
	fmt.Fprintf(&b, "taken:                %d (%.1f%%)\n", s.Taken, s.TakenRate*100)
	fmt.Fprintf(&b, "halted:               %t\n", s.Halted)
	return b.String()
}

// ExportJSON renders the report as indented JSON.
func (s Statistics) ExportJSON() (string, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ExportCSV renders the report as a single CSV header line followed by one
// data line.
func (s Statistics) ExportCSV() string {
	var b strings.Builder
	b.WriteString("retired,cycles,cpi,final_pc,branches,taken,taken_rate,halted\n")
	fmt.Fprintf(&b, "%d,%d,%.4f,0x%08X,%d,%d,%.4f,%t\n",
		s.Retired, s.Cycles, s.CPI, s.FinalPC, s.Branches, s.Taken, s.TakenRate, s.Halted)
	return b.String()
}
