package booking

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestGrid(t *testing.T) {
	g := Grid()
	if len(g) != 18 || g[0] != "09:00" || g[len(g)-1] != "17:30" {
		t.Fatalf("unexpected grid %v", g)
	}
}

func TestSlot_JSONKeepsEmptyStaff(t *testing.T) {
	raw, err := json.Marshal(Slot{Time: "09:00", Available: true, Staff: []SlotStaff{}})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(raw), `"staff":[]`) {
		t.Fatalf("free slot must carry a staff list: %s", raw)
	}
	if strings.Contains(string(raw), `"reason"`) {
		t.Fatalf("free slot must not carry a reason: %s", raw)
	}
}

func TestSlotKey_String(t *testing.T) {
	staff := uint(7)
	if got := (SlotKey{BranchID: 1, StaffID: &staff, Date: "2025-11-01", Time: "09:00"}).String(); got != "1:7:2025-11-01:09:00" {
		t.Fatalf("unexpected key %q", got)
	}
	if got := (SlotKey{BranchID: 1, Date: "2025-11-01", Time: "09:00"}).String(); got != "1:0:2025-11-01:09:00" {
		t.Fatalf("unexpected key %q", got)
	}

	k := SlotKey{BranchID: 1, StaffID: &staff, Date: "2025-11-01", Time: "09:00"}
	if got := k.BranchWide().String(); got != "1:0:2025-11-01:09:00" {
		t.Fatalf("unexpected branch key %q", got)
	}
	if k.StaffID == nil {
		t.Fatalf("BranchWide must not modify the receiver")
	}
}
