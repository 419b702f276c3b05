package tank

import "testing"

func TestPayloadChecksum(t *testing.T) {
	payload := func() []map[string]interface{} {
		return []map[string]interface{}{
			{"timestamp": "2025-03-10 08:00:00", "distance": 40.0, "water_level": 65.93, "water_volume": 960.0, "status": "valid"},
			{"timestamp": "2025-03-10 09:00:00", "distance": 45.0, "water_level": 60.44, "water_volume": 880.0, "status": "valid"},
		}
	}

	first, err := PayloadChecksum(payload())
	if err != nil {
		t.Fatalf("PayloadChecksum: %v", err)
	}
	if len(first) != 64 {
		t.Fatalf("checksum length = %d, want 64 hex chars", len(first))
	}

	second, err := PayloadChecksum(payload())
	if err != nil {
		t.Fatalf("PayloadChecksum: %v", err)
	}
	if first != second {
		t.Errorf("identical payloads produced different checksums: %s vs %s", first, second)
	}

	mutated := payload()
	mutated[1]["water_level"] = 60.45
	third, err := PayloadChecksum(mutated)
	if err != nil {
		t.Fatalf("PayloadChecksum: %v", err)
	}
	if third == first {
		t.Error("single-field mutation did not change the checksum")
	}

	truncated, err := PayloadChecksum(payload()[:1])
	if err != nil {
		t.Fatalf("PayloadChecksum: %v", err)
	}
	if truncated == first {
		t.Error("truncated payload did not change the checksum")
	}
}

func TestPayloadChecksumEmptyList(t *testing.T) {
	got, err := PayloadChecksum([]map[string]interface{}{})
	if err != nil {
		t.Fatalf("PayloadChecksum: %v", err)
	}
	if len(got) != 64 {
		t.Errorf("checksum length = %d, want 64", len(got))
	}
}
