package config

import "testing"

func TestCreateUniqueInstance(t *testing.T) {
	id := CreateUniqueInstance("collection")
	if id == "" {
		t.Fatal("instance id must not be empty")
	}
	if GetInstanceId() != id {
		t.Errorf("GetInstanceId() = %q, want %q", GetInstanceId(), id)
	}

	second := CreateUniqueInstance("collection")
	if second == id {
		t.Error("each instance must get its own id")
	}
	if GetInstanceId() != second {
		t.Errorf("GetInstanceId() = %q, want latest id %q", GetInstanceId(), second)
	}
}
